package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmaldonado/hub-admin-api/internal/application/dto"
	"github.com/jmaldonado/hub-admin-api/internal/application/usecase"
	"github.com/jmaldonado/hub-admin-api/internal/domain"
	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
	"github.com/jmaldonado/hub-admin-api/internal/infrastructure/memory"
	"github.com/jmaldonado/hub-admin-api/pkg/password"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ─────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store  *memory.Store
	hasher *password.Hasher
	admin  *usecase.AdminUseCase
	panel  *usecase.PanelUseCase

	hubID      int32
	otherHubID int32

	adminP  *entity.Principal // admin del hub principal
	memberP *entity.Principal // usuario sin roles del hub principal

	adminID  int32
	memberID int32
}

// newFixture arma los casos de uso sobre el almacén en memoria con dos hubs,
// el rol admin sembrado como id 1 y dos usuarios en el hub principal.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	hasher := password.NewHasher(bcrypt.MinCost)
	store := memory.NewStore(hasher)

	f := &fixture{
		store:  store,
		hasher: hasher,
		admin:  usecase.NewAdminUseCase(store.Users, store.Hubs, store.Roles, store.Menus, store),
		panel:  usecase.NewPanelUseCase(store.Users, store.Hubs, store.Roles, store.Menus),
	}

	f.hubID = f.seedHub(t, "Central")
	f.otherHubID = f.seedHub(t, "Sucursal")

	// el primer rol creado recibe el id 1, igual que la semilla de migración
	adminRole := f.seedRole(t, entity.AdminRoleName)
	require.Equal(t, entity.BaseAdminRoleID, adminRole.ID)

	f.adminID = f.seedUser(t, "admin@ejemplo.com", "Admin", f.hubID)
	f.memberID = f.seedUser(t, "luis@ejemplo.com", "Luis", f.hubID)

	id, err := types.NewUserID(f.adminID)
	require.NoError(t, err)
	require.NoError(t, store.Users.AssignRoles(ctx, id, []types.RoleID{adminRole.ID}))

	f.adminP = f.principal(t, f.adminID, f.hubID)
	f.memberP = f.principal(t, f.memberID, f.hubID)
	return f
}

func (f *fixture) seedHub(t *testing.T, name string) int32 {
	t.Helper()
	nh, err := entity.NewHubFromInput(name)
	require.NoError(t, err)
	hub, err := f.store.Hubs.Create(context.Background(), nh)
	require.NoError(t, err)
	return hub.ID.Int32()
}

func (f *fixture) seedRole(t *testing.T, name string) *entity.Role {
	t.Helper()
	nr, err := entity.NewRoleFromInput(name)
	require.NoError(t, err)
	role, err := f.store.Roles.Create(context.Background(), nr)
	require.NoError(t, err)
	return role
}

func (f *fixture) seedUser(t *testing.T, email, name string, hubID int32) int32 {
	t.Helper()
	nu, err := entity.NewUserFromInput(email, name, hubID, "secreto123")
	require.NoError(t, err)
	user, err := f.store.Users.Create(context.Background(), nu)
	require.NoError(t, err)
	return user.ID.Int32()
}

func (f *fixture) seedMenu(t *testing.T, name, url string, hubID int32) int32 {
	t.Helper()
	nm, err := entity.NewMenuFromInput(name, url, hubID)
	require.NoError(t, err)
	menu, err := f.store.Menus.Create(context.Background(), nm)
	require.NoError(t, err)
	return menu.ID.Int32()
}

// principal reconstruye el principal desde el estado persistido.
func (f *fixture) principal(t *testing.T, userID, hubID int32) *entity.Principal {
	t.Helper()
	id, err := types.NewUserID(userID)
	require.NoError(t, err)
	hub, err := types.NewHubID(hubID)
	require.NoError(t, err)
	user, err := f.store.Users.GetByID(context.Background(), id, hub)
	require.NoError(t, err)
	require.NotNil(t, user)
	return entity.NewPrincipal(user)
}

// userInStore lee un usuario directamente del almacén.
func (f *fixture) userInStore(t *testing.T, userID, hubID int32) *entity.UserWithRoles {
	t.Helper()
	id, err := types.NewUserID(userID)
	require.NoError(t, err)
	hub, err := types.NewHubID(hubID)
	require.NoError(t, err)
	user, err := f.store.Users.GetByID(context.Background(), id, hub)
	require.NoError(t, err)
	return user
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests de autorización
// ─────────────────────────────────────────────────────────────────────────────

// Caso 1: ninguna operación administrativa acepta un principal sin rol admin.
func TestAdmin_RechazaSinRolAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.memberP

	_, err := f.admin.CreateRole(ctx, p, dto.CreateRoleRequest{Name: "supervisor"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "CreateRole")

	_, err = f.admin.CreateHub(ctx, p, dto.CreateHubRequest{Name: "Nuevo"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "CreateHub")

	_, err = f.admin.CreateMenu(ctx, p, dto.CreateMenuRequest{Name: "Reportes", URL: "/reportes"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "CreateMenu")

	assert.ErrorIs(t, f.admin.DeleteRole(ctx, p, 2), domain.ErrUnauthorized, "DeleteRole")
	assert.ErrorIs(t, f.admin.DeleteHub(ctx, p, f.otherHubID), domain.ErrUnauthorized, "DeleteHub")
	assert.ErrorIs(t, f.admin.DeleteUser(ctx, p, f.adminID), domain.ErrUnauthorized, "DeleteUser")
	assert.ErrorIs(t, f.admin.DeleteMenu(ctx, p, 1), domain.ErrUnauthorized, "DeleteMenu")

	_, err = f.admin.AssignRolesAndUpdateUser(ctx, p, f.memberID, dto.UpdateUserRequest{Name: "Luis"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "AssignRolesAndUpdateUser")

	_, err = f.admin.UserEditorData(ctx, p, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "UserEditorData")
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests de altas
// ─────────────────────────────────────────────────────────────────────────────

// Caso 2: crear rol y detectar el nombre duplicado.
func TestCreateRole_DuplicadoEsConflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	role, err := f.admin.CreateRole(ctx, f.adminP, dto.CreateRoleRequest{Name: "supervisor"})
	require.NoError(t, err)
	assert.Equal(t, "supervisor", role.Name)

	_, err = f.admin.CreateRole(ctx, f.adminP, dto.CreateRoleRequest{Name: "supervisor"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Caso 3: el nombre vacío se rechaza antes de tocar el almacén.
func TestCreateRole_NombreVacio(t *testing.T) {
	f := newFixture(t)

	_, err := f.admin.CreateRole(context.Background(), f.adminP, dto.CreateRoleRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyValue)
}

// Caso 4: el menú siempre nace en el hub del principal.
func TestCreateMenu_EnElHubDelPrincipal(t *testing.T) {
	f := newFixture(t)

	menu, err := f.admin.CreateMenu(context.Background(), f.adminP, dto.CreateMenuRequest{
		Name: "Reportes",
		URL:  "/reportes",
	})
	require.NoError(t, err)
	assert.Equal(t, f.hubID, menu.HubID)
}

// Caso 5: URL inválida rechazada.
func TestCreateMenu_URLInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.admin.CreateMenu(context.Background(), f.adminP, dto.CreateMenuRequest{
		Name: "Reportes",
		URL:  "no es una url",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidURL)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests de bajas
// ─────────────────────────────────────────────────────────────────────────────

// Caso 6: el rol administrativo base nunca se elimina.
func TestDeleteRole_RolBaseProtegido(t *testing.T) {
	f := newFixture(t)

	err := f.admin.DeleteRole(context.Background(), f.adminP, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	role, getErr := f.store.Roles.GetByID(context.Background(), entity.BaseAdminRoleID)
	require.NoError(t, getErr)
	assert.NotNil(t, role, "el rol base debe seguir existiendo")
}

// Caso 7: eliminar un rol lo retira también de los usuarios que lo tenían.
func TestDeleteRole_RetiraAsignaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	role := f.seedRole(t, "supervisor")
	id, err := types.NewUserID(f.memberID)
	require.NoError(t, err)
	require.NoError(t, f.store.Users.AssignRoles(ctx, id, []types.RoleID{role.ID}))

	require.NoError(t, f.admin.DeleteRole(ctx, f.adminP, role.ID.Int32()))

	user := f.userInStore(t, f.memberID, f.hubID)
	assert.Empty(t, user.Roles, "la asignación debe desaparecer con el rol")
}

// Caso 8: rol inexistente → not found; id inválido → rechazo de validación.
func TestDeleteRole_InexistenteEInvalido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.admin.DeleteRole(ctx, f.adminP, 999), domain.ErrNotFound)
	assert.ErrorIs(t, f.admin.DeleteRole(ctx, f.adminP, 0), domain.ErrInvalidID)
	assert.ErrorIs(t, f.admin.DeleteRole(ctx, f.adminP, -3), domain.ErrInvalidID)
}

// Caso 9: un admin no puede eliminar su propio hub.
func TestDeleteHub_PropioProhibido(t *testing.T) {
	f := newFixture(t)

	err := f.admin.DeleteHub(context.Background(), f.adminP, f.hubID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Caso 10: eliminar otro hub arrastra usuarios y menús de ese hub.
func TestDeleteHub_CascadaCompleta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	foraneo := f.seedUser(t, "eva@ejemplo.com", "Eva", f.otherHubID)
	f.seedMenu(t, "Ventas", "/ventas", f.otherHubID)

	require.NoError(t, f.admin.DeleteHub(ctx, f.adminP, f.otherHubID))

	assert.Nil(t, f.userInStore(t, foraneo, f.otherHubID), "los usuarios del hub deben desaparecer")
	hub, err := types.NewHubID(f.otherHubID)
	require.NoError(t, err)
	menus, err := f.store.Menus.List(ctx, hub)
	require.NoError(t, err)
	assert.Empty(t, menus, "los menús del hub deben desaparecer")

	assert.ErrorIs(t, f.admin.DeleteHub(ctx, f.adminP, f.otherHubID), domain.ErrNotFound,
		"la segunda eliminación ya no encuentra el hub")
}

// Caso 11: autoeliminación prohibida; usuario de otro hub invisible.
func TestDeleteUser_LimitesDeHubYDeIdentidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.admin.DeleteUser(ctx, f.adminP, f.adminID), domain.ErrUnauthorized,
		"nadie se elimina a sí mismo")

	foraneo := f.seedUser(t, "eva@ejemplo.com", "Eva", f.otherHubID)
	assert.ErrorIs(t, f.admin.DeleteUser(ctx, f.adminP, foraneo), domain.ErrNotFound,
		"un usuario de otro hub es invisible")

	require.NoError(t, f.admin.DeleteUser(ctx, f.adminP, f.memberID))
	assert.Nil(t, f.userInStore(t, f.memberID, f.hubID))
}

// Caso 12: eliminar un menú es idempotente y respeta el hub.
func TestDeleteMenu_IdempotenteYAcotado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	propio := f.seedMenu(t, "Reportes", "/reportes", f.hubID)
	ajeno := f.seedMenu(t, "Ventas", "/ventas", f.otherHubID)

	require.NoError(t, f.admin.DeleteMenu(ctx, f.adminP, propio))
	require.NoError(t, f.admin.DeleteMenu(ctx, f.adminP, propio), "repetir no es un error")
	require.NoError(t, f.admin.DeleteMenu(ctx, f.adminP, 999), "inexistente no es un error")

	require.NoError(t, f.admin.DeleteMenu(ctx, f.adminP, ajeno))
	hub, err := types.NewHubID(f.otherHubID)
	require.NoError(t, err)
	id, err := types.NewMenuID(ajeno)
	require.NoError(t, err)
	menu, err := f.store.Menus.GetByID(ctx, id, hub)
	require.NoError(t, err)
	assert.NotNil(t, menu, "el menú de otro hub no debe tocarse")
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests de edición combinada
// ─────────────────────────────────────────────────────────────────────────────

// Caso 13: la edición reemplaza el conjunto de roles por completo.
func TestAssignRolesAndUpdateUser_ReemplazoTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1 := f.seedRole(t, "supervisor")
	r2 := f.seedRole(t, "auditor")

	out, err := f.admin.AssignRolesAndUpdateUser(ctx, f.adminP, f.memberID, dto.UpdateUserRequest{
		Name:    "Luis Andrés",
		RoleIDs: []int32{r1.ID.Int32(), r2.ID.Int32()},
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Luis Andrés", out.Name)
	assert.ElementsMatch(t, []string{"supervisor", "auditor"}, out.Roles)

	// el segundo reemplazo descarta lo anterior
	out, err = f.admin.AssignRolesAndUpdateUser(ctx, f.adminP, f.memberID, dto.UpdateUserRequest{
		Name:    "Luis Andrés",
		RoleIDs: []int32{r2.ID.Int32()},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"auditor"}, out.Roles)
}

// Caso 14: la lista vacía de roles limpia todas las asignaciones.
func TestAssignRolesAndUpdateUser_ListaVaciaLimpia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1 := f.seedRole(t, "supervisor")
	id, err := types.NewUserID(f.memberID)
	require.NoError(t, err)
	require.NoError(t, f.store.Users.AssignRoles(ctx, id, []types.RoleID{r1.ID}))

	out, err := f.admin.AssignRolesAndUpdateUser(ctx, f.adminP, f.memberID, dto.UpdateUserRequest{
		Name: "Luis",
	})
	require.NoError(t, err)
	assert.Empty(t, out.Roles, "sin role_ids el usuario queda sin roles")
}

// Caso 15: contraseña nueva re-hasheada; vacía conserva la anterior.
func TestAssignRolesAndUpdateUser_Password(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	antes := f.userInStore(t, f.memberID, f.hubID).User.PasswordHash

	_, err := f.admin.AssignRolesAndUpdateUser(ctx, f.adminP, f.memberID, dto.UpdateUserRequest{
		Name: "Luis",
	})
	require.NoError(t, err)
	assert.Equal(t, antes, f.userInStore(t, f.memberID, f.hubID).User.PasswordHash,
		"sin contraseña nueva el hash no cambia")

	_, err = f.admin.AssignRolesAndUpdateUser(ctx, f.adminP, f.memberID, dto.UpdateUserRequest{
		Name:     "Luis",
		Password: "clave-nueva",
	})
	require.NoError(t, err)
	despues := f.userInStore(t, f.memberID, f.hubID).User.PasswordHash
	assert.NotEqual(t, antes, despues)
	assert.True(t, f.hasher.Verify("clave-nueva", despues),
		"el hash nuevo debe corresponder a la contraseña nueva")
}

// Caso 16: usuario inexistente o de otro hub → sin efecto y sin error.
func TestAssignRolesAndUpdateUser_FueraDelHubEsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	foraneo := f.seedUser(t, "eva@ejemplo.com", "Eva", f.otherHubID)

	out, err := f.admin.AssignRolesAndUpdateUser(ctx, f.adminP, foraneo, dto.UpdateUserRequest{
		Name: "Eva Modificada",
	})
	require.NoError(t, err)
	assert.Nil(t, out, "el objetivo fuera del hub deja la operación sin efecto")

	user := f.userInStore(t, foraneo, f.otherHubID)
	assert.Equal(t, "Eva", user.User.DisplayName(), "el usuario foráneo no debe cambiar")

	out, err = f.admin.AssignRolesAndUpdateUser(ctx, f.adminP, 999, dto.UpdateUserRequest{Name: "X"})
	require.NoError(t, err)
	assert.Nil(t, out)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests del editor
// ─────────────────────────────────────────────────────────────────────────────

// Caso 17: el editor entrega el catálogo de roles y el usuario si existe.
func TestUserEditorData_ConYSinUsuario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedRole(t, "supervisor")

	out, err := f.admin.UserEditorData(ctx, f.adminP, nil)
	require.NoError(t, err)
	assert.Nil(t, out.User)
	assert.Len(t, out.Roles, 2, "admin y supervisor")

	out, err = f.admin.UserEditorData(ctx, f.adminP, &f.memberID)
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.Equal(t, f.memberID, out.User.ID)

	foraneo := f.seedUser(t, "eva@ejemplo.com", "Eva", f.otherHubID)
	out, err = f.admin.UserEditorData(ctx, f.adminP, &foraneo)
	require.NoError(t, err)
	assert.Nil(t, out.User, "un usuario de otro hub es invisible para el editor")
}
