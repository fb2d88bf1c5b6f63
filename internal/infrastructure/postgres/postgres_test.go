package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmaldonado/hub-admin-api/internal/domain"
	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/repository"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
	"github.com/jmaldonado/hub-admin-api/internal/infrastructure/postgres"
	"github.com/jmaldonado/hub-admin-api/pkg/password"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ─────────────────────────────────────────────────────────────────────────────

// testPool abre el pool contra TEST_DATABASE_URL y aplica el esquema. Los
// tests se saltan si la variable no está definida o en modo -short.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("test de integración: se salta en modo short")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido; se salta el test de integración")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

// unique genera un sufijo distinto por ejecución para no chocar con datos de
// corridas anteriores en la misma base.
func unique(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func seedHub(t *testing.T, hubs repository.HubRepository) *entity.Hub {
	t.Helper()
	nh, err := entity.NewHubFromInput(unique("hub"))
	require.NoError(t, err)
	hub, err := hubs.Create(context.Background(), nh)
	require.NoError(t, err)
	return hub
}

func seedUser(t *testing.T, users repository.UserRepository, hub *entity.Hub, email string) *entity.User {
	t.Helper()
	nu, err := entity.NewUserFromInput(email, "Temporal", hub.ID.Int32(), "secreto123")
	require.NoError(t, err)
	user, err := users.Create(context.Background(), nu)
	require.NoError(t, err)
	return user
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests de integración
// ─────────────────────────────────────────────────────────────────────────────

// La migración es idempotente y siembra el rol admin con id 1.
func TestMigrate_SiembraRolAdmin(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	require.NoError(t, postgres.Migrate(ctx, pool), "reaplicar el esquema no debe fallar")

	roles := postgres.NewRoleRepository(pool)
	role, err := roles.GetByID(ctx, entity.BaseAdminRoleID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, entity.AdminRoleName, role.Name.String())
}

// Alta de usuario: el email repetido en el mismo hub es conflicto; en otro
// hub no.
func TestUserRepo_UnicidadPorHub(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	hasher := password.NewHasher(bcrypt.MinCost)
	users := postgres.NewUserRepository(pool, hasher)
	hubs := postgres.NewHubRepository(pool)

	hubA := seedHub(t, hubs)
	hubB := seedHub(t, hubs)
	email := unique("ana") + "@ejemplo.com"

	seedUser(t, users, hubA, email)

	nu, err := entity.NewUserFromInput(email, "", hubA.ID.Int32(), "otra")
	require.NoError(t, err)
	_, err = users.Create(ctx, nu)
	assert.ErrorIs(t, err, domain.ErrConflict)

	otro := seedUser(t, users, hubB, email)
	assert.Equal(t, hubB.ID, otro.HubID)
}

// Las búsquedas quedan acotadas al hub: el mismo usuario no es visible desde
// otro hub.
func TestUserRepo_BusquedaAcotadaAlHub(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	hasher := password.NewHasher(bcrypt.MinCost)
	users := postgres.NewUserRepository(pool, hasher)
	hubs := postgres.NewHubRepository(pool)

	hubA := seedHub(t, hubs)
	hubB := seedHub(t, hubs)
	user := seedUser(t, users, hubA, unique("luis")+"@ejemplo.com")

	found, err := users.GetByID(ctx, user.ID, hubA.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	invisible, err := users.GetByID(ctx, user.ID, hubB.ID)
	require.NoError(t, err)
	assert.Nil(t, invisible)
}

// AssignRoles reemplaza el conjunto completo; la lista vacía limpia.
func TestUserRepo_AssignRolesReemplaza(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	hasher := password.NewHasher(bcrypt.MinCost)
	users := postgres.NewUserRepository(pool, hasher)
	hubs := postgres.NewHubRepository(pool)
	roles := postgres.NewRoleRepository(pool)

	hub := seedHub(t, hubs)
	user := seedUser(t, users, hub, unique("rol")+"@ejemplo.com")
	nr, err := entity.NewRoleFromInput(unique("supervisor"))
	require.NoError(t, err)
	role, err := roles.Create(ctx, nr)
	require.NoError(t, err)

	require.NoError(t, users.AssignRoles(ctx, user.ID, []types.RoleID{entity.BaseAdminRoleID, role.ID}))
	got, err := users.GetRoles(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NoError(t, users.AssignRoles(ctx, user.ID, nil))
	got, err = users.GetRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Eliminar un hub arrastra menús, usuarios y sus asignaciones en una sola
// transacción.
func TestHubRepo_DeleteCascada(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	hasher := password.NewHasher(bcrypt.MinCost)
	users := postgres.NewUserRepository(pool, hasher)
	hubs := postgres.NewHubRepository(pool)
	menus := postgres.NewMenuRepository(pool)

	hub := seedHub(t, hubs)
	user := seedUser(t, users, hub, unique("eva")+"@ejemplo.com")
	require.NoError(t, users.AssignRoles(ctx, user.ID, []types.RoleID{entity.BaseAdminRoleID}))
	nm, err := entity.NewMenuFromInput("Reportes", "/reportes", hub.ID.Int32())
	require.NoError(t, err)
	_, err = menus.Create(ctx, nm)
	require.NoError(t, err)

	require.NoError(t, hubs.Delete(ctx, hub.ID))

	gone, err := hubs.GetByID(ctx, hub.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	left, err := menus.List(ctx, hub.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	missing, err := users.GetByID(ctx, user.ID, hub.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, hubs.Delete(ctx, hub.ID), domain.ErrNotFound)
}

// El TxRunner revierte todo el callback si este falla.
func TestTxRunner_RollbackCompleto(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	hasher := password.NewHasher(bcrypt.MinCost)
	users := postgres.NewUserRepository(pool, hasher)
	hubs := postgres.NewHubRepository(pool)
	runner := postgres.NewTxRunner(pool, hasher)

	hub := seedHub(t, hubs)
	user := seedUser(t, users, hub, unique("tx")+"@ejemplo.com")

	boom := fmt.Errorf("falla simulada")
	err := runner.RunUserTx(ctx, func(txUsers repository.UserRepository) error {
		if err := txUsers.AssignRoles(ctx, user.ID, []types.RoleID{entity.BaseAdminRoleID}); err != nil {
			return err
		}
		upd, err := entity.UpdateUserFromInput("Cambiado", "")
		if err != nil {
			return err
		}
		if _, err := txUsers.Update(ctx, user.ID, hub.ID, upd); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	after, err := users.GetByID(ctx, user.ID, hub.ID)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Empty(t, after.Roles, "la asignación debe revertirse")
	assert.Equal(t, "Temporal", after.User.DisplayName(), "la actualización debe revertirse")
}

// El listado filtra por rol y por texto y pagina con total global.
func TestUserRepo_ListFiltros(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	hasher := password.NewHasher(bcrypt.MinCost)
	users := postgres.NewUserRepository(pool, hasher)
	hubs := postgres.NewHubRepository(pool)

	hub := seedHub(t, hubs)
	u1 := seedUser(t, users, hub, unique("marta")+"@ejemplo.com")
	seedUser(t, users, hub, unique("pedro")+"@ejemplo.com")
	require.NoError(t, users.AssignRoles(ctx, u1.ID, []types.RoleID{entity.BaseAdminRoleID}))

	total, page, err := users.List(ctx, repository.UserListQuery{HubID: hub.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 2)

	total, page, err = users.List(ctx, repository.UserListQuery{HubID: hub.ID, Role: entity.AdminRoleName})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, u1.ID, page[0].User.ID)

	total, page, err = users.List(ctx, repository.UserListQuery{HubID: hub.ID, Search: "marta"})
	require.NoError(t, err)
	require.Equal(t, 1, total)

	total, page, err = users.List(ctx, repository.UserListQuery{HubID: hub.ID, Page: 1, PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 1)
}
