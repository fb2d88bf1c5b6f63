package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmaldonado/hub-admin-api/internal/application/dto"
	"github.com/jmaldonado/hub-admin-api/internal/domain"
)

// ─────────────────────────────────────────────────────────────────────────────
// Tests IndexData
// ─────────────────────────────────────────────────────────────────────────────

// Caso 1: la vista principal agrega hub, usuarios, roles, hubs y menú.
func TestIndexData_VistaCompleta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedMenu(t, "Reportes", "/reportes", f.hubID)
	f.seedMenu(t, "Ventas", "/ventas", f.otherHubID)

	out, err := f.panel.IndexData(ctx, f.memberP)
	require.NoError(t, err)

	assert.Equal(t, f.hubID, out.Hub.ID)
	assert.Len(t, out.Users, 2, "los dos usuarios del hub principal")
	assert.Len(t, out.Roles, 1, "solo el rol admin sembrado")
	assert.Len(t, out.Hubs, 2)
	require.Len(t, out.Menu, 1, "solo el menú del hub propio")
	assert.Equal(t, "/reportes", out.Menu[0].URL)
	assert.Equal(t, "Luis", out.UserName)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests ListUsers
// ─────────────────────────────────────────────────────────────────────────────

// Caso 2: el listado queda acotado al hub y filtra por rol y texto.
func TestListUsers_FiltrosYAcotamiento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "eva@ejemplo.com", "Eva", f.otherHubID)

	out, err := f.panel.ListUsers(ctx, f.memberP, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total, "el usuario de otro hub no cuenta")

	out, err = f.panel.ListUsers(ctx, f.memberP, "admin", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "admin@ejemplo.com", out.Users[0].Email)

	out, err = f.panel.ListUsers(ctx, f.memberP, "", "LUIS", dto.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total, "la búsqueda no distingue mayúsculas")
	assert.Equal(t, "luis@ejemplo.com", out.Users[0].Email)
}

// Caso 3: paginación con total sin paginar.
func TestListUsers_Paginacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "carla@ejemplo.com", "Carla", f.hubID)

	out, err := f.panel.ListUsers(ctx, f.memberP, "", "", dto.PageRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Len(t, out.Users, 2)

	out, err = f.panel.ListUsers(ctx, f.memberP, "", "", dto.PageRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Len(t, out.Users, 1)

	out, err = f.panel.ListUsers(ctx, f.memberP, "", "", dto.PageRequest{Page: 9, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, out.Users, "una página fuera de rango viene vacía")
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests GetUser
// ─────────────────────────────────────────────────────────────────────────────

// Caso 4: sin id devuelve el perfil propio; un id de otro hub es invisible.
func TestGetUser_PropioYAjeno(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.panel.GetUser(ctx, f.memberP, nil)
	require.NoError(t, err)
	assert.Equal(t, f.memberID, out.ID)

	out, err = f.panel.GetUser(ctx, f.memberP, &f.adminID)
	require.NoError(t, err)
	assert.Equal(t, f.adminID, out.ID)

	foraneo := f.seedUser(t, "eva@ejemplo.com", "Eva", f.otherHubID)
	_, err = f.panel.GetUser(ctx, f.memberP, &foraneo)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests UpdateCurrentUser
// ─────────────────────────────────────────────────────────────────────────────

// Caso 5: el perfil propio actualiza nombre y opcionalmente contraseña.
func TestUpdateCurrentUser_NombreYPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	antes := f.userInStore(t, f.memberID, f.hubID).User.PasswordHash

	out, err := f.panel.UpdateCurrentUser(ctx, f.memberP, dto.UpdateProfileRequest{Name: "Luis A."})
	require.NoError(t, err)
	assert.Equal(t, "Luis A.", out.Name)
	assert.Equal(t, antes, f.userInStore(t, f.memberID, f.hubID).User.PasswordHash)

	_, err = f.panel.UpdateCurrentUser(ctx, f.memberP, dto.UpdateProfileRequest{
		Name:     "Luis A.",
		Password: "clave-nueva",
	})
	require.NoError(t, err)
	despues := f.userInStore(t, f.memberID, f.hubID).User.PasswordHash
	assert.True(t, f.hasher.Verify("clave-nueva", despues))
}

// Caso 6: email y hub no cambian con la autoactualización.
func TestUpdateCurrentUser_EmailYHubInmutables(t *testing.T) {
	f := newFixture(t)

	out, err := f.panel.UpdateCurrentUser(context.Background(), f.memberP, dto.UpdateProfileRequest{Name: "Otro"})
	require.NoError(t, err)
	assert.Equal(t, "luis@ejemplo.com", out.Email)
	assert.Equal(t, f.hubID, out.HubID)
}

// Caso 7: el nombre vacío se rechaza.
func TestUpdateCurrentUser_NombreVacio(t *testing.T) {
	f := newFixture(t)

	_, err := f.panel.UpdateCurrentUser(context.Background(), f.memberP, dto.UpdateProfileRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyValue)
}
