package repository

import (
	"context"

	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// UserListQuery filtros para listar usuarios de un hub.
type UserListQuery struct {
	HubID   types.HubID
	Role    string // filtra por nombre de rol si no está vacío
	Search  string // búsqueda por email o nombre si no está vacío
	Page    int    // 1-based; 0 = sin paginación
	PerPage int
}

// UserReader define el puerto de lectura para usuarios (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay coincidencia.
type UserReader interface {
	// GetByID busca un usuario por id dentro de un hub, con sus roles.
	GetByID(ctx context.Context, id types.UserID, hubID types.HubID) (*entity.UserWithRoles, error)
	// GetByEmail busca por email normalizado dentro de un hub, con sus roles.
	GetByEmail(ctx context.Context, email types.Email, hubID types.HubID) (*entity.UserWithRoles, error)
	// List devuelve el total sin paginar y la página de usuarios del hub.
	List(ctx context.Context, q UserListQuery) (int, []*entity.UserWithRoles, error)
	// GetRoles devuelve los roles asignados a un usuario.
	GetRoles(ctx context.Context, id types.UserID) ([]*entity.Role, error)
}

// UserWriter define el puerto de escritura para usuarios.
type UserWriter interface {
	// Create persiste un usuario nuevo (hasheando la contraseña) y devuelve
	// la entidad con id y timestamps generados. ErrConflict si el email ya
	// existe en el hub.
	Create(ctx context.Context, nu *entity.NewUser) (*entity.User, error)
	// Update aplica una actualización parcial al usuario del hub indicado.
	// Refresca updated_at; re-hashea la contraseña solo si viene una nueva.
	// ErrNotFound si el usuario ya no existe.
	Update(ctx context.Context, id types.UserID, hubID types.HubID, upd *entity.UpdateUser) (*entity.User, error)
	// AssignRoles reemplaza el conjunto completo de roles del usuario en una
	// transacción (delete + insert). La lista vacía limpia todos los roles.
	AssignRoles(ctx context.Context, id types.UserID, roleIDs []types.RoleID) error
	// Delete elimina al usuario y sus filas user_roles en una transacción.
	// ErrNotFound si el usuario no existía.
	Delete(ctx context.Context, id types.UserID) error
}

// UserRepository combina lectura y escritura de usuarios.
type UserRepository interface {
	UserReader
	UserWriter
}
