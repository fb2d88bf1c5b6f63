package repository

import (
	"context"

	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// RoleReader define el puerto de lectura para roles.
type RoleReader interface {
	// GetByID devuelve (nil, nil) si el rol no existe.
	GetByID(ctx context.Context, id types.RoleID) (*entity.Role, error)
	// List devuelve todos los roles.
	List(ctx context.Context) ([]*entity.Role, error)
}

// RoleWriter define el puerto de escritura para roles.
type RoleWriter interface {
	// Create persiste un rol nuevo. ErrConflict si el nombre está duplicado.
	Create(ctx context.Context, nr *entity.NewRole) (*entity.Role, error)
	// Delete elimina el rol y sus filas user_roles en una transacción.
	// ErrNotFound si el rol no existía.
	Delete(ctx context.Context, id types.RoleID) error
}

// RoleRepository combina lectura y escritura de roles.
type RoleRepository interface {
	RoleReader
	RoleWriter
}
