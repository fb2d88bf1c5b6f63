package repository

import (
	"context"

	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// HubReader define el puerto de lectura para hubs.
type HubReader interface {
	// GetByID devuelve (nil, nil) si el hub no existe.
	GetByID(ctx context.Context, id types.HubID) (*entity.Hub, error)
	// GetByName devuelve (nil, nil) si no hay hub con ese nombre.
	GetByName(ctx context.Context, name types.HubName) (*entity.Hub, error)
	// List devuelve todos los hubs del sistema.
	List(ctx context.Context) ([]*entity.Hub, error)
}

// HubWriter define el puerto de escritura para hubs.
type HubWriter interface {
	// Create persiste un hub nuevo. ErrConflict si el nombre está duplicado.
	Create(ctx context.Context, nh *entity.NewHub) (*entity.Hub, error)
	// Delete elimina el hub en cascada (menús, user_roles de sus usuarios,
	// usuarios y el hub) dentro de una sola transacción. ErrNotFound si el
	// hub no existía; en ese caso nada de la cascada queda aplicado.
	Delete(ctx context.Context, id types.HubID) error
}

// HubRepository combina lectura y escritura de hubs.
type HubRepository interface {
	HubReader
	HubWriter
}
