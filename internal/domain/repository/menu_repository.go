package repository

import (
	"context"

	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// MenuReader define el puerto de lectura para menús.
type MenuReader interface {
	// GetByID busca un menú por id dentro de un hub; (nil, nil) si no existe
	// o pertenece a otro hub (sin fuga entre tenants).
	GetByID(ctx context.Context, id types.MenuID, hubID types.HubID) (*entity.Menu, error)
	// List devuelve los menús del hub.
	List(ctx context.Context, hubID types.HubID) ([]*entity.Menu, error)
}

// MenuWriter define el puerto de escritura para menús.
type MenuWriter interface {
	// Create persiste un menú nuevo.
	Create(ctx context.Context, nm *entity.NewMenu) (*entity.Menu, error)
	// Delete elimina el menú. ErrNotFound si no existía.
	Delete(ctx context.Context, id types.MenuID) error
}

// MenuRepository combina lectura y escritura de menús.
type MenuRepository interface {
	MenuReader
	MenuWriter
}
