package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmaldonado/hub-admin-api/internal/domain"
	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/repository"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

var _ repository.HubRepository = (*HubRepo)(nil)

// HubRepo implementación del puerto HubRepository sobre PostgreSQL.
type HubRepo struct {
	db DB
}

// NewHubRepository construye el adaptador de persistencia para hubs.
func NewHubRepository(db DB) *HubRepo {
	return &HubRepo{db: db}
}

func scanHub(row pgx.Row) (*entity.Hub, error) {
	var (
		id                   int32
		name                 string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &entity.Hub{
		ID:        types.HubID(id),
		Name:      types.HubName(name),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// GetByID obtiene un hub por id. Devuelve (nil, nil) si no existe.
func (r *HubRepo) GetByID(ctx context.Context, id types.HubID) (*entity.Hub, error) {
	query := `SELECT id, name, created_at, updated_at FROM hubs WHERE id = $1`
	hub, err := scanHub(r.db.QueryRow(ctx, query, id.Int32()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hub by id: %w", err)
	}
	return hub, nil
}

// GetByName obtiene un hub por nombre exacto. Devuelve (nil, nil) si no existe.
func (r *HubRepo) GetByName(ctx context.Context, name types.HubName) (*entity.Hub, error) {
	query := `SELECT id, name, created_at, updated_at FROM hubs WHERE name = $1`
	hub, err := scanHub(r.db.QueryRow(ctx, query, name.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hub by name: %w", err)
	}
	return hub, nil
}

// List devuelve todos los hubs ordenados por id.
func (r *HubRepo) List(ctx context.Context) ([]*entity.Hub, error) {
	query := `SELECT id, name, created_at, updated_at FROM hubs ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hubs: %w", err)
	}
	defer rows.Close()

	var hubs []*entity.Hub
	for rows.Next() {
		hub, err := scanHub(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hub: %w", err)
		}
		hubs = append(hubs, hub)
	}
	return hubs, rows.Err()
}

// Create persiste un hub nuevo. Nombre duplicado produce ErrConflict.
func (r *HubRepo) Create(ctx context.Context, nh *entity.NewHub) (*entity.Hub, error) {
	query := `
		INSERT INTO hubs (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at`
	hub, err := scanHub(r.db.QueryRow(ctx, query, nh.Name.String()))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert hub: %w", err)
	}
	return hub, nil
}

// Delete elimina el hub y todo su contenido en una sola transacción: menús,
// asignaciones de roles y usuarios del hub. Si el hub no existe, nada de la
// cascada queda aplicado.
func (r *HubRepo) Delete(ctx context.Context, id types.HubID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM menus WHERE hub_id = $1`, id.Int32()); err != nil {
		return fmt.Errorf("delete hub menus: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id IN (SELECT id FROM users WHERE hub_id = $1)`,
		id.Int32()); err != nil {
		return fmt.Errorf("delete hub user roles: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE hub_id = $1`, id.Int32()); err != nil {
		return fmt.Errorf("delete hub users: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM hubs WHERE id = $1`, id.Int32())
	if err != nil {
		return fmt.Errorf("delete hub: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
