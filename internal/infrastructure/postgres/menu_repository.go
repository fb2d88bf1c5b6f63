package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmaldonado/hub-admin-api/internal/domain"
	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/repository"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implementación del puerto MenuRepository sobre PostgreSQL.
type MenuRepo struct {
	db DB
}

// NewMenuRepository construye el adaptador de persistencia para menús.
func NewMenuRepository(db DB) *MenuRepo {
	return &MenuRepo{db: db}
}

func scanMenu(row pgx.Row) (*entity.Menu, error) {
	var (
		id, hubID int32
		name, url string
	)
	if err := row.Scan(&id, &name, &url, &hubID); err != nil {
		return nil, err
	}
	return &entity.Menu{
		ID:    types.MenuID(id),
		Name:  types.MenuName(name),
		URL:   types.MenuURL(url),
		HubID: types.HubID(hubID),
	}, nil
}

// GetByID busca un menú por id dentro de un hub. Devuelve (nil, nil) si no
// existe o pertenece a otro hub.
func (r *MenuRepo) GetByID(ctx context.Context, id types.MenuID, hubID types.HubID) (*entity.Menu, error) {
	query := `SELECT id, name, url, hub_id FROM menus WHERE id = $1 AND hub_id = $2`
	menu, err := scanMenu(r.db.QueryRow(ctx, query, id.Int32(), hubID.Int32()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu by id: %w", err)
	}
	return menu, nil
}

// List devuelve los menús del hub ordenados por id.
func (r *MenuRepo) List(ctx context.Context, hubID types.HubID) ([]*entity.Menu, error) {
	query := `SELECT id, name, url, hub_id FROM menus WHERE hub_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, hubID.Int32())
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	var menus []*entity.Menu
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		menus = append(menus, menu)
	}
	return menus, rows.Err()
}

// Create persiste un menú nuevo en su hub.
func (r *MenuRepo) Create(ctx context.Context, nm *entity.NewMenu) (*entity.Menu, error) {
	query := `
		INSERT INTO menus (name, url, hub_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, url, hub_id`
	menu, err := scanMenu(r.db.QueryRow(ctx, query, nm.Name.String(), nm.URL.String(), nm.HubID.Int32()))
	if err != nil {
		return nil, fmt.Errorf("insert menu: %w", err)
	}
	return menu, nil
}

// Delete elimina un menú. ErrNotFound si no existía.
func (r *MenuRepo) Delete(ctx context.Context, id types.MenuID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id.Int32())
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
