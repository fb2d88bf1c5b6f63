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

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	db DB
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(db DB) *RoleRepo {
	return &RoleRepo{db: db}
}

func scanRole(row pgx.Row) (*entity.Role, error) {
	var (
		id                   int32
		name                 string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &entity.Role{
		ID:        types.RoleID(id),
		Name:      types.RoleName(name),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// GetByID obtiene un rol por id. Devuelve (nil, nil) si no existe.
func (r *RoleRepo) GetByID(ctx context.Context, id types.RoleID) (*entity.Role, error) {
	query := `SELECT id, name, created_at, updated_at FROM roles WHERE id = $1`
	role, err := scanRole(r.db.QueryRow(ctx, query, id.Int32()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by id: %w", err)
	}
	return role, nil
}

// List devuelve todos los roles ordenados por id.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	query := `SELECT id, name, created_at, updated_at FROM roles ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []*entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Create persiste un rol nuevo. Nombre duplicado produce ErrConflict.
func (r *RoleRepo) Create(ctx context.Context, nr *entity.NewRole) (*entity.Role, error) {
	query := `
		INSERT INTO roles (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at`
	role, err := scanRole(r.db.QueryRow(ctx, query, nr.Name.String()))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return role, nil
}

// Delete elimina el rol y sus asignaciones en una transacción. Si el rol no
// existe, las asignaciones tampoco se tocan.
func (r *RoleRepo) Delete(ctx context.Context, id types.RoleID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE role_id = $1`, id.Int32()); err != nil {
		return fmt.Errorf("delete role assignments: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id.Int32())
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
