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
	"github.com/jmaldonado/hub-admin-api/pkg/password"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL. Las
// contraseñas entran en claro y salen siempre como hash bcrypt.
type UserRepo struct {
	db     DB
	hasher *password.Hasher
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db DB, hasher *password.Hasher) *UserRepo {
	return &UserRepo{db: db, hasher: hasher}
}

const userColumns = `id, email, name, hub_id, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id, hubID            int32
		email, hash          string
		name                 *string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &email, &name, &hubID, &hash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           types.UserID(id),
		Email:        types.Email(email),
		HubID:        types.HubID(hubID),
		PasswordHash: hash,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
	if name != nil {
		n := types.UserName(*name)
		u.Name = &n
	}
	return u, nil
}

// loadRoles carga los roles de un conjunto de usuarios en una sola consulta.
func (r *UserRepo) loadRoles(ctx context.Context, userIDs []int32) (map[int32][]entity.Role, error) {
	if len(userIDs) == 0 {
		return map[int32][]entity.Role{}, nil
	}
	query := `
		SELECT ur.user_id, r.id, r.name, r.created_at, r.updated_at
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = ANY($1)
		ORDER BY r.id`
	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load user roles: %w", err)
	}
	defer rows.Close()

	out := make(map[int32][]entity.Role)
	for rows.Next() {
		var (
			userID, roleID       int32
			name                 string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&userID, &roleID, &name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		out[userID] = append(out[userID], entity.Role{
			ID:        types.RoleID(roleID),
			Name:      types.RoleName(name),
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}
	return out, rows.Err()
}

func (r *UserRepo) withRoles(ctx context.Context, u *entity.User) (*entity.UserWithRoles, error) {
	roles, err := r.loadRoles(ctx, []int32{u.ID.Int32()})
	if err != nil {
		return nil, err
	}
	return &entity.UserWithRoles{User: *u, Roles: roles[u.ID.Int32()]}, nil
}

// GetByID busca un usuario por id dentro de un hub, con sus roles.
// Devuelve (nil, nil) si no existe o pertenece a otro hub.
func (r *UserRepo) GetByID(ctx context.Context, id types.UserID, hubID types.HubID) (*entity.UserWithRoles, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND hub_id = $2`
	u, err := scanUser(r.db.QueryRow(ctx, query, id.Int32(), hubID.Int32()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return r.withRoles(ctx, u)
}

// GetByEmail busca un usuario por email normalizado dentro de un hub, con sus
// roles. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email types.Email, hubID types.HubID) (*entity.UserWithRoles, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND hub_id = $2`
	u, err := scanUser(r.db.QueryRow(ctx, query, email.String(), hubID.Int32()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return r.withRoles(ctx, u)
}

// List devuelve el total sin paginar y la página de usuarios del hub,
// aplicando los filtros opcionales por rol y texto libre.
func (r *UserRepo) List(ctx context.Context, q repository.UserListQuery) (int, []*entity.UserWithRoles, error) {
	where := `WHERE u.hub_id = $1`
	args := []any{q.HubID.Int32()}
	if q.Role != "" {
		args = append(args, q.Role)
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM user_roles ur JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = u.id AND r.name = $%d)`, len(args))
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where += fmt.Sprintf(` AND (u.email ILIKE $%d OR u.name ILIKE $%d)`, len(args), len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users u `+where, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users u ` + where + ` ORDER BY u.id`
	if q.Page > 0 && q.PerPage > 0 {
		args = append(args, q.PerPage, (q.Page-1)*q.PerPage)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	ids := make([]int32, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return 0, nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
		ids = append(ids, u.ID.Int32())
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	roles, err := r.loadRoles(ctx, ids)
	if err != nil {
		return 0, nil, err
	}
	out := make([]*entity.UserWithRoles, 0, len(users))
	for _, u := range users {
		out = append(out, &entity.UserWithRoles{User: *u, Roles: roles[u.ID.Int32()]})
	}
	return total, out, nil
}

// GetRoles devuelve los roles asignados a un usuario.
func (r *UserRepo) GetRoles(ctx context.Context, id types.UserID) ([]*entity.Role, error) {
	roles, err := r.loadRoles(ctx, []int32{id.Int32()})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Role, 0, len(roles[id.Int32()]))
	for i := range roles[id.Int32()] {
		role := roles[id.Int32()][i]
		out = append(out, &role)
	}
	return out, nil
}

// Create persiste un usuario nuevo hasheando su contraseña. Email repetido en
// el hub produce ErrConflict.
func (r *UserRepo) Create(ctx context.Context, nu *entity.NewUser) (*entity.User, error) {
	hash, err := r.hasher.Hash(nu.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	var name *string
	if nu.Name != nil {
		n := nu.Name.String()
		name = &n
	}
	query := `
		INSERT INTO users (email, name, hub_id, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, query, nu.Email.String(), name, nu.HubID.Int32(), hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Update aplica la actualización parcial al usuario del hub. Re-hashea la
// contraseña solo si viene una nueva. ErrNotFound si ya no existe.
func (r *UserRepo) Update(ctx context.Context, id types.UserID, hubID types.HubID, upd *entity.UpdateUser) (*entity.User, error) {
	var (
		query string
		args  []any
	)
	if upd.Password != nil {
		hash, err := r.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		query = `
			UPDATE users SET name = $1, password_hash = $2, updated_at = now()
			WHERE id = $3 AND hub_id = $4
			RETURNING ` + userColumns
		args = []any{upd.Name.String(), hash, id.Int32(), hubID.Int32()}
	} else {
		query = `
			UPDATE users SET name = $1, updated_at = now()
			WHERE id = $2 AND hub_id = $3
			RETURNING ` + userColumns
		args = []any{upd.Name.String(), id.Int32(), hubID.Int32()}
	}
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// AssignRoles reemplaza el conjunto completo de roles del usuario en una
// transacción: delete más insert. La lista vacía limpia todos los roles.
func (r *UserRepo) AssignRoles(ctx context.Context, id types.UserID, roleIDs []types.RoleID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id.Int32()); err != nil {
		return fmt.Errorf("clear user roles: %w", err)
	}
	for _, roleID := range roleIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`,
			id.Int32(), roleID.Int32()); err != nil {
			return fmt.Errorf("assign role %d: %w", roleID.Int32(), err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Delete elimina al usuario y sus filas user_roles en una transacción.
// ErrNotFound si el usuario no existía; en ese caso nada queda aplicado.
func (r *UserRepo) Delete(ctx context.Context, id types.UserID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id.Int32()); err != nil {
		return fmt.Errorf("delete user roles: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id.Int32())
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
