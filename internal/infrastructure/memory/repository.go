// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Es el doble de pruebas de los repositorios PostgreSQL: mismo
// contrato, sin motor SQL (un mutex compartido hace atómicas las
// operaciones multi-paso).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jmaldonado/hub-admin-api/internal/domain"
	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/repository"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
	"github.com/jmaldonado/hub-admin-api/pkg/password"
)

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.HubRepository  = (*HubRepository)(nil)
	_ repository.RoleRepository = (*RoleRepository)(nil)
	_ repository.MenuRepository = (*MenuRepository)(nil)
	_ repository.UserTxRunner   = (*Store)(nil)
)

// state es el almacén compartido por todos los repositorios del Store.
type state struct {
	mu     sync.Mutex
	hasher *password.Hasher

	hubs      map[int32]entity.Hub
	users     map[int32]entity.User
	roles     map[int32]entity.Role
	menus     map[int32]entity.Menu
	userRoles map[int32]map[int32]bool // user_id -> set de role_id

	nextHub  int32
	nextUser int32
	nextRole int32
	nextMenu int32
}

// Store agrupa los repositorios en memoria sobre un estado común.
type Store struct {
	st    *state
	Users *UserRepository
	Hubs  *HubRepository
	Roles *RoleRepository
	Menus *MenuRepository
}

// NewStore construye un almacén vacío.
func NewStore(hasher *password.Hasher) *Store {
	st := &state{
		hasher:    hasher,
		hubs:      make(map[int32]entity.Hub),
		users:     make(map[int32]entity.User),
		roles:     make(map[int32]entity.Role),
		menus:     make(map[int32]entity.Menu),
		userRoles: make(map[int32]map[int32]bool),
	}
	return &Store{
		st:    st,
		Users: &UserRepository{st: st},
		Hubs:  &HubRepository{st: st},
		Roles: &RoleRepository{st: st},
		Menus: &MenuRepository{st: st},
	}
}

// RunUserTx ejecuta el callback sobre el mismo repositorio de usuarios. En
// memoria no hay rollback; la atomicidad frente a otros llamadores la da el
// mutex de cada operación.
func (s *Store) RunUserTx(ctx context.Context, fn func(users repository.UserRepository) error) error {
	return fn(s.Users)
}

func (st *state) rolesOf(userID int32) []entity.Role {
	var roles []entity.Role
	for roleID := range st.userRoles[userID] {
		if role, ok := st.roles[roleID]; ok {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles
}

func (st *state) userWithRoles(u entity.User) *entity.UserWithRoles {
	return &entity.UserWithRoles{User: u, Roles: st.rolesOf(u.ID.Int32())}
}

// ─────────────────────────────────────────────────────────────────────────────
// Usuarios
// ─────────────────────────────────────────────────────────────────────────────

// UserRepository implementa repository.UserRepository en memoria.
type UserRepository struct {
	st *state
}

// GetByID busca un usuario por id dentro de un hub.
func (r *UserRepository) GetByID(ctx context.Context, id types.UserID, hubID types.HubID) (*entity.UserWithRoles, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	u, ok := r.st.users[id.Int32()]
	if !ok || u.HubID != hubID {
		return nil, nil
	}
	return r.st.userWithRoles(u), nil
}

// GetByEmail busca un usuario por email normalizado dentro de un hub.
func (r *UserRepository) GetByEmail(ctx context.Context, email types.Email, hubID types.HubID) (*entity.UserWithRoles, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for _, u := range r.st.users {
		if u.Email == email && u.HubID == hubID {
			return r.st.userWithRoles(u), nil
		}
	}
	return nil, nil
}

// List devuelve el total y una página de usuarios del hub con filtros
// opcionales por rol y texto libre.
func (r *UserRepository) List(ctx context.Context, q repository.UserListQuery) (int, []*entity.UserWithRoles, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var matched []*entity.UserWithRoles
	for _, u := range r.st.users {
		if u.HubID != q.HubID {
			continue
		}
		uwr := r.st.userWithRoles(u)
		if q.Role != "" {
			hasRole := false
			for _, name := range uwr.RoleNames() {
				if name == q.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				continue
			}
		}
		if q.Search != "" {
			term := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(u.Email.String()), term) &&
				!strings.Contains(strings.ToLower(u.DisplayName()), term) {
				continue
			}
		}
		matched = append(matched, uwr)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].User.ID < matched[j].User.ID })

	total := len(matched)
	if q.Page > 0 && q.PerPage > 0 {
		start := (q.Page - 1) * q.PerPage
		if start > total {
			start = total
		}
		end := start + q.PerPage
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return total, matched, nil
}

// GetRoles devuelve los roles asignados a un usuario.
func (r *UserRepository) GetRoles(ctx context.Context, id types.UserID) ([]*entity.Role, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	roles := r.st.rolesOf(id.Int32())
	out := make([]*entity.Role, 0, len(roles))
	for i := range roles {
		role := roles[i]
		out = append(out, &role)
	}
	return out, nil
}

// Create registra un usuario nuevo hasheando su contraseña.
func (r *UserRepository) Create(ctx context.Context, nu *entity.NewUser) (*entity.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for _, u := range r.st.users {
		if u.Email == nu.Email && u.HubID == nu.HubID {
			return nil, domain.ErrConflict
		}
	}
	hash, err := r.st.hasher.Hash(nu.Password)
	if err != nil {
		return nil, err
	}
	r.st.nextUser++
	id, _ := types.NewUserID(r.st.nextUser)
	now := time.Now()
	u := entity.User{
		ID:           id,
		Email:        nu.Email,
		Name:         nu.Name,
		HubID:        nu.HubID,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.st.users[u.ID.Int32()] = u
	r.st.userRoles[u.ID.Int32()] = make(map[int32]bool)
	out := u
	return &out, nil
}

// Update aplica la actualización parcial a un usuario del hub.
func (r *UserRepository) Update(ctx context.Context, id types.UserID, hubID types.HubID, upd *entity.UpdateUser) (*entity.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	u, ok := r.st.users[id.Int32()]
	if !ok || u.HubID != hubID {
		return nil, domain.ErrNotFound
	}
	name := upd.Name
	u.Name = &name
	if upd.Password != nil {
		hash, err := r.st.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now()
	r.st.users[id.Int32()] = u
	out := u
	return &out, nil
}

// AssignRoles reemplaza el conjunto completo de roles del usuario. Una lista
// vacía deja al usuario sin roles.
func (r *UserRepository) AssignRoles(ctx context.Context, id types.UserID, roleIDs []types.RoleID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	set := make(map[int32]bool, len(roleIDs))
	for _, roleID := range roleIDs {
		set[roleID.Int32()] = true
	}
	r.st.userRoles[id.Int32()] = set
	return nil
}

// Delete elimina al usuario y sus asignaciones de roles.
func (r *UserRepository) Delete(ctx context.Context, id types.UserID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.users[id.Int32()]; !ok {
		return domain.ErrNotFound
	}
	delete(r.st.userRoles, id.Int32())
	delete(r.st.users, id.Int32())
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Hubs
// ─────────────────────────────────────────────────────────────────────────────

// HubRepository implementa repository.HubRepository en memoria.
type HubRepository struct {
	st *state
}

// GetByID devuelve el hub o (nil, nil) si no existe.
func (r *HubRepository) GetByID(ctx context.Context, id types.HubID) (*entity.Hub, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	h, ok := r.st.hubs[id.Int32()]
	if !ok {
		return nil, nil
	}
	out := h
	return &out, nil
}

// GetByName busca un hub por nombre exacto.
func (r *HubRepository) GetByName(ctx context.Context, name types.HubName) (*entity.Hub, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for _, h := range r.st.hubs {
		if h.Name == name {
			out := h
			return &out, nil
		}
	}
	return nil, nil
}

// List devuelve todos los hubs ordenados por id.
func (r *HubRepository) List(ctx context.Context) ([]*entity.Hub, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	out := make([]*entity.Hub, 0, len(r.st.hubs))
	for _, h := range r.st.hubs {
		hub := h
		out = append(out, &hub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create registra un hub nuevo. Nombre duplicado produce ErrConflict.
func (r *HubRepository) Create(ctx context.Context, nh *entity.NewHub) (*entity.Hub, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for _, h := range r.st.hubs {
		if h.Name == nh.Name {
			return nil, domain.ErrConflict
		}
	}
	r.st.nextHub++
	id, _ := types.NewHubID(r.st.nextHub)
	now := time.Now()
	h := entity.Hub{ID: id, Name: nh.Name, CreatedAt: now, UpdatedAt: now}
	r.st.hubs[h.ID.Int32()] = h
	out := h
	return &out, nil
}

// Delete elimina el hub en cascada: menús, asignaciones de roles y usuarios
// del hub desaparecen con él.
func (r *HubRepository) Delete(ctx context.Context, id types.HubID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.hubs[id.Int32()]; !ok {
		return domain.ErrNotFound
	}
	for menuID, m := range r.st.menus {
		if m.HubID == id {
			delete(r.st.menus, menuID)
		}
	}
	for userID, u := range r.st.users {
		if u.HubID == id {
			delete(r.st.userRoles, userID)
			delete(r.st.users, userID)
		}
	}
	delete(r.st.hubs, id.Int32())
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Roles
// ─────────────────────────────────────────────────────────────────────────────

// RoleRepository implementa repository.RoleRepository en memoria.
type RoleRepository struct {
	st *state
}

// GetByID devuelve el rol o (nil, nil) si no existe.
func (r *RoleRepository) GetByID(ctx context.Context, id types.RoleID) (*entity.Role, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	role, ok := r.st.roles[id.Int32()]
	if !ok {
		return nil, nil
	}
	out := role
	return &out, nil
}

// List devuelve todos los roles ordenados por id.
func (r *RoleRepository) List(ctx context.Context) ([]*entity.Role, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	out := make([]*entity.Role, 0, len(r.st.roles))
	for _, role := range r.st.roles {
		rc := role
		out = append(out, &rc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create registra un rol nuevo. Nombre duplicado produce ErrConflict.
func (r *RoleRepository) Create(ctx context.Context, nr *entity.NewRole) (*entity.Role, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for _, role := range r.st.roles {
		if role.Name == nr.Name {
			return nil, domain.ErrConflict
		}
	}
	r.st.nextRole++
	id, _ := types.NewRoleID(r.st.nextRole)
	now := time.Now()
	role := entity.Role{ID: id, Name: nr.Name, CreatedAt: now, UpdatedAt: now}
	r.st.roles[role.ID.Int32()] = role
	out := role
	return &out, nil
}

// Delete elimina el rol y lo retira de todos los usuarios que lo tenían.
func (r *RoleRepository) Delete(ctx context.Context, id types.RoleID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.roles[id.Int32()]; !ok {
		return domain.ErrNotFound
	}
	for _, set := range r.st.userRoles {
		delete(set, id.Int32())
	}
	delete(r.st.roles, id.Int32())
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Menús
// ─────────────────────────────────────────────────────────────────────────────

// MenuRepository implementa repository.MenuRepository en memoria.
type MenuRepository struct {
	st *state
}

// GetByID busca un menú por id dentro de un hub. (nil, nil) si no existe.
func (r *MenuRepository) GetByID(ctx context.Context, id types.MenuID, hubID types.HubID) (*entity.Menu, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	m, ok := r.st.menus[id.Int32()]
	if !ok || m.HubID != hubID {
		return nil, nil
	}
	out := m
	return &out, nil
}

// List devuelve los menús del hub ordenados por id.
func (r *MenuRepository) List(ctx context.Context, hubID types.HubID) ([]*entity.Menu, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var out []*entity.Menu
	for _, m := range r.st.menus {
		if m.HubID == hubID {
			mc := m
			out = append(out, &mc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create registra un menú nuevo en su hub.
func (r *MenuRepository) Create(ctx context.Context, nm *entity.NewMenu) (*entity.Menu, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	r.st.nextMenu++
	id, _ := types.NewMenuID(r.st.nextMenu)
	m := entity.Menu{ID: id, Name: nm.Name, URL: nm.URL, HubID: nm.HubID}
	r.st.menus[m.ID.Int32()] = m
	out := m
	return &out, nil
}

// Delete elimina un menú. Ausente produce ErrNotFound; el llamador decide si
// eso es un error o un no-op.
func (r *MenuRepository) Delete(ctx context.Context, id types.MenuID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.menus[id.Int32()]; !ok {
		return domain.ErrNotFound
	}
	delete(r.st.menus, id.Int32())
	return nil
}
