// Package usecase contiene los casos de uso administrativos y de consulta del
// panel. Toda operación recibe el principal resuelto de forma explícita; la
// autorización se decide aquí, nunca en la capa HTTP.
package usecase

import (
	"context"
	"errors"

	"github.com/jmaldonado/hub-admin-api/internal/application/dto"
	"github.com/jmaldonado/hub-admin-api/internal/domain"
	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/repository"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// AdminUseCase operaciones restringidas al rol admin: altas y bajas de roles,
// hubs, menús y usuarios, y la edición combinada usuario+roles.
type AdminUseCase struct {
	users    repository.UserRepository
	hubs     repository.HubRepository
	roles    repository.RoleRepository
	menus    repository.MenuRepository
	txRunner repository.UserTxRunner
}

// NewAdminUseCase construye el caso de uso administrativo.
func NewAdminUseCase(
	users repository.UserRepository,
	hubs repository.HubRepository,
	roles repository.RoleRepository,
	menus repository.MenuRepository,
	txRunner repository.UserTxRunner,
) *AdminUseCase {
	return &AdminUseCase{users: users, hubs: hubs, roles: roles, menus: menus, txRunner: txRunner}
}

// ensureAdmin corta la operación si el principal no posee el rol admin.
func ensureAdmin(p *entity.Principal) error {
	if !p.HasRole(entity.AdminRoleName) {
		return domain.ErrUnauthorized
	}
	return nil
}

// CreateRole crea un rol global. Nombre duplicado produce ErrConflict.
func (uc *AdminUseCase) CreateRole(ctx context.Context, p *entity.Principal, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if err := ensureAdmin(p); err != nil {
		return nil, err
	}
	nr, err := entity.NewRoleFromInput(in.Name)
	if err != nil {
		return nil, err
	}
	role, err := uc.roles.Create(ctx, nr)
	if err != nil {
		return nil, err
	}
	out := dto.ToRoleResponse(role)
	return &out, nil
}

// CreateHub crea un hub. Nombre duplicado produce ErrConflict.
func (uc *AdminUseCase) CreateHub(ctx context.Context, p *entity.Principal, in dto.CreateHubRequest) (*dto.HubResponse, error) {
	if err := ensureAdmin(p); err != nil {
		return nil, err
	}
	nh, err := entity.NewHubFromInput(in.Name)
	if err != nil {
		return nil, err
	}
	hub, err := uc.hubs.Create(ctx, nh)
	if err != nil {
		return nil, err
	}
	out := dto.ToHubResponse(hub)
	return &out, nil
}

// CreateMenu crea un menú en el hub del principal: un admin solo administra
// los menús de su propio hub.
func (uc *AdminUseCase) CreateMenu(ctx context.Context, p *entity.Principal, in dto.CreateMenuRequest) (*dto.MenuResponse, error) {
	if err := ensureAdmin(p); err != nil {
		return nil, err
	}
	nm, err := entity.NewMenuFromInput(in.Name, in.URL, p.HubID)
	if err != nil {
		return nil, err
	}
	menu, err := uc.menus.Create(ctx, nm)
	if err != nil {
		return nil, err
	}
	out := dto.ToMenuResponse(menu)
	return &out, nil
}

// DeleteRole elimina un rol y sus asignaciones. El rol administrativo base
// (id 1) no puede eliminarse nunca.
func (uc *AdminUseCase) DeleteRole(ctx context.Context, p *entity.Principal, roleID int32) error {
	if err := ensureAdmin(p); err != nil {
		return err
	}
	id, err := types.NewRoleID(roleID)
	if err != nil {
		return err
	}
	if id == entity.BaseAdminRoleID {
		return domain.ErrUnauthorized
	}
	return uc.roles.Delete(ctx, id)
}

// DeleteHub elimina un hub completo en cascada. El principal no puede
// eliminar el hub al que pertenece.
func (uc *AdminUseCase) DeleteHub(ctx context.Context, p *entity.Principal, hubID int32) error {
	if err := ensureAdmin(p); err != nil {
		return err
	}
	id, err := types.NewHubID(hubID)
	if err != nil {
		return err
	}
	if id.Int32() == p.HubID {
		return domain.ErrUnauthorized
	}
	return uc.hubs.Delete(ctx, id)
}

// DeleteUser elimina un usuario del hub del principal. La autoeliminación
// está prohibida; un usuario de otro hub es invisible y produce ErrNotFound.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, p *entity.Principal, userID int32) error {
	if err := ensureAdmin(p); err != nil {
		return err
	}
	id, err := types.NewUserID(userID)
	if err != nil {
		return err
	}
	self, err := p.UserID()
	if err != nil {
		return err
	}
	if id == self {
		return domain.ErrUnauthorized
	}
	hubID, err := p.Hub()
	if err != nil {
		return err
	}
	target, err := uc.users.GetByID(ctx, id, hubID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}
	return uc.users.Delete(ctx, id)
}

// DeleteMenu elimina un menú del hub del principal. Un menú inexistente o de
// otro hub no es un error: la operación es idempotente.
func (uc *AdminUseCase) DeleteMenu(ctx context.Context, p *entity.Principal, menuID int32) error {
	if err := ensureAdmin(p); err != nil {
		return err
	}
	id, err := types.NewMenuID(menuID)
	if err != nil {
		return err
	}
	hubID, err := p.Hub()
	if err != nil {
		return err
	}
	menu, err := uc.menus.GetByID(ctx, id, hubID)
	if err != nil {
		return err
	}
	if menu == nil {
		return nil
	}
	if err := uc.menus.Delete(ctx, id); err != nil {
		// carrera con otra eliminación: el resultado deseado ya se cumplió
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// AssignRolesAndUpdateUser reemplaza el conjunto de roles del usuario y aplica
// la actualización parcial en una sola transacción. Un usuario inexistente o
// de otro hub deja la operación sin efecto y sin error. RoleIDs vacío limpia
// todos los roles del usuario.
func (uc *AdminUseCase) AssignRolesAndUpdateUser(ctx context.Context, p *entity.Principal, userID int32, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := ensureAdmin(p); err != nil {
		return nil, err
	}
	id, err := types.NewUserID(userID)
	if err != nil {
		return nil, err
	}
	hubID, err := p.Hub()
	if err != nil {
		return nil, err
	}
	upd, err := entity.UpdateUserFromInput(in.Name, in.Password)
	if err != nil {
		return nil, err
	}
	roleIDs := make([]types.RoleID, 0, len(in.RoleIDs))
	for _, raw := range in.RoleIDs {
		roleID, err := types.NewRoleID(raw)
		if err != nil {
			return nil, err
		}
		roleIDs = append(roleIDs, roleID)
	}

	var out *dto.UserResponse
	err = uc.txRunner.RunUserTx(ctx, func(users repository.UserRepository) error {
		target, err := users.GetByID(ctx, id, hubID)
		if err != nil {
			return err
		}
		if target == nil {
			return nil // fuera del hub o ya eliminado: sin efecto
		}
		if err := users.AssignRoles(ctx, id, roleIDs); err != nil {
			return err
		}
		if _, err := users.Update(ctx, id, hubID, upd); err != nil {
			return err
		}
		updated, err := users.GetByID(ctx, id, hubID)
		if err != nil {
			return err
		}
		resp := dto.ToUserResponse(updated)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UserEditorData arma los datos del editor de usuario del panel: el usuario
// objetivo con sus roles (nil si no existe en el hub) y el catálogo completo
// de roles para el formulario.
func (uc *AdminUseCase) UserEditorData(ctx context.Context, p *entity.Principal, userID *int32) (*dto.UserEditorResponse, error) {
	if err := ensureAdmin(p); err != nil {
		return nil, err
	}
	roles, err := uc.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.UserEditorResponse{Roles: make([]dto.RoleResponse, 0, len(roles))}
	for _, role := range roles {
		resp.Roles = append(resp.Roles, dto.ToRoleResponse(role))
	}
	if userID == nil {
		return resp, nil
	}
	id, err := types.NewUserID(*userID)
	if err != nil {
		return nil, err
	}
	hubID, err := p.Hub()
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, id, hubID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		u := dto.ToUserResponse(user)
		resp.User = &u
	}
	return resp, nil
}
