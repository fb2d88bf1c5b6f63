package usecase

import (
	"context"

	"github.com/jmaldonado/hub-admin-api/internal/application/dto"
	"github.com/jmaldonado/hub-admin-api/internal/domain"
	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/repository"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// PanelUseCase consultas y autogestión de cualquier usuario autenticado:
// la vista agregada del hub, el listado paginado y el perfil propio.
type PanelUseCase struct {
	users repository.UserRepository
	hubs  repository.HubReader
	roles repository.RoleReader
	menus repository.MenuReader
}

// NewPanelUseCase construye el caso de uso del panel.
func NewPanelUseCase(
	users repository.UserRepository,
	hubs repository.HubReader,
	roles repository.RoleReader,
	menus repository.MenuReader,
) *PanelUseCase {
	return &PanelUseCase{users: users, hubs: hubs, roles: roles, menus: menus}
}

// IndexData arma la vista principal del hub del principal: hub, usuarios,
// catálogo de roles, hubs disponibles y el menú propio del hub.
func (uc *PanelUseCase) IndexData(ctx context.Context, p *entity.Principal) (*dto.IndexResponse, error) {
	hubID, err := p.Hub()
	if err != nil {
		return nil, err
	}
	hub, err := uc.hubs.GetByID(ctx, hubID)
	if err != nil {
		return nil, err
	}
	if hub == nil {
		// el hub del token ya no existe
		return nil, domain.ErrUnauthorized
	}
	_, users, err := uc.users.List(ctx, repository.UserListQuery{HubID: hubID})
	if err != nil {
		return nil, err
	}
	roles, err := uc.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	hubs, err := uc.hubs.List(ctx)
	if err != nil {
		return nil, err
	}
	menus, err := uc.menus.List(ctx, hubID)
	if err != nil {
		return nil, err
	}

	resp := &dto.IndexResponse{
		Hub:      dto.ToHubResponse(hub),
		Users:    make([]dto.UserResponse, 0, len(users)),
		Roles:    make([]dto.RoleResponse, 0, len(roles)),
		Hubs:     make([]dto.HubResponse, 0, len(hubs)),
		Menu:     make([]dto.MenuResponse, 0, len(menus)),
		UserName: p.Name,
	}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.ToUserResponse(u))
	}
	for _, r := range roles {
		resp.Roles = append(resp.Roles, dto.ToRoleResponse(r))
	}
	for _, h := range hubs {
		resp.Hubs = append(resp.Hubs, dto.ToHubResponse(h))
	}
	for _, m := range menus {
		resp.Menu = append(resp.Menu, dto.ToMenuResponse(m))
	}
	return resp, nil
}

// ListUsers lista los usuarios del hub del principal con filtros opcionales
// por rol y texto libre, paginados.
func (uc *PanelUseCase) ListUsers(ctx context.Context, p *entity.Principal, role, search string, page dto.PageRequest) (*dto.UserListResponse, error) {
	hubID, err := p.Hub()
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	total, users, err := uc.users.List(ctx, repository.UserListQuery{
		HubID:   hubID,
		Role:    role,
		Search:  search,
		Page:    page.Page,
		PerPage: page.PerPage,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.UserListResponse{Total: total, Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.ToUserResponse(u))
	}
	return resp, nil
}

// GetUser devuelve un usuario del hub del principal. Con userID nil devuelve
// el perfil propio. Un id de otro hub es invisible: ErrNotFound.
func (uc *PanelUseCase) GetUser(ctx context.Context, p *entity.Principal, userID *int32) (*dto.UserResponse, error) {
	hubID, err := p.Hub()
	if err != nil {
		return nil, err
	}
	var id types.UserID
	if userID == nil {
		id, err = p.UserID()
	} else {
		id, err = types.NewUserID(*userID)
	}
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, id, hubID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateCurrentUser actualiza nombre y, opcionalmente, contraseña del propio
// principal. Email y hub son inmutables.
func (uc *PanelUseCase) UpdateCurrentUser(ctx context.Context, p *entity.Principal, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	id, err := p.UserID()
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
	if _, err := uc.users.Update(ctx, id, hubID, upd); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, id, hubID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}
