package dto

import "github.com/jmaldonado/hub-admin-api/internal/domain/entity"

// ToUserResponse convierte un usuario con roles a su DTO de salida.
func ToUserResponse(u *entity.UserWithRoles) UserResponse {
	return UserResponse{
		ID:        u.User.ID.Int32(),
		Email:     u.User.Email.String(),
		Name:      u.User.DisplayName(),
		HubID:     u.User.HubID.Int32(),
		Roles:     u.RoleNames(),
		CreatedAt: u.User.CreatedAt,
		UpdatedAt: u.User.UpdatedAt,
	}
}

// ToHubResponse convierte un hub a su DTO de salida.
func ToHubResponse(h *entity.Hub) HubResponse {
	return HubResponse{
		ID:        h.ID.Int32(),
		Name:      h.Name.String(),
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// ToRoleResponse convierte un rol a su DTO de salida.
func ToRoleResponse(r *entity.Role) RoleResponse {
	return RoleResponse{
		ID:        r.ID.Int32(),
		Name:      r.Name.String(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToMenuResponse convierte un menú a su DTO de salida.
func ToMenuResponse(m *entity.Menu) MenuResponse {
	return MenuResponse{
		ID:    m.ID.Int32(),
		Name:  m.Name.String(),
		URL:   m.URL.String(),
		HubID: m.HubID.Int32(),
	}
}
