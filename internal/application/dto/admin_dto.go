package dto

import "time"

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID        int32     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	HubID     int32     `json:"hub_id"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HubResponse salida de un hub.
type HubResponse struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuResponse salida de un menú.
type MenuResponse struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	HubID int32  `json:"hub_id"`
}

// CreateRoleRequest entrada para crear un rol.
type CreateRoleRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// CreateHubRequest entrada para crear un hub.
type CreateHubRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// CreateMenuRequest entrada para crear un menú en el hub del principal.
type CreateMenuRequest struct {
	Name string `json:"name" validate:"required,min=1"`
	URL  string `json:"url" validate:"required,url"`
}

// UpdateUserRequest actualización parcial de un usuario más el reemplazo
// completo de su conjunto de roles. La contraseña vacía significa "no cambiar";
// RoleIDs vacío limpia todos los roles.
type UpdateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=1"`
	Password string  `json:"password" validate:"omitempty"`
	RoleIDs  []int32 `json:"role_ids"`
}

// UpdateProfileRequest autoactualización del usuario autenticado.
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Password string `json:"password" validate:"omitempty"`
}

// IndexResponse datos agregados de la vista principal de un hub.
type IndexResponse struct {
	Hub      HubResponse    `json:"hub"`
	Users    []UserResponse `json:"users"`
	Roles    []RoleResponse `json:"roles"`
	Hubs     []HubResponse  `json:"hubs"`
	Menu     []MenuResponse `json:"menu"`
	UserName string         `json:"user_name,omitempty"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Total int            `json:"total"`
	Users []UserResponse `json:"users"`
}

// UserEditorResponse datos para el editor de usuario del panel admin: el
// usuario objetivo (si existe en el hub) y todos los roles disponibles.
type UserEditorResponse struct {
	User  *UserResponse  `json:"user"`
	Roles []RoleResponse `json:"roles"`
}
