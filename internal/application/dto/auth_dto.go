package dto

// LoginRequest credenciales de inicio de sesión, siempre acotadas a un hub.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	HubID    int32  `json:"hub_id" validate:"required,min=1"`
}

// RegisterRequest entrada para registrar un usuario (password en claro, se
// hashea en el use case antes de llegar al repositorio).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	HubID    int32  `json:"hub_id" validate:"required,min=1"`
}

// SessionTokenResponse salida con el token de sesión firmado.
type SessionTokenResponse struct {
	Token string `json:"token"`
}

// LoginResponse token más la representación del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
