package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmaldonado/hub-admin-api/internal/application/auth"
	"github.com/jmaldonado/hub-admin-api/internal/application/dto"
)

// AuthHandler maneja login, registro, reemisión de sesión y el listado
// público de hubs.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register crea un usuario en un hub existente.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" || in.HubID == 0 {
		return badRequest(c, "email, password y hub_id son requeridos")
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login verifica credenciales dentro de un hub y emite el token de sesión.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" || in.HubID == 0 {
		return badRequest(c, "email, password y hub_id son requeridos")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Refresh emite un token fresco para la sesión autenticada.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.uc.ReissueSession(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Hubs lista los hubs disponibles para la pantalla de login.
func (h *AuthHandler) Hubs(c *fiber.Ctx) error {
	out, err := h.uc.ListHubs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
