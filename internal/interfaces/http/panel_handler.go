package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmaldonado/hub-admin-api/internal/application/dto"
	"github.com/jmaldonado/hub-admin-api/internal/application/usecase"
)

// PanelHandler expone las consultas y la autogestión de cualquier usuario
// autenticado.
type PanelHandler struct {
	uc *usecase.PanelUseCase
}

// NewPanelHandler construye el handler del panel.
func NewPanelHandler(uc *usecase.PanelUseCase) *PanelHandler {
	return &PanelHandler{uc: uc}
}

// Index entrega la vista agregada del hub del principal.
func (h *PanelHandler) Index(c *fiber.Ctx) error {
	out, err := h.uc.IndexData(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListUsers lista los usuarios del hub con filtros y paginación.
func (h *PanelHandler) ListUsers(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Page:    c.QueryInt("page", 0),
		PerPage: c.QueryInt("per_page", 0),
	}
	out, err := h.uc.ListUsers(c.UserContext(), GetPrincipal(c), c.Query("role"), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetUser devuelve un usuario del hub por id.
func (h *PanelHandler) GetUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id inválido")
	}
	out, err := h.uc.GetUser(c.UserContext(), GetPrincipal(c), &id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me devuelve el perfil del principal.
func (h *PanelHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(c.UserContext(), GetPrincipal(c), nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateMe actualiza nombre y, opcionalmente, contraseña del principal.
func (h *PanelHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateCurrentUser(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
