package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmaldonado/hub-admin-api/internal/application/dto"
	"github.com/jmaldonado/hub-admin-api/internal/application/usecase"
)

// AdminHandler expone las operaciones restringidas al rol admin.
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler administrativo.
func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// paramID lee el parámetro de ruta :id como int32.
func paramID(c *fiber.Ctx) (int32, bool) {
	v, err := c.ParamsInt("id")
	if err != nil {
		return 0, false
	}
	return int32(v), true
}

// CreateRole crea un rol global.
func (h *AdminHandler) CreateRole(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateRole(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteRole elimina un rol y sus asignaciones. El rol base está protegido.
func (h *AdminHandler) DeleteRole(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id inválido")
	}
	if err := h.uc.DeleteRole(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateHub crea un hub.
func (h *AdminHandler) CreateHub(c *fiber.Ctx) error {
	var in dto.CreateHubRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateHub(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteHub elimina un hub completo. El hub propio está protegido.
func (h *AdminHandler) DeleteHub(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id inválido")
	}
	if err := h.uc.DeleteHub(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateMenu crea un menú en el hub del principal.
func (h *AdminHandler) CreateMenu(c *fiber.Ctx) error {
	var in dto.CreateMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateMenu(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteMenu elimina un menú del hub del principal. Repetir la operación o
// apuntar a un menú inexistente no es un error.
func (h *AdminHandler) DeleteMenu(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id inválido")
	}
	if err := h.uc.DeleteMenu(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteUser elimina un usuario del hub del principal.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id inválido")
	}
	if err := h.uc.DeleteUser(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateUser reemplaza los roles del usuario y aplica la actualización
// parcial en una transacción. Un objetivo fuera del hub responde 204 sin
// efecto.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id inválido")
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.AssignRolesAndUpdateUser(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// UserEditor entrega el usuario objetivo (si existe) y el catálogo de roles
// para el formulario de edición. Sin user_id devuelve solo el catálogo.
func (h *AdminHandler) UserEditor(c *fiber.Ctx) error {
	var userID *int32
	if raw := c.QueryInt("user_id", 0); raw != 0 {
		v := int32(raw)
		userID = &v
	}
	out, err := h.uc.UserEditorData(c.UserContext(), GetPrincipal(c), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
