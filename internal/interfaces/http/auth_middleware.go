package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jmaldonado/hub-admin-api/internal/application/dto"
	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
)

// LocalPrincipal key del principal resuelto en c.Locals.
const LocalPrincipal = "principal"

// IdentityResolver valida un token de sesión y devuelve el principal vigente.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*entity.Principal, error)
}

// AuthMiddleware valida el Bearer Token y deja el principal resuelto en
// c.Locals. La resolución reconfirma al usuario contra la base de datos, así
// que un token de un usuario eliminado se rechaza aquí.
func AuthMiddleware(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		principal, err := resolver.ResolveIdentity(c.UserContext(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// GetPrincipal devuelve el principal del contexto (después del middleware de
// auth). Nil si la ruta no pasó por el middleware.
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*entity.Principal)
	return p
}
