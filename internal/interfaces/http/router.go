package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmaldonado/hub-admin-api/internal/application/auth"
	"github.com/jmaldonado/hub-admin-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC  *auth.AuthUseCase
	AdminUC *usecase.AdminUseCase
	PanelUC *usecase.PanelUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth y hubs (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	api.Get("/hubs", authHandler.Hubs)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	protected.Post("/auth/refresh", authHandler.Refresh)

	// Panel (cualquier usuario autenticado)
	panelHandler := NewPanelHandler(deps.PanelUC)
	protected.Get("/index", panelHandler.Index)
	protected.Get("/me", panelHandler.Me)
	protected.Put("/me", panelHandler.UpdateMe)
	protected.Get("/users", panelHandler.ListUsers)
	protected.Get("/users/:id", panelHandler.GetUser)

	// Administración (el rol admin se verifica en el caso de uso)
	adminHandler := NewAdminHandler(deps.AdminUC)
	protected.Post("/roles", adminHandler.CreateRole)
	protected.Delete("/roles/:id", adminHandler.DeleteRole)
	protected.Post("/hubs", adminHandler.CreateHub)
	protected.Delete("/hubs/:id", adminHandler.DeleteHub)
	protected.Post("/menus", adminHandler.CreateMenu)
	protected.Delete("/menus/:id", adminHandler.DeleteMenu)
	protected.Delete("/users/:id", adminHandler.DeleteUser)
	protected.Put("/users/:id", adminHandler.UpdateUser)
	protected.Get("/users-editor", adminHandler.UserEditor)
}
