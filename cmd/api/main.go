package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jmaldonado/hub-admin-api/internal/application/auth"
	"github.com/jmaldonado/hub-admin-api/internal/application/usecase"
	"github.com/jmaldonado/hub-admin-api/internal/infrastructure/postgres"
	httpRouter "github.com/jmaldonado/hub-admin-api/internal/interfaces/http"
	"github.com/jmaldonado/hub-admin-api/pkg/config"
	"github.com/jmaldonado/hub-admin-api/pkg/logger"
	"github.com/jmaldonado/hub-admin-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	userRepo := postgres.NewUserRepository(pool, hasher)
	hubRepo := postgres.NewHubRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	txRunner := postgres.NewTxRunner(pool, hasher)

	authUC := auth.NewAuthUseCase(userRepo, hubRepo, hasher, auth.JWTConfig{
		Secret:      cfg.JWT.Secret,
		SessionDays: cfg.JWT.SessionDays,
		Issuer:      cfg.JWT.Issuer,
	})
	adminUC := usecase.NewAdminUseCase(userRepo, hubRepo, roleRepo, menuRepo, txRunner)
	panelUC := usecase.NewPanelUseCase(userRepo, hubRepo, roleRepo, menuRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hub Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:  authUC,
		AdminUC: adminUC,
		PanelUC: panelUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
