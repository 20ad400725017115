package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/mardecortez-api/docs"
	"github.com/jhoicas/mardecortez-api/internal/application/auth"
	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
	"github.com/jhoicas/mardecortez-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/mardecortez-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mardecortez-api/internal/infrastructure/persistence"
	httpRouter "github.com/jhoicas/mardecortez-api/internal/interfaces/http"
	"github.com/jhoicas/mardecortez-api/pkg/config"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

// @title Mar de Cortez API
// @version 1.0
// @description Órdenes de compra entre embarcaciones (clientes) y proveedores.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
		log.Warn().Msg("JWT_SECRET vacío: usando secreto de desarrollo")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer repos.Close()

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
	}

	notificationUC := usecase.NewNotificationUseCase(repos.Notifications, log.Named("notifications"))
	orderUC := usecase.NewOrderUseCase(
		repos.Orders, repos.Products, repos.Users, notificationUC,
		infrapdf.NewMarotoOrderPDF(), excel.NewOrderExporter(), log.Named("orders"),
	)
	quotationUC := usecase.NewQuotationUseCase(
		repos.Quotations, repos.Orders, notificationUC, cfg.Upload.MaxBytes(), log.Named("quotations"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Upload.MaxBytes()) + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: "Content-Disposition, " + httpRouter.HeaderRequestID,
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mar de Cortez API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(repos.Users),
		RegistrationUC: usecase.NewRegistrationUseCase(repos.Users, repos.RegistrationRequests, repos.Tx, log.Named("registration")),
		CategoryUC:     usecase.NewCategoryUseCase(repos.Categories, repos.Products),
		ProductUC:      usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Users),
		OrderUC:        orderUC,
		QuotationUC:    quotationUC,
		NotificationUC: notificationUC,
		StatsUC:        usecase.NewStatsUseCase(repos.Users, repos.Orders, repos.Products, repos.RegistrationRequests),
		JWTSecret:      cfg.JWT.Secret,
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
