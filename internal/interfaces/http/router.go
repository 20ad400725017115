package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mardecortez-api/internal/application/auth"
	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	RegistrationUC *usecase.RegistrationUseCase
	CategoryUC     *usecase.CategoryUseCase
	ProductUC      *usecase.ProductUseCase
	OrderUC        *usecase.OrderUseCase
	QuotationUC    *usecase.QuotationUseCase
	NotificationUC *usecase.NotificationUseCase
	StatsUC        *usecase.StatsUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdmin)
	supplier := RequireRole(entity.RoleProveedor)
	client := RequireRole(entity.RoleCliente)
	supplierOrAdmin := RequireRole(entity.RoleProveedor, entity.RoleAdmin)

	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	registrationHandler := NewRegistrationHandler(deps.RegistrationUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	productHandler := NewProductHandler(deps.ProductUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	statsHandler := NewStatsHandler(deps.StatsUC)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Solicitudes de registro (alta pública)
	api.Post("/registration-requests", registrationHandler.Create)

	// Catálogo
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", authMW, supplierOrAdmin, categoryHandler.Create)
	categories.Delete("/:id", authMW, supplierOrAdmin, categoryHandler.Delete)

	products := api.Group("/products", authMW)
	products.Get("/", productHandler.List)
	products.Post("/price-preview", supplierOrAdmin, productHandler.PricePreview)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", supplier, productHandler.Create)
	products.Put("/:id", supplier, productHandler.Update)
	products.Delete("/:id", supplier, productHandler.Delete)

	api.Get("/suppliers", authMW, userHandler.Suppliers)

	// Órdenes
	orders := api.Group("/orders", authMW)
	orders.Get("/", orderHandler.List)
	orders.Post("/", client, orderHandler.Create)
	orders.Get("/available", supplier, orderHandler.Available)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id/take", supplier, orderHandler.Take)
	orders.Put("/:id/status", supplier, orderHandler.UpdateStatus)
	orders.Put("/:id/prices", supplier, orderHandler.UpdatePrices)
	orders.Get("/:id/pdf", orderHandler.PDF)
	orders.Post("/:id/quotation", supplier, quotationHandler.Upload)
	orders.Get("/:id/quotations", quotationHandler.List)

	api.Get("/quotations/:id/download", authMW, quotationHandler.Download)

	// Notificaciones
	notifications := api.Group("/notifications", authMW)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Administración
	adminGroup := api.Group("/admin", authMW, admin)
	adminGroup.Get("/stats", statsHandler.Get)

	adminGroup.Get("/users", userHandler.List)
	adminGroup.Post("/users", userHandler.Create)
	adminGroup.Put("/users/:id", userHandler.Update)
	adminGroup.Delete("/users/:id", userHandler.Delete)

	adminGroup.Get("/registration-requests", registrationHandler.List)
	adminGroup.Put("/registration-requests/:id/approve", registrationHandler.Approve)
	adminGroup.Put("/registration-requests/:id/reject", registrationHandler.Reject)

	adminGroup.Get("/categories", categoryHandler.List)
	adminGroup.Post("/categories", categoryHandler.Create)
	adminGroup.Put("/categories/:id", categoryHandler.Update)
	adminGroup.Delete("/categories/:id", categoryHandler.Delete)

	adminGroup.Get("/products", productHandler.List)
	adminGroup.Post("/products", productHandler.Create)
	adminGroup.Put("/products/:id", productHandler.Update)
	adminGroup.Delete("/products/:id", productHandler.Delete)

	adminGroup.Get("/orders", orderHandler.List)
	adminGroup.Get("/orders/export", orderHandler.Export)
	adminGroup.Put("/orders/:id/status", orderHandler.AdminUpdateStatus)
	adminGroup.Delete("/orders/:id", orderHandler.AdminDelete)
}
