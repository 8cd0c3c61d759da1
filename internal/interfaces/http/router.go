package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/catalog"
	"github.com/jhoicas/taller-api/internal/application/directory"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *catalog.UseCase
	LedgerUC    *inventory.LedgerUseCase
	ExportUC    *inventory.ExportUseCase
	DraftUC     *serviceorder.DraftUseCase
	OrderQuery  *serviceorder.QueryUseCase
	OrderPDF    *serviceorder.PDFUseCase
	DirectoryUC *directory.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Repuestos
	partHandler := NewPartHandler(deps.CatalogUC, deps.LedgerUC)
	parts := protected.Group("/parts")
	parts.Get("/", partHandler.List)
	parts.Post("/supply", partHandler.Supply)
	parts.Get("/:id", partHandler.GetByID)
	parts.Get("/:id/availability", partHandler.Availability)
	parts.Get("/:id/movements", partHandler.Movements)

	// Libro de stock
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ExportUC)
	inv := protected.Group("/inventory")
	inv.Post("/movements", adminOnly, inventoryHandler.RegisterMovement)
	inv.Get("/summary", inventoryHandler.Summary)
	inv.Get("/summary.xlsx", inventoryHandler.SummaryXLSX)
	inv.Get("/reconcile", inventoryHandler.Reconcile)

	// Órdenes de servicio; los borradores se registran antes que /:id
	orderHandler := NewOrderHandler(deps.DraftUC, deps.OrderQuery, deps.OrderPDF)
	orders := protected.Group("/orders")
	orders.Post("/drafts", orderHandler.CreateDraft)
	orders.Get("/drafts/:id", orderHandler.GetDraft)
	orders.Delete("/drafts/:id", orderHandler.DiscardDraft)
	orders.Post("/drafts/:id/items", orderHandler.AddItem)
	orders.Delete("/drafts/:id/items/:index", orderHandler.RemoveItem)
	orders.Put("/drafts/:id/labor", orderHandler.SetLabor)
	orders.Post("/drafts/:id/commit", orderHandler.Commit)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/pdf", orderHandler.DownloadPDF)
	orders.Get("/:id/movements", inventoryHandler.OrderMovements)

	// Directorio
	dirHandler := NewDirectoryHandler(deps.DirectoryUC)
	clients := protected.Group("/clients")
	clients.Get("/", dirHandler.ListClients)
	clients.Post("/", dirHandler.CreateClient)
	clients.Get("/phone", dirHandler.FindPhone)
	clients.Get("/:id", dirHandler.GetClient)
	clients.Get("/:id/vehicles", dirHandler.ListVehicles)

	vehicles := protected.Group("/vehicles")
	vehicles.Post("/", dirHandler.CreateVehicle)
	vehicles.Put("/:id/owner", dirHandler.ReassignVehicle)
}
