package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercial-api/internal/application/accounts"
	"github.com/jhoicas/comercial-api/internal/application/catalog"
	"github.com/jhoicas/comercial-api/internal/application/documents"
	"github.com/jhoicas/comercial-api/internal/application/fiscal"
	"github.com/jhoicas/comercial-api/internal/application/inventory"
	"github.com/jhoicas/comercial-api/internal/application/payments"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Documents   *documents.Service
	Accounts    *accounts.Engine
	Payments    *payments.Processor
	Catalog     *catalog.UseCase
	Ledger      *inventory.Ledger
	Adjustments *inventory.AdjustmentUseCase
	Sequences   *fiscal.SequenceUseCase
	JWTSecret   string
	// Observer opcional; nil = sin métricas HTTP.
	Observer httpObserver
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Observer != nil {
		app.Use(MetricsMiddleware(deps.Observer))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Ventas y compras
	docs := NewDocumentHandler(deps.Documents)
	api.Post("/sales", RequireRole(RoleAdmin, RoleVendedor), docs.CreateSale)
	api.Post("/purchases", RequireRole(RoleAdmin, RoleBodeguero), docs.CreatePurchase)
	api.Get("/documents/:id", docs.GetByID)
	api.Get("/documents/:id/pdf", docs.PDF)
	api.Post("/documents/:id/void", RequireRole(RoleAdmin), docs.Void)

	// Cuentas y pagos
	acc := NewAccountHandler(deps.Accounts, deps.Payments)
	api.Post("/accounts/sweep-overdue", RequireRole(RoleAdmin), acc.SweepOverdue)
	api.Get("/accounts/:kind/:id", acc.Get)
	api.Get("/accounts/:kind/:id/payments", acc.Payments)
	api.Post("/accounts/:kind/:id/payments", RequireRole(RoleAdmin, RoleVendedor), acc.Pay)
	api.Get("/payments/:id", acc.GetPayment)
	api.Post("/payments/:id/void", RequireRole(RoleAdmin), acc.VoidPayment)

	// Catálogo e inventario
	products := NewProductHandler(deps.Catalog, deps.Ledger)
	api.Post("/products", RequireRole(RoleAdmin, RoleBodeguero), products.Create)
	api.Get("/products", products.List)
	api.Get("/products/low-stock", products.LowStock)
	api.Get("/products/:id", products.GetByID)
	api.Get("/products/:id/movements", products.Movements)
	api.Get("/products/:id/reconcile", products.Reconcile)

	counterparties := NewCounterpartyHandler(deps.Catalog)
	api.Post("/counterparties", counterparties.Create)
	api.Get("/counterparties/:id", counterparties.GetByID)

	adjustments := NewAdjustmentHandler(deps.Adjustments)
	stock := api.Group("/adjustments", RequireRole(RoleAdmin, RoleBodeguero))
	stock.Post("/", adjustments.Create)
	stock.Post("/:id/complete", adjustments.Complete)
	stock.Post("/:id/void", adjustments.Void)

	// Comprobantes fiscales
	fiscalHandler := NewFiscalHandler(deps.Sequences)
	sequences := api.Group("/fiscal-sequences", RequireRole(RoleAdmin))
	sequences.Post("/", fiscalHandler.CreateSequence)
	sequences.Get("/", fiscalHandler.ListSequences)
	sequences.Post("/:id/deactivate", fiscalHandler.Deactivate)
	api.Post("/fiscal-numbers/validate", fiscalHandler.Validate)
}
