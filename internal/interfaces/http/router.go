package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrostock/agrostock-api/internal/application/procurement"
	"github.com/agrostock/agrostock-api/internal/application/usecase"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InputUC         *usecase.InputUseCase
	SupplierUC      *usecase.SupplierUseCase
	PurchaseOrderUC *procurement.PurchaseOrderUseCase
	TrackingUC      *procurement.TrackingUseCase
	PostReceiptUC   *procurement.PostReceiptUseCase
	JWTSecret       string
}

// Router registra las rutas de la API. Todo va detrás del Bearer Token; la
// política de roles se aplica por grupo de operaciones.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleAgronomo)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Insumos (directorio de referencia)
	inputs := api.Group("/inputs")
	inputHandler := NewInputHandler(deps.InputUC)
	inputs.Get("/", anyRole, inputHandler.List)
	inputs.Get("/:id", anyRole, inputHandler.GetByID)
	inputs.Post("/", warehouse, inputHandler.Create)

	// Proveedores
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", anyRole, supplierHandler.List)
	suppliers.Get("/:id", anyRole, supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)

	// Órdenes de compra
	orders := api.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC, deps.TrackingUC)
	receptionHandler := NewReceptionHandler(deps.PostReceiptUC)
	orders.Get("/", anyRole, orderHandler.List)
	orders.Post("/", warehouse, orderHandler.Create)
	orders.Get("/:id", anyRole, orderHandler.GetByID)
	orders.Patch("/:id/status", adminOnly, orderHandler.UpdateStatus)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)
	orders.Get("/:id/tracking", anyRole, orderHandler.GetTracking)
	orders.Get("/:id/receptions", anyRole, receptionHandler.ListByOrder)

	// Recepciones de mercancía
	receptions := api.Group("/receptions")
	receptions.Post("/", warehouse, receptionHandler.Create)
	receptions.Get("/:id", anyRole, receptionHandler.GetByID)
}
