package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC  movementService
	StockUC     stockService
	ProductUC   productService
	WarehouseUC warehouseService
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; las escrituras
// de movimientos y catálogo exigen rol admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)

	// Movimientos
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", writers, movementHandler.Create)
	movements.Post("/:id/complete", writers, movementHandler.Complete)
	movements.Put("/:id", writers, movementHandler.Edit)
	movements.Delete("/:id", writers, movementHandler.Delete)

	// Stock (solo lectura)
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	inv := api.Group("/inventory")
	inv.Get("/stock", inventoryHandler.GetStock)
	inv.Get("/low-stock", inventoryHandler.ListLowStock)

	// Bodegas
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/stock", inventoryHandler.ListByWarehouse)
	warehouses.Post("/", RequireRole(jwt.RoleAdmin), warehouseHandler.Create)
	warehouses.Put("/:id", RequireRole(jwt.RoleAdmin), warehouseHandler.Update)

	// Productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/by-reference/:reference", productHandler.GetByReference)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", writers, productHandler.Create)
}
