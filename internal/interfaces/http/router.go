package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/metrics"
	"github.com/jhoicas/panaderia-api/internal/interfaces/ws"
	"github.com/jhoicas/panaderia-api/pkg/jwt"
)

// RouterDeps dependencias para el router. Hub y Metrics son opcionales.
type RouterDeps struct {
	Engine      *stock.Engine
	Policy      stock.Policy
	JWTSecret   string
	Hub         *ws.Hub
	Metrics     *metrics.Metrics
	MetricsPath string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Feed de stock en vivo. El navegador no puede enviar headers: el token va en ?token=.
	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if !websocket.IsWebSocketUpgrade(c) {
				return c.SendStatus(fiber.StatusUpgradeRequired)
			}
			if _, _, err := jwt.Parse(deps.JWTSecret, c.Query("token")); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			return c.Next()
		})
		app.Get("/ws/stock", websocket.New(deps.Hub.Handler))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	can := func(capability stock.Capability) fiber.Handler {
		return RequireCapability(deps.Policy, capability)
	}

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Engine)
	products.Post("/", can(stock.CapCreateProduct), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Delete("/:id", can(stock.CapAdjustInventory), productHandler.Delete)

	// Inventory: ajustes, conteos y auditoría
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Engine)
	invGroup.Post("/adjustments", can(stock.CapAdjustInventory), inventoryHandler.Adjust)
	invGroup.Post("/stock-counts", can(stock.CapAdjustInventory), inventoryHandler.StockCount)
	invGroup.Post("/stock-counts/xlsx", can(stock.CapAdjustInventory), inventoryHandler.ImportStockCount)
	invGroup.Get("/stock-counts/template", can(stock.CapAdjustInventory), inventoryHandler.StockCountTemplate)
	invGroup.Get("/audit", can(stock.CapViewAudit), inventoryHandler.Audit)
	invGroup.Get("/low-stock", can(stock.CapRequestPurchase), inventoryHandler.LowStock)

	// Sales
	saleHandler := NewSaleHandler(deps.Engine)
	protected.Post("/sales", can(stock.CapRecordSale), saleHandler.Create)

	// Purchases
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.Engine)
	purchases.Post("/", can(stock.CapRequestPurchase), purchaseHandler.Create)
	purchases.Get("/", can(stock.CapRequestPurchase), purchaseHandler.List)
	purchases.Get("/:id", can(stock.CapRequestPurchase), purchaseHandler.Get)
	purchases.Post("/:id/approve", can(stock.CapApprovePurchase), purchaseHandler.Approve)
	purchases.Post("/:id/reject", can(stock.CapApprovePurchase), purchaseHandler.Reject)

	// Production
	productionHandler := NewProductionHandler(deps.Engine)
	protected.Post("/production", can(stock.CapProduce), productionHandler.Create)

	// Losses
	losses := protected.Group("/losses")
	lossHandler := NewLossHandler(deps.Engine)
	losses.Post("/", can(stock.CapRecordLoss), lossHandler.Create)
	losses.Get("/", can(stock.CapRecordLoss), lossHandler.List)
}
