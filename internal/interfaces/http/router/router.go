package router

import (
	"github.com/gin-gonic/gin"

	"github.com/comercio/backoffice/internal/interfaces/http/handler"
)

// Handlers bundles everything the router wires up
type Handlers struct {
	System        *handler.SystemHandler
	Ledger        *handler.LedgerHandler
	Stock         *handler.StockHandler
	Adjustment    *handler.AdjustmentHandler
	Purchase      *handler.PurchaseHandler
	Party         *handler.PartyHandler
	Warehouse     *handler.WarehouseHandler
	Product       *handler.ProductHandler
	PaymentMethod *handler.PaymentMethodHandler
}

// Setup registers all routes on the engine under /api/v1
func Setup(engine *gin.Engine, h Handlers) {
	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	api.GET("/health", h.System.Health)

	ledger := api.Group("/ledger")
	{
		ledger.POST("/movements", h.Ledger.PostMovement)
		ledger.GET("/movements/:id", h.Ledger.GetMovement)
		ledger.POST("/initial-balances", h.Ledger.PostInitialBalance)
		ledger.POST("/payments/customer", h.Ledger.RegisterCustomerPayment)
		ledger.POST("/payments/supplier", h.Ledger.RegisterSupplierPayment)
		ledger.GET("/balances", h.Ledger.ListBalances)
		ledger.GET("/entities/:id/balance", h.Ledger.GetBalance)
		ledger.GET("/entities/:id/statement", h.Ledger.GetStatement)
		ledger.GET("/entities/:id/payments", h.Ledger.ListPayments)
	}

	stock := api.Group("/stock")
	{
		stock.POST("/movements", h.Stock.PostMovement)
		stock.GET("/movements", h.Stock.ListMovements)
		stock.GET("/movements/summary", h.Stock.GetMovementsSummary)
		stock.GET("/movements/:id", h.Stock.GetMovement)
		stock.GET("/products/:id", h.Stock.GetProductStock)
		stock.GET("/products/:id/kardex", h.Stock.GetKardex)
		stock.GET("/warehouses/:id", h.Stock.GetWarehouseStock)
		stock.GET("/low", h.Stock.GetLowStock)
		stock.GET("/valuation", h.Stock.GetValuation)

		stock.POST("/adjustments", h.Adjustment.Create)
		stock.GET("/adjustments", h.Adjustment.List)
		stock.GET("/adjustments/:id", h.Adjustment.Get)
		stock.POST("/adjustments/:id/approve", h.Adjustment.Approve)
		stock.POST("/adjustments/:id/cancel", h.Adjustment.Cancel)
	}

	purchases := api.Group("/purchases")
	{
		purchases.POST("", h.Purchase.Create)
		purchases.GET("", h.Purchase.List)
		purchases.GET("/summary", h.Purchase.GetStatusSummary)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/payments", h.Purchase.AddPayment)
		purchases.POST("/:id/cancel", h.Purchase.Cancel)
	}

	parties := api.Group("/parties")
	{
		parties.POST("", h.Party.Create)
		parties.GET("", h.Party.List)
		parties.GET("/:id", h.Party.Get)
		parties.PUT("/:id", h.Party.Update)
		parties.DELETE("/:id", h.Party.Deactivate)
	}

	warehouses := api.Group("/warehouses")
	{
		warehouses.POST("", h.Warehouse.Create)
		warehouses.GET("", h.Warehouse.List)
		warehouses.GET("/:id", h.Warehouse.Get)
		warehouses.PUT("/:id", h.Warehouse.Update)
		warehouses.DELETE("/:id", h.Warehouse.Delete)
	}

	products := api.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Deactivate)
	}

	paymentMethods := api.Group("/payment-methods")
	{
		paymentMethods.POST("", h.PaymentMethod.Create)
		paymentMethods.GET("", h.PaymentMethod.List)
		paymentMethods.GET("/:id", h.PaymentMethod.Get)
	}
}
