package router

import (
	"dulceria_pos_backend/internal/handlers"
	"dulceria_pos_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.Me)
		}
	}
}

// SetupProductRoutes sets up the product catalog routes.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := authenticatedGroup.Group("/products")
	{
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/:id", productHandler.GetProductByID)
		productRoutes.GET("/barcode/:code", productHandler.GetProductByBarcode)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupCartRoutes sets up the per-employee cart routes.
func SetupCartRoutes(authenticatedGroup *gin.RouterGroup, cartHandler *handlers.CartHandler) {
	cartRoutes := authenticatedGroup.Group("/cart")
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.POST("/items", cartHandler.AddItem)
		cartRoutes.PATCH("/items/:productId", cartHandler.SetQuantity)
		cartRoutes.POST("/scan", cartHandler.Scan)
		cartRoutes.POST("/discount", cartHandler.ApplyDiscount)
		cartRoutes.DELETE("", cartHandler.ClearCart)
		cartRoutes.POST("/checkout", cartHandler.Checkout)
	}
}

// SetupSaleRoutes sets up the recorded sale routes.
func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	{
		saleRoutes.GET("", saleHandler.GetSalesOfToday)
		saleRoutes.GET("/:id", saleHandler.GetSaleByID)
	}
}

// SetupReportRoutes sets up the end-of-day report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	{
		reportRoutes.GET("/sales-by-employee", reportHandler.SalesByEmployee)
		reportRoutes.GET("/total-sales", reportHandler.TotalSales)
		reportRoutes.GET("/inventory", reportHandler.Inventory)
		reportRoutes.GET("/summary", reportHandler.Summary)
		reportRoutes.GET("/export/sales", reportHandler.ExportSales)
		reportRoutes.GET("/export/inventory", reportHandler.ExportInventory)
	}
}
