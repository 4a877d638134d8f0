package router

import (
	"database/sql"

	"dulceria_pos_backend/internal/handlers"
	"dulceria_pos_backend/internal/middleware"
	"dulceria_pos_backend/internal/repositories"
	"dulceria_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	productRepo := repositories.NewProductRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	saleRepo := repositories.NewSaleRepository(db)

	// Initialize Services
	authService := services.NewAuthService(employeeRepo, db)
	productService := services.NewProductService(productRepo, db)
	cartService := services.NewCartService(productRepo)
	saleService := services.NewSaleService(saleRepo, productRepo, cartService, db)
	reportService := services.NewReportService(saleRepo, productRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService, saleService)
	saleHandler := handlers.NewSaleHandler(saleService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Public auth routes; everything else requires a valid token.
	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupProductRoutes(authenticated, productHandler)
		SetupCartRoutes(authenticated, cartHandler)
		SetupSaleRoutes(authenticated, saleHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
