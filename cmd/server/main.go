package main

import (
	"net/http"
	"os"
	"strings"

	"dulceria_pos_backend/internal/database"
	"dulceria_pos_backend/internal/router"
	"dulceria_pos_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "dulceria_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "dulceria_password")
	dbName := utils.Getenv("DB_NAME", "dulceria_pos_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")

	if err := database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode); err != nil {
		utils.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}
	utils.LogInfo("Database initialized", map[string]interface{}{"host": dbHost, "name": dbName})

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router.Setup(engine, database.GetDB())

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Starting server", map[string]interface{}{"port": port})
	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Server terminated")
		os.Exit(1)
	}
}
