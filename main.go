package main

import (
	"log"
	"net/http"
	"os"

	"menuboard-api/config"
	"menuboard-api/handlers"
	"menuboard-api/middleware"
	"menuboard-api/notify"
	"menuboard-api/pkg/logger"
	"menuboard-api/routes"
	"menuboard-api/services"
	"menuboard-api/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load("config.yaml")

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("✅ Database connected and migrated successfully")

	// Wire services once, pass by reference to handlers
	appLog := logger.New("menuboard-api")
	hub := notify.NewHub()
	menuSvc := services.NewMenuService(db, hub)
	consumerSvc := services.NewConsumerService(db)
	session := middleware.NewAuth(cfg.JWTSecret, cfg.SessionMaxAge)
	imageStore := storage.NewImageStore(cfg.ImageStore, appLog)
	webhook := storage.NewWebhook(cfg.WebhookURL, appLog)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.RequestID())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Menu Board API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍽 Welcome to the Menu Board API",
			"health":  "/health",
			"roles":   []string{"restaurant", "consumer"},
		})
	})

	routes.SetupRoutes(r, routes.Handlers{
		Auth:     &handlers.AuthHandler{DB: db, Auth: session},
		Menu:     &handlers.MenuHandler{DB: db, Menu: menuSvc},
		Public:   &handlers.PublicHandler{DB: db, Menu: menuSvc, Hub: hub},
		Consumer: &handlers.ConsumerHandler{Consumer: consumerSvc},
		Images:   &handlers.ImageHandler{DB: db, Store: imageStore, Webhook: webhook, Log: appLog},
		Session:  session,
	})

	// Start server
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
