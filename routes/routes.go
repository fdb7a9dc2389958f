package routes

import (
	"menuboard-api/handlers"
	"menuboard-api/middleware"
	"menuboard-api/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the constructed handler set for route registration.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Menu     *handlers.MenuHandler
	Public   *handlers.PublicHandler
	Consumer *handlers.ConsumerHandler
	Images   *handlers.ImageHandler
	Session  *middleware.Auth
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)
		public.POST("/auth/logout", h.Auth.Logout)

		// Diner-facing menu view — this URL is what a table QR code encodes
		public.GET("/restaurants/:id/menu", h.Public.GetMenu)
		// Change notification stream, one per viewed restaurant
		public.GET("/restaurants/:id/events", h.Public.Events)
		// Stored image bytes
		public.GET("/images/:id", h.Public.GetImage)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(h.Session.Required())
	{
		auth.GET("/profile", h.Auth.GetProfile)
		auth.PUT("/profile/preferences", h.Auth.UpdatePreferences)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(h.Session.Required(), middleware.RoleRequired(models.RoleRestaurant))
	{
		// Restaurant management
		restaurant.POST("/restaurants", h.Menu.CreateRestaurant)
		restaurant.GET("/restaurants", h.Menu.ListMyRestaurants)
		restaurant.GET("/restaurants/:id/menu", h.Menu.ListMenu)

		// Menu management
		restaurant.POST("/menu", h.Menu.CreateItem)
		restaurant.PUT("/menu/:itemId", h.Menu.UpdateItem)
		restaurant.PUT("/menu/:itemId/status", h.Menu.UpdateItemStatus)
		restaurant.DELETE("/menu/:itemId", h.Menu.DeleteItem)
		restaurant.POST("/menu/bulk-delete", h.Menu.BulkDelete)

		// CSV interchange
		restaurant.GET("/restaurants/:id/menu/export", h.Menu.ExportCSV)
		restaurant.POST("/restaurants/:id/menu/import", h.Menu.ImportCSV)

		// Images
		restaurant.POST("/restaurants/:id/images", h.Images.Upload)
	}

	// ── Consumer routes ────────────────────────────────────────────
	consumer := r.Group("/api/consumer")
	consumer.Use(h.Session.Required(), middleware.RoleRequired(models.RoleConsumer))
	{
		consumer.POST("/menu", h.Consumer.CreateItem)
		consumer.GET("/menu", h.Consumer.ListItems)
		consumer.PUT("/menu/:itemId", h.Consumer.UpdateItem)
		consumer.DELETE("/menu/:itemId", h.Consumer.DeleteItem)
	}
}
