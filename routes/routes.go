package routes

import (
	"net/http"
	"time"

	"smartpark/handlers"
	"smartpark/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterSpotRoutes registers the spot registry endpoints. Reads are
// public, mutations are admin-only.
func RegisterSpotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/spots")
	{
		api.GET("", hb.ListSpotsHandler)
		api.GET("/:id", hb.GetSpotHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnlyMiddleware())
		admin.POST("", hb.CreateSpotHandler)
		admin.PUT("/:id", hb.UpdateSpotHandler)
		admin.DELETE("/:id", hb.DeleteSpotHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PUT("/:id/cancel", hb.CancelBookingHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminOnlyMiddleware())
		admin.PUT("/:id/complete", hb.CompleteBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Smart Parking API is running"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterSpotRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
