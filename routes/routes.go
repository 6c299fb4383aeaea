// File: routes/routes.go
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shuttle/config"
	"shuttle/handlers"
	"shuttle/middleware"
	"shuttle/models"
)

// RegisterAuthRoutes registers the session-token endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/token", hb.TokenHandler)

		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/device-token", hb.RegisterDeviceTokenHandler)
	}
}

// RegisterBookingRoutes registers the guest-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", middleware.RequireRole(models.RoleGuest), hb.CreateBookingHandler)
		api.GET("/mine", middleware.RequireRole(models.RoleGuest), hb.ListMyBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.DELETE("/:id", middleware.RequireRole(models.RoleGuest, models.RoleStaff), hb.CancelBookingHandler)
	}
}

// RegisterStaffRoutes registers the front-desk endpoints: the
// unassigned worklist, manual vehicle assignment, verification, and
// check-in code issuance.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/staff")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleStaff))
		api.GET("/bookings/unassigned", hb.ListUnassignedHandler)
		api.GET("/vehicles", hb.ListVehiclesHandler)
		api.PUT("/bookings/:id/vehicle", hb.AssignVehicleHandler)
		api.POST("/bookings/:id/verify", hb.VerifyBookingHandler)
		api.POST("/bookings/:id/checkin-code", hb.IssueCheckInHandler)
	}
}

// RegisterDriverRoutes registers the trip-lifecycle endpoints.
func RegisterDriverRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/driver")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleDriver))
		api.POST("/trips", hb.StartTripHandler)
		api.GET("/trips/current", hb.CurrentTripHandler)
		api.POST("/trips/:id/return", hb.BeginReturnHandler)
		api.POST("/trips/:id/end", hb.EndTripHandler)
		api.GET("/trips/:id/bookings", hb.TripBookingsHandler)
		api.POST("/bookings/:id/checkin", hb.RedeemCheckInHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterDriverRoutes(r, hb)
	RegisterHealthRoute(r)
}
