package routes

import (
	"net/http"
	"time"

	"equiptrack/handlers"
	"equiptrack/middleware"
	"equiptrack/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers authentication endpoints. Logout is cookie
// driven and stays public; revoking an absent session is a no-op.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/check-username", hb.Auth.CheckUsernameHandler)
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterDeviceRoutes registers device endpoints. Everything here requires a
// valid session.
func RegisterDeviceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/devices")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		api.GET("", hb.Devices.ListDevicesHandler)
		api.POST("", hb.Devices.CreateDeviceHandler)
		api.GET("/stats", hb.Devices.GetDeviceStatsHandler)
		api.GET("/:id", hb.Devices.GetDeviceHandler)
		api.PATCH("/:id", hb.Devices.UpdateDeviceHandler)
		api.DELETE("/:id", hb.Devices.DeleteDeviceHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterDeviceRoutes(r, hb)
	RegisterHealthRoute(r)
}
