package routes

import (
	"net/http"
	"os"
	"time"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"fleetlink/internal/middleware"
)

// SetupRouter wires middleware and all API route groups. Rate limiters must
// be initialised before calling this.
func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())
	r.Use(middleware.RateLimit(middleware.GeneralLimiter))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "FleetLink API is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": environment(),
		})
	})

	VehicleRoutes(r)
	BookingRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	return r
}

func environment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
