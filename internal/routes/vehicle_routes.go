package routes

import (
	"fleetlink/internal/controllers"
	"fleetlink/internal/middleware"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.Engine) {
	vehicles := r.Group("/api/vehicles")
	{
		vehicles.POST("/", controllers.AddVehicle)
		vehicles.GET("/available", middleware.RateLimit(middleware.SearchLimiter), controllers.FindAvailableVehicles)
		vehicles.GET("/", controllers.GetAllVehicles)
		vehicles.GET("/:id", controllers.GetSingleVehicle)
	}
}
