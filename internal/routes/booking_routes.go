package routes

import (
	"fleetlink/internal/controllers"
	"fleetlink/internal/middleware"

	"github.com/gin-gonic/gin"
)

func BookingRoutes(r *gin.Engine) {
	bookings := r.Group("/api/bookings")
	{
		bookings.POST("/", middleware.RateLimit(middleware.BookingLimiter), controllers.BookVehicle)
		bookings.GET("/", controllers.GetAllBookings)
		bookings.GET("/:id", controllers.GetBookingByID)
		bookings.PUT("/:id/status", controllers.UpdateBookingStatus)
		bookings.DELETE("/:id", controllers.CancelBooking)
	}
}
