package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleetlink/internal/config"
	"fleetlink/internal/models"
	"fleetlink/internal/ride"
	"fleetlink/internal/services"
)

// parseIDParam reads the :id path segment as an unsigned integer, responding
// 400 with the given message when it is not one.
func parseIDParam(c *gin.Context, badIDMessage string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": badIDMessage})
		return 0, false
	}
	return uint(id), true
}

// BookVehicle creates a booking for the estimated trip window. Conflict and
// capacity violations come back as 409; a transaction aborted by concurrent
// booking activity comes back as 503 and is safe to retry.
func BookVehicle(c *gin.Context) {
	var input struct {
		VehicleID    uint                `json:"vehicle_id" binding:"required"`
		CustomerID   string              `json:"customer_id" binding:"required,max=50"`
		FromPincode  string              `json:"from_pincode" binding:"required"`
		ToPincode    string              `json:"to_pincode" binding:"required"`
		StartTime    string              `json:"start_time" binding:"required"`
		CustomerInfo models.CustomerInfo `json:"customer_info"`
		CargoDetails models.CargoDetails `json:"cargo_details"`
		Notes        string              `json:"notes"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking input: " + err.Error()})
		return
	}
	if !ride.IsValidPincode(input.FromPincode) || !ride.IsValidPincode(input.ToPincode) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Pincodes must be 6-digit numbers"})
		return
	}
	startTime, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Start time must be in ISO 8601 format"})
		return
	}
	if startTime.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Start time cannot be in the past"})
		return
	}
	if input.CargoDetails.Weight < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cargo weight cannot be negative"})
		return
	}

	svc := services.NewBookingService(config.DB)
	booking, err := svc.Create(c.Request.Context(), services.CreateBookingInput{
		VehicleID:    input.VehicleID,
		CustomerID:   input.CustomerID,
		FromPincode:  input.FromPincode,
		ToPincode:    input.ToPincode,
		StartTime:    startTime,
		CustomerInfo: input.CustomerInfo,
		CargoDetails: input.CargoDetails,
		Notes:        input.Notes,
	})
	if err != nil {
		respondBookingCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"data":    booking,
	})
}

func respondBookingCreateError(c *gin.Context, err error) {
	var conflictErr *services.ConflictError
	var capacityErr *services.CapacityError
	var retryableErr *services.RetryableError

	switch {
	case errors.Is(err, services.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Vehicle not found"})
	case errors.Is(err, services.ErrVehicleInactive):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vehicle is not active"})
	case errors.As(err, &conflictErr):
		conflicts := make([]gin.H, 0, len(conflictErr.Conflicts))
		for _, b := range conflictErr.Conflicts {
			conflicts = append(conflicts, gin.H{
				"id":         b.ID,
				"start_time": b.StartTime,
				"end_time":   b.EndTime,
			})
		}
		c.JSON(http.StatusConflict, gin.H{
			"success":             false,
			"message":             "Vehicle is already booked for the selected time slot",
			"conflictingBookings": conflicts,
		})
	case errors.As(err, &capacityErr):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": capacityErr.Error()})
	case errors.As(err, &retryableErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":   false,
			"message":   "Booking could not be completed due to concurrent activity, please retry",
			"retryable": true,
		})
	default:
		logrus.WithError(err).Error("BookVehicle: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create booking"})
	}
}

// GetAllBookings lists bookings, filterable by customer, vehicle, status and
// start-time range, newest first with pagination.
func GetAllBookings(c *gin.Context) {
	var query struct {
		CustomerID string `form:"customerId"`
		VehicleID  uint   `form:"vehicleId"`
		Status     string `form:"status"`
		StartDate  string `form:"startDate"`
		EndDate    string `form:"endDate"`
		Page       int    `form:"page,default=1"`
		Limit      int    `form:"limit,default=10"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid filter: " + err.Error()})
		return
	}

	filter := services.BookingFilter{
		CustomerID: query.CustomerID,
		VehicleID:  query.VehicleID,
		Status:     models.BookingStatus(query.Status),
		Page:       query.Page,
		Limit:      query.Limit,
	}
	if query.StartDate != "" && query.EndDate != "" {
		start, err := time.Parse(time.RFC3339, query.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Start date must be in ISO 8601 format"})
			return
		}
		end, err := time.Parse(time.RFC3339, query.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "End date must be in ISO 8601 format"})
			return
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	svc := services.NewBookingService(config.DB)
	bookings, pagination, err := svc.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status filter"})
			return
		}
		logrus.WithError(err).Error("GetAllBookings: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Bookings retrieved successfully",
		"data":       bookings,
		"pagination": pagination,
	})
}

// GetBookingByID fetches one booking with its vehicle populated.
func GetBookingByID(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid booking ID")
	if !ok {
		return
	}

	svc := services.NewBookingService(config.DB)
	booking, err := svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
			return
		}
		logrus.WithError(err).Error("GetBookingByID: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking retrieved successfully",
		"data":    booking,
	})
}

// UpdateBookingStatus moves a booking through the status state machine.
func UpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid booking ID")
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status input: " + err.Error()})
		return
	}

	svc := services.NewBookingService(config.DB)
	booking, err := svc.UpdateStatus(c.Request.Context(), id, models.BookingStatus(input.Status))
	if err != nil {
		var transitionErr *services.TransitionError
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Valid statuses are: confirmed, in-progress, completed, cancelled"})
		case errors.As(err, &transitionErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": transitionErr.Error()})
		default:
			logrus.WithError(err).Error("UpdateBookingStatus: update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update booking status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated successfully",
		"data":    booking,
	})
}

// CancelBooking marks a booking cancelled. Records are never deleted.
func CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid booking ID")
	if !ok {
		return
	}

	svc := services.NewBookingService(config.DB)
	booking, err := svc.Cancel(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		case errors.Is(err, services.ErrCannotCancelCompleted):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot cancel a completed booking"})
		case errors.Is(err, services.ErrCannotCancelInProgress):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot cancel a booking that is in progress"})
		default:
			logrus.WithError(err).Error("CancelBooking: cancel failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
		"data":    booking,
	})
}
