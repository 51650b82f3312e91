package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleetlink/internal/models"
	"fleetlink/internal/ride"
)

// activeStatuses are the booking states that occupy a vehicle's calendar.
// completed and cancelled bookings never block a window.
var activeStatuses = []models.BookingStatus{
	models.BookingStatusConfirmed,
	models.BookingStatusInProgress,
}

// findActiveOverlaps returns the vehicle's active bookings whose
// [start_time, end_time) window intersects [start, end). The WHERE clause is
// the database-side twin of ride.Overlap, which re-decides each candidate so
// that both conflict paths (search and booking) share one predicate.
func findActiveOverlaps(ctx context.Context, db *gorm.DB, vehicleID uint, start, end time.Time) ([]models.Booking, error) {
	var candidates []models.Booking
	err := db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Where("booking_status IN ?", activeStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	conflicts := candidates[:0]
	for _, b := range candidates {
		if ride.Overlap(b.StartTime, b.EndTime, start, end) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}
