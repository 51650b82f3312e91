package services

import (
	"time"

	"fleetlink/internal/models"
)

// statusTransitions is the booking state machine: forward through
// confirmed -> in-progress -> completed, with cancellation possible from the
// two non-terminal states. completed and cancelled are terminal.
var statusTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusConfirmed:  {models.BookingStatusInProgress, models.BookingStatusCancelled},
	models.BookingStatusInProgress: {models.BookingStatusCompleted, models.BookingStatusCancelled},
	models.BookingStatusCompleted:  {},
	models.BookingStatusCancelled:  {},
}

// CanTransition reports whether from -> to is an allowed move.
// Same-state updates are accepted as no-ops.
func CanTransition(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves the booking to the target status and stamps the
// actual pickup/delivery times the first time each state is reached. Reaching
// completed also derives the actual duration when a pickup time exists.
func ApplyTransition(b *models.Booking, to models.BookingStatus, now time.Time) error {
	from := b.BookingStatus
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}

	b.BookingStatus = to

	switch to {
	case models.BookingStatusInProgress:
		if b.ActualPickupTime == nil {
			t := now
			b.ActualPickupTime = &t
		}
	case models.BookingStatusCompleted:
		if b.ActualDeliveryTime == nil {
			t := now
			b.ActualDeliveryTime = &t
			if b.ActualPickupTime != nil {
				b.ActualDurationHours = b.ActualDeliveryTime.Sub(*b.ActualPickupTime).Hours()
			}
		}
	}
	return nil
}
