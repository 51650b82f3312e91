package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"fleetlink/internal/models"
)

var (
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrVehicleInactive        = errors.New("vehicle is not active")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrInvalidStatus          = errors.New("invalid booking status")
	ErrCannotCancelCompleted  = errors.New("cannot cancel a completed booking")
	ErrCannotCancelInProgress = errors.New("cannot cancel a booking that is in progress")
)

// ConflictError reports the bookings already occupying the requested window.
type ConflictError struct {
	Conflicts []models.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("vehicle is already booked for the selected time slot (%d conflicting bookings)", len(e.Conflicts))
}

// CapacityError reports a declared cargo weight above the vehicle's rating.
type CapacityError struct {
	CargoWeightKg int
	CapacityKg    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cargo weight (%d kg) exceeds vehicle capacity (%d kg)", e.CargoWeightKg, e.CapacityKg)
}

// TransitionError reports a booking status move the state machine forbids.
type TransitionError struct {
	From, To models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition: %s -> %s", e.From, e.To)
}

// RetryableError wraps a store failure caused by transaction contention.
// The caller may safely retry the whole operation; the writer never does.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "booking could not be committed due to concurrent activity: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error { return e.Err }

// isSerializationFailure matches the Postgres SQLSTATEs raised when
// serializable isolation aborts one of two racing transactions.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
