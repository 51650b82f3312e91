// internal/models/booking.go
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Valid reports whether s is one of the four known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

var ErrEndBeforeStart = errors.New("end time must be after start time")

type CustomerInfo struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
}

// CargoDetails describes the load. A zero Weight means the customer did not
// declare one, so no capacity check applies.
type CargoDetails struct {
	Weight              int    `json:"weight,omitempty"`
	Description         string `json:"description,omitempty"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
}

// Booking is a time-boxed reservation of a single vehicle. The half-open
// window [StartTime, EndTime) is what conflict detection operates on; only
// BookingStatus (and the actual-time fields derived from its transitions)
// changes after creation.
type Booking struct {
	gorm.Model
	Reference                  string        `json:"reference" gorm:"uniqueIndex"`
	VehicleID                  uint          `json:"vehicle_id" gorm:"not null;index:idx_bookings_vehicle_window"`
	Vehicle                    *Vehicle      `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	CustomerID                 string        `json:"customer_id" gorm:"index"`
	FromPincode                string        `json:"from_pincode"`
	ToPincode                  string        `json:"to_pincode"`
	StartTime                  time.Time     `json:"start_time" gorm:"index:idx_bookings_vehicle_window"`
	EndTime                    time.Time     `json:"end_time" gorm:"index:idx_bookings_vehicle_window"`
	EstimatedRideDurationHours int           `json:"estimated_ride_duration_hours"`
	BookingStatus              BookingStatus `json:"booking_status" gorm:"default:'confirmed';index"`
	TotalCost                  int           `json:"total_cost"`
	CustomerInfo               CustomerInfo  `json:"customer_info" gorm:"embedded;embeddedPrefix:customer_"`
	CargoDetails               CargoDetails  `json:"cargo_details" gorm:"embedded;embeddedPrefix:cargo_"`
	ActualPickupTime           *time.Time    `json:"actual_pickup_time,omitempty"`
	ActualDeliveryTime         *time.Time    `json:"actual_delivery_time,omitempty"`
	ActualDurationHours        float64       `json:"actual_duration_hours,omitempty"`
	Notes                      string        `json:"notes,omitempty"`
}

// BeforeCreate assigns the public reference and rejects inverted time windows.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Reference == "" {
		b.Reference = uuid.NewString()
	}
	if !b.EndTime.After(b.StartTime) {
		return ErrEndBeforeStart
	}
	return nil
}
