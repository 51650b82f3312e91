// internal/models/vehicle.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type VehicleType string

const (
	VehicleTypeTruck   VehicleType = "truck"
	VehicleTypeVan     VehicleType = "van"
	VehicleTypePickup  VehicleType = "pickup"
	VehicleTypeTrailer VehicleType = "trailer"
)

type FuelType string

const (
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypePetrol   FuelType = "petrol"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
)

// DriverInfo is the assigned driver's contact details. The booking logic never
// reads these; they are stored and returned as-is.
type DriverInfo struct {
	Name          string `json:"name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}

type MaintenanceSchedule struct {
	LastService *time.Time `json:"last_service,omitempty"`
	NextService *time.Time `json:"next_service,omitempty"`
	Mileage     int        `json:"mileage,omitempty"`
}

type InsuranceInfo struct {
	Provider     string     `json:"provider,omitempty"`
	PolicyNumber string     `json:"policy_number,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
}

// Location is the vehicle's last reported position.
// Position holds a WKB-encoded point; controllers accept and emit GeoJSON.
type Location struct {
	CurrentPincode string `json:"current_pincode,omitempty"`
	Position       []byte `json:"-" gorm:"type:bytea"`
}

type Vehicle struct {
	gorm.Model
	Name                string              `json:"name"`
	CapacityKg          int                 `json:"capacity_kg" gorm:"index"`
	Tyres               int                 `json:"tyres"`
	VehicleType         VehicleType         `json:"vehicle_type" gorm:"default:'truck';index"`
	FuelType            FuelType            `json:"fuel_type" gorm:"default:'diesel'"`
	RegistrationNumber  *string             `json:"registration_number,omitempty" gorm:"uniqueIndex"`
	// No gorm default here: with one, inserts of the zero value would be
	// silently rewritten to active. Callers set the flag explicitly.
	IsActive            bool                `json:"is_active" gorm:"index"`
	DriverInfo          DriverInfo          `json:"driver_info" gorm:"embedded;embeddedPrefix:driver_"`
	MaintenanceSchedule MaintenanceSchedule `json:"maintenance_schedule" gorm:"embedded;embeddedPrefix:maintenance_"`
	InsuranceInfo       InsuranceInfo       `json:"insurance_info" gorm:"embedded;embeddedPrefix:insurance_"`
	Location            Location            `json:"location" gorm:"embedded;embeddedPrefix:location_"`

	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:VehicleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}
