package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleetlink/internal/models"
	"fleetlink/internal/ride"
)

// AvailableVehicle is a vehicle free for the requested window, annotated with
// the trip duration estimates for the searched route.
type AvailableVehicle struct {
	models.Vehicle
	EstimatedRideDurationHours int `json:"estimated_ride_duration_hours"`
	RealisticRideDurationHours int `json:"realistic_ride_duration_hours"`
}

// SearchResult carries the available vehicles plus the duration the window
// was derived from, which is reported even when no vehicle matches.
type SearchResult struct {
	Vehicles                   []AvailableVehicle
	EstimatedRideDurationHours int
}

// AvailabilityService answers capacity + time-window searches. It only reads;
// a vehicle reported here may be taken before the customer books, which the
// booking writer re-checks transactionally.
type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// FindAvailable lists the active vehicles with at least capacityRequired kg
// whose calendar is free over [startTime, startTime+estimated hours).
func (s *AvailabilityService) FindAvailable(
	ctx context.Context,
	capacityRequired int,
	fromPincode, toPincode string,
	startTime time.Time,
) (*SearchResult, error) {
	hours := ride.EstimateDuration(fromPincode, toPincode)
	endTime := startTime.Add(time.Duration(hours) * time.Hour)

	result := &SearchResult{
		Vehicles:                   []AvailableVehicle{},
		EstimatedRideDurationHours: hours,
	}

	var candidates []models.Vehicle
	err := s.db.WithContext(ctx).
		Where("capacity_kg >= ?", capacityRequired).
		Where("is_active = ?", true).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	for _, vehicle := range candidates {
		conflicts, err := findActiveOverlaps(ctx, s.db, vehicle.ID, startTime, endTime)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			continue
		}

		result.Vehicles = append(result.Vehicles, AvailableVehicle{
			Vehicle:                    vehicle,
			EstimatedRideDurationHours: hours,
			RealisticRideDurationHours: ride.EstimateRealisticDuration(fromPincode, toPincode, vehicle.VehicleType),
		})
	}

	return result, nil
}
