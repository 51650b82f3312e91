package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetlink/internal/models"
)

func availableNames(result *SearchResult) []string {
	names := make([]string, 0, len(result.Vehicles))
	for _, v := range result.Vehicles {
		names = append(names, v.Name)
	}
	return names
}

func TestFindAvailableFiltersByCapacityAndActivity(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	seedVehicle(t, db, "Big truck", 9000, models.VehicleTypeTruck, true)
	seedVehicle(t, db, "Small van", 2000, models.VehicleTypeVan, true)
	seedVehicle(t, db, "Retired pickup", 9000, models.VehicleTypePickup, false)

	result, err := svc.FindAvailable(context.Background(), 3000, "400001", "400010", futureStart())
	require.NoError(t, err)
	assert.Equal(t, 9, result.EstimatedRideDurationHours)
	assert.ElementsMatch(t, []string{"Big truck"}, availableNames(result))
}

func TestFindAvailableExcludesBookedWindows(t *testing.T) {
	db := newTestDB(t)
	availability := NewAvailabilityService(db)
	bookings := NewBookingService(db)

	truck := seedVehicle(t, db, "Big truck", 9000, models.VehicleTypeTruck, true)
	seedVehicle(t, db, "Small van", 2000, models.VehicleTypeVan, true)

	start := futureStart()
	booked, err := bookings.Create(context.Background(), CreateBookingInput{
		VehicleID:   truck.ID,
		CustomerID:  "cust-1",
		FromPincode: "400001",
		ToPincode:   "400010",
		StartTime:   start,
	})
	require.NoError(t, err)

	// Overlapping window: the truck is out, the van remains.
	result, err := availability.FindAvailable(context.Background(), 1000, "400001", "400010", start.Add(time.Hour))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Small van"}, availableNames(result))

	// A search starting exactly when the booking ends sees both vehicles.
	result, err = availability.FindAvailable(context.Background(), 1000, "400001", "400010", booked.EndTime)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Big truck", "Small van"}, availableNames(result))

	// Cancelled bookings free the window again.
	_, err = bookings.Cancel(context.Background(), booked.ID)
	require.NoError(t, err)
	result, err = availability.FindAvailable(context.Background(), 1000, "400001", "400010", start.Add(time.Hour))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Big truck", "Small van"}, availableNames(result))
}

func TestFindAvailableAnnotatesDurations(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	seedVehicle(t, db, "Big truck", 9000, models.VehicleTypeTruck, true)
	seedVehicle(t, db, "Small van", 2000, models.VehicleTypeVan, true)

	result, err := svc.FindAvailable(context.Background(), 1000, "400001", "400010", futureStart())
	require.NoError(t, err)
	require.Len(t, result.Vehicles, 2)

	byName := map[string]AvailableVehicle{}
	for _, v := range result.Vehicles {
		byName[v.Name] = v
	}
	// base distance 9 -> 135 km local; truck at 50 km/h, van at 60 km/h
	assert.Equal(t, 4, byName["Big truck"].RealisticRideDurationHours)
	assert.Equal(t, 3, byName["Small van"].RealisticRideDurationHours)
	assert.Equal(t, 9, byName["Big truck"].EstimatedRideDurationHours)
}

func TestFindAvailableEmptyResultKeepsDuration(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	seedVehicle(t, db, "Small van", 2000, models.VehicleTypeVan, true)

	result, err := svc.FindAvailable(context.Background(), 50000, "400001", "400010", futureStart())
	require.NoError(t, err)
	assert.Empty(t, result.Vehicles)
	assert.Equal(t, 9, result.EstimatedRideDurationHours)
}
