// Package ride holds the pure trip arithmetic shared by availability search
// and booking creation: duration estimation, interval overlap and pricing.
package ride

import (
	"math"
	"regexp"
	"strconv"

	"fleetlink/internal/models"
)

var pincodeRe = regexp.MustCompile(`^\d{6}$`)

// IsValidPincode reports whether s is a 6-digit delivery zone code.
func IsValidPincode(s string) bool {
	return pincodeRe.MatchString(s)
}

// pincodeDelta is the absolute numeric distance between two zone codes.
// Malformed codes are rejected at the HTTP boundary; an unparsable code here
// simply contributes 0.
func pincodeDelta(fromPincode, toPincode string) int {
	from, _ := strconv.Atoi(fromPincode)
	to, _ := strconv.Atoi(toPincode)
	d := to - from
	if d < 0 {
		d = -d
	}
	return d
}

// EstimateDuration is the billable trip duration in hours: the zone-code
// distance modulo 24, floored at one hour.
func EstimateDuration(fromPincode, toPincode string) int {
	hours := pincodeDelta(fromPincode, toPincode) % 24
	if hours == 0 {
		return 1
	}
	return hours
}

// vehicleSpeeds is the assumed average speed in km/h per vehicle class.
var vehicleSpeeds = map[models.VehicleType]float64{
	models.VehicleTypeTruck:   50,
	models.VehicleTypeVan:     60,
	models.VehicleTypePickup:  55,
	models.VehicleTypeTrailer: 45,
}

const (
	defaultSpeedKmh = 50
	// bufferFactor pads driving time for loading, traffic and rest stops.
	bufferFactor = 1.5

	minDurationHours = 1
	maxDurationHours = 48
)

// EstimateRealisticDuration derives a rough travel time from the zone-code
// distance: local trips (<10) count 15 km per unit, in-state trips (<100)
// 8 km, long hauls 5 km. The result is divided by the class average speed,
// buffered and clamped to [1, 48] hours. It is supplementary information only
// and never affects availability.
func EstimateRealisticDuration(fromPincode, toPincode string, vehicleType models.VehicleType) int {
	base := float64(pincodeDelta(fromPincode, toPincode))

	var distanceKm float64
	switch {
	case base < 10:
		distanceKm = base * 15
	case base < 100:
		distanceKm = base * 8
	default:
		distanceKm = base * 5
	}

	speed, ok := vehicleSpeeds[vehicleType]
	if !ok {
		speed = defaultSpeedKmh
	}

	hours := int(math.Round(distanceKm / speed * bufferFactor))
	if hours < minDurationHours {
		return minDurationHours
	}
	if hours > maxDurationHours {
		return maxDurationHours
	}
	return hours
}
