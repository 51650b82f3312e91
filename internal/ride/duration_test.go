package ride

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleetlink/internal/models"
)

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"400001", "400010", 9},
		{"400001", "400001", 1}, // zero distance floors at one hour
		{"400000", "400025", 1}, // 25 mod 24
		{"400000", "400024", 1}, // exact multiple of 24 also floors
		{"400000", "400023", 23},
		{"100000", "999999", 23}, // 899999 mod 24
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateDuration(tt.from, tt.to))
		})
	}
}

func TestEstimateDurationSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"400001", "400010"},
		{"110001", "560001"},
		{"000001", "999999"},
		{"123456", "123456"},
	}
	for _, p := range pairs {
		assert.Equal(t, EstimateDuration(p[0], p[1]), EstimateDuration(p[1], p[0]),
			"duration must not depend on direction for %s/%s", p[0], p[1])
	}
}

func TestEstimateRealisticDuration(t *testing.T) {
	tests := []struct {
		name        string
		from, to    string
		vehicleType models.VehicleType
		want        int
	}{
		// base 4 -> local band, 60 km
		{"local truck", "400001", "400005", models.VehicleTypeTruck, 2},
		{"local van", "400001", "400005", models.VehicleTypeVan, 2},
		{"local trailer", "400001", "400005", models.VehicleTypeTrailer, 2},
		{"unknown class falls back to default speed", "400001", "400005", models.VehicleType("bus"), 2},
		// base 50 -> state band, 400 km at 50 km/h * 1.5
		{"state truck", "400000", "400050", models.VehicleTypeTruck, 12},
		// base 150 -> long-haul band, 750 km
		{"long haul truck", "400000", "400150", models.VehicleTypeTruck, 23},
		// zero distance clamps up
		{"same pincode", "400001", "400001", models.VehicleTypeTruck, 1},
		// huge distance clamps down
		{"cross country", "100000", "700000", models.VehicleTypeTruck, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateRealisticDuration(tt.from, tt.to, tt.vehicleType))
		})
	}
}

func TestEstimateRealisticDurationStaysInRange(t *testing.T) {
	codes := []string{"000000", "000005", "000050", "004999", "123456", "654321", "999999"}
	for _, from := range codes {
		for _, to := range codes {
			got := EstimateRealisticDuration(from, to, models.VehicleTypeVan)
			assert.GreaterOrEqual(t, got, 1, "%s -> %s", from, to)
			assert.LessOrEqual(t, got, 48, "%s -> %s", from, to)
		}
	}
}

func TestOverlap(t *testing.T) {
	day := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"partial overlap", at(10), at(12), at(11), at(13), true},
		{"disjoint", at(10), at(12), at(13), at(15), false},
		{"touching endpoints do not overlap", at(10), at(12), at(12), at(14), false},
		{"containment", at(9), at(15), at(10), at(12), true},
		{"identical", at(10), at(12), at(10), at(12), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlap(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.want, Overlap(tt.s2, tt.e2, tt.s1, tt.e1), "predicate must be symmetric")
		})
	}
}

func TestEstimateCost(t *testing.T) {
	assert.Equal(t, 4501, EstimateCost(9, "400001", "400010"))
	assert.Equal(t, 500, EstimateCost(1, "400001", "400001"))
	assert.Equal(t, 8100, EstimateCost(16, "400000", "401000"))
}

func TestIsValidPincode(t *testing.T) {
	valid := []string{"400001", "000000", "999999"}
	for _, s := range valid {
		assert.True(t, IsValidPincode(s), s)
	}
	invalid := []string{"", "40001", "4000011", "40000a", "4000 1", "-40001"}
	for _, s := range invalid {
		assert.False(t, IsValidPincode(s), s)
	}
}
