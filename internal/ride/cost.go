package ride

import "math"

const basePricePerHour = 500

// EstimateCost is the simplified booking price: a flat hourly rate plus a
// small component proportional to the zone-code distance. Deterministic by
// construction so re-quoting a booking always yields the same figure.
func EstimateCost(hours int, fromPincode, toPincode string) int {
	distanceFactor := float64(pincodeDelta(fromPincode, toPincode)) / 1000
	return int(math.Round(float64(basePricePerHour*hours) + distanceFactor*100))
}
