package ride

import "time"

// Overlap reports whether the half-open intervals [s1, e1) and [s2, e2)
// intersect. Touching endpoints do not overlap, so a booking ending at 12:00
// leaves the vehicle free for one starting at 12:00.
//
// The SQL condition in services (start_time < end AND end_time > start) must
// stay in lockstep with this predicate.
func Overlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
