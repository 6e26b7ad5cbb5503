package geometry

// Smootherstep maps linear transition progress onto an S-curve with zero
// slope at both ends (3t^2 - 2t^3). Input outside [0,1] is clamped, so
// callers can feed raw elapsed/duration ratios.
func Smootherstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
