package math

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Round rounds to the nearest integer with halves going towards +Inf,
// so -2.5 becomes -2 and 2.5 becomes 3.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// RoundTo rounds x to the given number of decimal digits using Round.
func RoundTo(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return Round(x*p) / p
}
