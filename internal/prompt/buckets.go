package prompt

// Bucket upper bounds. Every scan is lower-inclusive/upper-exclusive and the
// first bound the value is below wins; values past the last bound take the final bucket.
var (
	// Sector 0 (front) also owns [337.5, 360).
	azimuthBounds = []float64{22.5, 67.5, 112.5, 157.5, 202.5, 247.5, 292.5, 337.5}

	defaultElevationBounds    = []float64{-15, 15, 45, 75}
	structuredElevationBounds = []float64{-15, 15, 75}
	structuredDistanceBounds  = []float64{3, 7}
)

var (
	defaultAzimuthPhrases = [8]string{
		"light from front",
		"light from front-right",
		"light from right",
		"light from back-right",
		"light from back",
		"light from back-left",
		"light from left",
		"light from front-left",
	}
	defaultElevationPhrases = []string{
		"from below",
		"eye level",
		"from high angle",
		"from above",
		"overhead",
	}

	structuredAzimuthPhrases = [8]string{
		"front lighting",
		"front-right lighting",
		"right side lighting",
		"back-right lighting",
		"back lighting",
		"back-left lighting",
		"left side lighting",
		"front-left lighting",
	}
	structuredElevationPhrases = []string{
		"lighting from below",
		"level lighting",
		"lighting from above",
		"top-down lighting",
	}
	structuredDistancePhrases = []string{
		"strong/close lighting",
		"medium distance lighting",
		"soft/far lighting",
	}
)

// AzimuthSector returns which of the 8 compass sectors a normalized azimuth falls in,
// 0 being front and counting clockwise through front-right, right and so on.
func AzimuthSector(az float64) int {
	s := bucket(az, azimuthBounds)
	if s == len(azimuthBounds) {
		return 0
	}
	return s
}

// bucket returns the index of the first bound v is below, or len(bounds).
func bucket(v float64, bounds []float64) int {
	for i, upper := range bounds {
		if v < upper {
			return i
		}
	}
	return len(bounds)
}
