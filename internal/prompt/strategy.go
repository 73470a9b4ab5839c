// Package prompt turns the rig's angle state into lighting text for a generative model.
//
// Three interchangeable strategies cover the plain descriptive wording, a denser
// structured vocabulary, and host-supplied phrase tables. All of them are pure:
// they read the state they are given and nothing else.
package prompt

import (
	"github.com/Faultbox/lightrig/internal/angle"
)

// Strategy derives prompt text from an angle state.
type Strategy interface {
	Derive(s angle.State) string
}

// FallbackIntensity is the intensity clause Custom uses without an intensity list.
const FallbackIntensity = "medium"

// Default is the plain "<azimuth>, <elevation>" wording.
type Default struct{}

// Structured is the space-joined "<azimuth> <elevation> <distance>" wording.
type Structured struct{}

// Custom uses the state's custom phrase table, falling back to Default wording
// for the azimuth and elevation axes and to FallbackIntensity for distance.
type Custom struct{}

var (
	_ Strategy = Default{}
	_ Strategy = Structured{}
	_ Strategy = Custom{}
)

// For returns the strategy the state's effective mode selects.
func For(s angle.State) Strategy {
	switch s.EffectiveMode() {
	case angle.ModeCustom:
		return Custom{}
	case angle.ModeStructured:
		return Structured{}
	default:
		return Default{}
	}
}

// Derive returns the prompt text for s using the strategy its mode selects.
func Derive(s angle.State) string {
	return For(s).Derive(s)
}

// Derive implements Strategy.
func (Default) Derive(s angle.State) string {
	return defaultAzimuth(s) + ", " + defaultElevation(s)
}

func defaultAzimuth(s angle.State) string {
	return defaultAzimuthPhrases[AzimuthSector(s.NormalizedAzimuth())]
}

func defaultElevation(s angle.State) string {
	return defaultElevationPhrases[bucket(s.Elevation, defaultElevationBounds)]
}

// Derive implements Strategy.
func (Structured) Derive(s angle.State) string {
	az := structuredAzimuthPhrases[AzimuthSector(s.NormalizedAzimuth())]
	el := structuredElevationPhrases[bucket(s.Elevation, structuredElevationBounds)]
	dist := structuredDistancePhrases[bucket(s.Distance, structuredDistanceBounds)]
	return az + " " + el + " " + dist
}

// Derive implements Strategy.
func (Custom) Derive(s angle.State) string {
	table := s.CustomPrompts
	if table == nil {
		table = &angle.CustomPrompts{}
	}

	az, ok := pickPhrase(s.NormalizedAzimuth(), angle.MinAzimuth, angle.MaxAzimuth, table.Azimuth)
	if !ok {
		az = defaultAzimuth(s)
	}
	el, ok := pickPhrase(s.Elevation, angle.MinElevation, angle.MaxElevation, table.Elevation)
	if !ok {
		el = defaultElevation(s)
	}
	intensity, ok := pickPhrase(s.Distance, angle.MinDistance, angle.MaxDistance, table.Intensity)
	if !ok {
		intensity = FallbackIntensity
	}
	color := ColorClause(table.Color, s.LightColor)

	return joinClauses(", ", az, el, intensity, color)
}
