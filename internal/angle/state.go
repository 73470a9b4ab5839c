// Package angle holds the widget's single source of truth: the light direction,
// its distance and color, and which prompt wording the host asked for.
package angle

import (
	gomath "math"

	"github.com/Faultbox/lightrig/pkg/math"
)

// Parameter ranges. Azimuth keeps an inclusive 360 upper bound even though
// bucketing works modulo 360, so 0 and 360 are distinct stored values.
const (
	MinAzimuth   = 0.0
	MaxAzimuth   = 360.0
	MinElevation = -90.0
	MaxElevation = 90.0
	MinDistance  = 0.0
	MaxDistance  = 10.0

	DefaultAzimuth   = 0.0
	DefaultElevation = 0.0
	DefaultDistance  = 5.0
)

// Mode selects the prompt wording.
type Mode int

const (
	ModeDefault Mode = iota
	ModeStructured
	ModeCustom
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeStructured:
		return "structured"
	case ModeCustom:
		return "custom"
	default:
		return "default"
	}
}

// State is the widget's angle state. The zero value is not valid; use New.
type State struct {
	Azimuth    float64
	Elevation  float64
	Distance   float64
	LightColor Color

	// UseStructured and UseCustom mirror the host's useDefaultPrompts and
	// useCustomPrompts flags.
	UseStructured bool
	UseCustom     bool

	// CustomPrompts is nil when the host never sent a table.
	CustomPrompts *CustomPrompts

	ImageRef   string
	CameraView bool
}

// New returns the start-up state: front, eye level, mid distance, white light.
func New() State {
	return State{
		Azimuth:    DefaultAzimuth,
		Elevation:  DefaultElevation,
		Distance:   DefaultDistance,
		LightColor: White,
	}
}

// ClampAzimuth limits v to [0, 360].
func ClampAzimuth(v float64) float64 { return clampFinite(v, MinAzimuth, MaxAzimuth, DefaultAzimuth) }

// ClampElevation limits v to [-90, 90].
func ClampElevation(v float64) float64 {
	return clampFinite(v, MinElevation, MaxElevation, DefaultElevation)
}

// ClampDistance limits v to [0, 10].
func ClampDistance(v float64) float64 {
	return clampFinite(v, MinDistance, MaxDistance, DefaultDistance)
}

// clampFinite clamps v, replacing NaN with def so no invalid number reaches the state.
func clampFinite(v, lo, hi, def float64) float64 {
	if gomath.IsNaN(v) {
		return def
	}
	return math.Clamp(v, lo, hi)
}

// SetAzimuth stores a clamped azimuth.
func (s *State) SetAzimuth(v float64) { s.Azimuth = ClampAzimuth(v) }

// SetElevation stores a clamped elevation.
func (s *State) SetElevation(v float64) { s.Elevation = ClampElevation(v) }

// SetDistance stores a clamped distance.
func (s *State) SetDistance(v float64) { s.Distance = ClampDistance(v) }

// NormalizedAzimuth returns the azimuth folded into [0, 360).
func (s State) NormalizedAzimuth() float64 {
	a := gomath.Mod(s.Azimuth, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// RoundedAzimuth is the whole-degree azimuth reported to the host.
func (s State) RoundedAzimuth() int { return int(math.Round(s.Azimuth)) }

// RoundedElevation is the whole-degree elevation reported to the host.
func (s State) RoundedElevation() int { return int(math.Round(s.Elevation)) }

// RoundedDistance is the distance quantized to one decimal.
func (s State) RoundedDistance() float64 { return math.RoundTo(s.Distance, 1) }

// Mode returns the wording the host requested.
func (s State) Mode() Mode {
	switch {
	case s.UseCustom:
		return ModeCustom
	case s.UseStructured:
		return ModeStructured
	default:
		return ModeDefault
	}
}

// EffectiveMode returns the wording that is actually honoured. Custom needs a table
// with use_custom set; otherwise it falls back to structured or default.
func (s State) EffectiveMode() Mode {
	if s.UseCustom && s.CustomPrompts != nil && s.CustomPrompts.UseCustom {
		return ModeCustom
	}
	if s.UseStructured {
		return ModeStructured
	}
	return ModeDefault
}

// SetMode sets the mode flags for m.
func (s *State) SetMode(m Mode) {
	s.UseStructured = m == ModeStructured
	s.UseCustom = m == ModeCustom
}

// Reset puts the angles back to their defaults and the mode to Default.
// The light color, custom table, image and camera view are kept.
func (s *State) Reset() {
	s.Azimuth = DefaultAzimuth
	s.Elevation = DefaultElevation
	s.Distance = DefaultDistance
	s.SetMode(ModeDefault)
}
