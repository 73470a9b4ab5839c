// Package anim advances the rig's cosmetic animation: the indicator glow pulse
// and the slow rotation of the glow ring. It never touches the angle state.
package anim

import (
	gomath "math"
)

// Per-tick constants.
const (
	TimeStep       = 0.01
	RingSpin       = 0.003
	PulseAmount    = 0.03
	pulseFrequency = 2
)

// Frame is the animation state after a tick.
type Frame struct {
	Tick         uint64
	Time         float64
	Pulse        float64 // glow scale around 1
	RingRotation float64 // radians
}

// Loop is a visibility-gated animation clock. The owner calls Step once per tick.
type Loop struct {
	frame   Frame
	visible bool
}

// New creates a visible loop at rest.
func New() *Loop {
	return &Loop{frame: Frame{Pulse: 1}, visible: true}
}

// SetVisible gates the loop; hidden loops skip their ticks.
func (l *Loop) SetVisible(visible bool) { l.visible = visible }

// Visible reports whether ticks advance the animation.
func (l *Loop) Visible() bool { return l.visible }

// Frame returns the current animation state.
func (l *Loop) Frame() Frame { return l.frame }

// Step advances one tick. It returns false, leaving the frame untouched, while hidden.
func (l *Loop) Step() (Frame, bool) {
	if !l.visible {
		return l.frame, false
	}
	f := &l.frame
	f.Tick++
	f.Time += TimeStep
	f.Pulse = 1 + gomath.Sin(f.Time*pulseFrequency)*PulseAmount
	f.RingRotation = gomath.Mod(f.RingRotation+RingSpin, 2*gomath.Pi)
	return l.frame, true
}
