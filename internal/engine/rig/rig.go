// Package rig places the three drag handles around the subject and hit-tests them.
package rig

import (
	gomath "math"

	"github.com/Faultbox/lightrig/internal/engine/lighting"
	"github.com/Faultbox/lightrig/internal/engine/picking"
	"github.com/Faultbox/lightrig/pkg/math"
)

// Rig layout in world units.
const (
	AzimuthRadius   = 1.8
	ElevationRadius = 1.4
	// ElevationArcX is the X of the vertical plane holding the elevation arc.
	ElevationArcX = -0.8
	// AzimuthHandleY lifts the azimuth handle just above the floor ring.
	AzimuthHandleY = 0.16

	AzimuthHandleRadius   = 0.16
	ElevationHandleRadius = 0.16
	DistanceHandleRadius  = 0.15
)

// Center is the subject pivot the elevation arc and indicator revolve around.
var Center = math.Vec3{X: 0, Y: 0.5, Z: 0}

// Handle identifies a draggable handle.
type Handle int

const (
	HandleNone Handle = iota
	HandleAzimuth
	HandleElevation
	HandleDistance
)

// Handles lists the pickable handles in hit-test priority order.
var Handles = [...]Handle{HandleAzimuth, HandleElevation, HandleDistance}

func (h Handle) String() string {
	switch h {
	case HandleAzimuth:
		return "azimuth"
	case HandleElevation:
		return "elevation"
	case HandleDistance:
		return "distance"
	default:
		return "none"
	}
}

// Handle scale per affordance.
const (
	ScaleIdle  = 1.0
	ScaleHover = 1.15
	ScaleDrag  = 1.3
)

// Layout is the world position of every rig element for one angle state.
type Layout struct {
	Azimuth   math.Vec3
	Elevation math.Vec3
	Distance  math.Vec3
	Indicator math.Vec3
}

// Place computes the layout for the given azimuth, elevation (degrees) and distance.
func Place(azimuth, elevation, distance float64) Layout {
	azRad := math.Radians(azimuth)
	elRad := math.Radians(elevation)

	indicator := lighting.IndicatorPosition(Center, azimuth, elevation, distance)

	// The distance handle slides from the pivot towards the indicator as distance drops.
	t := 0.15 + ((10-distance)/10)*0.7

	return Layout{
		Azimuth: math.Vec3{
			X: AzimuthRadius * gomath.Sin(azRad),
			Y: AzimuthHandleY,
			Z: AzimuthRadius * gomath.Cos(azRad),
		},
		Elevation: math.Vec3{
			X: ElevationArcX,
			Y: Center.Y + ElevationRadius*gomath.Sin(elRad),
			Z: ElevationRadius * gomath.Cos(elRad),
		},
		Distance:  Center.Lerp(indicator, t),
		Indicator: indicator,
	}
}

// Position returns the position of handle h.
func (l Layout) Position(h Handle) math.Vec3 {
	switch h {
	case HandleAzimuth:
		return l.Azimuth
	case HandleElevation:
		return l.Elevation
	case HandleDistance:
		return l.Distance
	default:
		return Center
	}
}

func baseRadius(h Handle) float64 {
	switch h {
	case HandleAzimuth:
		return AzimuthHandleRadius
	case HandleElevation:
		return ElevationHandleRadius
	case HandleDistance:
		return DistanceHandleRadius
	default:
		return 0
	}
}

// Rig tracks handle placement and the hover/drag affordances that scale the handles.
type Rig struct {
	Layout  Layout
	Hovered Handle
	Dragged Handle
	// Hidden disables picking, e.g. while the preview camera is shown.
	Hidden bool
}

// New creates a rig laid out for the given angles.
func New(azimuth, elevation, distance float64) *Rig {
	return &Rig{Layout: Place(azimuth, elevation, distance)}
}

// Update re-places the handles.
func (r *Rig) Update(azimuth, elevation, distance float64) {
	r.Layout = Place(azimuth, elevation, distance)
}

// Scale returns the current scale of handle h.
func (r *Rig) Scale(h Handle) float64 {
	switch {
	case h == HandleNone:
		return ScaleIdle
	case h == r.Dragged:
		return ScaleDrag
	case h == r.Hovered:
		return ScaleHover
	default:
		return ScaleIdle
	}
}

// Volume returns the hit sphere of handle h at its current scale.
func (r *Rig) Volume(h Handle) picking.Sphere {
	return picking.Sphere{Center: r.Layout.Position(h), Radius: baseRadius(h) * r.Scale(h)}
}

// HitTest returns the first handle the ray touches in priority order, or HandleNone.
func (r *Rig) HitTest(ray picking.Ray) Handle {
	if r.Hidden {
		return HandleNone
	}
	for _, h := range Handles {
		if _, hit := ray.IntersectSphere(r.Volume(h)); hit {
			return h
		}
	}
	return HandleNone
}
