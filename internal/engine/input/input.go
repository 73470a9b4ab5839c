// Package input maps pointer events on the rig to azimuth, elevation and distance values.
package input

import (
	gomath "math"

	"github.com/Faultbox/lightrig/internal/engine/camera"
	"github.com/Faultbox/lightrig/internal/engine/picking"
	"github.com/Faultbox/lightrig/internal/engine/rig"
	"github.com/Faultbox/lightrig/pkg/math"
)

// EventType is the kind of a pointer event.
type EventType int

const (
	EventNone EventType = iota
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventPointerLeave
	EventResize
)

// Event is a pointer event in widget-local pixels.
type Event struct {
	Type   EventType
	X      float64
	Y      float64
	Width  float64 // EventResize only
	Height float64 // EventResize only
}

// Cursor is the pointer affordance the presentation should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
)

func (c Cursor) String() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

// Outcome reports what a pointer event did.
type Outcome struct {
	// Resolved is set when the dragged axis got a new value.
	Resolved bool
	Handle   rig.Handle
	Value    float64

	// AffordanceChanged is set when hover or drag state changed.
	AffordanceChanged bool
}

// Mapper tracks hover and drag state and resolves pointer positions against the rig.
type Mapper struct {
	cam    *camera.PerspectiveCamera
	rig    *rig.Rig
	width  float64
	height float64

	invViewProj math.Mat4
}

// NewMapper creates a mapper for a viewport of the given size with the rig at its defaults.
func NewMapper(width, height float64) *Mapper {
	m := &Mapper{
		cam: camera.NewOverview(1),
		rig: rig.New(0, 0, 5),
	}
	m.Resize(width, height)
	return m
}

// Rig returns the rig the mapper hit-tests against.
func (m *Mapper) Rig() *rig.Rig { return m.rig }

// Camera returns the overview camera rays are cast from.
func (m *Mapper) Camera() *camera.PerspectiveCamera { return m.cam }

// Viewport returns the current viewport size in pixels.
func (m *Mapper) Viewport() (width, height float64) { return m.width, m.height }

// Resize updates the viewport. Degenerate sizes are ignored.
func (m *Mapper) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.cam.SetViewport(width, height)
	m.invViewProj = m.cam.InverseViewProjection()
}

// Sync re-places the handles for the given angles.
func (m *Mapper) Sync(azimuth, elevation, distance float64) {
	m.rig.Update(azimuth, elevation, distance)
}

// SetHidden hides the handles; hidden handles cannot be hovered or dragged.
func (m *Mapper) SetHidden(hidden bool) {
	m.rig.Hidden = hidden
	if hidden {
		m.rig.Hovered = rig.HandleNone
		m.rig.Dragged = rig.HandleNone
	}
}

// Dragging returns the locked drag target, or rig.HandleNone.
func (m *Mapper) Dragging() rig.Handle { return m.rig.Dragged }

// Hovered returns the handle under the pointer while not dragging.
func (m *Mapper) Hovered() rig.Handle { return m.rig.Hovered }

// Cursor returns the current pointer affordance.
func (m *Mapper) Cursor() Cursor {
	switch {
	case m.rig.Dragged != rig.HandleNone:
		return CursorGrabbing
	case m.rig.Hovered != rig.HandleNone:
		return CursorGrab
	default:
		return CursorDefault
	}
}

// Handle dispatches an event to Down, Move, Up, Leave or Resize.
func (m *Mapper) Handle(e Event) Outcome {
	switch e.Type {
	case EventPointerDown:
		return m.Down(e.X, e.Y)
	case EventPointerMove:
		return m.Move(e.X, e.Y)
	case EventPointerUp:
		return m.Up()
	case EventPointerLeave:
		return m.Leave()
	case EventResize:
		m.Resize(e.Width, e.Height)
	}
	return Outcome{}
}

func (m *Mapper) ready() bool {
	return m.width > 0 && m.height > 0
}

func (m *Mapper) ray(x, y float64) picking.Ray {
	return picking.ScreenToRay(x, y, m.width, m.height, m.invViewProj)
}

// Down starts a drag when the pointer is over a handle.
func (m *Mapper) Down(x, y float64) Outcome {
	if !m.ready() || m.rig.Dragged != rig.HandleNone {
		return Outcome{}
	}
	h := m.rig.HitTest(m.ray(x, y))
	if h == rig.HandleNone {
		return Outcome{}
	}
	m.rig.Dragged = h
	return Outcome{Handle: h, AffordanceChanged: true}
}

// Move updates hover while idle, or resolves the locked axis while dragging.
// The handle under the pointer is ignored during a drag.
func (m *Mapper) Move(x, y float64) Outcome {
	if !m.ready() {
		return Outcome{}
	}

	if m.rig.Dragged == rig.HandleNone {
		h := m.rig.HitTest(m.ray(x, y))
		if h == m.rig.Hovered {
			return Outcome{}
		}
		m.rig.Hovered = h
		return Outcome{Handle: h, AffordanceChanged: true}
	}

	h := m.rig.Dragged
	var (
		value float64
		ok    bool
	)
	switch h {
	case rig.HandleAzimuth:
		value, ok = ResolveAzimuth(m.ray(x, y))
	case rig.HandleElevation:
		value, ok = ResolveElevation(m.ray(x, y))
	case rig.HandleDistance:
		value, ok = ResolveDistance(picking.ScreenToNDC(x, y, m.width, m.height).Y), true
	}
	if !ok {
		return Outcome{Handle: h}
	}
	return Outcome{Resolved: true, Handle: h, Value: value}
}

// Up ends the drag.
func (m *Mapper) Up() Outcome {
	if m.rig.Dragged == rig.HandleNone {
		return Outcome{}
	}
	h := m.rig.Dragged
	m.rig.Dragged = rig.HandleNone
	m.rig.Hovered = rig.HandleNone
	return Outcome{Handle: h, AffordanceChanged: true}
}

// Leave ends the drag and clears hover.
func (m *Mapper) Leave() Outcome {
	out := m.Up()
	if m.rig.Hovered != rig.HandleNone {
		m.rig.Hovered = rig.HandleNone
		out.AffordanceChanged = true
	}
	return out
}

var (
	groundPlane    = picking.PlaneFromNormalAndPoint(math.Vec3{Y: 1}, math.Vec3{})
	elevationPlane = picking.PlaneFromNormalAndPoint(math.Vec3{X: 1}, math.Vec3{X: rig.ElevationArcX})
)

// ResolveAzimuth intersects the ray with the ground plane and returns the
// whole-degree azimuth in [0, 360] of the hit around the origin.
func ResolveAzimuth(r picking.Ray) (float64, bool) {
	p, ok := r.IntersectPlane(groundPlane)
	if !ok {
		return 0, false
	}
	a := math.Degrees(gomath.Atan2(p.X, p.Z))
	if a < 0 {
		a += 360
	}
	return math.Round(math.Clamp(a, 0, 360)), true
}

// ResolveElevation intersects the ray with the elevation arc's plane and returns
// the whole-degree elevation in [-90, 90] of the hit around the rig pivot.
func ResolveElevation(r picking.Ray) (float64, bool) {
	p, ok := r.IntersectPlane(elevationPlane)
	if !ok {
		return 0, false
	}
	a := math.Degrees(gomath.Atan2(p.Y-rig.Center.Y, p.Z))
	return math.Round(math.Clamp(a, -90, 90)), true
}

// ResolveDistance maps normalized pointer Y (1 at the top) to a distance in [0, 10]
// rounded to one decimal.
func ResolveDistance(ndcY float64) float64 {
	return math.RoundTo(math.Clamp(5-ndcY*5, 0, 10), 1)
}
