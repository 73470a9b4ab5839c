// Package camera provides the perspective cameras the rig is viewed through.
package camera

import (
	"github.com/Faultbox/lightrig/pkg/math"
)

// Overview camera placement: up and to the side of the rig, looking slightly above the floor.
var (
	OverviewPosition = math.Vec3{X: 4, Y: 3.5, Z: 4}
	OverviewTarget   = math.Vec3{X: 0, Y: 0.3, Z: 0}
)

// PerspectiveCamera is a look-at camera with a symmetric perspective frustum.
type PerspectiveCamera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FovY   float64 // Vertical field of view, degrees
	Aspect float64 // Width / height
	Near   float64
	Far    float64
}

// NewOverview creates the camera used for the rig overview and for picking.
func NewOverview(aspect float64) *PerspectiveCamera {
	return &PerspectiveCamera{
		Position: OverviewPosition,
		Target:   OverviewTarget,
		Up:       math.Vec3{Y: 1},
		FovY:     45,
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000,
	}
}

// NewPreview creates the camera that looks at the subject from the light indicator.
func NewPreview(aspect float64) *PerspectiveCamera {
	return &PerspectiveCamera{
		Up:     math.Vec3{Y: 1},
		FovY:   50,
		Aspect: aspect,
		Near:   0.1,
		Far:    100,
	}
}

// SetViewport updates the aspect ratio from a viewport size. Degenerate sizes are ignored.
func (c *PerspectiveCamera) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
}

// Follow moves the camera to pos and points it at target.
func (c *PerspectiveCamera) Follow(pos, target math.Vec3) {
	c.Position = pos
	c.Target = target
}

// ViewMatrix returns the view matrix for this camera.
func (c *PerspectiveCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection.
func (c *PerspectiveCamera) ProjectionMatrix() math.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FovY), aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// InverseViewProjection returns the matrix used to unproject screen points.
func (c *PerspectiveCamera) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}

// Project maps a world point to normalized device coordinates.
func (c *PerspectiveCamera) Project(p math.Vec3) math.Vec2 {
	ndc := c.ViewProjection().TransformVec3(p)
	return math.Vec2{X: ndc.X, Y: ndc.Y}
}
