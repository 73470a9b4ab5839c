// Package picking provides ray casting against the rig's planes and handle volumes.
package picking

import (
	gomath "math"

	"github.com/Faultbox/lightrig/pkg/math"
)

// parallelEpsilon is the |dir·normal| below which a ray counts as parallel to a plane.
const parallelEpsilon = 1e-12

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToNDC converts pixel coordinates inside a viewport to normalized device coords.
// X grows right and Y grows up, both in [-1, 1] inside the viewport.
func ScreenToNDC(screenX, screenY, viewportW, viewportH float64) math.Vec2 {
	if viewportW <= 0 || viewportH <= 0 {
		return math.Vec2{}
	}
	return math.Vec2{
		X: 2.0*screenX/viewportW - 1.0,
		Y: 1.0 - 2.0*screenY/viewportH, // Flip Y
	}
}

// ScreenToRay converts screen coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, invViewProj math.Mat4) Ray {
	return NDCToRay(ScreenToNDC(screenX, screenY, viewportW, viewportH), invViewProj)
}

// NDCToRay unprojects a point on the near and far planes and returns the ray between them.
func NDCToRay(ndc math.Vec2, invViewProj math.Mat4) Ray {
	nearWorld := invViewProj.MulVec4(math.Vec4{ndc.X, ndc.Y, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(math.Vec4{ndc.X, ndc.Y, 1.0, 1.0})

	near := perspectiveDivide(nearWorld)
	far := perspectiveDivide(farWorld)

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func perspectiveDivide(v math.Vec4) math.Vec3 {
	if v[3] != 0 {
		return math.Vec3{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Plane is the set of points p with Normal·p + Constant = 0.
type Plane struct {
	Normal   math.Vec3
	Constant float64
}

// PlaneFromNormalAndPoint builds the plane through point with the given normal.
func PlaneFromNormalAndPoint(normal, point math.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Constant: -n.Dot(point)}
}

// DistanceTo returns the signed distance from point to the plane.
func (p Plane) DistanceTo(point math.Vec3) float64 {
	return p.Normal.Dot(point) + p.Constant
}

// IntersectPlane returns the point where the ray meets the plane.
// A ray parallel to the plane, or one whose hit lies behind the origin, misses.
func (r Ray) IntersectPlane(p Plane) (math.Vec3, bool) {
	denominator := p.Normal.Dot(r.Direction)
	if gomath.Abs(denominator) < parallelEpsilon {
		if p.DistanceTo(r.Origin) == 0 {
			return r.Origin, true
		}
		return math.Vec3{}, false
	}

	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denominator
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// Sphere is a spherical hit volume.
type Sphere struct {
	Center math.Vec3
	Radius float64
}

// IntersectSphere returns the nearest non-negative hit distance along the ray.
// If the ray starts inside the sphere, the exit distance is returned.
func (r Ray) IntersectSphere(s Sphere) (t float64, hit bool) {
	oc := r.Origin.Sub(s.Center)

	// Quadratic: a*t^2 + 2*halfB*t + c = 0
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return 0, false
	}
	halfB := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := gomath.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root < 0 {
		root = (-halfB + sqrtD) / a
		if root < 0 {
			return 0, false
		}
	}
	return root, true
}
