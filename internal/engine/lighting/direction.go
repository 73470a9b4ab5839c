// Package lighting converts the rig's angle parameters into light geometry.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/lightrig/pkg/math"
)

// Direction converts azimuth/elevation in degrees to a unit vector pointing at the light.
// Azimuth 0 points down +Z (towards the viewer of the subject) and grows towards +X.
func Direction(azimuth, elevation float64) math.Vec3 {
	azRad := math.Radians(azimuth)
	elRad := math.Radians(elevation)

	return math.Vec3{
		X: gomath.Cos(elRad) * gomath.Sin(azRad),
		Y: gomath.Sin(elRad),
		Z: gomath.Cos(elRad) * gomath.Cos(azRad),
	}
}

// IndicatorDistance maps the 0..10 distance parameter to how far the light indicator sits
// from the subject: 0 is farthest (2.6 units), 10 is nearest (0.6 units).
func IndicatorDistance(distance float64) float64 {
	return 2.6 - (distance/10)*2.0
}

// IndicatorPosition returns where the light indicator sits around center.
func IndicatorPosition(center math.Vec3, azimuth, elevation, distance float64) math.Vec3 {
	return center.Add(Direction(azimuth, elevation).Scale(IndicatorDistance(distance)))
}
