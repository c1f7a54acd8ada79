package spatialmath

import (
	"math"

	"go.viam.com/navcore/utils"
)

const twoPi = 2 * math.Pi

// NormalizeRadians maps theta into [0, 2π).
func NormalizeRadians(theta float64) float64 {
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	// math.Mod of a tiny negative number can round back up to 2π.
	if theta >= twoPi {
		theta = 0
	}
	return theta
}

// BearingTo returns the absolute heading, in [0, 2π), that points from the origin toward
// (dx, dy). Zero is along +x and angles grow counter-clockwise. A zero displacement has no
// bearing and returns 0.
func BearingTo(dx, dy float64) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}
	return NormalizeRadians(math.Atan2(dy, dx))
}

// ShortestTurn returns the signed rotation in (-π, π] that takes the current heading to the
// target heading along the shorter arc. Positive is counter-clockwise.
func ShortestTurn(target, current float64) float64 {
	delta := math.Mod(target-current, twoPi)
	switch {
	case delta <= -math.Pi:
		delta += twoPi
	case delta > math.Pi:
		delta -= twoPi
	}
	return delta
}

// WheelRotationDegrees converts a rotation of the body in place into the number of degrees each
// wheel of a differential-drive base has to turn. Each wheel travels an arc of
// (axleLength / 2) * bodyRotation around the center of the axle.
func WheelRotationDegrees(wheelRadius, axleLength, bodyRotationDegrees float64) float64 {
	arc := axleLength / 2 * utils.DegToRad(bodyRotationDegrees)
	return utils.RadToDeg(arc / wheelRadius)
}

// WheelDegreesForDistance returns how many degrees a wheel of the given radius turns to roll
// the given distance.
func WheelDegreesForDistance(wheelRadius, distance float64) float64 {
	return utils.RadToDeg(distance / wheelRadius)
}

// DistanceForWheelDegrees is the inverse of WheelDegreesForDistance.
func DistanceForWheelDegrees(wheelRadius, degrees float64) float64 {
	return utils.DegToRad(degrees) * wheelRadius
}
