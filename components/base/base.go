// Package base defines the motion primitives of a differential-drive base: the small set of
// imperative commands navigation issues to the left and right drive wheels.
package base

import (
	"context"

	"go.viam.com/utils"
)

// Geometry holds the fixed drive dimensions of a base, in world distance units.
type Geometry struct {
	WheelRadius float64 `json:"wheel_radius"`
	AxleLength  float64 `json:"axle_length"`
}

// Validate ensures all parts of the geometry are valid.
func (g *Geometry) Validate(path string) error {
	if g.WheelRadius <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "wheel_radius")
	}
	if g.AxleLength <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "axle_length")
	}
	return nil
}

// A Base exposes the motion primitives of a two-wheeled differential-drive robot. It holds no
// navigation state; every method is an imperative command to the drive wheels.
type Base interface {
	// Stop stops both wheels.
	Stop(ctx context.Context) error

	// SetSpeeds sets the speed, in wheel degrees per second, of the left and right wheels used by
	// later Forward, RotateBy and MoveStraight calls.
	SetSpeeds(ctx context.Context, left, right float64) error

	// RotateBy turns the left and right wheels by the given number of degrees. Both rotations are
	// requested together and RotateBy returns once both have completed.
	RotateBy(ctx context.Context, leftDegrees, rightDegrees float64) error

	// MoveStraight drives the given distance in a straight line and blocks until done.
	// A negative distance drives backward.
	MoveStraight(ctx context.Context, distance float64) error

	// Forward runs both wheels forward at their set speeds until the next command.
	Forward(ctx context.Context) error

	// Geometry returns the drive dimensions of the base.
	Geometry() Geometry
}
