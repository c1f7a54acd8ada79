// Package motor defines the regulated wheel motors a differential-drive base is built from.
// Speeds are in degrees of shaft rotation per second and rotations in shaft degrees.
package motor

import (
	"context"
	"math"
)

// A Motor is a speed-regulated motor that can run continuously or turn through a given angle.
type Motor interface {
	// SetSpeed sets the speed, in degrees per second, used by later Forward and Rotate calls.
	// Only the magnitude is used; direction comes from the command.
	SetSpeed(ctx context.Context, degsPerSec float64) error

	// SetAcceleration sets the acceleration, in degrees per second squared, used to reach the set speed.
	SetAcceleration(ctx context.Context, degsPerSecSq float64) error

	// Forward runs the motor forward at the set speed until another command arrives.
	Forward(ctx context.Context) error

	// Rotate turns the motor by the given number of degrees at the set speed. Negative degrees
	// turn backward. This blocks until the rotation has completed or ctx is done.
	Rotate(ctx context.Context, degrees float64) error

	// Stop stops the motor.
	Stop(ctx context.Context) error

	// IsMoving returns whether the motor is currently turning.
	IsMoving(ctx context.Context) (bool, error)
}

// CheckSpeed returns an error when the speed is too small to move the motor.
func CheckSpeed(degsPerSec float64) error {
	if math.Abs(degsPerSec) < 0.1 {
		return NewZeroSpeedError()
	}
	return nil
}
