package inject

import (
	"context"

	"go.viam.com/navcore/components/motor"
)

// Motor is an injected motor.
type Motor struct {
	motor.Motor
	SetSpeedFunc        func(ctx context.Context, degsPerSec float64) error
	SetAccelerationFunc func(ctx context.Context, degsPerSecSq float64) error
	ForwardFunc         func(ctx context.Context) error
	RotateFunc          func(ctx context.Context, degrees float64) error
	StopFunc            func(ctx context.Context) error
	IsMovingFunc        func(ctx context.Context) (bool, error)
}

// NewMotor returns a new injected motor.
func NewMotor() *Motor {
	return &Motor{}
}

// SetSpeed calls the injected SetSpeed or the real version.
func (m *Motor) SetSpeed(ctx context.Context, degsPerSec float64) error {
	if m.SetSpeedFunc == nil {
		return m.Motor.SetSpeed(ctx, degsPerSec)
	}
	return m.SetSpeedFunc(ctx, degsPerSec)
}

// SetAcceleration calls the injected SetAcceleration or the real version.
func (m *Motor) SetAcceleration(ctx context.Context, degsPerSecSq float64) error {
	if m.SetAccelerationFunc == nil {
		return m.Motor.SetAcceleration(ctx, degsPerSecSq)
	}
	return m.SetAccelerationFunc(ctx, degsPerSecSq)
}

// Forward calls the injected Forward or the real version.
func (m *Motor) Forward(ctx context.Context) error {
	if m.ForwardFunc == nil {
		return m.Motor.Forward(ctx)
	}
	return m.ForwardFunc(ctx)
}

// Rotate calls the injected Rotate or the real version.
func (m *Motor) Rotate(ctx context.Context, degrees float64) error {
	if m.RotateFunc == nil {
		return m.Motor.Rotate(ctx, degrees)
	}
	return m.RotateFunc(ctx, degrees)
}

// Stop calls the injected Stop or the real version.
func (m *Motor) Stop(ctx context.Context) error {
	if m.StopFunc == nil {
		return m.Motor.Stop(ctx)
	}
	return m.StopFunc(ctx)
}

// IsMoving calls the injected IsMoving or the real version.
func (m *Motor) IsMoving(ctx context.Context) (bool, error) {
	if m.IsMovingFunc == nil {
		return m.Motor.IsMoving(ctx)
	}
	return m.IsMovingFunc(ctx)
}
