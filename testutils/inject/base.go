package inject

import (
	"context"

	"go.viam.com/navcore/components/base"
)

// Base is an injected base.
type Base struct {
	base.Base
	StopFunc         func(ctx context.Context) error
	SetSpeedsFunc    func(ctx context.Context, left, right float64) error
	RotateByFunc     func(ctx context.Context, leftDegrees, rightDegrees float64) error
	MoveStraightFunc func(ctx context.Context, distance float64) error
	ForwardFunc      func(ctx context.Context) error
	GeometryFunc     func() base.Geometry
}

// NewBase returns a new injected base.
func NewBase() *Base {
	return &Base{}
}

// Stop calls the injected Stop or the real version.
func (b *Base) Stop(ctx context.Context) error {
	if b.StopFunc == nil {
		return b.Base.Stop(ctx)
	}
	return b.StopFunc(ctx)
}

// SetSpeeds calls the injected SetSpeeds or the real version.
func (b *Base) SetSpeeds(ctx context.Context, left, right float64) error {
	if b.SetSpeedsFunc == nil {
		return b.Base.SetSpeeds(ctx, left, right)
	}
	return b.SetSpeedsFunc(ctx, left, right)
}

// RotateBy calls the injected RotateBy or the real version.
func (b *Base) RotateBy(ctx context.Context, leftDegrees, rightDegrees float64) error {
	if b.RotateByFunc == nil {
		return b.Base.RotateBy(ctx, leftDegrees, rightDegrees)
	}
	return b.RotateByFunc(ctx, leftDegrees, rightDegrees)
}

// MoveStraight calls the injected MoveStraight or the real version.
func (b *Base) MoveStraight(ctx context.Context, distance float64) error {
	if b.MoveStraightFunc == nil {
		return b.Base.MoveStraight(ctx, distance)
	}
	return b.MoveStraightFunc(ctx, distance)
}

// Forward calls the injected Forward or the real version.
func (b *Base) Forward(ctx context.Context) error {
	if b.ForwardFunc == nil {
		return b.Base.Forward(ctx)
	}
	return b.ForwardFunc(ctx)
}

// Geometry calls the injected Geometry or the real version.
func (b *Base) Geometry() base.Geometry {
	if b.GeometryFunc == nil {
		return b.Base.Geometry()
	}
	return b.GeometryFunc()
}
