// Package wheeled implements the motion primitives of a base driven by a left and a right motor.
package wheeled

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"go.viam.com/navcore/components/base"
	"go.viam.com/navcore/components/motor"
	"go.viam.com/navcore/logging"
	"go.viam.com/navcore/spatialmath"
)

const defaultAcceleration = 2000

// Config is how you configure a wheeled base.
type Config struct {
	base.Geometry
	Acceleration float64 `json:"acceleration,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if err := cfg.Geometry.Validate(path); err != nil {
		return err
	}
	if cfg.Acceleration < 0 {
		return motor.NewNegativeAccelerationError(cfg.Acceleration)
	}
	return nil
}

type wheeledBase struct {
	geometry base.Geometry
	left     motor.Motor
	right    motor.Motor
	logger   logging.Logger
}

// NewWheeledBase returns a base that drives the given left and right motors. Both motors are
// stopped and given the configured acceleration.
func NewWheeledBase(ctx context.Context, left, right motor.Motor, cfg Config, logger logging.Logger) (base.Base, error) {
	if err := cfg.Validate("base"); err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, errors.New("wheeled base needs a left and a right motor")
	}
	accel := cfg.Acceleration
	if accel == 0 {
		accel = defaultAcceleration
	}

	wb := &wheeledBase{
		geometry: cfg.Geometry,
		left:     left,
		right:    right,
		logger:   logger,
	}
	var err error
	for _, m := range []motor.Motor{left, right} {
		err = multierr.Combine(err, m.Stop(ctx), m.SetAcceleration(ctx, accel))
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot initialize wheel motors")
	}
	return wb, nil
}

// Stop commands both wheels to stop.
func (wb *wheeledBase) Stop(ctx context.Context) error {
	return multierr.Combine(wb.left.Stop(ctx), wb.right.Stop(ctx))
}

// SetSpeeds sets the speed of each wheel.
func (wb *wheeledBase) SetSpeeds(ctx context.Context, left, right float64) error {
	return multierr.Combine(wb.left.SetSpeed(ctx, left), wb.right.SetSpeed(ctx, right))
}

// RotateBy turns each wheel by the given degrees.
func (wb *wheeledBase) RotateBy(ctx context.Context, leftDegrees, rightDegrees float64) error {
	wb.logger.Debugf("received a RotateBy with left:%.2f, right:%.2f", leftDegrees, rightDegrees)
	return wb.runAll(ctx, leftDegrees, rightDegrees)
}

// MoveStraight drives both wheels through the same angle.
func (wb *wheeledBase) MoveStraight(ctx context.Context, distance float64) error {
	wb.logger.Debugf("received a MoveStraight with distance:%.2f", distance)
	if distance == 0 {
		return wb.Stop(ctx)
	}
	degrees := spatialmath.WheelDegreesForDistance(wb.geometry.WheelRadius, distance)
	return wb.runAll(ctx, degrees, degrees)
}

// Forward runs both wheels forward.
func (wb *wheeledBase) Forward(ctx context.Context) error {
	if err := multierr.Combine(wb.left.Forward(ctx), wb.right.Forward(ctx)); err != nil {
		return multierr.Combine(err, wb.Stop(context.WithoutCancel(ctx)))
	}
	return nil
}

// Geometry returns the configured wheel radius and axle length.
func (wb *wheeledBase) Geometry() base.Geometry {
	return wb.geometry
}

// runAll issues both wheel rotations as independent requests and waits on both. If either fails
// the other is cancelled and both wheels are stopped.
func (wb *wheeledBase) runAll(ctx context.Context, leftDegrees, rightDegrees float64) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return errors.Wrap(wb.left.Rotate(gctx, leftDegrees), "left wheel")
	})
	g.Go(func() error {
		return errors.Wrap(wb.right.Rotate(gctx, rightDegrees), "right wheel")
	})
	if err := g.Wait(); err != nil {
		return multierr.Combine(err, wb.Stop(context.WithoutCancel(ctx)))
	}
	return nil
}
