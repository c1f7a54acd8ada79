package inject

import (
	"context"

	"github.com/golang/geo/r2"

	"go.viam.com/navcore/components/odometry"
	"go.viam.com/navcore/spatialmath"
)

// Odometer is an injected odometer.
type Odometer struct {
	odometry.Odometer
	PoseFunc        func(ctx context.Context) (spatialmath.Pose, error)
	SetPositionFunc func(ctx context.Context, pt r2.Point) error
}

// NewOdometer returns a new injected odometer.
func NewOdometer() *Odometer {
	return &Odometer{}
}

// Pose calls the injected Pose or the real version.
func (o *Odometer) Pose(ctx context.Context) (spatialmath.Pose, error) {
	if o.PoseFunc == nil {
		return o.Odometer.Pose(ctx)
	}
	return o.PoseFunc(ctx)
}

// SetPosition calls the injected SetPosition or the real version.
func (o *Odometer) SetPosition(ctx context.Context, pt r2.Point) error {
	if o.SetPositionFunc == nil {
		return o.Odometer.SetPosition(ctx, pt)
	}
	return o.SetPositionFunc(ctx, pt)
}
