// Package odometry defines the dead-reckoning pose estimator the navigator reads its position from.
package odometry

import (
	"context"

	"github.com/golang/geo/r2"

	"go.viam.com/navcore/spatialmath"
)

// An Odometer estimates the pose of the base in the world frame.
type Odometer interface {
	// Pose returns a snapshot of the current pose estimate.
	Pose(ctx context.Context) (spatialmath.Pose, error)

	// SetPosition overwrites the estimated position, keeping the current heading.
	SetPosition(ctx context.Context, pt r2.Point) error
}
