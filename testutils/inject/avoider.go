package inject

import (
	"context"

	"github.com/golang/geo/r2"

	"go.viam.com/navcore/services/avoidance"
)

// Avoider is an injected avoider.
type Avoider struct {
	avoidance.Avoider
	AvoidObstacleFunc func(ctx context.Context, target r2.Point) error
}

// NewAvoider returns a new injected avoider.
func NewAvoider() *Avoider {
	return &Avoider{}
}

// AvoidObstacle calls the injected AvoidObstacle or the real version.
func (a *Avoider) AvoidObstacle(ctx context.Context, target r2.Point) error {
	if a.AvoidObstacleFunc == nil {
		return a.Avoider.AvoidObstacle(ctx, target)
	}
	return a.AvoidObstacleFunc(ctx, target)
}
