// Package detector defines the proximity detector the navigator polls for obstacles.
package detector

import "context"

// A Detector reports objects in front of the base.
type Detector interface {
	// DetectedObject returns whether an object is currently in front of the base.
	DetectedObject(ctx context.Context) (bool, error)

	// ObjectDistance returns the distance to the object in front of the base.
	ObjectDistance(ctx context.Context) (float64, error)

	// DefaultObstacleDistance is the distance at or under which an object counts as detected.
	DefaultObstacleDistance() float64

	// ProcessObject classifies the object the base is currently facing.
	ProcessObject(ctx context.Context) error
}
