package inject

import (
	"context"

	"go.viam.com/navcore/components/detector"
)

// Detector is an injected detector.
type Detector struct {
	detector.Detector
	DetectedObjectFunc          func(ctx context.Context) (bool, error)
	ObjectDistanceFunc          func(ctx context.Context) (float64, error)
	DefaultObstacleDistanceFunc func() float64
	ProcessObjectFunc           func(ctx context.Context) error
}

// NewDetector returns a new injected detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectedObject calls the injected DetectedObject or the real version.
func (d *Detector) DetectedObject(ctx context.Context) (bool, error) {
	if d.DetectedObjectFunc == nil {
		return d.Detector.DetectedObject(ctx)
	}
	return d.DetectedObjectFunc(ctx)
}

// ObjectDistance calls the injected ObjectDistance or the real version.
func (d *Detector) ObjectDistance(ctx context.Context) (float64, error) {
	if d.ObjectDistanceFunc == nil {
		return d.Detector.ObjectDistance(ctx)
	}
	return d.ObjectDistanceFunc(ctx)
}

// DefaultObstacleDistance calls the injected DefaultObstacleDistance or the real version.
func (d *Detector) DefaultObstacleDistance() float64 {
	if d.DefaultObstacleDistanceFunc == nil {
		return d.Detector.DefaultObstacleDistance()
	}
	return d.DefaultObstacleDistanceFunc()
}

// ProcessObject calls the injected ProcessObject or the real version.
func (d *Detector) ProcessObject(ctx context.Context) error {
	if d.ProcessObjectFunc == nil {
		return d.Detector.ProcessObject(ctx)
	}
	return d.ProcessObjectFunc(ctx)
}
