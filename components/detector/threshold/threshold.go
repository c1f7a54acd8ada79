// Package threshold implements a detector that reports an object whenever a distance sensor
// reads at or under a fixed threshold.
package threshold

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.viam.com/utils"

	"go.viam.com/navcore/components/detector"
	"go.viam.com/navcore/components/sensor"
	"go.viam.com/navcore/logging"
)

const (
	defaultDistanceKey      = "distance"
	defaultObstacleDistance = 20

	// ClassifyKey is set in the extra map of the Readings call made by ProcessObject so sensors
	// that can classify what they see return a classification.
	ClassifyKey = "classify"
	// ObjectKey is the readings key a classification is returned under.
	ObjectKey = "object"
)

// Config is how you configure a threshold detector.
type Config struct {
	DefaultObstacleDistance float64 `json:"default_obstacle_distance,omitempty"`
	DistanceKey             string  `json:"distance_key,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.DefaultObstacleDistance < 0 {
		return utils.NewConfigValidationError(path, errors.New("default_obstacle_distance cannot be negative"))
	}
	return nil
}

// Detector is a detector.Detector reading distances from a sensor.
type Detector struct {
	mu         sync.Mutex
	sensor     sensor.Sensor
	threshold  float64
	key        string
	logger     logging.Logger
	classified []string
}

var _ detector.Detector = (*Detector)(nil)

// NewDetector returns a detector that polls the given sensor.
func NewDetector(s sensor.Sensor, cfg Config, logger logging.Logger) (*Detector, error) {
	if err := cfg.Validate("detector"); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("threshold detector needs a distance sensor")
	}
	d := &Detector{
		sensor:    s,
		threshold: cfg.DefaultObstacleDistance,
		key:       cfg.DistanceKey,
		logger:    logger,
	}
	if d.threshold == 0 {
		d.threshold = defaultObstacleDistance
	}
	if d.key == "" {
		d.key = defaultDistanceKey
	}
	return d, nil
}

// DetectedObject returns whether the sensor reads at or under the obstacle distance.
func (d *Detector) DetectedObject(ctx context.Context) (bool, error) {
	dist, err := d.ObjectDistance(ctx)
	if err != nil {
		return false, err
	}
	return dist <= d.threshold, nil
}

// ObjectDistance returns the latest distance reading.
func (d *Detector) ObjectDistance(ctx context.Context) (float64, error) {
	readings, err := d.sensor.Readings(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "cannot read distance sensor")
	}
	raw, ok := readings[d.key]
	if !ok {
		return 0, errors.Errorf("distance sensor readings have no %q", d.key)
	}
	dist, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "distance sensor reading %q", d.key)
	}
	return dist, nil
}

// DefaultObstacleDistance returns the detection threshold.
func (d *Detector) DefaultObstacleDistance() float64 {
	return d.threshold
}

// ProcessObject asks the sensor to classify the object in front of it and records the answer.
// Sensors that cannot classify leave the object recorded as "unknown".
func (d *Detector) ProcessObject(ctx context.Context) error {
	readings, err := d.sensor.Readings(ctx, map[string]interface{}{ClassifyKey: true})
	if err != nil {
		return errors.Wrap(err, "cannot classify object")
	}
	object := "unknown"
	if raw, ok := readings[ObjectKey]; ok {
		if object, err = cast.ToStringE(raw); err != nil {
			return errors.Wrapf(err, "object classification %q", ObjectKey)
		}
	}
	d.logger.Infow("processed object", "object", object, "distance", readings[d.key])

	d.mu.Lock()
	d.classified = append(d.classified, object)
	d.mu.Unlock()
	return nil
}

// Classified returns every classification made so far, oldest first.
func (d *Detector) Classified() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.classified...)
}
