package inject

import (
	"context"

	"go.viam.com/navcore/components/sensor"
)

// Sensor is an injected sensor.
type Sensor struct {
	sensor.Sensor
	ReadingsFunc func(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error)
}

// NewSensor returns a new injected sensor.
func NewSensor() *Sensor {
	return &Sensor{}
}

// Readings calls the injected Readings or the real version.
func (s *Sensor) Readings(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
	if s.ReadingsFunc == nil {
		return s.Sensor.Readings(ctx, extra)
	}
	return s.ReadingsFunc(ctx, extra)
}
