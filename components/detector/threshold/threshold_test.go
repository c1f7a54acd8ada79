package threshold

import (
	"context"
	"errors"
	"testing"

	"go.viam.com/test"

	"go.viam.com/navcore/logging"
	"go.viam.com/navcore/testutils/inject"
)

func distanceSensor(reading interface{}) *inject.Sensor {
	s := inject.NewSensor()
	s.ReadingsFunc = func(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
		readings := map[string]interface{}{"distance": reading}
		if extra[ClassifyKey] == true {
			readings[ObjectKey] = "flag"
		}
		return readings, nil
	}
	return s
}

func TestDetector(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewTestLogger(t)

	t.Run("defaults", func(t *testing.T) {
		d, err := NewDetector(distanceSensor(50.0), Config{}, logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d.DefaultObstacleDistance(), test.ShouldEqual, 20.0)
	})

	t.Run("detects at or under threshold", func(t *testing.T) {
		for _, tc := range []struct {
			reading  interface{}
			detected bool
		}{
			{5.0, true},
			{15, true},
			{"15.5", true},
			{int64(16), true},
			{16.01, false},
			{255.0, false},
		} {
			d, err := NewDetector(distanceSensor(tc.reading), Config{DefaultObstacleDistance: 16}, logger)
			test.That(t, err, test.ShouldBeNil)
			detected, err := d.DetectedObject(ctx)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, detected, test.ShouldEqual, tc.detected)
		}
	})

	t.Run("object distance", func(t *testing.T) {
		d, err := NewDetector(distanceSensor(float32(12.5)), Config{}, logger)
		test.That(t, err, test.ShouldBeNil)
		dist, err := d.ObjectDistance(ctx)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dist, test.ShouldEqual, 12.5)
	})

	t.Run("custom key", func(t *testing.T) {
		s := inject.NewSensor()
		s.ReadingsFunc = func(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
			return map[string]interface{}{"range_cm": 7}, nil
		}
		d, err := NewDetector(s, Config{DistanceKey: "range_cm"}, logger)
		test.That(t, err, test.ShouldBeNil)
		dist, err := d.ObjectDistance(ctx)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dist, test.ShouldEqual, 7.0)
	})

	t.Run("bad readings", func(t *testing.T) {
		d, err := NewDetector(distanceSensor("far"), Config{}, logger)
		test.That(t, err, test.ShouldBeNil)
		_, err = d.DetectedObject(ctx)
		test.That(t, err, test.ShouldNotBeNil)

		s := inject.NewSensor()
		s.ReadingsFunc = func(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
			return map[string]interface{}{}, nil
		}
		d, err = NewDetector(s, Config{}, logger)
		test.That(t, err, test.ShouldBeNil)
		_, err = d.ObjectDistance(ctx)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "distance")

		s.ReadingsFunc = func(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
			return nil, errors.New("bus error")
		}
		_, err = d.ObjectDistance(ctx)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "bus error")
	})

	t.Run("process object", func(t *testing.T) {
		d, err := NewDetector(distanceSensor(5.0), Config{}, logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d.ProcessObject(ctx), test.ShouldBeNil)
		test.That(t, d.ProcessObject(ctx), test.ShouldBeNil)
		test.That(t, d.Classified(), test.ShouldResemble, []string{"flag", "flag"})

		s := inject.NewSensor()
		s.ReadingsFunc = func(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
			return map[string]interface{}{"distance": 5.0}, nil
		}
		d, err = NewDetector(s, Config{}, logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d.ProcessObject(ctx), test.ShouldBeNil)
		test.That(t, d.Classified(), test.ShouldResemble, []string{"unknown"})
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewDetector(distanceSensor(5.0), Config{DefaultObstacleDistance: -1}, logger)
		test.That(t, err, test.ShouldNotBeNil)
		_, err = NewDetector(nil, Config{}, logger)
		test.That(t, err, test.ShouldNotBeNil)
	})
}
