// Package sidestep implements an avoider that pivots toward the side of the target and drives a
// fixed clearance before handing control back.
package sidestep

import (
	"context"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/navcore/components/base"
	"go.viam.com/navcore/components/detector"
	"go.viam.com/navcore/components/odometry"
	"go.viam.com/navcore/logging"
	"go.viam.com/navcore/services/avoidance"
	"go.viam.com/navcore/spatialmath"
	rutils "go.viam.com/navcore/utils"
)

// Model is the name the sidestep avoider is registered under.
const Model = "sidestep"

const (
	defaultTurnDegrees = 90.
	defaultClearance   = 30.
	defaultRotateSpeed = 100.
	defaultDriveSpeed  = 200.
	defaultMaxAttempts = 4
)

func init() {
	avoidance.Register(Model, avoidance.Registration{
		AttributeMapConverter: func(attributes rutils.AttributeMap) (interface{}, error) {
			var conf Config
			if err := rutils.TransformAttributeMapToStruct(&conf, attributes); err != nil {
				return nil, err
			}
			return &conf, nil
		},
		Constructor: func(
			ctx context.Context,
			deps avoidance.Dependencies,
			conf interface{},
			logger logging.Logger,
		) (avoidance.Avoider, error) {
			c, ok := conf.(*Config)
			if !ok {
				return nil, rutils.NewUnexpectedTypeError(c, conf)
			}
			return NewAvoider(deps, *c, logger)
		},
	})
}

// Config is how you configure a sidestep avoider. Zero values take defaults.
type Config struct {
	TurnDegrees float64 `json:"turn_degrees,omitempty"`
	Clearance   float64 `json:"clearance,omitempty"`
	RotateSpeed float64 `json:"rotate_speed,omitempty"`
	DriveSpeed  float64 `json:"drive_speed,omitempty"`
	MaxAttempts int     `json:"max_attempts,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	for name, v := range map[string]float64{
		"turn_degrees": cfg.TurnDegrees,
		"clearance":    cfg.Clearance,
		"rotate_speed": cfg.RotateSpeed,
		"drive_speed":  cfg.DriveSpeed,
	} {
		if v < 0 {
			return utils.NewConfigValidationError(path, errors.Errorf("%s cannot be negative", name))
		}
	}
	if cfg.TurnDegrees >= 180 {
		return utils.NewConfigValidationError(path, errors.New("turn_degrees must be under 180"))
	}
	if cfg.MaxAttempts < 0 {
		return utils.NewConfigValidationError(path, errors.New("max_attempts cannot be negative"))
	}
	return nil
}

func (cfg Config) withDefaults() Config {
	if cfg.TurnDegrees == 0 {
		cfg.TurnDegrees = defaultTurnDegrees
	}
	if cfg.Clearance == 0 {
		cfg.Clearance = defaultClearance
	}
	if cfg.RotateSpeed == 0 {
		cfg.RotateSpeed = defaultRotateSpeed
	}
	if cfg.DriveSpeed == 0 {
		cfg.DriveSpeed = defaultDriveSpeed
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	return cfg
}

type sidestep struct {
	base     base.Base
	odometer odometry.Odometer
	detector detector.Detector
	cfg      Config
	logger   logging.Logger
}

// NewAvoider returns a sidestep avoider. The detector is optional; without one every pivot is
// assumed to clear the object.
func NewAvoider(deps avoidance.Dependencies, cfg Config, logger logging.Logger) (avoidance.Avoider, error) {
	if err := cfg.Validate("avoider.attributes"); err != nil {
		return nil, err
	}
	if deps.Base == nil {
		return nil, errors.New("sidestep avoider needs a base")
	}
	if deps.Odometer == nil {
		return nil, errors.New("sidestep avoider needs an odometer")
	}
	return &sidestep{
		base:     deps.Base,
		odometer: deps.Odometer,
		detector: deps.Detector,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}, nil
}

// AvoidObstacle pivots toward the side of the target until nothing is detected ahead, then
// drives the clearance distance.
func (s *sidestep) AvoidObstacle(ctx context.Context, target r2.Point) error {
	pose, err := s.odometer.Pose(ctx)
	if err != nil {
		return errors.Wrap(err, "cannot read pose")
	}
	direction := 1.
	toTarget := target.Sub(pose.Point())
	if spatialmath.ShortestTurn(spatialmath.BearingTo(toTarget.X, toTarget.Y), pose.Theta) < 0 {
		direction = -1
	}
	s.logger.Debugw("avoiding obstacle", "pose", pose.String(), "target", target, "direction", direction)

	geometry := s.base.Geometry()
	wheelDegrees := spatialmath.WheelRotationDegrees(geometry.WheelRadius, geometry.AxleLength, direction*s.cfg.TurnDegrees)
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if err := s.pivot(ctx, wheelDegrees); err != nil {
			return err
		}
		isClear, err := s.pathClear(ctx)
		if err != nil {
			return err
		}
		if !isClear {
			s.logger.Debugf("object still ahead after pivot %d", attempt)
			continue
		}
		if err := s.base.SetSpeeds(ctx, s.cfg.DriveSpeed, s.cfg.DriveSpeed); err != nil {
			return err
		}
		return s.base.MoveStraight(ctx, s.cfg.Clearance)
	}
	return errors.Errorf("no clear heading after %d pivots", s.cfg.MaxAttempts)
}

func (s *sidestep) pivot(ctx context.Context, wheelDegrees float64) error {
	if err := s.base.Stop(ctx); err != nil {
		return err
	}
	if err := s.base.SetSpeeds(ctx, s.cfg.RotateSpeed, s.cfg.RotateSpeed); err != nil {
		return err
	}
	return s.base.RotateBy(ctx, -wheelDegrees, wheelDegrees)
}

func (s *sidestep) pathClear(ctx context.Context) (bool, error) {
	if s.detector == nil {
		return true, nil
	}
	detected, err := s.detector.DetectedObject(ctx)
	if err != nil {
		return false, errors.Wrap(err, "cannot poll detector")
	}
	return !detected, nil
}
