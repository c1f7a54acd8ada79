// Package navigation drives a differential-drive base to planar coordinates, yielding to an
// obstacle avoider when its detector reports something in the way, and sweeps search areas.
package navigation

import (
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/navcore/components/base"
	"go.viam.com/navcore/components/buzzer"
	"go.viam.com/navcore/components/detector"
	"go.viam.com/navcore/components/odometry"
	"go.viam.com/navcore/services/avoidance"
)

// ErrInvalidCoordinate is returned for coordinates or headings that are not finite numbers.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Status describes what the navigator is doing.
type Status int32

// The set of navigator statuses.
const (
	StatusIdle Status = iota
	StatusTraveling
	StatusAvoiding
	StatusSearching
	StatusInvestigating
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusTraveling:
		return "traveling"
	case StatusAvoiding:
		return "avoiding"
	case StatusSearching:
		return "searching"
	case StatusInvestigating:
		return "investigating"
	default:
		return "unknown"
	}
}

// Outcome is how a travel ended.
type Outcome int

const (
	// OutcomeConverged means the base reached the target within the position tolerance.
	OutcomeConverged Outcome = iota
	// OutcomeObstructed means an object was detected on the target itself, so the base stopped
	// trying to reach it.
	OutcomeObstructed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverged:
		return "converged"
	case OutcomeObstructed:
		return "obstructed"
	default:
		return "unknown"
	}
}

// Dependencies are the collaborators a Navigator drives. Buzzer may be nil.
type Dependencies struct {
	Base     base.Base
	Odometer odometry.Odometer
	Detector detector.Detector
	Avoider  avoidance.Avoider
	Buzzer   buzzer.Buzzer
}

// Area is a rectangle given by two opposite corners.
type Area struct {
	Start r2.Point
	End   r2.Point
}

// Mission is what Run does: start at Start, reach the first reachable candidate and, if one was
// reached and a search area is set, sweep the area.
type Mission struct {
	Start      r2.Point
	Candidates []r2.Point
	SearchArea *Area
}

// RunResult summarizes a Run.
type RunResult struct {
	ID       uuid.UUID
	Reached  *r2.Point
	Skipped  []r2.Point
	Searched bool
}

// Tuning holds the speeds and tolerances of the navigator. Speeds are motor speeds in degrees
// per second and distances are in odometry units. Zero fields take the defaults.
type Tuning struct {
	PositionTolerance        float64 `json:"position_tolerance,omitempty"`
	HeadingToleranceDegs     float64 `json:"heading_tolerance_degs,omitempty"`
	ForwardSpeed             float64 `json:"forward_speed,omitempty"`
	RotateSpeed              float64 `json:"rotate_speed,omitempty"`
	SmallCorrectionSpeed     float64 `json:"small_correction_speed,omitempty"`
	SmallRotationSpeed       float64 `json:"small_rotation_speed,omitempty"`
	CloseThreshold           float64 `json:"close_threshold,omitempty"`
	ObstructionTolerance     float64 `json:"obstruction_tolerance,omitempty"`
	SmallAngleDegs           float64 `json:"small_angle_degs,omitempty"`
	InvestigateNearThreshold float64 `json:"investigate_near_threshold,omitempty"`
	InvestigateStep          float64 `json:"investigate_step,omitempty"`
	PollIntervalMs           int     `json:"poll_interval_ms,omitempty"`
}

// DefaultTuning returns the tuning every zero field of a Tuning falls back to.
func DefaultTuning() Tuning {
	return Tuning{
		PositionTolerance:        1,
		HeadingToleranceDegs:     1,
		ForwardSpeed:             200,
		RotateSpeed:              100,
		SmallCorrectionSpeed:     20,
		SmallRotationSpeed:       25,
		CloseThreshold:           3,
		ObstructionTolerance:     6,
		SmallAngleDegs:           10,
		InvestigateNearThreshold: 6,
		InvestigateStep:          30,
	}
}

// WithDefaults returns the tuning with every zero field set to its default.
func (t Tuning) WithDefaults() Tuning {
	def := DefaultTuning()
	for _, f := range []struct {
		v   *float64
		def float64
	}{
		{&t.PositionTolerance, def.PositionTolerance},
		{&t.HeadingToleranceDegs, def.HeadingToleranceDegs},
		{&t.ForwardSpeed, def.ForwardSpeed},
		{&t.RotateSpeed, def.RotateSpeed},
		{&t.SmallCorrectionSpeed, def.SmallCorrectionSpeed},
		{&t.SmallRotationSpeed, def.SmallRotationSpeed},
		{&t.CloseThreshold, def.CloseThreshold},
		{&t.ObstructionTolerance, def.ObstructionTolerance},
		{&t.SmallAngleDegs, def.SmallAngleDegs},
		{&t.InvestigateNearThreshold, def.InvestigateNearThreshold},
		{&t.InvestigateStep, def.InvestigateStep},
	} {
		if *f.v == 0 {
			*f.v = f.def
		}
	}
	return t
}

// Validate ensures all parts of the tuning are valid.
func (t *Tuning) Validate(path string) error {
	for name, v := range map[string]float64{
		"position_tolerance":         t.PositionTolerance,
		"heading_tolerance_degs":     t.HeadingToleranceDegs,
		"forward_speed":              t.ForwardSpeed,
		"rotate_speed":               t.RotateSpeed,
		"small_correction_speed":     t.SmallCorrectionSpeed,
		"small_rotation_speed":       t.SmallRotationSpeed,
		"close_threshold":            t.CloseThreshold,
		"obstruction_tolerance":      t.ObstructionTolerance,
		"small_angle_degs":           t.SmallAngleDegs,
		"investigate_near_threshold": t.InvestigateNearThreshold,
		"investigate_step":           t.InvestigateStep,
	} {
		if v < 0 {
			return utils.NewConfigValidationError(path, errors.Errorf("%s cannot be negative", name))
		}
	}
	if t.PollIntervalMs < 0 {
		return utils.NewConfigValidationError(path, errors.New("poll_interval_ms cannot be negative"))
	}
	return nil
}

// PollInterval is how long the navigator waits between ticks.
func (t Tuning) PollInterval() time.Duration {
	return time.Duration(t.PollIntervalMs) * time.Millisecond
}
