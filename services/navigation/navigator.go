package navigation

import (
	"context"
	"math"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"go.viam.com/navcore/components/base"
	"go.viam.com/navcore/components/buzzer"
	"go.viam.com/navcore/components/detector"
	"go.viam.com/navcore/components/odometry"
	"go.viam.com/navcore/logging"
	"go.viam.com/navcore/motionplan/coverage"
	"go.viam.com/navcore/operation"
	"go.viam.com/navcore/services/avoidance"
	"go.viam.com/navcore/spatialmath"
	"go.viam.com/navcore/utils"
)

// Navigator steers a base to coordinates read against an odometer. Only one of TravelTo,
// SearchArea and Run drives the base at a time; starting one cancels whichever is running.
type Navigator struct {
	base     base.Base
	odometer odometry.Odometer
	detector detector.Detector
	avoider  avoidance.Avoider
	buzzer   buzzer.Buzzer
	tuning   Tuning
	logger   logging.Logger

	opMgr      operation.SingleOperationManager
	statusMu   sync.Mutex
	status     atomic.Int32
	hasAvoided atomic.Bool
}

// NewNavigator returns a navigator over the given collaborators. Zero tuning fields take their
// defaults. Without a buzzer, sounds are logged.
func NewNavigator(deps Dependencies, tuning Tuning, logger logging.Logger) (*Navigator, error) {
	if err := tuning.Validate("tuning"); err != nil {
		return nil, err
	}
	switch {
	case deps.Base == nil:
		return nil, errors.New("navigator needs a base")
	case deps.Odometer == nil:
		return nil, errors.New("navigator needs an odometer")
	case deps.Detector == nil:
		return nil, errors.New("navigator needs a detector")
	case deps.Avoider == nil:
		return nil, errors.New("navigator needs an avoider")
	}
	if deps.Buzzer == nil {
		deps.Buzzer = buzzer.NewLogging(logger.Sublogger("buzzer"))
	}
	return &Navigator{
		base:     deps.Base,
		odometer: deps.Odometer,
		detector: deps.Detector,
		avoider:  deps.Avoider,
		buzzer:   deps.Buzzer,
		tuning:   tuning.WithDefaults(),
		logger:   logger,
	}, nil
}

// Status returns what the navigator is currently doing.
func (n *Navigator) Status() Status {
	return Status(n.status.Load())
}

// HasAvoided returns whether an avoidance has completed since the last ResetHasAvoided. It is not
// cleared by TravelTo, so it reports avoidances across every travel of a run.
func (n *Navigator) HasAvoided() bool {
	return n.hasAvoided.Load()
}

// ResetHasAvoided clears HasAvoided.
func (n *Navigator) ResetHasAvoided() {
	n.hasAvoided.Store(false)
}

// Tuning returns the tuning in use, with defaults applied.
func (n *Navigator) Tuning() Tuning {
	return n.tuning
}

// IsRunning returns whether TravelTo, SearchArea or Run is in progress.
func (n *Navigator) IsRunning() bool {
	return n.opMgr.OpRunning()
}

func (n *Navigator) setStatus(s Status) {
	n.status.Store(int32(s))
}

// begin starts an operation reporting status s. The returned function ends it and puts back the
// status it found, or StatusIdle for a top-level operation, unless it was preempted.
func (n *Navigator) begin(ctx context.Context, s Status) (context.Context, func()) {
	n.statusMu.Lock()
	defer n.statusMu.Unlock()
	restore := StatusIdle
	if n.opMgr.IsCurrent(ctx) {
		restore = n.Status()
	}
	ctx, done := n.opMgr.New(ctx)
	n.setStatus(s)
	return ctx, func() {
		n.statusMu.Lock()
		defer n.statusMu.Unlock()
		if !n.opMgr.Preempted(ctx) {
			n.setStatus(restore)
		}
		done()
	}
}

// transition sets the status for the operation ctx belongs to, unless it was preempted.
func (n *Navigator) transition(ctx context.Context, s Status) {
	n.statusMu.Lock()
	defer n.statusMu.Unlock()
	if !n.opMgr.Preempted(ctx) {
		n.setStatus(s)
	}
}

// Stop cancels whatever operation is running and stops the base.
func (n *Navigator) Stop(ctx context.Context) error {
	n.statusMu.Lock()
	n.opMgr.CancelRunning(ctx)
	if !n.opMgr.OpRunning() {
		n.setStatus(StatusIdle)
	}
	n.statusMu.Unlock()
	return n.base.Stop(ctx)
}

// TravelTo drives the base until it is within the position tolerance of target on both axes,
// then stops it. When the detector reports an object, the avoider takes over unless the object
// lies on the target itself, in which case TravelTo returns OutcomeObstructed straight away and
// leaves the base as it is.
func (n *Navigator) TravelTo(ctx context.Context, target r2.Point) (Outcome, error) {
	if !spatialmath.ValidPoint(target) {
		return OutcomeConverged, errors.Wrapf(ErrInvalidCoordinate, "target %v", target)
	}
	ctx, end := n.begin(ctx, StatusTraveling)
	defer end()

	n.logger.Debugw("traveling", "target", target)
	outcome := OutcomeConverged
	err := n.opMgr.WaitForSuccess(ctx, n.tuning.PollInterval(), func(ctx context.Context) (bool, error) {
		pose, err := n.odometer.Pose(ctx)
		if err != nil {
			return false, errors.Wrap(err, "cannot read odometry")
		}
		if n.arrived(pose, target) {
			return true, nil
		}

		detected, err := n.detector.DetectedObject(ctx)
		if err != nil {
			return false, errors.Wrap(err, "cannot poll detector")
		}
		if detected {
			obstructed, err := n.avoid(ctx, pose, target)
			if err != nil {
				return false, err
			}
			if obstructed {
				outcome = OutcomeObstructed
				return true, nil
			}
		}
		return false, n.MoveToCoordinates(ctx, target)
	})
	if err != nil {
		return OutcomeConverged, n.abort(ctx, err)
	}
	if outcome == OutcomeObstructed {
		n.logger.Infow("object on target, giving up", "target", target)
		return outcome, nil
	}
	return outcome, n.base.Stop(ctx)
}

// avoid hands the base to the avoider, unless the object is on the target.
func (n *Navigator) avoid(ctx context.Context, pose spatialmath.Pose, target r2.Point) (bool, error) {
	n.transition(ctx, StatusAvoiding)
	defer n.transition(ctx, StatusTraveling)

	distance, err := n.detector.ObjectDistance(ctx)
	if err != nil {
		return false, errors.Wrap(err, "cannot read object distance")
	}
	if n.ObstacleOnDestination(pose, distance, target) {
		return true, nil
	}
	n.logger.Debugw("avoiding object", "pose", pose.String(), "distance", distance)
	if err := n.avoider.AvoidObstacle(ctx, target); err != nil {
		return false, errors.Wrap(err, "cannot avoid obstacle")
	}
	n.hasAvoided.Store(true)
	return false, nil
}

// ObstacleOnDestination returns whether an object seen distance ahead of pose lies within the
// obstruction tolerance of target on both axes.
func (n *Navigator) ObstacleOnDestination(pose spatialmath.Pose, distance float64, target r2.Point) bool {
	object := pose.Project(distance)
	return math.Abs(object.X-target.X) < n.tuning.ObstructionTolerance &&
		math.Abs(object.Y-target.Y) < n.tuning.ObstructionTolerance
}

func (n *Navigator) arrived(pose spatialmath.Pose, target r2.Point) bool {
	return math.Abs(target.X-pose.X) <= n.tuning.PositionTolerance &&
		math.Abs(target.Y-pose.Y) <= n.tuning.PositionTolerance
}

// MoveToCoordinates makes one motion decision toward target: it either turns to face the target
// or drives forward, never both. Forward motion slows down once the target is within the close
// threshold on both axes.
func (n *Navigator) MoveToCoordinates(ctx context.Context, target r2.Point) error {
	pose, err := n.odometer.Pose(ctx)
	if err != nil {
		return errors.Wrap(err, "cannot read odometry")
	}
	delta := target.Sub(pose.Point())
	bearing := spatialmath.BearingTo(delta.X, delta.Y)
	if math.Abs(spatialmath.ShortestTurn(bearing, pose.Theta)) > utils.DegToRad(n.tuning.HeadingToleranceDegs) {
		return n.TurnTo(ctx, bearing, false)
	}

	speed := n.tuning.ForwardSpeed
	if math.Abs(delta.X) <= n.tuning.CloseThreshold && math.Abs(delta.Y) <= n.tuning.CloseThreshold {
		speed = n.tuning.SmallCorrectionSpeed
	}
	if err := n.base.SetSpeeds(ctx, speed, speed); err != nil {
		return errors.Wrap(err, "cannot set speeds")
	}
	return errors.Wrap(n.base.Forward(ctx), "cannot drive forward")
}

// TurnTo stops the base and pivots it in place to the absolute heading theta, in radians, along
// the shorter direction. Turns within the small angle, or any turn when useSmallRotationSpeed is
// set, use the small rotation speed.
func (n *Navigator) TurnTo(ctx context.Context, theta float64, useSmallRotationSpeed bool) error {
	if !utils.IsFinite(theta) {
		return errors.Wrapf(ErrInvalidCoordinate, "heading %v", theta)
	}
	pose, err := n.odometer.Pose(ctx)
	if err != nil {
		return errors.Wrap(err, "cannot read odometry")
	}
	if err := n.base.Stop(ctx); err != nil {
		return errors.Wrap(err, "cannot stop before turning")
	}

	rotation := utils.RadToDeg(spatialmath.ShortestTurn(spatialmath.NormalizeRadians(theta), pose.Heading()))
	speed := n.tuning.RotateSpeed
	if useSmallRotationSpeed || math.Abs(rotation) <= n.tuning.SmallAngleDegs {
		speed = n.tuning.SmallRotationSpeed
	}
	if err := n.base.SetSpeeds(ctx, speed, speed); err != nil {
		return errors.Wrap(err, "cannot set speeds")
	}

	geometry := n.base.Geometry()
	wheel := spatialmath.WheelRotationDegrees(geometry.WheelRadius, geometry.AxleLength, rotation)
	return errors.Wrap(n.base.RotateBy(ctx, -wheel, wheel), "cannot rotate")
}

// SearchArea sweeps the rectangle spanned by start and end along a boustrophedon path. Objects
// detected on the way are approached and classified, then the sweep carries on.
func (n *Navigator) SearchArea(ctx context.Context, start, end r2.Point) error {
	waypoints, err := coverage.Boustrophedon(start, end)
	if err != nil {
		if errors.Is(err, coverage.ErrInvalidPoint) {
			return errors.Wrapf(ErrInvalidCoordinate, "search area %v to %v", start, end)
		}
		return err
	}
	ctx, finish := n.begin(ctx, StatusSearching)
	defer finish()

	for i, waypoint := range waypoints {
		n.logger.Debugw("searching", "waypoint", waypoint, "index", i)
		err := n.opMgr.WaitForSuccess(ctx, n.tuning.PollInterval(), func(ctx context.Context) (bool, error) {
			pose, err := n.odometer.Pose(ctx)
			if err != nil {
				return false, errors.Wrap(err, "cannot read odometry")
			}
			if n.arrived(pose, waypoint) {
				return true, nil
			}
			detected, err := n.detector.DetectedObject(ctx)
			if err != nil {
				return false, errors.Wrap(err, "cannot poll detector")
			}
			if detected {
				if err := n.buzzer.Beep(ctx); err != nil {
					return false, errors.Wrap(err, "cannot beep")
				}
				if err := n.investigateObject(ctx); err != nil {
					return false, err
				}
			}
			return false, n.MoveToCoordinates(ctx, waypoint)
		})
		if err != nil {
			return n.abort(ctx, err)
		}
	}
	return n.base.Stop(ctx)
}

// investigateObject closes in on a detected object in steps until it is near, then has the
// detector classify it.
func (n *Navigator) investigateObject(ctx context.Context) error {
	n.transition(ctx, StatusInvestigating)
	defer n.transition(ctx, StatusSearching)

	if err := n.base.SetSpeeds(ctx, n.tuning.ForwardSpeed, n.tuning.ForwardSpeed); err != nil {
		return errors.Wrap(err, "cannot set speeds")
	}
	for {
		distance, err := n.detector.ObjectDistance(ctx)
		if err != nil {
			return errors.Wrap(err, "cannot read object distance")
		}
		if distance < n.tuning.InvestigateNearThreshold || distance > n.detector.DefaultObstacleDistance() {
			break
		}
		if err := n.base.MoveStraight(ctx, n.tuning.InvestigateStep); err != nil {
			return errors.Wrap(err, "cannot approach object")
		}
	}
	return errors.Wrap(n.detector.ProcessObject(ctx), "cannot process object")
}

// Run seeds the odometer with the mission start, travels to the first candidate that is not
// obstructed and, if one was reached, sweeps the search area. Reaching no candidate is not an
// error.
func (n *Navigator) Run(ctx context.Context, mission Mission) (RunResult, error) {
	result := RunResult{ID: uuid.New()}
	if err := validateMission(mission); err != nil {
		return result, err
	}
	ctx, done := n.opMgr.New(ctx)
	defer done()
	logger := n.logger.Sublogger("run")
	logger.Infow("starting run", "id", result.ID.String(), "start", mission.Start, "candidates", len(mission.Candidates))

	if err := n.buzzer.BeepSequenceUp(ctx); err != nil {
		return result, errors.Wrap(err, "cannot beep")
	}
	if err := n.odometer.SetPosition(ctx, mission.Start); err != nil {
		return result, errors.Wrap(err, "cannot seed odometry")
	}

	for _, candidate := range mission.Candidates {
		outcome, err := n.TravelTo(ctx, candidate)
		if err != nil {
			return result, err
		}
		if outcome == OutcomeObstructed {
			logger.Infow("skipping obstructed candidate", "id", result.ID.String(), "candidate", candidate)
			result.Skipped = append(result.Skipped, candidate)
			continue
		}
		reached := candidate
		result.Reached = &reached
		break
	}

	if mission.SearchArea != nil && result.Reached != nil {
		if err := n.SearchArea(ctx, mission.SearchArea.Start, mission.SearchArea.End); err != nil {
			return result, err
		}
		result.Searched = true
	}
	logger.Infow("run finished", "id", result.ID.String(), "reached", result.Reached, "skipped", len(result.Skipped))
	return result, n.base.Stop(ctx)
}

func validateMission(mission Mission) error {
	points := append([]r2.Point{mission.Start}, mission.Candidates...)
	if mission.SearchArea != nil {
		points = append(points, mission.SearchArea.Start, mission.SearchArea.End)
	}
	for _, pt := range points {
		if !spatialmath.ValidPoint(pt) {
			return errors.Wrapf(ErrInvalidCoordinate, "mission coordinate %v", pt)
		}
	}
	return nil
}

// abort stops the base after a failed or cancelled operation. A preempted operation leaves the
// base to whoever preempted it.
func (n *Navigator) abort(ctx context.Context, err error) error {
	if n.opMgr.Preempted(ctx) {
		return err
	}
	return multierr.Combine(err, errors.Wrap(n.base.Stop(context.WithoutCancel(ctx)), "cannot stop base"))
}
