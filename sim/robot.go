// Package sim is a deterministic kinematic simulation of a differential-drive robot: two wheel
// motors, a dead-reckoning odometer that reports the true pose, and a rangefinder that sees
// circular obstacles.
package sim

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/navcore/components/base"
	"go.viam.com/navcore/components/motor"
	"go.viam.com/navcore/components/odometry"
	"go.viam.com/navcore/logging"
	"go.viam.com/navcore/spatialmath"
	"go.viam.com/navcore/utils"
)

// Config describes the simulated world. The geometry is the robot's own and is not read from
// the sim section of a config file.
type Config struct {
	Geometry base.Geometry `json:"-"`
	// Step advances simulated time by a fixed amount on every pose read instead of following the
	// wall clock.
	Step time.Duration `json:"-"`
	// StepMs is Step as it appears in a config file.
	StepMs    int        `json:"step_ms,omitempty"`
	Heading   float64    `json:"heading_degs,omitempty"`
	Obstacles []Obstacle `json:"obstacles,omitempty"`
	MaxRange  float64    `json:"max_range,omitempty"`
}

// Robot is the simulated robot. It is safe for concurrent use.
type Robot struct {
	mu       sync.Mutex
	clock    clock.Clock
	mock     *clock.Mock
	step     time.Duration
	geometry base.Geometry
	logger   logging.Logger

	pose       spatialmath.Pose
	lastUpdate time.Time
	wheels     [2]*Wheel
	// wheel rotations commanded since the last update, in shaft degrees.
	pending [2]float64
	reads   int
}

const (
	leftWheel = iota
	rightWheel
)

var _ odometry.Odometer = (*Robot)(nil)

// NewRobot returns a robot at the origin. With a non-zero step the robot runs on its own mock
// clock; otherwise it follows the wall clock.
func NewRobot(cfg Config, logger logging.Logger) (*Robot, error) {
	step := cfg.Step
	if step == 0 && cfg.StepMs > 0 {
		step = time.Duration(cfg.StepMs) * time.Millisecond
	}
	var clk clock.Clock = clock.New()
	if step > 0 {
		clk = clock.NewMock()
	}
	r, err := NewRobotWithClock(cfg, clk, logger)
	if err != nil {
		return nil, err
	}
	r.step = step
	return r, nil
}

// NewRobotWithClock returns a robot at the origin driven by the given clock. If the clock is a
// *clock.Mock the caller is responsible for advancing it unless the config has a step.
func NewRobotWithClock(cfg Config, clk clock.Clock, logger logging.Logger) (*Robot, error) {
	if err := cfg.Geometry.Validate("sim.geometry"); err != nil {
		return nil, err
	}
	r := &Robot{
		clock:      clk,
		step:       cfg.Step,
		geometry:   cfg.Geometry,
		logger:     logger,
		pose:       spatialmath.NewPose(0, 0, spatialmath.NormalizeRadians(utils.DegToRad(cfg.Heading))),
		lastUpdate: clk.Now(),
	}
	if mock, ok := clk.(*clock.Mock); ok {
		r.mock = mock
	}
	r.wheels[leftWheel] = &Wheel{robot: r, side: leftWheel}
	r.wheels[rightWheel] = &Wheel{robot: r, side: rightWheel}
	return r, nil
}

// Left returns the left wheel motor.
func (r *Robot) Left() *Wheel {
	return r.wheels[leftWheel]
}

// Right returns the right wheel motor.
func (r *Robot) Right() *Wheel {
	return r.wheels[rightWheel]
}

// Geometry returns the drive geometry of the robot.
func (r *Robot) Geometry() base.Geometry {
	return r.geometry
}

// Pose returns the current pose. When the robot has a step and a mock clock, simulated time
// advances by one step first.
func (r *Robot) Pose(ctx context.Context) (spatialmath.Pose, error) {
	if err := ctx.Err(); err != nil {
		return spatialmath.Pose{}, err
	}
	if r.mock != nil && r.step > 0 {
		r.mock.Add(r.step)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	r.updateInLock()
	return r.pose, nil
}

// SetPosition moves the robot to the given point, keeping its heading.
func (r *Robot) SetPosition(ctx context.Context, pt r2.Point) error {
	if !spatialmath.ValidPoint(pt) {
		return errors.Errorf("cannot place robot at %v", pt)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateInLock()
	r.pose.X, r.pose.Y = pt.X, pt.Y
	return nil
}

// TruePose returns the current pose without advancing simulated time.
func (r *Robot) TruePose() spatialmath.Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateInLock()
	return r.pose
}

// PoseReads returns how many times Pose has been called.
func (r *Robot) PoseReads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

// updateInLock integrates the motion of running wheels since the last update, then applies any
// commanded rotations. Rotations commanded on both wheels between two updates are applied
// together as one motion.
func (r *Robot) updateInLock() {
	r.integrateInLock()
	radius := r.geometry.WheelRadius
	r.pose = r.drive(r.pose,
		spatialmath.DistanceForWheelDegrees(radius, r.pending[leftWheel]),
		spatialmath.DistanceForWheelDegrees(radius, r.pending[rightWheel]))
	r.pending = [2]float64{}
}

// integrateInLock moves the pose by what the running wheels rolled since the last update.
func (r *Robot) integrateInLock() {
	now := r.clock.Now()
	dt := now.Sub(r.lastUpdate).Seconds()
	r.lastUpdate = now
	if dt <= 0 {
		return
	}
	var travel [2]float64
	for side, w := range r.wheels {
		if w.running {
			travel[side] = spatialmath.DistanceForWheelDegrees(r.geometry.WheelRadius, w.speed*dt)
		}
	}
	r.pose = r.drive(r.pose, travel[leftWheel], travel[rightWheel])
}

// drive moves the pose by the given distances rolled by the left and right wheels.
func (r *Robot) drive(pose spatialmath.Pose, left, right float64) spatialmath.Pose {
	if left == 0 && right == 0 {
		return pose
	}
	ds := (left + right) / 2
	dTheta := (right - left) / r.geometry.AxleLength
	mid := pose.Theta + dTheta/2
	return spatialmath.NewPose(
		pose.X+ds*math.Cos(mid),
		pose.Y+ds*math.Sin(mid),
		spatialmath.NormalizeRadians(pose.Theta+dTheta),
	)
}

// Wheel is a simulated motor driving one side of the robot. Rotations complete instantly.
type Wheel struct {
	robot *Robot
	side  int

	speed        float64
	acceleration float64
	running      bool
}

var _ motor.Motor = (*Wheel)(nil)

// SetSpeed sets the wheel speed in degrees per second.
func (w *Wheel) SetSpeed(ctx context.Context, degsPerSec float64) error {
	w.robot.mu.Lock()
	defer w.robot.mu.Unlock()
	w.robot.updateInLock()
	w.speed = math.Abs(degsPerSec)
	return nil
}

// SetAcceleration records the acceleration. The simulation reaches any speed instantly.
func (w *Wheel) SetAcceleration(ctx context.Context, degsPerSecSq float64) error {
	if degsPerSecSq < 0 {
		return motor.NewNegativeAccelerationError(degsPerSecSq)
	}
	w.robot.mu.Lock()
	defer w.robot.mu.Unlock()
	w.acceleration = degsPerSecSq
	return nil
}

// Acceleration returns the last acceleration set.
func (w *Wheel) Acceleration() float64 {
	w.robot.mu.Lock()
	defer w.robot.mu.Unlock()
	return w.acceleration
}

// Forward runs the wheel forward at the set speed.
func (w *Wheel) Forward(ctx context.Context) error {
	w.robot.mu.Lock()
	defer w.robot.mu.Unlock()
	if err := motor.CheckSpeed(w.speed); err != nil {
		return err
	}
	w.robot.updateInLock()
	w.running = true
	return nil
}

// Rotate turns the wheel by the given degrees. The rotation takes effect on the next pose
// update.
func (w *Wheel) Rotate(ctx context.Context, degrees float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.robot.mu.Lock()
	defer w.robot.mu.Unlock()
	if err := motor.CheckSpeed(w.speed); err != nil {
		return err
	}
	w.robot.integrateInLock()
	w.running = false
	w.robot.pending[w.side] += degrees
	return nil
}

// Stop stops the wheel.
func (w *Wheel) Stop(ctx context.Context) error {
	w.robot.mu.Lock()
	defer w.robot.mu.Unlock()
	w.robot.updateInLock()
	w.running = false
	return nil
}

// IsMoving returns whether the wheel is running forward.
func (w *Wheel) IsMoving(ctx context.Context) (bool, error) {
	w.robot.mu.Lock()
	defer w.robot.mu.Unlock()
	return w.running, nil
}
