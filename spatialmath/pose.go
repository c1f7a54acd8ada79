// Package spatialmath defines the planar geometry used for navigation: poses,
// headings and the kinematics of a differential-drive base.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/navcore/utils"
)

// Pose is a snapshot of the robot's estimated position and heading in the world frame.
// Theta is in radians and is interpreted modulo 2π by every consumer, regardless of the
// range it was stored in.
type Pose struct {
	X     float64
	Y     float64
	Theta float64
}

// NewPose returns a Pose at the given position and heading.
func NewPose(x, y, theta float64) Pose {
	return Pose{X: x, Y: y, Theta: theta}
}

// NewPoseFromPoint returns a Pose at the given point with the given heading.
func NewPoseFromPoint(pt r2.Point, theta float64) Pose {
	return Pose{X: pt.X, Y: pt.Y, Theta: theta}
}

// Point returns the position of the pose.
func (p Pose) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Heading returns theta normalized into [0, 2π).
func (p Pose) Heading() float64 {
	return NormalizeRadians(p.Theta)
}

// Project returns the point that lies distance ahead of the pose along its heading.
func (p Pose) Project(distance float64) r2.Point {
	return r2.Point{
		X: p.X + math.Cos(p.Theta)*distance,
		Y: p.Y + math.Sin(p.Theta)*distance,
	}
}

func (p Pose) String() string {
	return fmt.Sprintf("(x: %.2f, y: %.2f, theta: %.2f°)", p.X, p.Y, utils.RadToDeg(p.Heading()))
}

// ValidPoint reports whether both components of pt are finite numbers.
func ValidPoint(pt r2.Point) bool {
	return utils.IsFinite(pt.X, pt.Y)
}
