package sim

import (
	"context"
	"math"
	"sync"

	"github.com/golang/geo/r2"

	"go.viam.com/navcore/components/sensor"
	"go.viam.com/navcore/spatialmath"
)

const defaultMaxRange = 255

// Obstacle is a circular object in the simulated world.
type Obstacle struct {
	Center r2.Point `json:"center"`
	Radius float64  `json:"radius"`
	Label  string   `json:"label,omitempty"`
}

// hit returns the distance along the ray from origin in direction dir to the edge of the
// obstacle, or false if the ray misses it. An origin inside the obstacle is at distance 0.
func (o Obstacle) hit(origin, dir r2.Point) (float64, bool) {
	m := origin.Sub(o.Center)
	b := m.Dot(dir)
	c := m.Dot(m) - o.Radius*o.Radius
	if c <= 0 {
		return 0, true
	}
	if b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	return -b - math.Sqrt(disc), true
}

// Rangefinder is a forward-facing distance sensor mounted at the center of a simulated robot.
type Rangefinder struct {
	robot     *Robot
	obstacles []Obstacle
	maxRange  float64

	mu         sync.Mutex
	classified []string
}

var _ sensor.Sensor = (*Rangefinder)(nil)

// NewRangefinder returns a rangefinder on the robot that sees the given obstacles.
func NewRangefinder(robot *Robot, obstacles []Obstacle, maxRange float64) *Rangefinder {
	if maxRange <= 0 {
		maxRange = defaultMaxRange
	}
	return &Rangefinder{
		robot:     robot,
		obstacles: append([]Obstacle(nil), obstacles...),
		maxRange:  maxRange,
	}
}

// Readings returns the distance to the nearest obstacle ahead under "distance", capped at the
// maximum range. With "classify" set in extra the label of that obstacle is returned under
// "object".
func (rf *Rangefinder) Readings(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dist, label := rf.cast(rf.robot.TruePose())
	readings := map[string]interface{}{"distance": dist}
	if classify, _ := extra["classify"].(bool); classify {
		readings["object"] = label
		rf.mu.Lock()
		rf.classified = append(rf.classified, label)
		rf.mu.Unlock()
		rf.robot.logger.Debugw("classified object", "object", label, "distance", dist)
	}
	return readings, nil
}

// Classified returns the labels returned to classification requests so far.
func (rf *Rangefinder) Classified() []string {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return append([]string(nil), rf.classified...)
}

func (rf *Rangefinder) cast(pose spatialmath.Pose) (float64, string) {
	origin := pose.Point()
	dir := r2.Point{X: math.Cos(pose.Theta), Y: math.Sin(pose.Theta)}
	nearest, label := rf.maxRange, "none"
	for _, o := range rf.obstacles {
		d, ok := o.hit(origin, dir)
		if !ok || d >= nearest {
			continue
		}
		nearest = d
		label = o.Label
		if label == "" {
			label = "obstacle"
		}
	}
	return nearest, label
}
