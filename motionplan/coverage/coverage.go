// Package coverage generates boustrophedon (back-and-forth) waypoint sequences that sweep a
// rectangular area.
package coverage

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/navcore/spatialmath"
)

// DefaultLanes is the number of lanes Boustrophedon sweeps.
const DefaultLanes = 4

// ErrInvalidPoint is returned when a corner of the area is not a finite point.
var ErrInvalidPoint = errors.New("area corners must be finite")

// Boustrophedon returns the waypoints of a four-lane sweep of the rectangle spanned by start and
// end. See Lanes.
func Boustrophedon(start, end r2.Point) ([]r2.Point, error) {
	return Lanes(start, end, DefaultLanes)
}

// Lanes returns 2*n waypoints sweeping the rectangle spanned by start and end in n parallel
// lanes. Lanes run across the longer side of the rectangle and are centered in n equal strips of
// it, so with start (0,0), end (80,40) and n = 4 they sit at x = 10, 30, 50 and 70. Each lane is
// entered on the opposite side from where the previous one was left, starting from the start
// side. Ties between the sides sweep along x.
func Lanes(start, end r2.Point, n int) ([]r2.Point, error) {
	if !spatialmath.ValidPoint(start) || !spatialmath.ValidPoint(end) {
		return nil, errors.Wrapf(ErrInvalidPoint, "start %v end %v", start, end)
	}
	if n < 1 {
		return nil, errors.Errorf("need at least one lane, got %d", n)
	}

	delta := end.Sub(start)
	alongX := math.Abs(delta.X) >= math.Abs(delta.Y)

	waypoints := make([]r2.Point, 0, 2*n)
	for lane := 0; lane < n; lane++ {
		offset := float64(2*lane+1) / float64(2*n)
		sides := [2]float64{0, 1}
		if lane%2 == 1 {
			sides = [2]float64{1, 0}
		}
		for _, side := range sides {
			if alongX {
				waypoints = append(waypoints, r2.Point{
					X: start.X + delta.X*offset,
					Y: start.Y + delta.Y*side,
				})
			} else {
				waypoints = append(waypoints, r2.Point{
					X: start.X + delta.X*side,
					Y: start.Y + delta.Y*offset,
				})
			}
		}
	}
	return waypoints, nil
}
