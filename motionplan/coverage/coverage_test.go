package coverage

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestBoustrophedon(t *testing.T) {
	t.Run("sweeps along x", func(t *testing.T) {
		waypoints, err := Boustrophedon(r2.Point{X: 0, Y: 0}, r2.Point{X: 80, Y: 40})
		test.That(t, err, test.ShouldBeNil)
		expected := []r2.Point{
			{X: 10, Y: 0}, {X: 10, Y: 40},
			{X: 30, Y: 40}, {X: 30, Y: 0},
			{X: 50, Y: 0}, {X: 50, Y: 40},
			{X: 70, Y: 40}, {X: 70, Y: 0},
		}
		test.That(t, cmp.Diff(expected, waypoints, approx), test.ShouldBeEmpty)
	})

	t.Run("sweeps along y", func(t *testing.T) {
		waypoints, err := Boustrophedon(r2.Point{X: 10, Y: 0}, r2.Point{X: 30, Y: 80})
		test.That(t, err, test.ShouldBeNil)
		expected := []r2.Point{
			{X: 10, Y: 10}, {X: 30, Y: 10},
			{X: 30, Y: 30}, {X: 10, Y: 30},
			{X: 10, Y: 50}, {X: 30, Y: 50},
			{X: 30, Y: 70}, {X: 10, Y: 70},
		}
		test.That(t, cmp.Diff(expected, waypoints, approx), test.ShouldBeEmpty)
	})

	t.Run("flat area along x", func(t *testing.T) {
		waypoints, err := Boustrophedon(r2.Point{X: 0, Y: 0}, r2.Point{X: 80, Y: 0})
		test.That(t, err, test.ShouldBeNil)
		expected := []r2.Point{
			{X: 10, Y: 0}, {X: 10, Y: 0},
			{X: 30, Y: 0}, {X: 30, Y: 0},
			{X: 50, Y: 0}, {X: 50, Y: 0},
			{X: 70, Y: 0}, {X: 70, Y: 0},
		}
		test.That(t, cmp.Diff(expected, waypoints, approx), test.ShouldBeEmpty)
	})

	t.Run("square areas sweep along x", func(t *testing.T) {
		waypoints, err := Boustrophedon(r2.Point{X: 0, Y: 0}, r2.Point{X: 40, Y: 40})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, waypoints[0], test.ShouldResemble, r2.Point{X: 5, Y: 0})
		test.That(t, waypoints[1], test.ShouldResemble, r2.Point{X: 5, Y: 40})
	})

	t.Run("reversed corners", func(t *testing.T) {
		waypoints, err := Boustrophedon(r2.Point{X: 80, Y: 40}, r2.Point{X: 0, Y: 0})
		test.That(t, err, test.ShouldBeNil)
		expected := []r2.Point{
			{X: 70, Y: 40}, {X: 70, Y: 0},
			{X: 50, Y: 0}, {X: 50, Y: 40},
			{X: 30, Y: 40}, {X: 30, Y: 0},
			{X: 10, Y: 0}, {X: 10, Y: 40},
		}
		test.That(t, cmp.Diff(expected, waypoints, approx), test.ShouldBeEmpty)
	})

	t.Run("always eight waypoints inside the area", func(t *testing.T) {
		for _, corners := range [][2]r2.Point{
			{{X: -5, Y: 3}, {X: 17, Y: -90}},
			{{X: 0, Y: 0}, {X: 0, Y: 0}},
			{{X: 1e6, Y: 2}, {X: -1e6, Y: 3}},
		} {
			waypoints, err := Boustrophedon(corners[0], corners[1])
			test.That(t, err, test.ShouldBeNil)
			test.That(t, waypoints, test.ShouldHaveLength, 8)
			box := r2.RectFromPoints(corners[0], corners[1])
			for _, pt := range waypoints {
				test.That(t, box.ContainsPoint(pt), test.ShouldBeTrue)
			}
		}
	})

	t.Run("invalid corners", func(t *testing.T) {
		_, err := Boustrophedon(r2.Point{X: math.NaN()}, r2.Point{X: 1, Y: 1})
		test.That(t, errors.Is(err, ErrInvalidPoint), test.ShouldBeTrue)
		_, err = Boustrophedon(r2.Point{}, r2.Point{X: math.Inf(1)})
		test.That(t, errors.Is(err, ErrInvalidPoint), test.ShouldBeTrue)
	})
}

func TestLanes(t *testing.T) {
	waypoints, err := Lanes(r2.Point{X: 0, Y: 0}, r2.Point{X: 60, Y: 10}, 3)
	test.That(t, err, test.ShouldBeNil)
	expected := []r2.Point{
		{X: 10, Y: 0}, {X: 10, Y: 10},
		{X: 30, Y: 10}, {X: 30, Y: 0},
		{X: 50, Y: 0}, {X: 50, Y: 10},
	}
	test.That(t, cmp.Diff(expected, waypoints, approx), test.ShouldBeEmpty)

	waypoints, err = Lanes(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 2}, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, waypoints, test.ShouldResemble, []r2.Point{{X: 5, Y: 0}, {X: 5, Y: 2}})

	_, err = Lanes(r2.Point{}, r2.Point{X: 1}, 0)
	test.That(t, err, test.ShouldNotBeNil)
}
