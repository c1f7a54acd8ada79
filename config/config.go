// Package config defines the structures used to configure a navsim run: the robot, the
// navigator's tuning, the detector and avoider, the mission, the simulated world and logging.
package config

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.viam.com/utils"

	"go.viam.com/navcore/components/base/wheeled"
	"go.viam.com/navcore/components/detector/threshold"
	"go.viam.com/navcore/logging"
	"go.viam.com/navcore/services/avoidance"
	"go.viam.com/navcore/services/navigation"
	"go.viam.com/navcore/sim"
	"go.viam.com/navcore/spatialmath"
	rutils "go.viam.com/navcore/utils"
)

// DefaultAvoider is the avoider model used when none is configured.
const DefaultAvoider = "sidestep"

// A Config describes a whole navsim run.
type Config struct {
	ConfigFilePath string `json:"-"`

	Robot    wheeled.Config    `json:"robot"`
	Tuning   navigation.Tuning `json:"tuning"`
	Detector threshold.Config  `json:"detector"`
	Avoider  Avoider           `json:"avoider"`
	Mission  Mission           `json:"mission"`
	Sim      sim.Config        `json:"sim"`
	Log      Log               `json:"log"`
}

// Ensure validates the config, applying defaults on the way. Errors name the offending field
// with a dotted path.
func (c *Config) Ensure() error {
	if err := c.Robot.Validate("robot"); err != nil {
		return err
	}
	if err := c.Tuning.Validate("tuning"); err != nil {
		return err
	}
	if err := c.Detector.Validate("detector"); err != nil {
		return err
	}
	if err := c.Avoider.Validate("avoider"); err != nil {
		return err
	}
	if err := c.Mission.Validate("mission"); err != nil {
		return err
	}
	for idx, o := range c.Sim.Obstacles {
		if o.Radius <= 0 {
			return utils.NewConfigValidationFieldRequiredError(fmt.Sprintf("sim.obstacles.%d", idx), "radius")
		}
	}
	if c.Sim.StepMs < 0 {
		return utils.NewConfigValidationError("sim", errors.New("step_ms cannot be negative"))
	}
	c.Sim.Geometry = c.Robot.Geometry
	return c.Log.Validate("log")
}

// An Avoider selects an avoider model and holds its attributes.
type Avoider struct {
	Type       string              `json:"type,omitempty"`
	Attributes rutils.AttributeMap `json:"attributes,omitempty"`

	ConvertedAttributes interface{} `json:"-"`
}

// Validate ensures the model is known and its attributes convert and validate.
func (a *Avoider) Validate(path string) error {
	if a.Type == "" {
		a.Type = DefaultAvoider
	}
	converted, err := avoidance.ConvertAttributes(a.Type, a.Attributes)
	if err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if v, ok := converted.(interface{ Validate(path string) error }); ok {
		if err := v.Validate(path + ".attributes"); err != nil {
			return err
		}
	}
	a.ConvertedAttributes = converted
	return nil
}

// Coordinate is a planar coordinate written as [x, y].
type Coordinate [2]float64

// Point returns the coordinate as a point.
func (c Coordinate) Point() r2.Point {
	return r2.Point{X: c[0], Y: c[1]}
}

// Area is a rectangle given by two opposite corners.
type Area struct {
	Start Coordinate `json:"start"`
	End   Coordinate `json:"end"`
}

// Mission is the mission as written in a config file.
type Mission struct {
	Start      Coordinate   `json:"start"`
	Candidates []Coordinate `json:"candidates"`
	SearchArea *Area        `json:"search_area,omitempty"`
}

// Validate ensures there is a candidate to travel to and every coordinate is finite.
func (m *Mission) Validate(path string) error {
	if len(m.Candidates) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "candidates")
	}
	coords := append([]Coordinate{m.Start}, m.Candidates...)
	if m.SearchArea != nil {
		coords = append(coords, m.SearchArea.Start, m.SearchArea.End)
	}
	for _, c := range coords {
		if !spatialmath.ValidPoint(c.Point()) {
			return utils.NewConfigValidationError(path, errors.Errorf("coordinate %v is not finite", c))
		}
	}
	return nil
}

// Navigation returns the mission in the form the navigator runs it.
func (m Mission) Navigation() navigation.Mission {
	mission := navigation.Mission{
		Start: m.Start.Point(),
		Candidates: lo.Map(m.Candidates, func(c Coordinate, _ int) r2.Point {
			return c.Point()
		}),
	}
	if m.SearchArea != nil {
		mission.SearchArea = &navigation.Area{Start: m.SearchArea.Start.Point(), End: m.SearchArea.End.Point()}
	}
	return mission
}

// String prints out a table of the mission's stops in the order they are visited.
func (m Mission) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Kind", "X", "Y"})
	t.AppendRow(table.Row{"0", "start", m.Start[0], m.Start[1]})
	for i, c := range m.Candidates {
		t.AppendRow(table.Row{fmt.Sprintf("%d", i+1), "candidate", c[0], c[1]})
	}
	if m.SearchArea != nil {
		n := len(m.Candidates)
		t.AppendRow(table.Row{fmt.Sprintf("%d", n+1), "search start", m.SearchArea.Start[0], m.SearchArea.Start[1]})
		t.AppendRow(table.Row{fmt.Sprintf("%d", n+2), "search end", m.SearchArea.End[0], m.SearchArea.End[1]})
	}
	return t.Render()
}

// Log configures logging.
type Log struct {
	Level string              `json:"level,omitempty"`
	File  *logging.FileConfig `json:"file,omitempty"`
}

// Validate ensures the level is known and a file has a path.
func (l *Log) Validate(path string) error {
	if l.Level != "" {
		if _, err := logging.LevelFromString(l.Level); err != nil {
			return utils.NewConfigValidationError(path, err)
		}
	}
	if l.File != nil && l.File.Path == "" {
		return utils.NewConfigValidationFieldRequiredError(path+".file", "path")
	}
	return nil
}

// ParsedLevel returns the configured level, INFO when unset.
func (l Log) ParsedLevel() logging.Level {
	if l.Level == "" {
		return logging.INFO
	}
	level, err := logging.LevelFromString(l.Level)
	if err != nil {
		return logging.INFO
	}
	return level
}
