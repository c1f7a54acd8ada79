package main

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/navcore/components/base/wheeled"
	"go.viam.com/navcore/components/buzzer"
	"go.viam.com/navcore/components/detector/threshold"
	"go.viam.com/navcore/config"
	"go.viam.com/navcore/logging"
	"go.viam.com/navcore/motionplan/coverage"
	"go.viam.com/navcore/services/avoidance"
	// register avoider models.
	_ "go.viam.com/navcore/services/avoidance/sidestep"
	"go.viam.com/navcore/services/navigation"
	"go.viam.com/navcore/sim"
)

const (
	// Flags.
	flagConfig  = "config"
	flagDebug   = "debug"
	flagLogFile = "log-file"
	flagStart   = "start"
	flagEnd     = "end"
	flagLanes   = "lanes"

	defaultStepMs = 50
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "navsim",
		Usage: "run differential-drive navigation missions in simulation",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run the configured mission against the simulator",
				UsageText: "navsim run --config <path> [--debug] [--log-file <path>]",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     flagConfig,
						Aliases:  []string{"c"},
						Usage:    "load configuration from `FILE`",
						Required: true,
					},
					&cli.BoolFlag{
						Name:    flagDebug,
						Aliases: []string{"vvv"},
						Usage:   "enable debug logging",
					},
					&cli.PathFlag{
						Name:  flagLogFile,
						Usage: "also write logs to a rotating `FILE`",
					},
				},
				Action: runAction,
			},
			{
				Name:      "sweep",
				Usage:     "print the waypoints of a search of the area between two corners",
				UsageText: "navsim sweep --start <x,y> --end <x,y> [--lanes <n>]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagStart,
						Usage:    "first corner as `X,Y`",
						Required: true,
					},
					&cli.StringFlag{
						Name:     flagEnd,
						Usage:    "opposite corner as `X,Y`",
						Required: true,
					},
					&cli.IntFlag{
						Name:  flagLanes,
						Usage: "number of lanes",
						Value: coverage.DefaultLanes,
					},
				},
				Action: sweepAction,
			},
		},
	}
}

func runAction(c *cli.Context) (err error) {
	cfg, err := config.Read(c.Path(flagConfig))
	if err != nil {
		return err
	}

	logger, closeLogger := newLogger(c, cfg)
	defer func() {
		err = multierr.Combine(err, closeLogger())
	}()

	logger.Debugf("mission:\n%s", cfg.Mission)

	if cfg.Sim.StepMs == 0 {
		cfg.Sim.StepMs = defaultStepMs
	}
	robot, err := sim.NewRobot(cfg.Sim, logger.Sublogger("sim"))
	if err != nil {
		return err
	}
	b, err := wheeled.NewWheeledBase(c.Context, robot.Left(), robot.Right(), cfg.Robot, logger.Sublogger("base"))
	if err != nil {
		return err
	}
	finder := sim.NewRangefinder(robot, cfg.Sim.Obstacles, cfg.Sim.MaxRange)
	det, err := threshold.NewDetector(finder, cfg.Detector, logger.Sublogger("detector"))
	if err != nil {
		return err
	}
	avoider, err := avoidance.New(c.Context, cfg.Avoider.Type, cfg.Avoider.Attributes,
		avoidance.Dependencies{Base: b, Odometer: robot, Detector: det}, logger.Sublogger("avoider"))
	if err != nil {
		return err
	}
	nav, err := navigation.NewNavigator(navigation.Dependencies{
		Base:     b,
		Odometer: robot,
		Detector: det,
		Avoider:  avoider,
		Buzzer:   buzzer.NewLogging(logger.Sublogger("buzzer")),
	}, cfg.Tuning, logger.Sublogger("navigation"))
	if err != nil {
		return err
	}

	result, err := nav.Run(c.Context, cfg.Mission.Navigation())
	if err != nil {
		return errors.Wrapf(err, "run %s failed", result.ID)
	}

	out := c.App.Writer
	fmt.Fprintf(out, "run:        %s\n", result.ID)
	if result.Reached != nil {
		fmt.Fprintf(out, "reached:    %s\n", formatPoint(*result.Reached))
	} else {
		fmt.Fprintln(out, "reached:    none")
	}
	for _, pt := range result.Skipped {
		fmt.Fprintf(out, "skipped:    %s\n", formatPoint(pt))
	}
	fmt.Fprintf(out, "searched:   %t\n", result.Searched)
	fmt.Fprintf(out, "avoided:    %t\n", nav.HasAvoided())
	if classified := det.Classified(); len(classified) > 0 {
		fmt.Fprintf(out, "classified: %s\n", strings.Join(classified, ", "))
	}
	fmt.Fprintf(out, "final pose: %s\n", robot.TruePose())
	return nil
}

func newLogger(c *cli.Context, cfg *config.Config) (logging.Logger, func() error) {
	level := cfg.Log.ParsedLevel()
	if c.Bool(flagDebug) {
		level = logging.DEBUG
	}

	fileCfg := cfg.Log.File
	if path := c.Path(flagLogFile); path != "" {
		fileCfg = &logging.FileConfig{Path: path}
	}
	if fileCfg != nil {
		return logging.NewRotatingFileLogger("navsim", level, *fileCfg)
	}

	var logger logging.Logger
	if level == logging.DEBUG {
		logger = logging.NewDebugLogger("navsim")
	} else {
		logger = logging.NewLogger("navsim")
		logger.SetLevel(level)
	}
	return logger, func() error {
		// stdout may not support sync.
		//nolint:errcheck
		logger.Sync()
		return nil
	}
}

func sweepAction(c *cli.Context) error {
	start, err := parsePoint(c.String(flagStart))
	if err != nil {
		return errors.Wrapf(err, "bad --%s", flagStart)
	}
	end, err := parsePoint(c.String(flagEnd))
	if err != nil {
		return errors.Wrapf(err, "bad --%s", flagEnd)
	}
	waypoints, err := coverage.Lanes(start, end, c.Int(flagLanes))
	if err != nil {
		return err
	}
	for _, pt := range waypoints {
		fmt.Fprintln(c.App.Writer, formatPoint(pt))
	}
	return nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (r2.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return r2.Point{}, errors.Errorf("expected x,y but got %q", s)
	}
	x, err := cast.ToFloat64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return r2.Point{}, err
	}
	y, err := cast.ToFloat64E(strings.TrimSpace(parts[1]))
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: x, Y: y}, nil
}

func formatPoint(pt r2.Point) string {
	return fmt.Sprintf("%g, %g", pt.X, pt.Y)
}
