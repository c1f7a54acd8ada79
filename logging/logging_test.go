package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "loud")

	test.That(t, DEBUG.AsZap(), test.ShouldEqual, zapcore.DebugLevel)
	test.That(t, ERROR.String(), test.ShouldEqual, "Error")
}

func TestObservedLevels(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("debug line", "key", 1)
	test.That(t, logs.FilterMessage("debug line").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterField(zapcore.Field{Key: "key", Type: zapcore.Int64Type, Integer: 1}).Len(), test.ShouldEqual, 1)

	logger.SetLevel(WARN)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
	logger.Info("hidden")
	logger.Warnf("shown %d", 2)
	test.That(t, logs.FilterMessage("hidden").Len(), test.ShouldEqual, 0)
	test.That(t, logs.FilterMessage("shown 2").Len(), test.ShouldEqual, 1)
}

func TestSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("navigation").Sublogger("search")
	sub.Info("from child")

	entries := logs.FilterMessage("from child").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "navigation.search")

	// child levels are independent of the parent.
	sub.SetLevel(ERROR)
	sub.Info("quiet child")
	logger.Info("loud parent")
	test.That(t, logs.FilterMessage("quiet child").Len(), test.ShouldEqual, 0)
	test.That(t, logs.FilterMessage("loud parent").Len(), test.ShouldEqual, 1)
}

func TestRotatingFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.log")
	logger, closeFn := NewRotatingFileLogger("navsim", INFO, FileConfig{Path: path})
	logger.Debug("not written")
	logger.Infow("written", "waypoint", 3)
	test.That(t, closeFn(), test.ShouldBeNil)

	contents, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(contents), test.ShouldContainSubstring, `"msg":"written"`)
	test.That(t, string(contents), test.ShouldContainSubstring, `"waypoint":3`)
	test.That(t, strings.Contains(string(contents), "not written"), test.ShouldBeFalse)
}

func TestBlankLogger(t *testing.T) {
	logger := NewBlankLogger("blank")
	logger.Error("dropped")
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestStdoutLoggerLevels(t *testing.T) {
	test.That(t, NewLogger("info").GetLevel(), test.ShouldEqual, INFO)
	test.That(t, NewDebugLogger("debug").GetLevel(), test.ShouldEqual, DEBUG)
}
