package avoidance

import (
	"context"
	"testing"

	"go.viam.com/test"

	"go.viam.com/navcore/logging"
	"go.viam.com/navcore/utils"
)

func TestRegistry(t *testing.T) {
	var built interface{}
	Register("test-passthrough", Registration{
		Constructor: func(ctx context.Context, deps Dependencies, conf interface{}, logger logging.Logger) (Avoider, error) {
			built = conf
			return nil, nil
		},
	})

	reg, ok := Lookup("test-passthrough")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, reg.Constructor, test.ShouldNotBeNil)
	test.That(t, RegisteredModels(), test.ShouldContain, "test-passthrough")

	attrs := utils.AttributeMap{"a": 1}
	_, err := New(context.Background(), "test-passthrough", attrs, Dependencies{}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, built, test.ShouldResemble, attrs)

	_, err = New(context.Background(), "nope", nil, Dependencies{}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown avoider model")

	test.That(t, func() {
		Register("test-passthrough", reg)
	}, test.ShouldPanic)
	test.That(t, func() {
		Register("test-nil", Registration{})
	}, test.ShouldPanic)
}
