package motor

import (
	"testing"

	"go.viam.com/test"
)

func TestCheckSpeed(t *testing.T) {
	test.That(t, CheckSpeed(0), test.ShouldBeError, NewZeroSpeedError())
	test.That(t, CheckSpeed(-0.05), test.ShouldNotBeNil)
	test.That(t, CheckSpeed(20), test.ShouldBeNil)
	test.That(t, CheckSpeed(-200), test.ShouldBeNil)
}

func TestNegativeAccelerationError(t *testing.T) {
	err := NewNegativeAccelerationError(-5)
	test.That(t, err.Error(), test.ShouldContainSubstring, "-5.00")
}
