package motor

import "github.com/pkg/errors"

// NewZeroSpeedError returns an error representing a request to move a motor at
// zero speed (i.e., moving the motor without moving the motor).
func NewZeroSpeedError() error {
	return errors.New("cannot move motor at a speed that is nearly 0")
}

// NewNegativeAccelerationError returns an error for an acceleration that is not positive.
func NewNegativeAccelerationError(degsPerSecSq float64) error {
	return errors.Errorf("motor acceleration must be positive, got %.2f", degsPerSecSq)
}
