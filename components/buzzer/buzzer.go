// Package buzzer defines the sound output used to signal navigation events.
package buzzer

import (
	"context"

	"go.uber.org/atomic"

	"go.viam.com/navcore/logging"
)

// A Buzzer makes short signal sounds.
type Buzzer interface {
	// Beep plays a single beep.
	Beep(ctx context.Context) error

	// BeepSequenceUp plays a rising sequence of tones.
	BeepSequenceUp(ctx context.Context) error
}

// Logging is a Buzzer with no speaker that writes each sound to a logger.
type Logging struct {
	logger logging.Logger
	beeps  atomic.Int64
}

// NewLogging returns a Buzzer that logs instead of playing sounds.
func NewLogging(logger logging.Logger) *Logging {
	return &Logging{logger: logger}
}

// Beep logs a beep.
func (b *Logging) Beep(ctx context.Context) error {
	b.beeps.Inc()
	b.logger.Info("beep")
	return ctx.Err()
}

// BeepSequenceUp logs a rising beep sequence.
func (b *Logging) BeepSequenceUp(ctx context.Context) error {
	b.beeps.Inc()
	b.logger.Info("beep sequence up")
	return ctx.Err()
}

// Count returns how many sounds have been played.
func (b *Logging) Count() int64 {
	return b.beeps.Load()
}
