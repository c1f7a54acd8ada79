package inject

import (
	"context"

	"go.viam.com/navcore/components/buzzer"
)

// Buzzer is an injected buzzer.
type Buzzer struct {
	buzzer.Buzzer
	BeepFunc           func(ctx context.Context) error
	BeepSequenceUpFunc func(ctx context.Context) error
}

// NewBuzzer returns a new injected buzzer.
func NewBuzzer() *Buzzer {
	return &Buzzer{}
}

// Beep calls the injected Beep or the real version.
func (b *Buzzer) Beep(ctx context.Context) error {
	if b.BeepFunc == nil {
		return b.Buzzer.Beep(ctx)
	}
	return b.BeepFunc(ctx)
}

// BeepSequenceUp calls the injected BeepSequenceUp or the real version.
func (b *Buzzer) BeepSequenceUp(ctx context.Context) error {
	if b.BeepSequenceUpFunc == nil {
		return b.Buzzer.BeepSequenceUp(ctx)
	}
	return b.BeepSequenceUpFunc(ctx)
}
