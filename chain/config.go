// SPDX-License-Identifier: EPL-2.0

package chain

import (
	"fmt"

	"github.com/ik5/samplechain/audio"
)

// PadStrategy decides how missing slots are filled when rounding the slot
// count up to a power of two.
type PadStrategy string

const (
	PadRepeatLast PadStrategy = "repeat-last"
	PadSilence    PadStrategy = "silence"
	PadNone       PadStrategy = "none"
)

// ParsePadStrategy validates s.
func ParsePadStrategy(s string) (PadStrategy, error) {
	switch p := PadStrategy(s); p {
	case PadRepeatLast, PadSilence, PadNone:
		return p, nil
	default:
		return "", fmt.Errorf("%w: pad strategy %q", ErrInvalidConfig, s)
	}
}

// Config is everything the assembler needs; nothing is read from globals.
type Config struct {
	Output              audio.Format
	EnforcePowerOfTwo   bool
	PadStrategy         PadStrategy
	MaxSamplesPerChain  int
	Dithering           bool
	ResamplingAlgorithm string

	// NormalizeSlots scales every slot to NormalizeTargetDB RMS before
	// conversion.
	NormalizeSlots    bool
	NormalizeTargetDB float64
}

func (c Config) Validate() error {
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("%w: output %w", ErrInvalidConfig, err)
	}
	if c.Output.Channels > 2 {
		return fmt.Errorf("%w: output channels %d", ErrInvalidConfig, c.Output.Channels)
	}
	if c.MaxSamplesPerChain < 1 {
		return fmt.Errorf("%w: max samples per chain %d", ErrInvalidConfig, c.MaxSamplesPerChain)
	}
	if _, err := ParsePadStrategy(string(c.PadStrategy)); err != nil {
		return err
	}
	return nil
}
