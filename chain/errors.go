// SPDX-License-Identifier: EPL-2.0

package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoLoadableFiles means every file of a group failed to load
	ErrNoLoadableFiles = errors.New("no audio files could be loaded")

	// ErrInvalidConfig reports an assembler configuration out of range
	ErrInvalidConfig = errors.New("invalid chain configuration")
)

// BuildError is the single error surfaced for a failed chain build.
type BuildError struct {
	GroupKey string
	Stage    Stage
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build chain %q (%s): %v", e.GroupKey, e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
