// SPDX-License-Identifier: EPL-2.0

package export

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyChain is returned for a nil chain or one without audio
	ErrEmptyChain = errors.New("chain has no audio")
)

// ExportError names the file an export step failed on.
type ExportError struct {
	Op   string
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
