// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the path does not exist
	ErrFileNotFound = errors.New("audio file not found")

	// ErrLoadFailure wraps any decoder failure
	ErrLoadFailure = errors.New("failed to load audio file")
)

// FileError records the operation and path that failed.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
