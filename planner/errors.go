// SPDX-License-Identifier: EPL-2.0

package planner

import "errors"

var (
	// ErrInvalidConfig reports a planner configuration out of range
	ErrInvalidConfig = errors.New("invalid planner configuration")
)
