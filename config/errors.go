// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	// ErrMissingMaxSamples means max_samples_per_chain was not set anywhere
	ErrMissingMaxSamples = errors.New("max_samples_per_chain is required")

	// ErrInvalidValue reports a setting out of range
	ErrInvalidValue = errors.New("invalid configuration value")

	// ErrReadConfig wraps failures reading the configuration file
	ErrReadConfig = errors.New("cannot read configuration file")
)
