// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrUnsupportedFormat covers unknown extensions and conversion targets
	// outside the supported bit depths or channel layouts.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidAudioData is reported when decoded samples contain NaN or
	// infinite values.
	ErrInvalidAudioData = errors.New("invalid audio data")

	// ErrChannelMismatch means a buffer's sample count is not a whole number
	// of frames.
	ErrChannelMismatch = errors.New("sample count must be multiple of channels")
)
