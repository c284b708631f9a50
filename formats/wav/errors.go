// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input is not a valid WAV file
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedWavLayout covers sample formats other than integer PCM
	// and 32-bit IEEE float
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")

	// ErrUnsupportedBitDepth indicates a bit depth the encoder cannot write
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
)
