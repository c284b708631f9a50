// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrNotFlacFile indicates the input has no valid fLaC signature or STREAMINFO
	ErrNotFlacFile = errors.New("not a FLAC file")

	// ErrUnsupportedBitDepth indicates a sample size outside 8 to 32 bits
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
)
