// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
// Currently supported:
//   - PCM at 8, 16, 24 and 32 bits
//   - Mono and multi-channel
//   - Any sample rate
//
// Compressed AIFC variants are not supported.
//
// # Decoding AIFF Files
//
//	f, _ := os.Open("snare.aif")
//	buf, src, err := aiff.Decoder{}.Decode(f)
//
// buf holds float samples in [-1, 1]. src reports the stored bit depth so
// callers can keep track of the original precision.
//
// # Error Handling
//
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: The sample size cannot be scaled
//   - ErrUnsupportedAiffLayout: Missing or invalid COMM data
package aiff
