// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC (Free Lossless Audio Codec) decoding.
//
// This package uses github.com/mewkiz/flac, a pure Go decoder. Samples of
// any width from 4 to 32 bits are scaled into [-1, 1]; the source format
// keeps the stored bit depth.
//
//	f, _ := os.Open("tom.flac")
//	buf, src, err := flac.Decoder{}.Decode(f)
//
// Probe only parses the STREAMINFO block, which carries the rate, the
// channel count and the total number of frames.
package flac
