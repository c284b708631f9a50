// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files
// into float buffers.
//
// # Output Format
//
// go-mp3 always yields 16-bit stereo, so:
//   - the source format reports 16 bits and 2 channels
//   - mono files come back with both channels identical
//   - the sample rate is the one stored in the stream
//
// # Decoding MP3 Files
//
//	f, _ := os.Open("loop.mp3")
//	buf, src, err := mp3.Decoder{}.Decode(f)
//
// Probe returns the stream length without decoding audio:
//
//	info, err := mp3.Decoder{}.Probe(f)
package mp3
