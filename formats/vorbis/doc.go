// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder.
// Vorbis decodes straight to float, so the source format always reports
// 32 bits with the stream's own rate and channel count.
//
//	f, _ := os.Open("pad.ogg")
//	buf, src, err := vorbis.Decoder{}.Decode(f)
//
// Probe reads the identification header and the stream length.
package vorbis
