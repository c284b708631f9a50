// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding and PCM encoding use github.com/go-audio/wav. 32-bit IEEE float
// files are written by WriteFloat32, since the go-audio encoder only
// produces integer PCM.
//
// # Supported Formats
//
// Decoding:
//   - integer PCM at 8, 16, 24 and 32 bits (8-bit is unsigned)
//   - 32-bit IEEE float
//   - any channel count and sample rate
//
// Encoding:
//   - PCM_16 and PCM_24 from PCM buffers
//   - FLOAT (32-bit) from float buffers
//
// # Decoding WAV Files
//
//	f, _ := os.Open("kick.wav")
//	buf, src, err := wav.Decoder{}.Decode(f)
//
// buf holds float samples in [-1, 1]; src is the format stored in the file.
// Probe reads only the headers:
//
//	info, err := wav.Decoder{}.Probe(f)
//	fmt.Println(info.Duration)
//
// # Writing WAV Files
//
//	out, _ := os.Create("chain.wav")
//	err := wav.Encode(out, buf)
//
// Encode needs an io.WriteSeeker because the go-audio encoder patches the
// chunk sizes on Close.
//
// # Error Handling
//
// The package defines several error types:
//   - ErrNotWavFile: The input is not a valid WAV file
//   - ErrUnsupportedWavLayout: Sample format or depth cannot be decoded
//   - ErrUnsupportedBitDepth: Encode was given a depth it cannot write
package wav
