// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory audio model and the format
// conversions needed to bring sample-chain slots into one shape.
//
// This package contains the core building blocks:
//   - Format, a value type describing sample rate, bit depth and channels
//   - Buffer, interleaved frames that always carry their own Format
//   - Converter for sample rate, bit depth and channel conversion
//   - Decoder registry keyed by file extension
//
// # Buffers
//
// A Buffer holds interleaved float64 samples. Its Encoding says how they are
// scaled:
//
//	buf := audio.NewFloatBuffer(44100, 2, samples) // values in [-1, 1]
//	buf.Frames()                                   // len(samples) / 2
//	buf.At(10, 1)                                  // frame 10, right channel
//
// PCM buffers hold the integer codes produced by ConvertBitDepth (e.g.
// -32767..32767 for 16 bit). Buffer.Float scales them back into [-1, 1].
// Mono buffers are still framed, so a buffer is always two-dimensional.
//
// Every conversion returns a new Buffer; inputs are never modified.
//
// # Conversion
//
// Convert applies the three conversions in a fixed order, sample rate, then
// channels, then bit depth:
//
//	conv := audio.NewConverter(audio.ConverterOptions{
//	    Resampler: audio.AlgorithmKaiserBest,
//	    Dithering: true,
//	})
//	out, err := conv.Convert(buf, audio.Format{SampleRate: 48000, BitDepth: 16, Channels: 2})
//
// # Resampling
//
// Output length is round(frames * target / source). The default resampler
// is a Kaiser-windowed sinc interpolator whose cutoff drops to the target
// Nyquist frequency when downsampling. The sinc, kaiser_best, polyphase and
// fft names all select it; kaiser_fast uses a shorter kernel. Catmull-Rom
// cubic and linear interpolation are available as cheaper alternatives.
//
// # Bit depth
//
// 16 and 24 bit targets clip to [-1, 1], scale by 32767 or 8388607 and
// truncate toward zero. 32 bit targets are IEEE float rounded to single
// precision. With dithering enabled, triangular noise of amplitude
// 2^-bits is added before quantizing to a lower depth.
//
// # Channels
//
// Downmixing to mono averages all channels. Mono is duplicated to stereo,
// and layouts wider than stereo keep their first two channels.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get(".WAV")
//
// Extensions are matched case-insensitively, with or without a dot.
package audio
