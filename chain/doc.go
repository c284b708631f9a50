// SPDX-License-Identifier: EPL-2.0

// Package chain assembles groups of audio files into fixed-size sample
// chains.
//
// A chain is SampleCount slots of SampleLength frames each, laid end to end
// in one buffer, so Audio.Frames() == SampleCount * SampleLength always
// holds. Samplers slice such a file into equal parts, which is why every
// slot must have exactly the same length and format.
//
// # Build stages
//
// Build runs these stages in order:
//
//  1. Loaded: every file is loaded; failures are logged and skipped.
//  2. LengthNormalized: slots are resampled to the output rate, then
//     zero padded or truncated to the longest resampled slot.
//  3. CountNormalized: with EnforcePowerOfTwo the slot count is rounded up
//     to a power of two, capped at MaxSamplesPerChain, and filled using the
//     PadStrategy (repeat-last, silence or none).
//  4. FormatConverted: each slot is converted to the output format.
//  5. Concatenated: slots are joined in order.
//
// The build ends Built, or Failed with a *BuildError naming the stage.
// Partial chains are never returned.
//
//	a, err := chain.NewAssembler(chain.Config{
//	    Output:             audio.Format{SampleRate: 48000, BitDepth: 16, Channels: 2},
//	    EnforcePowerOfTwo:  true,
//	    PadStrategy:        chain.PadRepeatLast,
//	    MaxSamplesPerChain: 32,
//	    Dithering:          true,
//	}, loader.New())
//	c, err := a.Build(ctx, "drums/kick", paths)
package chain
