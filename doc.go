// SPDX-License-Identifier: EPL-2.0

// Package samplechain turns folders of one-shot samples into sample chains
// for hardware samplers.
//
// A sample chain is a single WAV file made of equally long slots, one
// sample per slot, with a power-of-two slot count so a sampler can slice
// it evenly. Sources may differ in sample rate, bit depth, channel count
// and length; every slot is converted to one output format first.
//
// # Supported Formats
//
// The loader decodes:
//   - WAV (PCM 8/16/24/32-bit, IEEE float) via formats/wav
//   - AIFF via formats/aiff
//   - FLAC via formats/flac
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// # Quick Start
//
//	cfg, err := config.Load("samplechain.yaml", nil)
//	p, err := samplechain.New(cfg, samplechain.WithRoot("samples"))
//	files, err := p.Discover("samples")
//	report, err := p.Run(ctx, files)
//	for _, c := range report.Chains {
//	    fmt.Println(c.Name, c.Result.AudioPath, c.Err)
//	}
//
// # Building Blocks
//
// Run is plan, build, export. Each step is usable alone:
//
//   - planner groups files: hi-hats by base name with closed takes first,
//     everything else by directory, never more than the cap per chain.
//   - chain.Assembler loads a group, equalizes slot lengths, pads the slot
//     count and converts every slot to the output format.
//   - export.Exporter writes the WAV file and its JSON sidecar.
//   - audio.Converter does the sample rate, channel and bit depth work.
//
// See the individual subpackages for more detailed documentation.
package samplechain
