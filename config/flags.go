// SPDX-License-Identifier: EPL-2.0

package config

import "github.com/spf13/pflag"

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"max-samples":  "max_samples_per_chain",
	"sample-rate":  "output_sample_rate",
	"bit-depth":    "output_bit_depth",
	"channels":     "output_channels",
	"pad-strategy": "pad_strategy",
	"power-of-two": "enforce_power_of_two",
	"dither":       "dithering",
	"resampler":    "resampling_algorithm",
	"output":       "output_dir",
	"metadata-dir": "metadata_dir",
	"metadata":     "include_metadata",
	"normalize":    "normalize_slots",
	"normalize-db": "normalize_target_db",
	"workers":      "workers",
	"disable-mp3":  "disable_mp3",
}

// AddFlags registers the flags Load understands. Their defaults only show
// in help output; unset flags never override the file or environment.
func AddFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.IntP("max-samples", "m", 0, "maximum samples per chain (required)")
	fs.Int("sample-rate", d.OutputSampleRate, "output sample rate in Hz")
	fs.Int("bit-depth", d.OutputBitDepth, "output bit depth: 16, 24 or 32")
	fs.Int("channels", d.OutputChannels, "output channels: 1 or 2")
	fs.String("pad-strategy", d.PadStrategy, "how to fill slots: repeat-last, silence or none")
	fs.Bool("power-of-two", d.EnforcePowerOfTwo, "round the slot count up to a power of two")
	fs.Bool("dither", d.Dithering, "dither when reducing bit depth")
	fs.String("resampler", d.ResamplingAlgorithm, "resampling algorithm: kaiser_best, kaiser_fast, cubic or linear")
	fs.StringP("output", "o", d.OutputDir, "output directory")
	fs.String("metadata-dir", "", "metadata directory (default <output>/metadata)")
	fs.Bool("metadata", d.IncludeMetadata, "write a JSON sidecar per chain")
	fs.Bool("normalize", d.NormalizeSlots, "RMS normalize every slot")
	fs.Float64("normalize-db", d.NormalizeTargetDB, "RMS target in dBFS for --normalize")
	fs.IntP("workers", "j", d.Workers, "chains built in parallel")
	fs.Bool("disable-mp3", d.DisableMP3, "do not load MP3 files")
}
