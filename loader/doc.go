// SPDX-License-Identifier: EPL-2.0

// Package loader opens audio files by extension and decodes them into
// audio.Buffer values.
//
// Supported extensions are .wav, .wave, .aif, .aiff, .flac, .mp3 and .ogg.
// Every loaded buffer is float encoded and framed; Load also returns the
// format stored in the file, so callers know the original bit depth.
//
//	l := loader.New(loader.WithLogger(logger))
//	buf, src, err := l.Load("kicks/kick01.wav")
//	switch {
//	case errors.Is(err, loader.ErrFileNotFound):
//	case errors.Is(err, audio.ErrUnsupportedFormat):
//	case errors.Is(err, loader.ErrLoadFailure):
//	}
//
// Probe reads only the headers, which is what the planner needs to
// estimate durations. Validate loads a file and reports suspicious content.
package loader
