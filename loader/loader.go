// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/ik5/samplechain/audio"
	"github.com/ik5/samplechain/formats/aiff"
	"github.com/ik5/samplechain/formats/flac"
	"github.com/ik5/samplechain/formats/mp3"
	"github.com/ik5/samplechain/formats/vorbis"
	"github.com/ik5/samplechain/formats/wav"
)

// Loader reads audio files into float buffers. It never writes to the
// files it reads.
type Loader struct {
	registry *audio.Registry
	logger   *slog.Logger
}

type Option func(*Loader)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithoutMP3 leaves .mp3 out of the registry; such files then fail with
// audio.ErrUnsupportedFormat.
func WithoutMP3() Option {
	return func(l *Loader) {
		l.registry.Unregister("mp3")
	}
}

// WithDecoder registers an extra decoder, or replaces a built-in one.
func WithDecoder(ext string, d audio.Decoder) Option {
	return func(l *Loader) {
		l.registry.Register(ext, d)
	}
}

func New(opts ...Option) *Loader {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	l := &Loader{registry: reg, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Extensions returns the supported extensions with a leading dot, sorted.
func (l *Loader) Extensions() []string {
	exts := l.registry.Extensions()
	for i, ext := range exts {
		exts[i] = "." + ext
	}
	slices.Sort(exts)
	return exts
}

// Supports reports whether path has an extension the loader can decode.
func (l *Loader) Supports(path string) bool {
	_, ok := l.registry.Get(filepath.Ext(path))
	return ok
}

// Load decodes path. The buffer is float encoded with a 32-bit descriptor;
// the returned Format is the one stored in the file.
func (l *Loader) Load(path string) (*audio.Buffer, audio.Format, error) {
	var (
		buf *audio.Buffer
		src audio.Format
	)
	err := l.withFile("load", path, func(d audio.Decoder, r io.ReadSeeker) error {
		var err error
		buf, src, err = d.Decode(r)
		return err
	})
	if err != nil {
		return nil, audio.Format{}, err
	}

	l.logger.Debug("loaded audio file",
		slog.String("path", path),
		slog.String("format", src.String()),
		slog.Int("frames", buf.Frames()),
	)
	return buf, src, nil
}

// Probe reads only the headers of path.
func (l *Loader) Probe(path string) (audio.Info, error) {
	var info audio.Info
	err := l.withFile("probe", path, func(d audio.Decoder, r io.ReadSeeker) error {
		var err error
		info, err = d.Probe(r)
		return err
	})
	return info, err
}

func (l *Loader) withFile(op, path string, fn func(audio.Decoder, io.ReadSeeker) error) error {
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileError{Op: op, Path: path, Err: ErrFileNotFound}
		}
		return &FileError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrLoadFailure, err)}
	}
	if st.IsDir() {
		return &FileError{Op: op, Path: path, Err: ErrFileNotFound}
	}

	ext := filepath.Ext(path)
	dec, ok := l.registry.Get(ext)
	if !ok {
		return &FileError{Op: op, Path: path, Err: fmt.Errorf("%w: %q", audio.ErrUnsupportedFormat, ext)}
	}

	f, err := os.Open(path)
	if err != nil {
		return &FileError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrLoadFailure, err)}
	}
	defer f.Close()

	if err := fn(dec, f); err != nil {
		return &FileError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrLoadFailure, err)}
	}
	return nil
}
