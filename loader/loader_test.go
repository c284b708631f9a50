// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/samplechain/audio"
	"github.com/ik5/samplechain/formats/wav"
	"github.com/ik5/samplechain/internal/audiotest"
)

type constDecoder struct{}

func (constDecoder) Decode(io.ReadSeeker) (*audio.Buffer, audio.Format, error) {
	return audio.NewFloatBuffer(8000, 1, []float64{0.25, 0.25}), audio.Format{SampleRate: 8000, BitDepth: 8, Channels: 1}, nil
}

func (constDecoder) Probe(io.ReadSeeker) (audio.Info, error) {
	return audio.Info{Format: audio.Format{SampleRate: 8000, BitDepth: 8, Channels: 1}, Frames: 2}, nil
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := audiotest.WriteTone(t, dir, "kick.wav", 44100, 24, 2, 4410)

	buf, src, err := New().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if src != (audio.Format{SampleRate: 44100, BitDepth: 24, Channels: 2}) {
		t.Errorf("source format = %v", src)
	}
	if buf.Format != (audio.Format{SampleRate: 44100, BitDepth: 32, Channels: 2}) || buf.Encoding != audio.Float {
		t.Errorf("buffer descriptor = %v/%v", buf.Format, buf.Encoding)
	}
	if buf.Frames() != 4410 {
		t.Errorf("frames = %d, want 4410", buf.Frames())
	}
}

func TestLoad_MonoIsFramed(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteTone(t, t.TempDir(), "hat.WAV", 48000, 16, 1, 100)

	buf, _, err := New().Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Format.Channels != 1 || len(buf.Samples) != 100 {
		t.Errorf("mono buffer = %d channels, %d samples", buf.Format.Channels, len(buf.Samples))
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	textFile := writeFile(t, dir, "notes.txt", []byte("hello"))
	corrupt := writeFile(t, dir, "broken.wav", []byte("RIFF nonsense"))
	mp3File := writeFile(t, dir, "loop.mp3", []byte("ID3 nonsense"))

	tests := []struct {
		name   string
		loader *Loader
		path   string
		want   error
	}{
		{"missing", New(), filepath.Join(dir, "nope.wav"), ErrFileNotFound},
		{"directory", New(), dir, ErrFileNotFound},
		{"unsupported extension", New(), textFile, audio.ErrUnsupportedFormat},
		{"corrupt wav", New(), corrupt, ErrLoadFailure},
		{"mp3 disabled", New(WithoutMP3()), mp3File, audio.ErrUnsupportedFormat},
		{"mp3 corrupt", New(), mp3File, ErrLoadFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := tt.loader.Load(tt.path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load() error = %v, want %v", err, tt.want)
			}
			var fe *FileError
			if !errors.As(err, &fe) || fe.Op != "load" || fe.Path != tt.path {
				t.Errorf("error %v is not a load FileError for %s", err, tt.path)
			}
		})
	}
}

func TestLoad_DoesNotModifySource(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteTone(t, t.TempDir(), "snare.wav", 44100, 16, 1, 1000)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := New().Load(path); err != nil {
		t.Fatal(err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(before, after) {
		t.Error("loading changed the file on disk")
	}
}

func TestExtensionsAndSupports(t *testing.T) {
	t.Parallel()

	want := []string{".aif", ".aiff", ".flac", ".mp3", ".ogg", ".wav", ".wave"}
	if got := New().Extensions(); !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}

	noMP3 := New(WithoutMP3())
	if slices.Contains(noMP3.Extensions(), ".mp3") {
		t.Error("WithoutMP3 still lists .mp3")
	}

	tests := []struct {
		loader *Loader
		path   string
		want   bool
	}{
		{New(), "a/b/KICK.WAV", true},
		{New(), "pad.ogg", true},
		{New(), "loop.mp3", true},
		{noMP3, "loop.mp3", false},
		{New(), "readme.md", false},
		{New(), "noext", false},
		{New(WithDecoder(".raw", constDecoder{})), "x.raw", true},
	}
	for _, tt := range tests {
		if got := tt.loader.Supports(tt.path); got != tt.want {
			t.Errorf("Supports(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWithDecoder(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "blip.raw", []byte{0})
	buf, src, err := New(WithDecoder("raw", constDecoder{})).Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if src.BitDepth != 8 || buf.Frames() != 2 {
		t.Errorf("got %v with %d frames", src, buf.Frames())
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteTone(t, t.TempDir(), "tom.wav", 48000, 16, 2, 24000)

	info, err := New().Probe(path)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.Frames != 24000 || math.Abs(info.Duration-0.5) > 1e-9 {
		t.Errorf("info = %+v", info)
	}

	if _, err := New().Probe(filepath.Join(t.TempDir(), "gone.wav")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Probe() missing file error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := audiotest.WriteTone(t, dir, "good.wav", 44100, 16, 2, 4410)
	short := audiotest.WriteTone(t, dir, "short.wav", 44100, 16, 1, 100)

	nanPath := filepath.Join(dir, "nan.wav")
	f, err := os.Create(nanPath)
	if err != nil {
		t.Fatal(err)
	}
	samples := make([]float32, 1000)
	samples[10] = float32(math.NaN())
	samples[20] = float32(math.Inf(1))
	if err := wav.WriteFloat32(f, 44100, 1, samples); err != nil {
		t.Fatal(err)
	}
	f.Close()

	l := New()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		r := l.Validate(good)
		if !r.IsValid || len(r.Errors) != 0 || len(r.Warnings) != 0 {
			t.Errorf("report = %+v", r)
		}
		if r.Frames != 4410 || math.Abs(r.Duration-0.1) > 1e-9 || r.Format.BitDepth != 16 {
			t.Errorf("report = %+v", r)
		}
	})

	t.Run("short warns", func(t *testing.T) {
		t.Parallel()
		r := l.Validate(short)
		if !r.IsValid || len(r.Warnings) != 1 {
			t.Errorf("report = %+v", r)
		}
	})

	t.Run("nan and inf are errors", func(t *testing.T) {
		t.Parallel()
		r := l.Validate(nanPath)
		if r.IsValid || len(r.Errors) != 2 {
			t.Fatalf("report = %+v", r)
		}
		for _, err := range r.Errors {
			if !errors.Is(err, audio.ErrInvalidAudioData) {
				t.Errorf("error %v does not wrap ErrInvalidAudioData", err)
			}
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		r := l.Validate(filepath.Join(dir, "missing.wav"))
		if r.IsValid || len(r.Errors) != 1 || !errors.Is(r.Errors[0], ErrFileNotFound) {
			t.Errorf("report = %+v", r)
		}
		if len(r.ErrorStrings()) != 1 {
			t.Errorf("ErrorStrings() = %v", r.ErrorStrings())
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		raw, err := json.Marshal(l.Validate(filepath.Join(dir, "missing.wav")))
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		var doc struct {
			Path    string   `json:"file_path"`
			IsValid bool     `json:"is_valid"`
			Errors  []string `json:"errors"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			t.Fatal(err)
		}
		if doc.IsValid || len(doc.Errors) != 1 || doc.Path == "" {
			t.Errorf("json report = %s", raw)
		}
	})
}
