// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"slices"
	"testing"
)

type stubDecoder struct{ name string }

func (stubDecoder) Decode(io.ReadSeeker) (*Buffer, Format, error) {
	return nil, Format{}, errors.New("not implemented")
}

func (stubDecoder) Probe(io.ReadSeeker) (Info, error) {
	return Info{}, nil
}

func TestFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"cd", Format{44100, 16, 2}, false},
		{"24 bit mono", Format{48000, 24, 1}, false},
		{"float", Format{96000, 32, 2}, false},
		{"zero rate", Format{0, 16, 2}, true},
		{"8 bit", Format{44100, 8, 2}, true},
		{"no channels", Format{44100, 16, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.format.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("error %v does not wrap ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	got := Format{SampleRate: 48000, BitDepth: 24, Channels: 2}.String()
	if got != "48000Hz/24bit/2ch" {
		t.Errorf("String() = %q", got)
	}
	if n := (Format{SampleRate: 48000, BitDepth: 24, Channels: 2}).BytesPerFrame(); n != 6 {
		t.Errorf("BytesPerFrame() = %d, want 6", n)
	}
}

func TestBuffer_Accessors(t *testing.T) {
	t.Parallel()

	buf := NewFloatBuffer(4, 2, []float64{0, 1, 2, 3, 4, 5, 6, 7})

	if got := buf.Frames(); got != 4 {
		t.Errorf("Frames() = %d, want 4", got)
	}
	if got := buf.At(2, 1); got != 5 {
		t.Errorf("At(2, 1) = %v, want 5", got)
	}
	if got := buf.Duration(); got != 1 {
		t.Errorf("Duration() = %v, want 1", got)
	}
	if got := buf.Channel(0); !slices.Equal(got, []float64{0, 2, 4, 6}) {
		t.Errorf("Channel(0) = %v", got)
	}

	frame := buf.Frame(1)
	frame[0] = 100
	if buf.At(1, 0) != 2 {
		t.Error("Frame returned an alias into the buffer")
	}

	clone := buf.Clone()
	clone.Samples[0] = 42
	if buf.Samples[0] != 0 {
		t.Error("Clone shares samples with the original")
	}
	if !buf.Equal(buf.Clone()) {
		t.Error("buffer should equal its clone")
	}
}

func TestBuffer_FramesEmpty(t *testing.T) {
	t.Parallel()

	var nilBuf *Buffer
	if nilBuf.Frames() != 0 {
		t.Error("nil buffer should have zero frames")
	}
	buf := NewBuffer(Format{SampleRate: 44100, BitDepth: 16, Channels: 2}, PCM, -3)
	if buf.Frames() != 0 || len(buf.Samples) != 0 {
		t.Errorf("negative frame count gave %d frames", buf.Frames())
	}
}

func TestBuffer_Float(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bits int
		in   float64
		want float64
	}{
		{"pcm16 half", 16, 16384, 0.5},
		{"pcm16 min", 16, -32768, -1},
		{"pcm24 quarter", 24, 2097152, 0.25},
		{"pcm32 half", 32, 1073741824, 0.5},
		{"pcm8 unsigned", 8, 192, 0.5},
		{"pcm8 centre", 8, 128, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf := &Buffer{
				Format:   Format{SampleRate: 8000, BitDepth: tt.bits, Channels: 1},
				Encoding: PCM,
				Samples:  []float64{tt.in},
			}
			got := buf.Float()
			if got.Encoding != Float || got.Format.BitDepth != 32 {
				t.Fatalf("Float() = %v/%v, want float/32", got.Encoding, got.Format.BitDepth)
			}
			if math.Abs(got.Samples[0]-tt.want) > 1e-12 {
				t.Errorf("Float() sample = %v, want %v", got.Samples[0], tt.want)
			}
			if buf.Samples[0] != tt.in {
				t.Error("Float modified its receiver")
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(".WAV", stubDecoder{"wav"})
	reg.Register("flac", stubDecoder{"flac"})

	d, ok := reg.Get("wav")
	if !ok {
		t.Fatal("wav decoder not found")
	}
	if d.(stubDecoder).name != "wav" {
		t.Errorf("got decoder %v", d)
	}
	if _, ok := reg.Get(".Flac"); !ok {
		t.Error("lookup should ignore case and leading dot")
	}

	exts := reg.Extensions()
	slices.Sort(exts)
	if !slices.Equal(exts, []string{"flac", "wav"}) {
		t.Errorf("Extensions() = %v", exts)
	}

	reg.Unregister("wav")
	if _, ok := reg.Get("wav"); ok {
		t.Error("wav still registered after Unregister")
	}
}
