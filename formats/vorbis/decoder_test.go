// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/samplechain/audio"
)

// mockOggVorbisReader simulates oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int {
	return m.sampleRate
}

func (m *mockOggVorbisReader) Channels() int {
	return m.channels
}

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, _, err := Decoder{}.Decode(bytes.NewReader([]byte("OggS but not really")))
	if !errors.Is(err, ErrNotVorbisFile) {
		t.Errorf("Decode() error = %v, want ErrNotVorbisFile", err)
	}

	_, err = Decoder{}.Probe(bytes.NewReader(nil))
	if !errors.Is(err, ErrNotVorbisFile) {
		t.Errorf("Probe() error = %v, want ErrNotVorbisFile", err)
	}
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 3*4096*2+10)
	for i := range samples {
		samples[i] = float32(i%8) / 8
	}
	mock := &mockOggVorbisReader{sampleRate: 48000, channels: 2, samples: samples}

	buf, src, err := readAll(mock)
	if err != nil {
		t.Fatalf("readAll() error = %v", err)
	}
	if src != (audio.Format{SampleRate: 48000, BitDepth: 32, Channels: 2}) {
		t.Errorf("source format = %v", src)
	}
	if len(buf.Samples) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(buf.Samples), len(samples))
	}
	for i, v := range samples {
		if buf.Samples[i] != float64(v) {
			t.Fatalf("sample %d = %v, want %v", i, buf.Samples[i], v)
		}
	}
}

func TestReadAll_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mock *mockOggVorbisReader
		want error
	}{
		{"read error", &mockOggVorbisReader{sampleRate: 44100, channels: 1, err: io.ErrUnexpectedEOF}, io.ErrUnexpectedEOF},
		{"no channels", &mockOggVorbisReader{sampleRate: 44100}, ErrNotVorbisFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := readAll(tt.mock); !errors.Is(err, tt.want) {
				t.Errorf("readAll() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadAll_Empty(t *testing.T) {
	t.Parallel()

	buf, _, err := readAll(&mockOggVorbisReader{sampleRate: 44100, channels: 2})
	if err != nil {
		t.Fatal(err)
	}
	if buf.Frames() != 0 {
		t.Errorf("frames = %d, want 0", buf.Frames())
	}
}
