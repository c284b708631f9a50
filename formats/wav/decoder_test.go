// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/samplechain/audio"
	"github.com/ik5/samplechain/internal/audiotest"
)

func openFixture(t *testing.T, path string) *os.File {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestDecoder_PCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		bits     int
		channels int
		frames   int
	}{
		{"16 bit stereo", 44100, 16, 2, 1000},
		{"24 bit mono", 48000, 24, 1, 480},
		{"32 bit int stereo", 96000, 32, 2, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fixture := audiotest.Tone(tt.rate, tt.bits, tt.channels, tt.frames)
			path := audiotest.WriteWAV(t, t.TempDir(), "tone.wav", fixture)

			buf, src, err := Decoder{}.Decode(openFixture(t, path))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			want := audio.Format{SampleRate: tt.rate, BitDepth: tt.bits, Channels: tt.channels}
			if src != want {
				t.Errorf("source format = %v, want %v", src, want)
			}
			if buf.Encoding != audio.Float || buf.Format.BitDepth != 32 {
				t.Errorf("buffer descriptor = %v/%d, want float/32", buf.Encoding, buf.Format.BitDepth)
			}
			if buf.Frames() != tt.frames {
				t.Errorf("frames = %d, want %d", buf.Frames(), tt.frames)
			}
			tol := 2 * math.Ldexp(1, -(tt.bits-1))
			if diff := audiotest.MaxAbsDiff(fixture.Samples, buf.Samples); diff > tol {
				t.Errorf("sample error = %v, want <= %v", diff, tol)
			}
		})
	}
}

func TestDecoder_Float(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.25, 1, -1, 0.125}
	var raw bytes.Buffer
	if err := WriteFloat32(&raw, 22050, 2, samples); err != nil {
		t.Fatal(err)
	}

	buf, src, err := Decoder{}.Decode(bytes.NewReader(raw.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src != (audio.Format{SampleRate: 22050, BitDepth: 32, Channels: 2}) {
		t.Errorf("source format = %v", src)
	}
	if buf.Frames() != 3 {
		t.Fatalf("frames = %d, want 3", buf.Frames())
	}
	for i, v := range samples {
		if buf.Samples[i] != float64(v) {
			t.Errorf("sample %d = %v, want %v", i, buf.Samples[i], v)
		}
	}
}

func TestDecoder_NotWav(t *testing.T) {
	t.Parallel()

	inputs := map[string][]byte{
		"empty":   {},
		"garbage": []byte("this is certainly not a riff file at all, not even close"),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Decoder{}.Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrNotWavFile) {
				t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
			}
		})
	}
}

func TestDecoder_Probe(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteTone(t, t.TempDir(), "probe.wav", 44100, 16, 2, 22050)

	info, err := Decoder{}.Probe(openFixture(t, path))
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.Format != (audio.Format{SampleRate: 44100, BitDepth: 16, Channels: 2}) {
		t.Errorf("format = %v", info.Format)
	}
	if info.Frames != 22050 {
		t.Errorf("frames = %d, want 22050", info.Frames)
	}
	if math.Abs(info.Duration-0.5) > 1e-9 {
		t.Errorf("duration = %v, want 0.5", info.Duration)
	}
}

// wavWithJunk builds a 16-bit PCM file with a JUNK chunk between fmt and
// data.
func wavWithJunk(rate, channels, frames, junk int) []byte {
	data := frames * channels * 2
	var b bytes.Buffer
	le := func(v any) { binary.Write(&b, binary.LittleEndian, v) }

	b.WriteString("RIFF")
	le(uint32(4 + 8 + 16 + 8 + junk + 8 + data))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	le(uint32(16))
	le(uint16(formatPCM))
	le(uint16(channels))
	le(uint32(rate))
	le(uint32(rate * channels * 2))
	le(uint16(channels * 2))
	le(uint16(16))
	b.WriteString("JUNK")
	le(uint32(junk))
	b.Write(make([]byte, junk))
	b.WriteString("data")
	le(uint32(data))
	b.Write(make([]byte, data))
	return b.Bytes()
}

func TestDecoder_ProbeExtraChunks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		junk   int
		frames int
	}{
		{"no junk", 0, 4800},
		{"small junk", 28, 4800},
		{"large junk", 8192, 480},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info, err := Decoder{}.Probe(bytes.NewReader(wavWithJunk(48000, 2, tt.frames, tt.junk)))
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}
			if info.Frames != int64(tt.frames) {
				t.Errorf("frames = %d, want %d", info.Frames, tt.frames)
			}
			want := float64(tt.frames) / 48000
			if math.Abs(info.Duration-want) > 1e-12 {
				t.Errorf("duration = %v, want %v", info.Duration, want)
			}
		})
	}
}

func TestSampleKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tag       uint16
		bits      int
		wantFloat bool
		wantErr   bool
	}{
		{"pcm 16", formatPCM, 16, false, false},
		{"pcm 8", formatPCM, 8, false, false},
		{"extensible 24", formatExtensible, 24, false, false},
		{"float 32", formatIEEEFloat, 32, true, false},
		{"float 64", formatIEEEFloat, 64, false, true},
		{"pcm 12", formatPCM, 12, false, true},
		{"alaw", 6, 8, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isFloat, err := sampleKind(tt.tag, tt.bits)
			if (err != nil) != tt.wantErr {
				t.Fatalf("sampleKind() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedWavLayout) {
				t.Errorf("error %v does not wrap ErrUnsupportedWavLayout", err)
			}
			if isFloat != tt.wantFloat {
				t.Errorf("isFloat = %v, want %v", isFloat, tt.wantFloat)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  *audio.Buffer
	}{
		{
			name: "pcm16",
			buf: &audio.Buffer{
				Format:   audio.Format{SampleRate: 48000, BitDepth: 16, Channels: 2},
				Encoding: audio.PCM,
				Samples:  []float64{0, 16384, -16384, 32767, -32767, 1},
			},
		},
		{
			name: "pcm24",
			buf: &audio.Buffer{
				Format:   audio.Format{SampleRate: 44100, BitDepth: 24, Channels: 1},
				Encoding: audio.PCM,
				Samples:  []float64{0, 4194304, -8388607, 8388607},
			},
		},
		{
			name: "float",
			buf:  audio.NewFloatBuffer(96000, 1, []float64{0, 0.5, -0.75, 0.25}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "out.wav")
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := Encode(f, tt.buf); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			f.Close()

			got, src, err := Decoder{}.Decode(openFixture(t, path))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src != tt.buf.Format {
				t.Errorf("format = %v, want %v", src, tt.buf.Format)
			}
			want := tt.buf.Float()
			if diff := audiotest.MaxAbsDiff(want.Samples, got.Samples); diff != 0 || got.Frames() != want.Frames() {
				t.Errorf("samples = %v, want %v", got.Samples, want.Samples)
			}
		})
	}
}

func TestEncode_Unsupported(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf := audio.NewFloatBuffer(44100, 1, []float64{0})
	buf.Format.BitDepth = 16
	if err := Encode(f, buf); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestSubtype(t *testing.T) {
	t.Parallel()

	tests := map[int]string{16: SubtypePCM16, 24: SubtypePCM24, 32: SubtypeFloat, 8: SubtypePCM16, 0: SubtypePCM16}
	for bits, want := range tests {
		if got := Subtype(bits); got != want {
			t.Errorf("Subtype(%d) = %q, want %q", bits, got, want)
		}
	}
}

func TestWriteFloat32_Header(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := WriteFloat32(&out, 48000, 2, []float32{0.5, -0.5}); err != nil {
		t.Fatal(err)
	}
	data := out.Bytes()
	if len(data) != 44+8 {
		t.Fatalf("len = %d, want 52", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
		t.Error("malformed chunk ids")
	}
	if data[20] != formatIEEEFloat {
		t.Errorf("format tag = %d, want %d", data[20], formatIEEEFloat)
	}

	if err := WriteFloat32(&out, 48000, 0, nil); !errors.Is(err, ErrUnsupportedWavLayout) {
		t.Errorf("zero channels error = %v", err)
	}
}

func BenchmarkWriteFloat32(b *testing.B) {
	samples := make([]float32, 48000*2)
	var out bytes.Buffer

	b.ReportAllocs()
	for b.Loop() {
		out.Reset()
		_ = WriteFloat32(&out, 48000, 2, samples)
	}
}
