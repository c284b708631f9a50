// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Encoding tells how the values in a Buffer are scaled.
type Encoding int

const (
	// Float samples are nominally in [-1, 1].
	Float Encoding = iota
	// PCM samples hold integer values at the buffer's bit depth full scale.
	PCM
)

func (e Encoding) String() string {
	if e == PCM {
		return "pcm"
	}
	return "float"
}

// Format describes the shape of a PCM stream: sample rate, bit depth and
// channel count. It is a value type and never mutated in place.
type Format struct {
	SampleRate int `json:"sample_rate" yaml:"sample_rate"`
	BitDepth   int `json:"bit_depth" yaml:"bit_depth"`
	Channels   int `json:"channels" yaml:"channels"`
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dbit/%dch", f.SampleRate, f.BitDepth, f.Channels)
}

// Validate checks that f can be used as a conversion target.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, f.SampleRate)
	}
	switch f.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: bit depth %d", ErrUnsupportedFormat, f.BitDepth)
	}
	if f.Channels < 1 {
		return fmt.Errorf("%w: channel count %d", ErrUnsupportedFormat, f.Channels)
	}
	return nil
}

// BytesPerFrame is the size of one interleaved frame once encoded.
func (f Format) BytesPerFrame() int {
	return f.Channels * (f.BitDepth / 8)
}

// Buffer is an in-memory block of interleaved audio frames. Its logical
// shape is (Frames(), Format.Channels); mono buffers are still framed.
// The Format always describes the current representation of Samples.
type Buffer struct {
	Format   Format
	Encoding Encoding
	Samples  []float64
}

// NewBuffer allocates a zeroed buffer of the given number of frames.
func NewBuffer(format Format, enc Encoding, frames int) *Buffer {
	if frames < 0 {
		frames = 0
	}
	return &Buffer{
		Format:   format,
		Encoding: enc,
		Samples:  make([]float64, frames*format.Channels),
	}
}

// NewFloatBuffer wraps interleaved float samples as a 32-bit float buffer.
func NewFloatBuffer(sampleRate, channels int, samples []float64) *Buffer {
	return &Buffer{
		Format:   Format{SampleRate: sampleRate, BitDepth: 32, Channels: channels},
		Encoding: Float,
		Samples:  samples,
	}
}

// Frames returns the number of frames held by the buffer.
func (b *Buffer) Frames() int {
	if b == nil || b.Format.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Format.Channels
}

// At returns the sample for frame i on channel ch.
func (b *Buffer) At(i, ch int) float64 {
	return b.Samples[i*b.Format.Channels+ch]
}

// Frame returns a copy of frame i.
func (b *Buffer) Frame(i int) []float64 {
	ch := b.Format.Channels
	out := make([]float64, ch)
	copy(out, b.Samples[i*ch:(i+1)*ch])
	return out
}

// Channel returns a deinterleaved copy of one channel.
func (b *Buffer) Channel(ch int) []float64 {
	frames := b.Frames()
	out := make([]float64, frames)
	for i := range frames {
		out[i] = b.Samples[i*b.Format.Channels+ch]
	}
	return out
}

// Duration is the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.Format.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.Format.SampleRate)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	samples := make([]float64, len(b.Samples))
	copy(samples, b.Samples)
	return &Buffer{Format: b.Format, Encoding: b.Encoding, Samples: samples}
}

// Float returns a copy scaled into [-1, 1] as a 32-bit float buffer.
// PCM values are divided by the full scale of their bit depth.
func (b *Buffer) Float() *Buffer {
	out := b.Clone()
	out.Encoding = Float
	out.Format.BitDepth = 32
	if b.Encoding == Float {
		return out
	}
	scale, offset := pcmScale(b.Format.BitDepth)
	for i, v := range out.Samples {
		out.Samples[i] = (v - offset) / scale
	}
	return out
}

// Equal reports whether two buffers have the same format, encoding and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Format != o.Format || b.Encoding != o.Encoding || len(b.Samples) != len(o.Samples) {
		return false
	}
	for i := range b.Samples {
		if b.Samples[i] != o.Samples[i] {
			return false
		}
	}
	return true
}

func interleave(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	n := len(channels)
	out := make([]float64, frames*n)
	for c, data := range channels {
		for i, v := range data {
			out[i*n+c] = v
		}
	}
	return out
}

// Info is what a header read reveals about a file without decoding it.
type Info struct {
	Format   Format
	Frames   int64
	Duration float64
}

// Decoder decodes one container format into a float Buffer.
//
// Decode returns the decoded samples (Float encoding, 32-bit descriptor)
// together with the source format as stored in the file. Probe reads only
// what is needed to fill an Info.
type Decoder interface {
	Decode(r io.ReadSeeker) (*Buffer, Format, error)
	Probe(r io.ReadSeeker) (Info, error)
}

// Registry for decoders by file extension (e.g., "wav", "flac", "mp3").
type Registry struct {
	codecs map[string]Decoder
	mtx    *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register binds ext (with or without a leading dot, any case) to d.
func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.codecs[normalizeExt(ext)] = d
}

// Unregister removes ext from the registry.
func (r *Registry) Unregister(ext string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.codecs, normalizeExt(ext))
}

func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// Extensions lists the registered extensions, without dots, in no order.
func (r *Registry) Extensions() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	out := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		out = append(out, ext)
	}
	return out
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
