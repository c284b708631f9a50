// SPDX-License-Identifier: EPL-2.0

package chain

import (
	"time"

	"github.com/ik5/samplechain/audio"
)

// Metadata describes a built chain. It is what the exporter writes to the
// JSON sidecar.
type Metadata struct {
	BuildID             string      `json:"build_id"`
	GroupKey            string      `json:"group_key"`
	SampleCount         int         `json:"sample_count"`
	SampleLength        int         `json:"sample_length"`
	SampleDuration      float64     `json:"sample_duration"`
	TotalDuration       float64     `json:"total_duration"`
	SampleRate          int         `json:"sample_rate"`
	BitDepth            int         `json:"bit_depth"`
	Channels            int         `json:"channels"`
	OriginalFiles       []string    `json:"original_files"`
	SkippedFiles        []string    `json:"skipped_files"`
	PowerOfTwo          bool        `json:"power_of_two"`
	PadStrategy         PadStrategy `json:"pad_strategy"`
	ResamplingAlgorithm string      `json:"resampling_algorithm"`
	CreatedAt           time.Time   `json:"created_at"`
}

// Chain is a finished sample chain: SampleCount slots of SampleLength
// frames each, concatenated in Audio. It is not modified after Build.
type Chain struct {
	Audio         *audio.Buffer
	SampleCount   int
	SampleLength  int
	TotalDuration float64
	SourceFiles   []string
	SkippedFiles  []string
	PadStrategy   PadStrategy
	GroupKey      string
	Metadata      Metadata
}

// SlotDuration is the length of one slot in seconds.
func (c *Chain) SlotDuration() float64 {
	if c.Audio == nil || c.Audio.Format.SampleRate <= 0 {
		return 0
	}
	return float64(c.SampleLength) / float64(c.Audio.Format.SampleRate)
}

// Slot returns a copy of slot i.
func (c *Chain) Slot(i int) *audio.Buffer {
	ch := c.Audio.Format.Channels
	start := i * c.SampleLength * ch
	samples := make([]float64, c.SampleLength*ch)
	copy(samples, c.Audio.Samples[start:start+len(samples)])
	return &audio.Buffer{Format: c.Audio.Format, Encoding: c.Audio.Encoding, Samples: samples}
}
