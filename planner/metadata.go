// SPDX-License-Identifier: EPL-2.0

package planner

// Kind separates hi-hat chains from directory based ones.
type Kind string

const (
	KindHihat   Kind = "hihat"
	KindRegular Kind = "regular"
)

// Metadata describes a planned chain before it is built. Estimates come
// from file headers, not from decoded audio.
type Metadata struct {
	Type                     Kind     `json:"type"`
	SampleCount              int      `json:"sample_count"`
	EstimatedDurationSeconds float64  `json:"estimated_duration_seconds"`
	EstimatedFileSizeMB      float64  `json:"estimated_file_size_mb"`
	ChainNumber              int      `json:"chain_number"`
	MaxSamplesPerChain       int      `json:"max_samples_per_chain"`
	TotalFiles               int      `json:"total_files"`
	Category                 Category `json:"category,omitempty"`

	*HihatMetadata
}

// HihatMetadata is set only for hi-hat chains.
type HihatMetadata struct {
	ClosedCount         int      `json:"closed_count"`
	OpenCount           int      `json:"open_count"`
	HatNames            []string `json:"hat_names"`
	InterleavedSequence []string `json:"interleaved_sequence"`
}
