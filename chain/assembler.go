// SPDX-License-Identifier: EPL-2.0

package chain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/samplechain/audio"
)

// Loader is the part of loader.Loader the assembler needs.
type Loader interface {
	Load(path string) (*audio.Buffer, audio.Format, error)
}

// Assembler builds chains from groups of files. It holds no per-build
// state, so one Assembler can serve concurrent builds.
type Assembler struct {
	cfg    Config
	loader Loader
	conv   *audio.Converter
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Assembler)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithConverter replaces the converter built from Config, e.g. to seed
// the dither noise.
func WithConverter(conv *audio.Converter) Option {
	return func(a *Assembler) {
		if conv != nil {
			a.conv = conv
		}
	}
}

// WithClock sets the source of build timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

func NewAssembler(cfg Config, loader Loader, opts ...Option) (*Assembler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, fmt.Errorf("%w: nil loader", ErrInvalidConfig)
	}

	a := &Assembler{
		cfg:    cfg,
		loader: loader,
		conv: audio.NewConverter(audio.ConverterOptions{
			Resampler: cfg.ResamplingAlgorithm,
			Dithering: cfg.Dithering,
		}),
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}

	if _, known := audio.ResolveAlgorithm(cfg.ResamplingAlgorithm); !known {
		a.logger.Warn("unknown resampling algorithm, using sinc",
			slog.String("algorithm", cfg.ResamplingAlgorithm))
	}
	return a, nil
}

// Config returns the configuration the assembler was built with.
func (a *Assembler) Config() Config {
	return a.cfg
}

// Build loads paths in order and assembles them into one chain. Files that
// fail to load are skipped; if none load the build fails with
// ErrNoLoadableFiles. Any failure is returned as a *BuildError and no
// partial chain is returned.
func (a *Assembler) Build(ctx context.Context, groupKey string, paths []string) (*Chain, error) {
	log := a.logger.With(slog.String("group", groupKey))
	fail := func(stage Stage, err error) (*Chain, error) {
		log.Debug("chain build failed", slog.String("stage", stage.String()), slog.Any("error", err))
		return nil, &BuildError{GroupKey: groupKey, Stage: stage, Err: err}
	}

	log.Info("building sample chain", slog.Int("files", len(paths)))

	slots, skipped, err := a.load(ctx, log, paths)
	if err != nil {
		return fail(StageLoaded, err)
	}
	log.Debug("stage", slog.String("stage", StageLoaded.String()), slog.Int("slots", len(slots)))

	frames := a.targetLength(slots)
	if slots, err = a.normalizeLengths(ctx, slots, frames); err != nil {
		return fail(StageLengthNormalized, err)
	}
	log.Debug("stage", slog.String("stage", StageLengthNormalized.String()), slog.Int("frames", frames))

	slots = a.normalizeCount(slots)
	log.Debug("stage", slog.String("stage", StageCountNormalized.String()), slog.Int("slots", len(slots)))

	for i, slot := range slots {
		if err := ctx.Err(); err != nil {
			return fail(StageFormatConverted, err)
		}
		if slots[i], err = a.conv.Convert(slot, a.cfg.Output); err != nil {
			return fail(StageFormatConverted, fmt.Errorf("slot %d: %w", i, err))
		}
	}
	log.Debug("stage", slog.String("stage", StageFormatConverted.String()))

	out := concatenate(slots, a.cfg.Output)
	log.Debug("stage", slog.String("stage", StageConcatenated.String()), slog.Int("frames", out.Frames()))

	c := &Chain{
		Audio:         out,
		SampleCount:   len(slots),
		SampleLength:  frames,
		TotalDuration: out.Duration(),
		SourceFiles:   append([]string(nil), paths...),
		SkippedFiles:  skipped,
		PadStrategy:   a.cfg.PadStrategy,
		GroupKey:      groupKey,
	}
	c.Metadata = a.metadata(c)

	log.Info("built sample chain",
		slog.Int("sample_count", c.SampleCount),
		slog.Int("sample_length", c.SampleLength),
		slog.Float64("total_duration", c.TotalDuration),
		slog.Int("skipped", len(skipped)),
	)
	return c, nil
}

func (a *Assembler) load(ctx context.Context, log *slog.Logger, paths []string) ([]*audio.Buffer, []string, error) {
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("%w: no file paths", ErrNoLoadableFiles)
	}

	slots := make([]*audio.Buffer, 0, len(paths))
	skipped := []string{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		buf, _, err := a.loader.Load(path)
		if err != nil {
			log.Warn("skipping file", slog.String("path", path), slog.Any("error", err))
			skipped = append(skipped, path)
			continue
		}
		slots = append(slots, buf)
	}

	if len(slots) == 0 {
		return nil, nil, fmt.Errorf("%w: %d of %d failed", ErrNoLoadableFiles, len(skipped), len(paths))
	}
	return slots, skipped, nil
}

// targetLength is the longest slot once resampled to the output rate.
func (a *Assembler) targetLength(slots []*audio.Buffer) int {
	longest := 0
	for _, s := range slots {
		n := audio.ResampledLength(s.Frames(), s.Format.SampleRate, a.cfg.Output.SampleRate)
		longest = max(longest, n)
	}
	return longest
}

// normalizeLengths resamples every slot to the output rate and pads with
// trailing silence or truncates it to frames.
func (a *Assembler) normalizeLengths(ctx context.Context, slots []*audio.Buffer, frames int) ([]*audio.Buffer, error) {
	out := make([]*audio.Buffer, len(slots))
	for i, s := range slots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := a.conv.ConvertSampleRate(s, a.cfg.Output.SampleRate)
		r = fit(r, frames)
		if a.cfg.NormalizeSlots {
			r = a.conv.Normalize(r, a.cfg.NormalizeTargetDB)
		}
		out[i] = r
	}
	return out, nil
}

// fit pads buf with zeros or truncates it to exactly frames.
func fit(buf *audio.Buffer, frames int) *audio.Buffer {
	want := frames * buf.Format.Channels
	if len(buf.Samples) == want {
		return buf
	}
	samples := make([]float64, want)
	copy(samples, buf.Samples)
	return &audio.Buffer{Format: buf.Format, Encoding: buf.Encoding, Samples: samples}
}

// normalizeCount truncates or pads the slot list to the target count.
func (a *Assembler) normalizeCount(slots []*audio.Buffer) []*audio.Buffer {
	target := TargetSlotCount(len(slots), a.cfg.MaxSamplesPerChain, a.cfg.EnforcePowerOfTwo)
	if len(slots) >= target {
		return slots[:target]
	}

	switch a.cfg.PadStrategy {
	case PadRepeatLast:
		last := slots[len(slots)-1]
		for len(slots) < target {
			slots = append(slots, last.Clone())
		}
	case PadSilence:
		first := slots[0]
		for len(slots) < target {
			slots = append(slots, audio.NewBuffer(first.Format, first.Encoding, first.Frames()))
		}
	case PadNone:
	}
	return slots
}

func concatenate(slots []*audio.Buffer, format audio.Format) *audio.Buffer {
	size := 0
	for _, s := range slots {
		size += len(s.Samples)
	}
	out := &audio.Buffer{Format: format, Encoding: audio.Float, Samples: make([]float64, 0, size)}
	if len(slots) > 0 {
		out.Encoding = slots[0].Encoding
	}
	for _, s := range slots {
		out.Samples = append(out.Samples, s.Samples...)
	}
	return out
}

func (a *Assembler) metadata(c *Chain) Metadata {
	out := a.cfg.Output
	return Metadata{
		BuildID:             a.newID(),
		GroupKey:            c.GroupKey,
		SampleCount:         c.SampleCount,
		SampleLength:        c.SampleLength,
		SampleDuration:      float64(c.SampleLength) / float64(out.SampleRate),
		TotalDuration:       c.TotalDuration,
		SampleRate:          out.SampleRate,
		BitDepth:            out.BitDepth,
		Channels:            out.Channels,
		OriginalFiles:       c.SourceFiles,
		SkippedFiles:        c.SkippedFiles,
		PowerOfTwo:          IsPowerOfTwo(c.SampleCount),
		PadStrategy:         c.PadStrategy,
		ResamplingAlgorithm: a.conv.Algorithm(),
		CreatedAt:           a.now().UTC(),
	}
}
