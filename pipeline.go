// SPDX-License-Identifier: EPL-2.0

package samplechain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/samplechain/chain"
	"github.com/ik5/samplechain/config"
	"github.com/ik5/samplechain/export"
	"github.com/ik5/samplechain/loader"
	"github.com/ik5/samplechain/planner"
)

// Pipeline wires the loader, planner, assembler and exporter from one
// configuration.
type Pipeline struct {
	cfg       *config.Config
	loader    *loader.Loader
	planner   *planner.Planner
	assembler *chain.Assembler
	exporter  *export.Exporter
	logger    *slog.Logger
}

type options struct {
	logger *slog.Logger
	root   string
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRoot sets the scanned directory; the planner classifies files by
// their path relative to it.
func WithRoot(dir string) Option {
	return func(o *options) {
		o.root = dir
	}
}

func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil configuration", config.ErrInvalidValue)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	loaderOpts := []loader.Option{loader.WithLogger(o.logger)}
	if cfg.DisableMP3 {
		loaderOpts = append(loaderOpts, loader.WithoutMP3())
	}
	ld := loader.New(loaderOpts...)

	pl, err := planner.New(cfg.PlannerConfig(o.root), ld, planner.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	asm, err := chain.NewAssembler(cfg.ChainConfig(), ld, chain.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	exportOpts := []export.Option{
		export.WithLogger(o.logger),
		export.WithMetadataDir(cfg.MetadataPath()),
	}
	if !cfg.IncludeMetadata {
		exportOpts = append(exportOpts, export.WithoutMetadata())
	}

	return &Pipeline{
		cfg:       cfg,
		loader:    ld,
		planner:   pl,
		assembler: asm,
		exporter:  export.New(cfg.OutputDir, exportOpts...),
		logger:    o.logger,
	}, nil
}

// Loader returns the loader the pipeline reads files with.
func (p *Pipeline) Loader() *loader.Loader {
	return p.loader
}

// Discover walks root and returns every file the loader can decode, in
// lexical order.
func (p *Pipeline) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !p.loader.Supports(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering audio files in %s: %w", root, err)
	}

	slices.Sort(files)
	p.logger.Debug("discovered audio files", slog.String("root", root), slog.Int("files", len(files)))
	return files, nil
}

// Plan groups files into chains without decoding any audio.
func (p *Pipeline) Plan(files []string) *planner.Plan {
	return p.planner.Plan(files)
}

// ChainReport is the outcome of one planned chain.
type ChainReport struct {
	Name         string        `json:"name"`
	Files        int           `json:"files"`
	SampleCount  int           `json:"sample_count,omitempty"`
	SampleLength int           `json:"sample_length,omitempty"`
	Skipped      []string      `json:"skipped_files,omitempty"`
	Result       export.Result `json:"result"`
	Err          error         `json:"-"`
}

// MarshalJSON adds the error text under "error".
func (c ChainReport) MarshalJSON() ([]byte, error) {
	type report ChainReport
	var msg string
	if c.Err != nil {
		msg = c.Err.Error()
	}
	return json.Marshal(struct {
		report
		Error string `json:"error,omitempty"`
	}{report(c), msg})
}

// Report is the outcome of Run. Chains follow plan order.
type Report struct {
	Plan   *planner.Plan `json:"-"`
	Chains []ChainReport `json:"chains"`
	Built  int           `json:"built"`
	Failed int           `json:"failed"`
}

// Err joins the errors of every failed chain, or is nil.
func (r *Report) Err() error {
	var errs []error
	for _, c := range r.Chains {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return errors.Join(errs...)
}

// Run plans files, then builds and exports every chain on a pool of
// cfg.Workers goroutines. A failed chain is recorded in the report and
// does not stop the others. The returned error is only set when ctx is
// done before all chains finished.
func (p *Pipeline) Run(ctx context.Context, files []string) (*Report, error) {
	plan := p.Plan(files)
	report := &Report{
		Plan:   plan,
		Chains: make([]ChainReport, len(plan.Chains)),
	}

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)

	for i, pc := range plan.Chains {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			report.Chains[i] = p.runChain(ctx, pc)
			return nil
		})
	}
	_ = g.Wait()

	for i := range report.Chains {
		cr := &report.Chains[i]
		if cr.Name == "" {
			cr.Name = plan.Chains[i].Name
			cr.Files = len(plan.Chains[i].Files)
			cr.Err = ctx.Err()
		}
		if cr.Err != nil {
			report.Failed++
		} else {
			report.Built++
		}
	}

	p.logger.Info("sample chains done",
		slog.Int("built", report.Built),
		slog.Int("failed", report.Failed),
	)
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (p *Pipeline) runChain(ctx context.Context, pc planner.Chain) ChainReport {
	cr := ChainReport{Name: pc.Name, Files: len(pc.Files)}

	c, err := p.assembler.Build(ctx, pc.Name, pc.Paths())
	if err != nil {
		p.logger.Error("chain build failed", slog.String("chain", pc.Name), slog.Any("error", err))
		cr.Err = err
		return cr
	}
	cr.SampleCount = c.SampleCount
	cr.SampleLength = c.SampleLength
	cr.Skipped = c.SkippedFiles

	res, err := p.exporter.Export(c, pc.Name, pc.Metadata)
	if err != nil {
		p.logger.Error("chain export failed", slog.String("chain", pc.Name), slog.Any("error", err))
		cr.Err = fmt.Errorf("export chain %q: %w", pc.Name, err)
		return cr
	}
	cr.Result = res
	return cr
}
