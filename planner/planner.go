// SPDX-License-Identifier: EPL-2.0

package planner

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ik5/samplechain/audio"
)

// fallbackInfo stands in for files whose headers cannot be read.
var fallbackInfo = audio.Info{
	Format:   audio.Format{SampleRate: 44100, BitDepth: 16, Channels: 2},
	Frames:   44100,
	Duration: 1.0,
}

// defaultOutput is used for size estimates when Config.Output is unset.
var defaultOutput = audio.Format{SampleRate: 48000, BitDepth: 16, Channels: 2}

// Prober reads file headers. loader.Loader implements it.
type Prober interface {
	Probe(path string) (audio.Info, error)
}

type Config struct {
	MaxSamplesPerChain int

	// Root is the scanned directory; classification looks at paths
	// relative to it. Empty means use paths as given.
	Root string

	// Output is the format chains will be written in, for size estimates.
	Output audio.Format
}

// File is one planned slot.
type File struct {
	Path      string    `json:"path"`
	Category  Category  `json:"category"`
	HihatType HihatType `json:"hihat_type,omitempty"`
	BaseName  string    `json:"base_name,omitempty"`
}

// Chain is a planned group of files, in slot order.
type Chain struct {
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	Files    []File   `json:"files"`
	Metadata Metadata `json:"metadata"`
}

// Paths lists the chain files in slot order.
func (c Chain) Paths() []string {
	paths := make([]string, len(c.Files))
	for i, f := range c.Files {
		paths[i] = f.Path
	}
	return paths
}

// Plan is the ordered list of chains to build: hi-hat chains first, then
// directory chains sorted by name.
type Plan struct {
	Chains     []Chain          `json:"chains"`
	Categories map[Category]int `json:"categories"`
}

// Get looks a chain up by name.
func (p *Plan) Get(name string) (Chain, bool) {
	for _, c := range p.Chains {
		if c.Name == name {
			return c, true
		}
	}
	return Chain{}, false
}

// Names lists chain names in plan order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Chains))
	for i, c := range p.Chains {
		names[i] = c.Name
	}
	return names
}

// Files is the number of planned slots over all chains.
func (p *Plan) Files() int {
	n := 0
	for _, c := range p.Chains {
		n += len(c.Files)
	}
	return n
}

// Planner groups files into chains. It is safe for concurrent use.
type Planner struct {
	cfg    Config
	prober Prober
	rules  []Rule
	logger *slog.Logger

	mtx   sync.Mutex
	cache map[string]audio.Info
}

type Option func(*Planner)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRules replaces DefaultRules.
func WithRules(rules []Rule) Option {
	return func(p *Planner) {
		p.rules = rules
	}
}

func New(cfg Config, prober Prober, opts ...Option) (*Planner, error) {
	if cfg.MaxSamplesPerChain < 1 {
		return nil, fmt.Errorf("%w: max samples per chain %d", ErrInvalidConfig, cfg.MaxSamplesPerChain)
	}
	if prober == nil {
		return nil, fmt.Errorf("%w: nil prober", ErrInvalidConfig)
	}
	if cfg.Output == (audio.Format{}) {
		cfg.Output = defaultOutput
	}

	p := &Planner{
		cfg:    cfg,
		prober: prober,
		rules:  DefaultRules,
		logger: slog.Default(),
		cache:  make(map[string]audio.Info),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Plan groups paths into chains. Hi-hats are grouped by base name with
// closed takes before open ones; every other file is grouped by its
// directory. No chain holds more than MaxSamplesPerChain files. An empty
// input gives an empty plan.
func (p *Planner) Plan(paths []string) *Plan {
	paths = slices.Clone(paths)
	slices.Sort(paths)
	paths = slices.Compact(paths)

	plan := &Plan{Categories: make(map[Category]int)}

	var hats, regular []File
	for _, path := range paths {
		f := p.describe(path)
		plan.Categories[f.Category]++
		if f.HihatType != HihatNone {
			hats = append(hats, f)
		} else {
			regular = append(regular, f)
		}
	}

	plan.Chains = append(plan.Chains, p.hihatChains(hats)...)
	plan.Chains = append(plan.Chains, p.regularChains(regular)...)

	p.logger.Debug("planned chains",
		slog.Int("files", len(paths)),
		slog.Int("chains", len(plan.Chains)),
	)
	return plan
}

func (p *Planner) describe(path string) File {
	rel := path
	if p.cfg.Root != "" {
		if r, err := filepath.Rel(p.cfg.Root, path); err == nil {
			rel = r
		}
	}

	f := File{
		Path:      path,
		Category:  Classify(p.rules, path, rel),
		HihatType: DetectHihat(path),
	}
	if f.HihatType != HihatNone {
		f.BaseName = BaseName(path)
	}
	return f
}

func (p *Planner) hihatChains(files []File) []Chain {
	if len(files) == 0 {
		return nil
	}

	groups := make(map[string][]File)
	for _, f := range files {
		groups[f.BaseName] = append(groups[f.BaseName], f)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	slices.Sort(names)

	var (
		chains  []Chain
		current []File
		limit   = p.cfg.MaxSamplesPerChain
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		chains = append(chains, p.newHihatChain(len(chains)+1, current))
		current = nil
	}

	for _, name := range names {
		group := interleave(groups[name])

		if len(current)+len(group) > limit {
			flush()
		}
		for len(group) > limit {
			current = group[:limit]
			flush()
			group = group[limit:]
		}
		current = append(current, group...)
	}
	flush()

	return chains
}

// interleave orders one base-name group: closed files, then open files,
// each sorted by path.
func interleave(group []File) []File {
	out := make([]File, 0, len(group))
	for _, t := range []HihatType{HihatClosed, HihatOpen} {
		start := len(out)
		for _, f := range group {
			if f.HihatType == t {
				out = append(out, f)
			}
		}
		slices.SortFunc(out[start:], func(a, b File) int {
			return strings.Compare(a.Path, b.Path)
		})
	}
	return out
}

func (p *Planner) newHihatChain(n int, files []File) Chain {
	files = slices.Clone(files)
	hm := &HihatMetadata{
		InterleavedSequence: make([]string, len(files)),
	}
	for i, f := range files {
		switch f.HihatType {
		case HihatClosed:
			hm.ClosedCount++
		case HihatOpen:
			hm.OpenCount++
		}
		if len(hm.HatNames) == 0 || hm.HatNames[len(hm.HatNames)-1] != f.BaseName {
			hm.HatNames = append(hm.HatNames, f.BaseName)
		}
		hm.InterleavedSequence[i] = f.Path
	}

	c := Chain{
		Name:  fmt.Sprintf("hats_%d", n),
		Kind:  KindHihat,
		Files: files,
	}
	c.Metadata = p.metadata(c, n)
	c.Metadata.HihatMetadata = hm
	return c
}

// GroupKey is the directory key of a regular file: "grandparent/parent",
// "parent", or "root" for files with no directory.
func GroupKey(path string) string {
	parent := filepath.Dir(path)
	pname := dirName(parent)
	if pname == "" {
		return "root"
	}
	if gname := dirName(filepath.Dir(parent)); gname != "" {
		return gname + "/" + pname
	}
	return pname
}

func dirName(dir string) string {
	name := filepath.Base(dir)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return ""
	}
	return name
}

func (p *Planner) regularChains(files []File) []Chain {
	if len(files) == 0 {
		return nil
	}

	groups := make(map[string][]File)
	for _, f := range files {
		key := GroupKey(f.Path)
		groups[key] = append(groups[key], f)
	}
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var chains []Chain
	limit := p.cfg.MaxSamplesPerChain
	for _, key := range keys {
		group := groups[key]
		if len(group) <= limit {
			chains = append(chains, p.newRegularChain(key, 1, group))
			continue
		}
		for i, n := 0, 1; i < len(group); i, n = i+limit, n+1 {
			end := min(i+limit, len(group))
			chains = append(chains, p.newRegularChain(fmt.Sprintf("%s_%d", key, n), n, group[i:end]))
		}
	}
	return chains
}

func (p *Planner) newRegularChain(name string, n int, files []File) Chain {
	c := Chain{
		Name:  name,
		Kind:  KindRegular,
		Files: slices.Clone(files),
	}
	c.Metadata = p.metadata(c, n)
	c.Metadata.Category = dominant(files)
	return c
}

// dominant is the most frequent category; ties go to the earlier rule.
func dominant(files []File) Category {
	counts := make(map[Category]int)
	for _, f := range files {
		counts[f.Category]++
	}
	order := []Category{CategoryDrum, CategoryBass, CategoryLead, CategoryLoop, CategoryOneShot, CategoryUncategorized}
	best := CategoryUncategorized
	bestN := 0
	for _, c := range order {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return best
}

func (p *Planner) metadata(c Chain, n int) Metadata {
	var total, longest float64
	for _, f := range c.Files {
		d := p.info(f.Path).Duration
		total += d
		longest = max(longest, d)
	}

	return Metadata{
		Type:                     c.Kind,
		SampleCount:              len(c.Files),
		EstimatedDurationSeconds: total,
		EstimatedFileSizeMB:      EstimateSizeMB(p.cfg.Output, len(c.Files), longest),
		ChainNumber:              n,
		MaxSamplesPerChain:       p.cfg.MaxSamplesPerChain,
		TotalFiles:               len(c.Files),
	}
}

// EstimateSizeMB is the data size in MiB of count slots of the longest
// duration written in format out.
func EstimateSizeMB(out audio.Format, count int, longest float64) float64 {
	frames := int(longest*float64(out.SampleRate)) * count
	return float64(frames*out.BytesPerFrame()) / (1024 * 1024)
}

func (p *Planner) info(path string) audio.Info {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if info, ok := p.cache[path]; ok {
		return info
	}

	info, err := p.prober.Probe(path)
	if err != nil {
		p.logger.Warn("could not read audio header, using defaults",
			slog.String("path", path),
			slog.Any("error", err),
		)
		info = fallbackInfo
	}
	p.cache[path] = info
	return info
}
