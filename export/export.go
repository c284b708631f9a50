// SPDX-License-Identifier: EPL-2.0

package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/samplechain/audio"
	"github.com/ik5/samplechain/chain"
	"github.com/ik5/samplechain/formats/wav"
)

// Result describes the files written for one chain.
type Result struct {
	AudioPath    string `json:"audio_path"`
	MetadataPath string `json:"metadata_path,omitempty"`
	Subtype      string `json:"subtype"`
	FileSize     int64  `json:"file_size"`
}

// sidecar is the JSON document written next to each chain.
type sidecar struct {
	chain.Metadata
	AudioFile string `json:"audio_file"`
	Subtype   string `json:"subtype"`
	Plan      any    `json:"plan,omitempty"`
}

// Exporter writes chains as WAV files, with an optional JSON sidecar.
type Exporter struct {
	outputDir       string
	metadataDir     string
	includeMetadata bool
	conv            *audio.Converter
	logger          *slog.Logger
}

type Option func(*Exporter)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetadataDir sets where sidecars go. The default is
// <output dir>/metadata; an empty dir keeps it.
func WithMetadataDir(dir string) Option {
	return func(e *Exporter) {
		if dir != "" {
			e.metadataDir = dir
		}
	}
}

// WithoutMetadata disables sidecars.
func WithoutMetadata() Option {
	return func(e *Exporter) {
		e.includeMetadata = false
	}
}

// WithConverter sets the converter used for chains whose depth has no
// WAV subtype of its own.
func WithConverter(conv *audio.Converter) Option {
	return func(e *Exporter) {
		if conv != nil {
			e.conv = conv
		}
	}
}

func New(outputDir string, opts ...Option) *Exporter {
	e := &Exporter{
		outputDir:       outputDir,
		metadataDir:     filepath.Join(outputDir, "metadata"),
		includeMetadata: true,
		conv:            audio.NewConverter(audio.ConverterOptions{Dithering: true}),
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FileName is the base name, without extension, of the files written for
// a chain: the group key with "/" replaced by "-", the slot count and the
// slot duration in seconds.
//
//	FileName("drums/kick", 16, 1.5) == "drums-kick-16-1.500s"
func FileName(groupKey string, sampleCount int, slotDuration float64) string {
	key := strings.ReplaceAll(groupKey, "/", "-")
	key = strings.ReplaceAll(key, string(filepath.Separator), "-")
	return fmt.Sprintf("%s-%d-%.3fs", key, sampleCount, slotDuration)
}

// Export writes c to the output directory. name overrides the chain group
// key in the file name when not empty. extra, usually the planner
// metadata, is stored under "plan" in the sidecar.
func (e *Exporter) Export(c *chain.Chain, name string, extra any) (Result, error) {
	if c == nil || c.Audio == nil {
		return Result{}, ErrEmptyChain
	}
	if name == "" {
		name = c.GroupKey
	}

	buf, err := e.encodable(c.Audio)
	if err != nil {
		return Result{}, err
	}

	base := FileName(name, c.SampleCount, c.SlotDuration())
	res := Result{
		AudioPath: filepath.Join(e.outputDir, base+".wav"),
		Subtype:   wav.Subtype(buf.Format.BitDepth),
	}

	if res.FileSize, err = writeAudio(res.AudioPath, buf); err != nil {
		return Result{}, err
	}

	if e.includeMetadata {
		res.MetadataPath = filepath.Join(e.metadataDir, base+".json")
		doc := sidecar{
			Metadata:  c.Metadata,
			AudioFile: filepath.Base(res.AudioPath),
			Subtype:   res.Subtype,
			Plan:      extra,
		}
		if err := writeJSON(res.MetadataPath, doc); err != nil {
			return Result{}, err
		}
	}

	e.logger.Info("exported sample chain",
		slog.String("path", res.AudioPath),
		slog.String("subtype", res.Subtype),
		slog.Int64("bytes", res.FileSize),
	)
	return res, nil
}

// encodable returns buf in a layout the WAV encoder takes, converting to
// 16-bit PCM when needed.
func (e *Exporter) encodable(buf *audio.Buffer) (*audio.Buffer, error) {
	switch {
	case buf.Format.BitDepth == 16 && buf.Encoding == audio.PCM,
		buf.Format.BitDepth == 24 && buf.Encoding == audio.PCM,
		buf.Format.BitDepth == 32 && buf.Encoding == audio.Float:
		return buf, nil
	}

	e.logger.Debug("converting chain for export",
		slog.String("from", buf.Format.String()),
		slog.Int("to_bits", 16),
	)
	out, err := e.conv.ConvertBitDepth(buf, 16)
	if err != nil {
		return nil, fmt.Errorf("converting to 16 bit: %w", err)
	}
	return out, nil
}

func writeAudio(path string, buf *audio.Buffer) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, &ExportError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, &ExportError{Op: "create", Path: path, Err: err}
	}

	if err := wav.Encode(f, buf); err != nil {
		f.Close()
		os.Remove(path)
		return 0, &ExportError{Op: "encode", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, &ExportError{Op: "close", Path: path, Err: err}
	}

	st, err := os.Stat(path)
	if err != nil {
		return 0, &ExportError{Op: "stat", Path: path, Err: err}
	}
	return st.Size(), nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ExportError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &ExportError{Op: "marshal", Path: path, Err: err}
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ExportError{Op: "write", Path: path, Err: err}
	}
	return nil
}
