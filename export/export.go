package export

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/kbukum/flowreport/errors"
	"github.com/kbukum/flowreport/report"
)

// Format names an output encoding.
type Format string

// Built-in formats.
const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Extension is the file extension used when a report in format f is stored.
func (f Format) Extension() string {
	if f == FormatTable {
		return "txt"
	}
	return string(f)
}

// Exporter writes one report.
type Exporter interface {
	Format() Format
	// ContentType is the MIME type of the output.
	ContentType() string
	Export(ctx context.Context, w io.Writer, rep *report.Report) error
}

// Factory builds an exporter from a defaulted, validated Config.
type Factory func(cfg Config) Exporter

var (
	mu        sync.RWMutex
	factories = map[Format]Factory{
		FormatCSV:   func(cfg Config) Exporter { return newCSV(cfg) },
		FormatJSON:  func(cfg Config) Exporter { return newJSON(cfg) },
		FormatYAML:  func(cfg Config) Exporter { return newYAML(cfg) },
		FormatTable: func(cfg Config) Exporter { return newTable(cfg) },
	}
)

// Register makes a format available to New, replacing any previous factory.
func Register(f Format, fn Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[f] = fn
}

// Formats lists the registered format names, sorted.
func Formats() []Format {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Format, 0, len(factories))
	for f := range factories {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	mu.RLock()
	_, ok := factories[f]
	mu.RUnlock()
	if !ok {
		return "", apperrors.InvalidInput("format", fmt.Sprintf("unsupported format %q, want one of %s", s, formatList()))
	}
	return f, nil
}

// New creates the exporter named by cfg.Format.
func New(cfg Config) (Exporter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	mu.RLock()
	fn := factories[f]
	mu.RUnlock()
	return fn(cfg), nil
}

// Write is New followed by Export.
func Write(ctx context.Context, w io.Writer, rep *report.Report, cfg Config) error {
	exp, err := New(cfg)
	if err != nil {
		return err
	}
	return exp.Export(ctx, w, rep)
}

func formatList() string {
	names := Formats()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
