package export

import (
	"context"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/flowreport/report"
)

type yamlExporter struct {
	indent int
}

func newYAML(cfg Config) *yamlExporter {
	return &yamlExporter{indent: cfg.Indent}
}

func (e *yamlExporter) Format() Format { return FormatYAML }

func (e *yamlExporter) ContentType() string { return "application/yaml" }

func (e *yamlExporter) Export(ctx context.Context, w io.Writer, rep *report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(e.indent)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}
