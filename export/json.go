package export

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/kbukum/flowreport/report"
)

type jsonExporter struct {
	indent string
}

func newJSON(cfg Config) *jsonExporter {
	return &jsonExporter{indent: strings.Repeat(" ", cfg.Indent)}
}

func (e *jsonExporter) Format() Format { return FormatJSON }

func (e *jsonExporter) ContentType() string { return "application/json" }

func (e *jsonExporter) Export(ctx context.Context, w io.Writer, rep *report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", e.indent)
	return enc.Encode(rep)
}
