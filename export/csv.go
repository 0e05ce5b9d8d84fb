package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kbukum/flowreport/pipeline"
	"github.com/kbukum/flowreport/report"
)

// Header is the CSV column order.
var Header = []string{"Sequence", "ID", "Activity", "Description", "Role", "Process"}

const utf8BOM = "\uFEFF"

type csvExporter struct {
	comma rune
	bom   bool
}

func newCSV(cfg Config) *csvExporter {
	return &csvExporter{comma: []rune(cfg.Delimiter)[0], bom: cfg.BOM}
}

func (e *csvExporter) Format() Format { return FormatCSV }

func (e *csvExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export streams the header and one record per row. Fields containing the
// delimiter, quotes or newlines are quoted.
func (e *csvExporter) Export(ctx context.Context, w io.Writer, rep *report.Report) error {
	if e.bom {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return err
		}
	}
	cw := csv.NewWriter(w)
	cw.Comma = e.comma
	if err := cw.Write(Header); err != nil {
		return err
	}

	sink := func(_ context.Context, r report.Row) error {
		return cw.Write([]string{
			strconv.Itoa(r.Sequence), r.NodeID, r.Activity, r.Description, r.Role, r.Process,
		})
	}
	if err := pipeline.ForEach(ctx, pipeline.FromSlice(rep.Rows), sink); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
