package export

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kbukum/flowreport/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	seqStyle    = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type tableExporter struct {
	summary bool
}

func newTable(cfg Config) *tableExporter {
	return &tableExporter{summary: cfg.Summary}
}

func (e *tableExporter) Format() Format { return FormatTable }

func (e *tableExporter) ContentType() string { return "text/plain; charset=utf-8" }

// Export renders rows as a bordered table. Colors are dropped automatically
// when w is not a terminal.
func (e *tableExporter) Export(ctx context.Context, w io.Writer, rep *report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(Header...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return seqStyle
			default:
				return cellStyle
			}
		})
	for _, r := range rep.Rows {
		t.Row(strconv.Itoa(r.Sequence), r.NodeID, r.Activity, r.Description, r.Role, r.Process)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	if !e.summary {
		return nil
	}
	return writeSummary(w, rep.Summary)
}

func writeSummary(w io.Writer, s report.Summary) error {
	_, err := fmt.Fprintf(w, "\nActivities: %d  Roles: %d  Processes: %d\n",
		s.TotalActivities, s.DistinctRoles, s.DistinctProcesses)
	if err != nil {
		return err
	}
	for _, c := range s.ByRole {
		if _, err := fmt.Fprintf(w, "  %-24s %d\n", c.Name, c.Activities); err != nil {
			return err
		}
	}
	return nil
}
