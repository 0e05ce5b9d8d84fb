package report

import (
	"context"

	"github.com/kbukum/flowreport/bpmn"
	"github.com/kbukum/flowreport/flow"
	"github.com/kbukum/flowreport/pipeline"
)

// Assemble turns visits into rows. Each argument holds the visits of one
// process; they are read in argument order, filtered to tasks, and numbered
// from 1 without gaps.
func Assemble(ctx context.Context, perProcess ...[]flow.Visit) ([]Row, error) {
	sources := make([]*pipeline.Pipeline[flow.Visit], len(perProcess))
	for i, visits := range perProcess {
		sources[i] = pipeline.FromSlice(visits)
	}

	tasks := pipeline.Filter(pipeline.Concat(sources...), func(v flow.Visit) bool {
		return v.Category == bpmn.CategoryTask
	})

	seq := 0
	rows := pipeline.Map(tasks, func(_ context.Context, v flow.Visit) (Row, error) {
		seq++
		return Row{
			Sequence:    seq,
			NodeID:      v.NodeID,
			Activity:    v.Name,
			Description: v.Description,
			Role:        v.Role,
			Process:     v.Process,
		}, nil
	})

	out, err := pipeline.Collect(ctx, rows)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Row{}
	}
	return out, nil
}

// New assembles rows and their summary. Visits are kept on the report only
// when keepVisits is set.
func New(ctx context.Context, keepVisits bool, perProcess ...[]flow.Visit) (*Report, error) {
	rows, err := Assemble(ctx, perProcess...)
	if err != nil {
		return nil, err
	}
	r := &Report{Rows: rows, Summary: Summarize(rows)}
	if keepVisits {
		for _, visits := range perProcess {
			r.Visits = append(r.Visits, visits...)
		}
	}
	return r, nil
}
