// Package pipeline provides composable, pull-based data pipeline operators.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, or ForEach. Each stage pulls from the previous stage on demand and
// preserves the order in which the source produced values, which the report
// assembler relies on for stable row numbering.
//
// # Operators
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Concat: join pipelines sequentially
//
// # Usage
//
//	src := pipeline.Concat(pipeline.FromSlice(first), pipeline.FromSlice(second))
//	tasks := pipeline.Filter(src, func(v flow.Visit) bool { return v.Category == bpmn.CategoryTask })
//	rows, _ := pipeline.Collect(ctx, pipeline.Map(tasks, toRow))
package pipeline
