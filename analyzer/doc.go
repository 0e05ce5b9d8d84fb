// Package analyzer turns one process definition into an activity report.
//
// An Analyzer runs the stages in order for every document: parse the
// definition, then for each process build its graph, sever converging
// gateways behind intermediate catch events, traverse from every start event,
// restart node and orphan root, and finally assemble the task rows of all
// processes into one numbered report.
//
//	a := analyzer.New(analyzer.Config{DefaultRole: "Operations"})
//	rep, err := a.Analyze(ctx, f)
//	switch {
//	case errors.IsEmptyResult(err):
//	    // readable, nothing to report; rep is an empty report
//	case err != nil:
//	    return err
//	}
//
// An Analyzer holds no per-document state and may be shared between
// goroutines.
package analyzer
