package report

import (
	"github.com/kbukum/flowreport/util"
)

// Summarize computes report metrics. Count lists are sorted by name.
func Summarize(rows []Row) Summary {
	byProcess := util.CountBy(rows, func(r Row) string { return r.Process })
	byRole := util.CountBy(rows, func(r Row) string { return r.Role })
	return Summary{
		TotalActivities:   len(rows),
		DistinctRoles:     len(byRole),
		DistinctProcesses: len(byProcess),
		ByProcess:         counts(byProcess),
		ByRole:            counts(byRole),
	}
}

func counts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for _, name := range util.SortedKeys(m) {
		out = append(out, Count{Name: name, Activities: m[name]})
	}
	return out
}
