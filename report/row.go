package report

import "github.com/kbukum/flowreport/flow"

// Row is one activity of the report.
type Row struct {
	Sequence    int    `json:"sequence" yaml:"sequence"`
	NodeID      string `json:"id" yaml:"id"`
	Activity    string `json:"activity" yaml:"activity"`
	Description string `json:"description" yaml:"description"`
	Role        string `json:"role" yaml:"role"`
	Process     string `json:"process" yaml:"process"`
}

// Count is an activity tally for one process or role.
type Count struct {
	Name       string `json:"name" yaml:"name"`
	Activities int    `json:"activities" yaml:"activities"`
}

// Summary holds the headline metrics of a report.
type Summary struct {
	TotalActivities   int     `json:"total_activities" yaml:"total_activities"`
	DistinctRoles     int     `json:"distinct_roles" yaml:"distinct_roles"`
	DistinctProcesses int     `json:"distinct_processes" yaml:"distinct_processes"`
	ByProcess         []Count `json:"by_process" yaml:"by_process"`
	ByRole            []Count `json:"by_role" yaml:"by_role"`
}

// Report is the assembled output of one analyzed document.
type Report struct {
	Rows    []Row        `json:"rows" yaml:"rows"`
	Visits  []flow.Visit `json:"visits,omitempty" yaml:"visits,omitempty"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

// Empty reports whether the report has no rows.
func (r *Report) Empty() bool {
	return len(r.Rows) == 0
}
