package report

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/flowreport/bpmn"
	"github.com/kbukum/flowreport/flow"
)

func visit(process, id string, cat bpmn.Category, order int) flow.Visit {
	return flow.Visit{
		Process:  process,
		Group:    "Main Flow",
		Order:    order,
		Role:     "Role " + id,
		Name:     "Name " + id,
		Category: cat,
		NodeID:   id,
	}
}

func TestAssemble_FiltersAndRenumbers(t *testing.T) {
	first := []flow.Visit{
		visit("One", "S", bpmn.CategoryStart, 1),
		visit("One", "A", bpmn.CategoryTask, 2),
		visit("One", "G", bpmn.CategoryGateway, 3),
		visit("One", "B", bpmn.CategoryTask, 1),
	}
	second := []flow.Visit{
		visit("Two", "E", bpmn.CategoryEvent, 1),
		visit("Two", "C", bpmn.CategoryTask, 2),
	}

	rows, err := Assemble(context.Background(), first, second)
	require.NoError(t, err)

	want := []Row{
		{Sequence: 1, NodeID: "A", Activity: "Name A", Role: "Role A", Process: "One"},
		{Sequence: 2, NodeID: "B", Activity: "Name B", Role: "Role B", Process: "One"},
		{Sequence: 3, NodeID: "C", Activity: "Name C", Role: "Role C", Process: "Two"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_NoTasks(t *testing.T) {
	rows, err := Assemble(context.Background(), []flow.Visit{visit("One", "S", bpmn.CategoryStart, 1)})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	rows, err = Assemble(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAssemble_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Assemble(ctx, []flow.Visit{visit("One", "A", bpmn.CategoryTask, 1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_KeepsVisitsOnRequest(t *testing.T) {
	visits := []flow.Visit{visit("One", "S", bpmn.CategoryStart, 1), visit("One", "A", bpmn.CategoryTask, 2)}

	r, err := New(context.Background(), false, visits)
	require.NoError(t, err)
	assert.Nil(t, r.Visits)
	assert.False(t, r.Empty())
	assert.Equal(t, 1, r.Summary.TotalActivities)

	r, err = New(context.Background(), true, visits)
	require.NoError(t, err)
	assert.Equal(t, visits, r.Visits)
}

func TestSummarize(t *testing.T) {
	rows := []Row{
		{Sequence: 1, Role: "Sales", Process: "Order"},
		{Sequence: 2, Role: "Clerk", Process: "Order"},
		{Sequence: 3, Role: "Sales", Process: "Billing"},
	}
	want := Summary{
		TotalActivities:   3,
		DistinctRoles:     2,
		DistinctProcesses: 2,
		ByProcess:         []Count{{Name: "Billing", Activities: 1}, {Name: "Order", Activities: 2}},
		ByRole:            []Count{{Name: "Clerk", Activities: 1}, {Name: "Sales", Activities: 2}},
	}
	if diff := cmp.Diff(want, Summarize(rows)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalActivities)
	assert.Empty(t, s.ByProcess)
	assert.Empty(t, s.ByRole)
}
