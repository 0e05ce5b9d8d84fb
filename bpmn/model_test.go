package bpmn

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Text(t *testing.T) {
	b, err := json.Marshal(map[string]Category{"c": CategoryGateway})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"Gateway"}`, string(b))

	var c Category
	require.NoError(t, c.UnmarshalText([]byte("Task")))
	assert.Equal(t, CategoryTask, c)
	assert.Error(t, c.UnmarshalText([]byte("Lane")))
	assert.Equal(t, "Category(42)", Category(42).String())
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		tag  string
		want Category
		ok   bool
	}{
		{"userTask", CategoryTask, true},
		{"sendTask", CategoryTask, true},
		{"exclusiveGateway", CategoryGateway, true},
		{"startEvent", CategoryStart, true},
		{"endEvent", CategoryEnd, true},
		{"intermediateCatchEvent", CategoryEvent, true},
		{"boundaryEvent", CategoryEvent, true},
		{"task", CategoryUnknown, false},
		{"subProcess", CategoryUnknown, false},
		{"lane", CategoryUnknown, false},
	}
	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			got, ok := categorize(tc.tag)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestModel_DuplicateIDKeepsFirstPosition(t *testing.T) {
	m := NewModel("P", []*Node{
		{ID: "a", Name: "first", Category: CategoryTask, Description: "d"},
		{ID: "b", Category: CategoryEnd},
		{ID: "a", Name: "second", Category: CategoryTask},
	}, nil, nil)
	nodes := m.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, "second", nodes[0].Name)
	assert.Equal(t, "d", nodes[0].Description)
}
