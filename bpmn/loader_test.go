package bpmn

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kbukum/flowreport/errors"
)

func loadFixture(t *testing.T, name string) *Document {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	defer f.Close()
	doc, err := Parse(f)
	require.NoError(t, err)
	return doc
}

func TestParse_Processes(t *testing.T) {
	doc := loadFixture(t, "loader.bpmn")
	require.Len(t, doc.Processes, 2)
	assert.Equal(t, "Order Handling", doc.Processes[0].Name)
	assert.Equal(t, "Proc_1", doc.Processes[0].ID)
	assert.Equal(t, DefaultProcessName, doc.Processes[1].Name)
}

func TestParse_Resources(t *testing.T) {
	doc := loadFixture(t, "loader.bpmn")
	assert.Equal(t, map[string]string{"Res_Clerk": "Clerk"}, doc.Resources)
}

func TestParse_ElementTable(t *testing.T) {
	m := loadFixture(t, "loader.bpmn").Processes[0]

	var ids []string
	var cats []Category
	for _, n := range m.Nodes() {
		ids = append(ids, n.ID)
		cats = append(cats, n.Category)
	}
	assert.Equal(t, []string{"Start_1", "Task_Review", "Gw_1", "Task_Ship", "Catch_1", "End_1"}, ids)
	assert.Equal(t, []Category{
		CategoryStart, CategoryTask, CategoryGateway, CategoryTask, CategoryEvent, CategoryEnd,
	}, cats)

	_, ok := m.Node("Plain_1")
	assert.False(t, ok, "a bare task element is not categorized")
	assert.Equal(t, "task", m.Tag("Plain_1"))
	assert.Equal(t, "lane", m.Tag("Lane_Sales"))
	assert.Equal(t, "process", m.Tag("Proc_1"))
	assert.Equal(t, "intermediateCatchEvent", m.Tag("Catch_1"))
	assert.Empty(t, m.Tag("Ghost"))
}

func TestParse_DocumentationLastNonEmptyWins(t *testing.T) {
	m := loadFixture(t, "loader.bpmn").Processes[0]
	n, ok := m.Node("Task_Review")
	require.True(t, ok)
	assert.Equal(t, "<b>Check</b> totals", n.Description, "kept verbatim, cleaned later")
}

func TestParse_ExplicitRole(t *testing.T) {
	m := loadFixture(t, "loader.bpmn").Processes[0]
	review, _ := m.Node("Task_Review")
	assert.Equal(t, "Clerk", review.Role)
	ship, _ := m.Node("Task_Ship")
	assert.Empty(t, ship.Role)
}

func TestParse_Lanes(t *testing.T) {
	m := loadFixture(t, "loader.bpmn").Processes[0]
	assert.Equal(t, "Sales", m.Lane("Task_Review"), "flowNodeRef text is trimmed")
	assert.Equal(t, "Front Desk", m.Lane("Task_Ship"), "innermost lane wins")
	assert.Empty(t, m.Lane("Start_1"))
}

func TestParse_Edges(t *testing.T) {
	m := loadFixture(t, "loader.bpmn").Processes[0]
	assert.Equal(t, []Edge{
		{Source: "Start_1", Target: "Task_Review"},
		{Source: "Task_Review", Target: "Gw_1"},
		{Source: "Gw_1", Target: "Ghost"},
	}, m.Edges(), "flows missing a ref are dropped, dangling targets are kept")
}

func TestParse_NoNamespace(t *testing.T) {
	doc, err := ParseBytes([]byte(`<definitions>
  <process id="P" name="">
    <startEvent id="S"/>
    <userTask id="T" name="Do it"/>
    <sequenceFlow sourceRef="S" targetRef="T"/>
  </process>
</definitions>`))
	require.NoError(t, err)
	require.Len(t, doc.Processes, 1)
	m := doc.Processes[0]
	assert.Equal(t, DefaultProcessName, m.Name, "empty name falls back")
	assert.Len(t, m.Nodes(), 2)
	assert.Len(t, m.Edges(), 1)
}

func TestParse_SubProcessIsNotAProcess(t *testing.T) {
	doc, err := ParseBytes([]byte(`<definitions><process id="P">
  <subProcess id="Sub"><userTask id="Inner" name="Inner"/></subProcess>
</process></definitions>`))
	require.NoError(t, err)
	require.Len(t, doc.Processes, 1)
	_, ok := doc.Processes[0].Node("Inner")
	assert.True(t, ok, "subprocess content belongs to the enclosing process")
	_, ok = doc.Processes[0].Node("Sub")
	assert.False(t, ok)
}

func TestParseWithOptions_UnnamedProcess(t *testing.T) {
	doc, err := ParseWithOptions(strings.NewReader(`<definitions><process id="P"/></definitions>`),
		Options{UnnamedProcess: "Untitled"})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", doc.Processes[0].Name)
}

func TestParse_Latin1Encoding(t *testing.T) {
	// "Revisi\xf3n" is "Revisión" in ISO-8859-1.
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<definitions><process id=\"P\"><userTask id=\"T\" name=\"Revisi\xf3n\"/></process></definitions>"
	doc, err := ParseBytes([]byte(input))
	require.NoError(t, err)
	n, ok := doc.Processes[0].Node("T")
	require.True(t, ok)
	assert.Equal(t, "Revisión", n.Name)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"text only", "not xml at all"},
		{"mismatched tags", "<definitions><process></definitions>"},
		{"unclosed", "<definitions><process id=\"P\">"},
		{"two roots", "<definitions><process id=\"A\"/></definitions><definitions><process id=\"B\"/></definitions>"},
		{"text after root", "<definitions><process id=\"P\"/></definitions>garbage"},
		{"text before root", "junk<definitions/>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ParseBytes([]byte(tc.input))
			require.Error(t, err)
			assert.Nil(t, doc, "no partial result")
			assert.True(t, apperrors.IsParseError(err))
		})
	}
}

func TestParse_CommentsAndWhitespaceAroundRoot(t *testing.T) {
	input := "<?xml version=\"1.0\"?>\n<!-- exported -->\n<definitions><process id=\"P\"/></definitions>\n<!-- end -->\n"
	doc, err := ParseBytes([]byte(input))
	require.NoError(t, err)
	assert.Len(t, doc.Processes, 1)
}

func TestParse_NoProcesses(t *testing.T) {
	doc, err := ParseBytes([]byte(`<definitions><collaboration id="C"/></definitions>`))
	require.NoError(t, err)
	assert.Empty(t, doc.Processes)
}
