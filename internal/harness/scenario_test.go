package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/printq/internal/journal"
	"github.com/roach88/printq/internal/queue"
)

func TestLoadScenario_Basic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/print_queue_basic.yaml")
	require.NoError(t, err)

	assert.Equal(t, "print_queue_basic", s.Name)
	assert.Equal(t, "scenario-basic", s.Session)
	require.Len(t, s.Steps, 8)

	first := s.Steps[0]
	assert.Equal(t, journal.ActionSubmit, first.Action)
	assert.Equal(t, "A", first.Name)
	require.NotNil(t, first.Priority)
	assert.Equal(t, 2, *first.Priority)

	list := s.Steps[3]
	require.NotNil(t, list.Expect)
	assert.Equal(t, []queue.Job{
		{Name: "B", Priority: 1},
		{Name: "C", Priority: 1},
		{Name: "A", Priority: 2},
	}, list.Expect.Jobs)

	assert.True(t, s.Steps[7].Expect.Empty)
	require.Len(t, s.Assertions, 4)
	assert.Equal(t, []string{"B", "C", "A"}, s.Assertions[0].Names)
}

func TestLoadScenario_TreeLiteral(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/heap_layout.yaml")
	require.NoError(t, err)

	require.NotNil(t, s.Steps[0].Expect.Tree)
	assert.Equal(t, "", *s.Steps[0].Expect.Tree)
	assert.Equal(t, "B (P:1)\n├── (Esq) A (P:2)\n└── (Dir) C (P:1)\n", *s.Steps[4].Expect.Tree)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	content := `
name: disk
description: "loaded from a temp dir"
steps:
  - action: pop
    expect: { empty: true }
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "disk", s.Name)
	assert.Empty(t, s.Assertions)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: d\nstep: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: d\nsteps: [{action: pop}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nsteps: [{action: pop}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: x\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "missing action",
			yaml:    "name: x\ndescription: d\nsteps: [{name: a}]\n",
			wantErr: "action is required",
		},
		{
			name:    "unknown action",
			yaml:    "name: x\ndescription: d\nsteps: [{action: print}]\n",
			wantErr: `unknown action "print"`,
		},
		{
			name:    "submit without priority",
			yaml:    "name: x\ndescription: d\nsteps: [{action: submit, name: a}]\n",
			wantErr: "priority is required for submit",
		},
		{
			name:    "submit without name",
			yaml:    "name: x\ndescription: d\nsteps: [{action: submit, priority: 1}]\n",
			wantErr: "name is required for submit",
		},
		{
			name:    "submit with expect",
			yaml:    "name: x\ndescription: d\nsteps: [{action: submit, name: a, priority: 1, expect: {empty: true}}]\n",
			wantErr: "submit takes no expect clause",
		},
		{
			name:    "pop with name",
			yaml:    "name: x\ndescription: d\nsteps: [{action: pop, name: a}]\n",
			wantErr: "only apply to submit",
		},
		{
			name:    "pop expect both",
			yaml:    "name: x\ndescription: d\nsteps: [{action: pop, expect: {empty: true, name: a}}]\n",
			wantErr: "empty excludes name",
		},
		{
			name:    "pop expect nothing",
			yaml:    "name: x\ndescription: d\nsteps: [{action: pop, expect: {priority: 1}}]\n",
			wantErr: "name or empty is required",
		},
		{
			name:    "list expect without jobs",
			yaml:    "name: x\ndescription: d\nsteps: [{action: list, expect: {empty: true}}]\n",
			wantErr: "jobs is required for list",
		},
		{
			name:    "tree expect without tree",
			yaml:    "name: x\ndescription: d\nsteps: [{action: tree, expect: {}}]\n",
			wantErr: "tree is required for tree",
		},
		{
			name:    "unknown assertion",
			yaml:    "name: x\ndescription: d\nsteps: [{action: pop}]\nassertions: [{type: final_state}]\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "pop_order without names",
			yaml:    "name: x\ndescription: d\nsteps: [{action: pop}]\nassertions: [{type: pop_order}]\n",
			wantErr: "names list is required",
		},
		{
			name:    "trace_count bad action",
			yaml:    "name: x\ndescription: d\nsteps: [{action: pop}]\nassertions: [{type: trace_count, action: print, count: 1}]\n",
			wantErr: "valid action is required for trace_count",
		},
		{
			name:    "negative pending",
			yaml:    "name: x\ndescription: d\nsteps: [{action: pop}]\nassertions: [{type: pending, count: -1}]\n",
			wantErr: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
