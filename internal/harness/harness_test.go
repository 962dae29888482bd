package harness

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/printq/internal/journal"
)

func mustParse(t *testing.T, doc string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte(doc))
	require.NoError(t, err)
	return s
}

func TestRun_BasicScenarioPasses(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/print_queue_basic.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "scenario-basic", result.Session)
	assert.Len(t, result.Trace, 8)
	assert.Equal(t, []string{"B", "C", "A"}, result.Popped())
	assert.Equal(t, 0, result.Pending)
}

func TestRun_HeapLayoutScenarioPasses(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/heap_layout.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, journal.DefaultFixedSession, result.Session)
	assert.Equal(t, 2, result.Pending)
}

func TestRun_WrongPopExpectation(t *testing.T) {
	s := mustParse(t, `
name: wrong_pop
description: "expects the normal job first"
steps:
  - action: submit
    name: normal
    priority: 2
  - action: submit
    name: urgent
    priority: 1
  - action: pop
    expect: { name: normal }
`)

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected normal, got urgent (P:1)")
}

func TestRun_PopExpectations(t *testing.T) {
	s := mustParse(t, `
name: pops
description: "empty and priority mismatches"
steps:
  - action: pop
    expect: { name: ghost }
  - action: submit
    name: a
    priority: 1
  - action: pop
    expect: { name: a, priority: 2 }
  - action: submit
    name: b
    priority: 1
  - action: pop
    expect: { empty: true }
`)

	result, err := Run(s)
	require.NoError(t, err)

	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "queue was empty")
	assert.Contains(t, result.Errors[1], "expected priority 2")
	assert.Contains(t, result.Errors[2], "expected empty queue")
}

func TestRun_ListAndTreeMismatch(t *testing.T) {
	s := mustParse(t, `
name: views
description: "list and tree checks"
steps:
  - action: submit
    name: a
    priority: 1
  - action: list
    expect:
      jobs: []
  - action: tree
    expect:
      tree: "b (P:1)\n"
`)

	result, err := Run(s)
	require.NoError(t, err)

	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "steps[1] list")
	assert.Contains(t, result.Errors[1], "steps[2] tree")
}

func TestRun_FailingAssertions(t *testing.T) {
	s := mustParse(t, `
name: assertions
description: "every assertion type failing"
steps:
  - action: submit
    name: a
    priority: 1
  - action: pop
assertions:
  - type: pop_order
    names: [b]
  - type: pending
    count: 3
  - type: trace_count
    action: submit
    count: 2
  - type: trace_contains
    action: tree
`)

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "Assertion failed: pop_order")
	assert.Contains(t, result.Errors[1], "Assertion failed: pending")
	assert.Contains(t, result.Errors[2], "Assertion failed: trace_count")
	assert.Contains(t, result.Errors[3], "Assertion failed: trace_contains")
}

func TestRun_IsolatedRuns(t *testing.T) {
	s := mustParse(t, `
name: isolated
description: "two runs never share queue or journal state"
steps:
  - action: submit
    name: a
    priority: 1
assertions:
  - type: pending
    count: 1
  - type: trace_count
    action: submit
    count: 1
`)

	for i := 0; i < 2; i++ {
		result, err := Run(s)
		require.NoError(t, err)
		assert.True(t, result.Pass, "run %d: %v", i, result.Errors)
		assert.Equal(t, int64(1), result.Trace[0].Seq)
	}
}

func TestRunContext_Logs(t *testing.T) {
	s := mustParse(t, `
name: logged
description: "debug output names the scenario"
steps:
  - action: submit
    name: a
    priority: 1
`)

	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result, err := RunContext(context.Background(), s, logger)
	require.NoError(t, err)
	assert.True(t, result.Pass)

	out := buf.String()
	assert.Contains(t, out, "scenario=logged")
	assert.Contains(t, out, "action=submit")
	assert.Contains(t, out, "scenario finished")
}
