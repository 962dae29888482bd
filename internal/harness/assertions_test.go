package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/printq/internal/journal"
)

func sampleTrace() []journal.Event {
	return []journal.Event{
		{Seq: 1, Action: journal.ActionSubmit, Name: "A", Priority: 2},
		{Seq: 2, Action: journal.ActionSubmit, Name: "B", Priority: 1},
		{Seq: 3, Action: journal.ActionPop, Name: "B", Priority: 1},
		{Seq: 4, Action: journal.ActionList},
		{Seq: 5, Action: journal.ActionPop, Name: "A", Priority: 2},
		{Seq: 6, Action: journal.ActionPop, Empty: true},
	}
}

func TestAssertPopOrder(t *testing.T) {
	result := &Result{Trace: sampleTrace()}

	assert.NoError(t, assertPopOrder(result, Assertion{Type: AssertPopOrder, Names: []string{"B", "A"}}))

	err := assertPopOrder(result, Assertion{Type: AssertPopOrder, Names: []string{"A", "B"}})
	require.Error(t, err)

	var assertErr *AssertionError
	require.ErrorAs(t, err, &assertErr)
	assert.Equal(t, AssertPopOrder, assertErr.Type)
	assert.Equal(t, "pop order [B A]", assertErr.Actual)
}

func TestAssertPopOrder_NothingPopped(t *testing.T) {
	result := &Result{Trace: []journal.Event{{Seq: 1, Action: journal.ActionPop, Empty: true}}}
	assert.NoError(t, assertPopOrder(result, Assertion{Type: AssertPopOrder, Names: []string{}}))
}

func TestAssertPending(t *testing.T) {
	result := &Result{Pending: 2}
	assert.NoError(t, assertPending(result, Assertion{Type: AssertPending, Count: 2}))
	assert.Error(t, assertPending(result, Assertion{Type: AssertPending, Count: 0}))
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Action: journal.ActionPop, Count: 3}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Action: journal.ActionTree, Count: 0}))

	err := assertTraceCount(trace, Assertion{Action: journal.ActionSubmit, Count: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5 occurrences of submit")
	assert.Contains(t, err.Error(), "2 occurrences")
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceContains(trace, Assertion{Action: journal.ActionList}))
	assert.NoError(t, assertTraceContains(trace, Assertion{Action: journal.ActionPop, Name: "A"}))

	err := assertTraceContains(trace, Assertion{Action: journal.ActionSubmit, Name: "Z"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submit of Z")
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertPending,
		Expected: "1 pending jobs",
		Actual:   "0 pending jobs",
		Trace:    sampleTrace(),
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: pending")
	assert.Contains(t, msg, "Expected: 1 pending jobs")
	assert.Contains(t, msg, "Actual: 0 pending jobs")
	assert.Contains(t, msg, "[1] submit A (P:2)")
	assert.Contains(t, msg, "[4] list")
	assert.Contains(t, msg, "[6] pop (empty)")
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	errs := EvaluateAssertions(&Result{}, []Assertion{{Type: "final_state"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `unknown assertion type "final_state"`)
}

func TestEvaluateAssertions_AllPass(t *testing.T) {
	result := &Result{Trace: sampleTrace(), Pending: 0}
	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertPopOrder, Names: []string{"B", "A"}},
		{Type: AssertPending, Count: 0},
		{Type: AssertTraceCount, Action: journal.ActionSubmit, Count: 2},
		{Type: AssertTraceContains, Action: journal.ActionPop, Name: "B"},
	})
	assert.Empty(t, errs)
}
