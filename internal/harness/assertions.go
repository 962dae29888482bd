package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/printq/internal/journal"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string          // Assertion type for categorization
	Expected string          // Human-readable expected outcome
	Actual   string          // Human-readable actual outcome
	Trace    []journal.Event // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s\n", event.Seq, describeEvent(event))
		}
	}

	return buf.String()
}

func describeEvent(e journal.Event) string {
	switch {
	case e.Empty:
		return string(e.Action) + " (empty)"
	case e.Name != "":
		return fmt.Sprintf("%s %s (P:%d)", e.Action, e.Name, e.Priority)
	default:
		return string(e.Action)
	}
}

// assertPopOrder checks that the popped job names match exactly.
func assertPopOrder(result *Result, assertion Assertion) error {
	popped := result.Popped()
	if slices.Equal(popped, assertion.Names) {
		return nil
	}

	return &AssertionError{
		Type:     AssertPopOrder,
		Expected: fmt.Sprintf("pop order %v", assertion.Names),
		Actual:   fmt.Sprintf("pop order %v", popped),
		Trace:    result.Trace,
	}
}

// assertPending checks how many jobs are left in the queue.
func assertPending(result *Result, assertion Assertion) error {
	if result.Pending == assertion.Count {
		return nil
	}

	return &AssertionError{
		Type:     AssertPending,
		Expected: fmt.Sprintf("%d pending jobs", assertion.Count),
		Actual:   fmt.Sprintf("%d pending jobs", result.Pending),
		Trace:    result.Trace,
	}
}

// assertTraceCount checks if the action appears exactly the specified number of times.
func assertTraceCount(trace []journal.Event, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Action == assertion.Action {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertTraceContains checks that the action appears in the trace, for the
// named job when a name is given.
func assertTraceContains(trace []journal.Event, assertion Assertion) error {
	for _, event := range trace {
		if event.Action != assertion.Action {
			continue
		}
		if assertion.Name == "" || event.Name == assertion.Name {
			return nil
		}
	}

	expected := string(assertion.Action)
	if assertion.Name != "" {
		expected += " of " + assertion.Name
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertPopOrder:
			err = assertPopOrder(result, assertion)
		case AssertPending:
			err = assertPending(result, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
