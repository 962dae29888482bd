package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/printq/internal/journal"
	"github.com/roach88/printq/internal/queue"
)

// Harness executes scenario steps against one queue and journal.
type Harness struct {
	queue   *queue.PrintQueue
	journal *journal.Journal
	session string
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh queue and a fresh in-memory journal.
//
// Execution flow:
//  1. Open a ":memory:" journal and an empty queue
//  2. Execute steps, recording each one and checking its expect clause
//  3. Read the trace back from the journal
//  4. Evaluate assertions against the trace and the final queue size
//
// The returned error covers infrastructure failures only; failed checks are
// reported through Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext is Run with a caller supplied context and logger.
// A nil logger discards output.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	j, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer j.Close()

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var gen journal.SessionGenerator = journal.NewFixedGenerator()
	if scenario.Session != "" {
		gen = journal.NewFixedGenerator(scenario.Session)
	}
	session := gen.Generate()

	h := &Harness{
		queue:   queue.New(),
		journal: j,
		session: session,
		logger:  logger.With("scenario", scenario.Name, "session", session),
	}

	result := NewResult(session)
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, fmt.Errorf("failed to execute step %d: %w", i, err)
		}
	}

	trace, err := j.Events(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	result.Trace = trace
	result.Pending = h.queue.Len()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Debug("scenario finished", "pass", result.Pass, "events", len(trace), "pending", result.Pending)
	return result, nil
}

// executeStep performs one queue operation, records it and checks the
// step's expect clause.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) error {
	event := journal.Event{Session: h.session, Action: step.Action}

	switch step.Action {
	case journal.ActionSubmit:
		job := queue.Job{Name: step.Name, Priority: *step.Priority}
		h.queue.Insert(job)
		event.Name, event.Priority = job.Name, job.Priority

	case journal.ActionPop:
		job, ok := h.queue.ExtractMin()
		if ok {
			event.Name, event.Priority = job.Name, job.Priority
		} else {
			event.Empty = true
		}
		if step.Expect != nil {
			checkPop(i, step.Expect, job, ok, result)
		}

	case journal.ActionList:
		jobs := h.queue.SnapshotOrdered()
		if step.Expect != nil && !slices.Equal(jobs, step.Expect.Jobs) {
			result.AddError(fmt.Sprintf("steps[%d] list: expected %v, got %v", i, step.Expect.Jobs, jobs))
		}

	case journal.ActionTree:
		tree := h.queue.RenderTree()
		if step.Expect != nil && tree != *step.Expect.Tree {
			result.AddError(fmt.Sprintf("steps[%d] tree: expected\n%s\ngot\n%s", i, *step.Expect.Tree, tree))
		}

	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}

	seq, err := h.journal.Record(ctx, event)
	if err != nil {
		return err
	}
	h.logger.Debug("step", "seq", seq, "action", step.Action, "name", event.Name, "priority", event.Priority)
	return nil
}

func checkPop(i int, want *ExpectClause, got queue.Job, ok bool, result *Result) {
	switch {
	case want.Empty && ok:
		result.AddError(fmt.Sprintf("steps[%d] pop: expected empty queue, got %s", i, got))
	case !want.Empty && !ok:
		result.AddError(fmt.Sprintf("steps[%d] pop: expected %s, queue was empty", i, want.Name))
	case !want.Empty && got.Name != want.Name:
		result.AddError(fmt.Sprintf("steps[%d] pop: expected %s, got %s", i, want.Name, got))
	case !want.Empty && want.Priority != nil && got.Priority != *want.Priority:
		result.AddError(fmt.Sprintf("steps[%d] pop: expected priority %d, got %s", i, *want.Priority, got))
	}
}
