package harness

import "github.com/roach88/printq/internal/journal"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Session is the journal session the run recorded under.
	Session string `json:"session"`

	// Trace is the journal for this run, in seq order.
	Trace []journal.Event `json:"trace"`

	// Pending is the number of jobs left in the queue after the last step.
	Pending int `json:"pending"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(session string) *Result {
	return &Result{
		Pass:    true,
		Session: session,
		Trace:   []journal.Event{},
		Errors:  []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Popped returns the jobs popped during the run, skipping empty pops.
func (r *Result) Popped() []string {
	var names []string
	for _, e := range r.Trace {
		if e.Action == journal.ActionPop && !e.Empty {
			names = append(names, e.Name)
		}
	}
	return names
}
