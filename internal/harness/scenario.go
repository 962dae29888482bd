package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/printq/internal/journal"
	"github.com/roach88/printq/internal/queue"
)

// Scenario defines a queue scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is an optional fixed session token for the journal.
	// Defaults to journal.DefaultFixedSession.
	Session string `yaml:"session,omitempty"`

	// Steps are executed in order against a fresh queue.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and queue size.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one queue operation.
type Step struct {
	// Action is one of submit, pop, list or tree.
	Action journal.Action `yaml:"action"`

	// Name and Priority describe the job to submit (submit only).
	Name     string `yaml:"name,omitempty"`
	Priority *int   `yaml:"priority,omitempty"`

	// Expect optionally checks what the operation produced.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// Name and Priority are the job a pop should return.
	Name     string `yaml:"name,omitempty"`
	Priority *int   `yaml:"priority,omitempty"`

	// Empty expects a pop to find the queue empty.
	Empty bool `yaml:"empty,omitempty"`

	// Jobs is the ordered listing a list step should return.
	// An explicit empty list expects an empty queue.
	Jobs []queue.Job `yaml:"jobs,omitempty"`

	// Tree is the exact rendering a tree step should return.
	Tree *string `yaml:"tree,omitempty"`
}

// Assertion validates the trace or the final queue.
type Assertion struct {
	// Type is one of pop_order, pending, trace_count, trace_contains.
	Type string `yaml:"type"`

	// Names is the expected pop order (pop_order).
	Names []string `yaml:"names,omitempty"`

	// Count is the expected size (pending) or occurrence count (trace_count).
	Count int `yaml:"count,omitempty"`

	// Action is the journal action (trace_count, trace_contains).
	Action journal.Action `yaml:"action,omitempty"`

	// Name optionally narrows trace_contains to one job.
	Name string `yaml:"name,omitempty"`
}

// Assertion type constants.
const (
	AssertPopOrder      = "pop_order"
	AssertPending       = "pending"
	AssertTraceCount    = "trace_count"
	AssertTraceContains = "trace_contains"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos don't silently disable checks.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and that every
// step and assertion is well formed.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, s *Step) error {
	switch s.Action {
	case journal.ActionSubmit:
		if s.Name == "" {
			return fmt.Errorf("steps[%d]: name is required for submit", index)
		}
		if s.Priority == nil {
			return fmt.Errorf("steps[%d]: priority is required for submit", index)
		}
		if s.Expect != nil {
			return fmt.Errorf("steps[%d]: submit takes no expect clause", index)
		}
	case journal.ActionPop:
		if e := s.Expect; e != nil {
			if e.Empty && (e.Name != "" || e.Priority != nil) {
				return fmt.Errorf("steps[%d].expect: empty excludes name and priority", index)
			}
			if !e.Empty && e.Name == "" {
				return fmt.Errorf("steps[%d].expect: name or empty is required for pop", index)
			}
		}
	case journal.ActionList:
		if e := s.Expect; e != nil && e.Jobs == nil {
			return fmt.Errorf("steps[%d].expect: jobs is required for list", index)
		}
	case journal.ActionTree:
		if e := s.Expect; e != nil && e.Tree == nil {
			return fmt.Errorf("steps[%d].expect: tree is required for tree", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: action is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown action %q", index, s.Action)
	}

	if s.Action != journal.ActionSubmit && (s.Name != "" || s.Priority != nil) {
		return fmt.Errorf("steps[%d]: name and priority only apply to submit", index)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertPopOrder:
		if a.Names == nil {
			return fmt.Errorf("assertions[%d]: names list is required for pop_order", index)
		}
	case AssertPending:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for pending", index)
		}
	case AssertTraceCount:
		if !a.Action.Valid() {
			return fmt.Errorf("assertions[%d]: valid action is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertTraceContains:
		if !a.Action.Valid() {
			return fmt.Errorf("assertions[%d]: valid action is required for trace_contains", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
