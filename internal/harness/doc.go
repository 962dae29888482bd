// Package harness runs printq scenarios.
//
// A scenario drives a fresh print queue through a list of steps and checks
// what came out, both step by step and against the operation trace kept in
// an in-memory journal.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: tie_break
//	description: "Equal priorities leave in arrival order"
//	session: "scenario-tie-break"   # optional fixed session token
//	steps:
//	  - action: submit
//	    name: A
//	    priority: 2
//	  - action: list
//	    expect:
//	      jobs:
//	        - { name: A, priority: 2 }
//	  - action: pop
//	    expect: { name: A, priority: 2 }
//	  - action: pop
//	    expect: { empty: true }
//	  - action: tree
//	    expect: { tree: "" }
//	assertions:
//	  - type: pop_order
//	    names: [A]
//	  - type: pending
//	    count: 0
//	  - type: trace_count
//	    action: pop
//	    count: 2
//	  - type: trace_contains
//	    action: submit
//	    name: A
//
// # Assertion Types
//
//   - pop_order: names of the jobs popped, in order (empty pops are skipped)
//   - pending: number of jobs still queued when the scenario ends
//   - trace_count: an action appears exactly N times in the trace
//   - trace_contains: an action (optionally for a named job) appears in the trace
//
// # Deterministic Testing
//
// Every run gets its own queue and its own ":memory:" journal. The session
// token is fixed (scenario.session or journal.DefaultFixedSession), so the
// trace is byte-for-byte reproducible and can be compared with golden files.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/tie_break.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range result.Errors {
//	    log.Println(msg)
//	}
package harness
