package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Basic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/print_queue_basic.yaml")
	require.NoError(t, err)

	// Regenerate with:
	//   go test ./internal/harness -run TestRunWithGolden_Basic -update
	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestMarshalSnapshot_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/heap_layout.yaml")
	require.NoError(t, err)

	r1, err := Run(s)
	require.NoError(t, err)
	r2, err := Run(s)
	require.NoError(t, err)

	b1, err := MarshalSnapshot(s.Name, r1)
	require.NoError(t, err)
	b2, err := MarshalSnapshot(s.Name, r2)
	require.NoError(t, err)

	assert.Equal(t, string(b1), string(b2))
	assert.Contains(t, string(b1), `"scenario_name": "heap_layout"`)
	assert.Contains(t, string(b1), `"pending": 2`)
}
