package journal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	a, b := gen.Generate(), gen.Generate()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("s-1", "s-2")

	assert.Equal(t, "s-1", gen.Generate())
	assert.Equal(t, "s-2", gen.Generate())
	assert.Equal(t, "s-2", gen.Generate(), "last token repeats once exhausted")
}

func TestFixedGenerator_Default(t *testing.T) {
	gen := NewFixedGenerator()
	assert.Equal(t, DefaultFixedSession, gen.Generate())
	assert.Equal(t, DefaultFixedSession, gen.Generate())
}

func TestSessionGenerator_Interface(t *testing.T) {
	var _ SessionGenerator = UUIDv7Generator{}
	var _ SessionGenerator = (*FixedGenerator)(nil)
}
