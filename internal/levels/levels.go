// Package levels loads the catalog of priority levels the CLI accepts.
//
// The queue engine takes any integer priority. The shell narrows that down
// to a small named set, described in CUE:
//
//	levels: [
//		{priority: 1, label: "Urgente"},
//		{priority: 2, label: "Normal"},
//	]
//
// A default catalog is embedded; users may point --levels at their own file.
// Every file is unified with the #Level schema before decoding.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed levels.cue
var defaultCUE []byte

// schemaCUE is unified with user files so they don't have to repeat it.
const schemaCUE = `
#Level: {
	priority: int
	label:    string & !=""
}
levels: [...#Level] & [_, ...]
`

// ErrInvalidPriority is returned by Parse for input that is not one of the
// catalog's priorities.
var ErrInvalidPriority = errors.New("invalid priority")

// Level is a named priority.
type Level struct {
	Priority int    `json:"priority"`
	Label    string `json:"label"`
}

// Catalog is an ordered set of levels with unique priorities.
type Catalog struct {
	levels []Level
}

type file struct {
	Levels []Level `json:"levels"`
}

// Default returns the embedded catalog (1 = Urgente, 2 = Normal).
func Default() (*Catalog, error) {
	return compile("levels.cue", defaultCUE)
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels file: %w", err)
	}
	return compile(path, data)
}

func compile(name string, data []byte) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile levels schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	value = schema.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate %s: %w", name, err)
	}

	var f file
	if err := value.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return New(f.Levels...)
}

// New builds a catalog from explicit levels. Priorities must be unique.
func New(levels ...Level) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, errors.New("levels: at least one level is required")
	}

	seen := make(map[int]bool, len(levels))
	for _, l := range levels {
		if seen[l.Priority] {
			return nil, fmt.Errorf("levels: duplicate priority %d", l.Priority)
		}
		if l.Label == "" {
			return nil, fmt.Errorf("levels: priority %d has no label", l.Priority)
		}
		seen[l.Priority] = true
	}

	return &Catalog{levels: slices.Clone(levels)}, nil
}

// Levels returns the catalog in declaration order.
func (c *Catalog) Levels() []Level {
	return slices.Clone(c.levels)
}

// Lookup returns the level with the given priority.
func (c *Catalog) Lookup(priority int) (Level, bool) {
	for _, l := range c.levels {
		if l.Priority == priority {
			return l, true
		}
	}
	return Level{}, false
}

// Parse converts user input into a catalog priority.
// Surrounding whitespace is ignored.
func (c *Catalog) Parse(text string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPriority, text)
	}
	if _, ok := c.Lookup(p); !ok {
		return 0, fmt.Errorf("%w: %d is not a known level", ErrInvalidPriority, p)
	}
	return p, nil
}

// Prompt is the shell's priority question, e.g.
// "Prioridade (1=Urgente, 2=Normal): ".
func (c *Catalog) Prompt() string {
	parts := make([]string, len(c.levels))
	for i, l := range c.levels {
		parts[i] = fmt.Sprintf("%d=%s", l.Priority, l.Label)
	}
	return "Prioridade (" + strings.Join(parts, ", ") + "): "
}

// InvalidMessage is shown when Parse rejects the input, e.g.
// "Prioridade inválida. A prioridade deve ser 1 (Urgente) ou 2 (Normal).".
func (c *Catalog) InvalidMessage() string {
	parts := make([]string, len(c.levels))
	for i, l := range c.levels {
		parts[i] = fmt.Sprintf("%d (%s)", l.Priority, l.Label)
	}

	choices := parts[0]
	if n := len(parts); n > 1 {
		choices = strings.Join(parts[:n-1], ", ") + " ou " + parts[n-1]
	}
	return "Prioridade inválida. A prioridade deve ser " + choices + "."
}
