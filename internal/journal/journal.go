package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Action names a queue operation.
type Action string

const (
	ActionSubmit Action = "submit"
	ActionPop    Action = "pop"
	ActionList   Action = "list"
	ActionTree   Action = "tree"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionSubmit, ActionPop, ActionList, ActionTree:
		return true
	}
	return false
}

// Event is one journal row.
//
// Name and Priority describe the job submitted or popped. Empty is set on a
// pop that found nothing to print.
type Event struct {
	Seq      int64  `json:"seq"`
	Session  string `json:"-"`
	Action   Action `json:"action"`
	Name     string `json:"name,omitempty"`
	Priority int    `json:"priority,omitempty"`
	Empty    bool   `json:"empty,omitempty"`
}

// Journal is an SQLite-backed event log.
type Journal struct {
	db *sql.DB
}

// Open creates or opens a journal database at path. Use ":memory:" for a
// process-lifetime journal.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// Each connection to ":memory:" gets its own database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Record appends an event and returns the seq it was stored under.
// The Seq field of e is ignored.
func (j *Journal) Record(ctx context.Context, e Event) (int64, error) {
	if !e.Action.Valid() {
		return 0, fmt.Errorf("record event: unknown action %q", e.Action)
	}
	if e.Session == "" {
		return 0, fmt.Errorf("record event: session is required")
	}

	res, err := j.db.ExecContext(ctx, `
		INSERT INTO events (session, action, job_name, priority, empty)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.Session,
		string(e.Action),
		e.Name,
		e.Priority,
		e.Empty,
	)
	if err != nil {
		return 0, fmt.Errorf("record event: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record event: last insert id: %w", err)
	}
	return seq, nil
}

// Events returns every event of a session in seq order.
func (j *Journal) Events(ctx context.Context, session string) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, session, action, job_name, priority, empty
		FROM events
		WHERE session = ?
		ORDER BY seq ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			e      Event
			action string
		)
		if err := rows.Scan(&e.Seq, &e.Session, &action, &e.Name, &e.Priority, &e.Empty); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Action = Action(action)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// Count returns how many events of the given action a session recorded.
func (j *Journal) Count(ctx context.Context, session string, action Action) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM events WHERE session = ? AND action = ?
	`, session, string(action)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
