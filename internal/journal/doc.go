// Package journal records what happened to a print queue during a session.
//
// Every submit, pop, list and tree operation becomes one row in an SQLite
// events table, ordered by an autoincrement seq. The CLI and the scenario
// harness open the journal at ":memory:", so the log lives exactly as long
// as the process and the queue itself is never persisted.
//
// # Database Configuration
//
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - a single open connection (":memory:" databases are per connection)
//
// Sessions are identified by tokens from a SessionGenerator. Production code
// uses UUIDv7Generator; tests and scenarios use FixedGenerator so traces are
// reproducible.
package journal
