package trace

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/propnet/internal/network"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema
const currentSchemaVersion = 1

// Journal is a durable, append-only record of a network's activity.
// It implements network.Recorder, so it can be handed to a network with
// network.WithRecorder and every firing, update, contradiction, and
// premise toggle lands in SQLite.
//
// The journal is diagnostic: it is never read back to reconstruct cell
// state, only to inspect what a run did.
type Journal struct {
	mu      sync.Mutex
	db      *sql.DB
	network string
	lastErr error
}

// Open creates or opens a journal database at the given path and
// registers the named network. Applies required pragmas and the schema
// automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path, networkName string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	j := &Journal{db: db, network: networkName}
	if err := j.registerNetwork(networkName); err != nil {
		db.Close()
		return nil, err
	}

	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer Journal methods when available.
func (j *Journal) DB() *sql.DB {
	return j.db
}

// Record implements network.Recorder. It is called from the propagation
// path, which cannot handle errors, so a failed write is logged and kept
// for Err rather than returned.
func (j *Journal) Record(ev network.Event) {
	if err := j.Append(ev); err != nil {
		slog.Warn("trace journal write failed",
			"network", j.network,
			"seq", ev.Seq,
			"type", string(ev.Type),
			"error", err)
		j.mu.Lock()
		j.lastErr = err
		j.mu.Unlock()
	}
}

// Err returns the most recent write failure, if any.
func (j *Journal) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastErr
}

// Append inserts one event. The event id is a hash of its canonical
// encoding, and the insert uses ON CONFLICT DO NOTHING, so appending the
// same event twice is a no-op.
func (j *Journal) Append(ev network.Event) error {
	id, err := EventID(j.network, ev)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	believed := 0
	if ev.Believed {
		believed = 1
	}

	_, err = j.db.Exec(`
		INSERT INTO events
		(id, network, seq, turn, type, cell, propagator, premise, old, new, believed, wiring)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		j.network,
		ev.Seq,
		ev.Turn,
		string(ev.Type),
		ev.Cell,
		ev.Propagator,
		ev.Premise,
		ev.Old,
		ev.New,
		believed,
		strings.Join(ev.Wiring, ","),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	return nil
}

// registerNetwork inserts the network row if it is not already present.
func (j *Journal) registerNetwork(name string) error {
	_, err := j.db.Exec(`
		INSERT INTO networks (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, name)
	if err != nil {
		return fmt.Errorf("register network: %w", err)
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}
