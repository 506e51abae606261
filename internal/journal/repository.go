package journal

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the journal for the lifetime of the process only.
const MemoryDSN = "file::memory:"

type Repository struct {
	db *sql.DB
}

func NewRepository(dsn string) (*Repository, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to an in-memory database gets its own empty
	// database, so the pool must not grow past one.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *Repository) init() error {
	eventsQuery := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		kind TEXT NOT NULL,
		elapsed INTEGER NOT NULL DEFAULT 0,
		detail TEXT NOT NULL DEFAULT '',
		at TEXT NOT NULL
	)
	`
	_, err := r.db.Exec(eventsQuery)
	return err
}

func (r *Repository) Create(e *Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	result, err := r.db.Exec(
		"INSERT INTO events (session, kind, elapsed, detail, at) VALUES (?, ?, ?, ?, ?)",
		e.Session,
		string(e.Kind),
		e.Elapsed,
		e.Detail,
		e.At.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record %s event: %w", e.Kind, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// All returns every recorded event, newest first.
func (r *Repository) All() ([]Event, error) {
	rows, err := r.db.Query(
		"SELECT id, session, kind, elapsed, detail, at FROM events ORDER BY id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind, at string
		if err := rows.Scan(&e.ID, &e.Session, &kind, &e.Elapsed, &e.Detail, &at); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		e.At, _ = time.Parse(time.RFC3339Nano, at)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *Repository) CountByKind() (map[Kind]int, error) {
	rows, err := r.db.Query("SELECT kind, COUNT(*) FROM events GROUP BY kind")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[Kind(kind)] = n
	}
	return counts, rows.Err()
}

func (r *Repository) Close() error {
	return r.db.Close()
}
