package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"BoomDoomRadar/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists load events to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS load_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			request_id  TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			source      TEXT,
			outcome     TEXT NOT NULL,
			row_count   INTEGER,
			rejected    INTEGER,
			synthetic   INTEGER,
			duration_ms INTEGER,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_load_ts ON load_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_load_symbol ON load_events(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordLoad(evt *model.LoadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO load_events
		(timestamp, request_id, symbol, source, outcome, row_count, rejected, synthetic, duration_ms, error)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		eventTime(evt).UnixMilli(), evt.RequestID, evt.Symbol, evt.Source,
		string(evt.Outcome), evt.Rows, evt.Rejected, boolToInt(evt.Synthetic),
		evt.Duration.Milliseconds(), evt.Error,
	)
	if err != nil {
		return fmt.Errorf("insert load event: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) RecentLoads(limit int) ([]model.LoadEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, request_id, symbol, source, outcome,
		row_count, rejected, synthetic, duration_ms, error
		FROM load_events ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query load events: %w", err)
	}
	defer rows.Close()

	var out []model.LoadEvent
	for rows.Next() {
		var (
			evt       model.LoadEvent
			ts, durMs int64
			synthetic int
			outcome   string
		)
		if err := rows.Scan(&ts, &evt.RequestID, &evt.Symbol, &evt.Source, &outcome,
			&evt.Rows, &evt.Rejected, &synthetic, &durMs, &evt.Error); err != nil {
			return nil, fmt.Errorf("scan load event: %w", err)
		}
		evt.At = time.UnixMilli(ts)
		evt.Outcome = model.LoadOutcome(outcome)
		evt.Synthetic = synthetic != 0
		evt.Duration = time.Duration(durMs) * time.Millisecond
		out = append(out, evt)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
