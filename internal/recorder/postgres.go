package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"BoomDoomRadar/internal/model"

	_ "github.com/lib/pq"
)

// PostgresRecorder persists load events to PostgreSQL.
type PostgresRecorder struct {
	db *sql.DB
}

// NewPostgresRecorder connects with dsn and creates the schema if needed.
func NewPostgresRecorder(dsn string) (*PostgresRecorder, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	r := &PostgresRecorder{db: db}
	if err := r.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	log.Println("[INFO] postgres recorder connected")
	return r, nil
}

func (r *PostgresRecorder) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS load_events (
		id          SERIAL PRIMARY KEY,
		at          TIMESTAMPTZ NOT NULL,
		request_id  VARCHAR(36) NOT NULL,
		symbol      VARCHAR(20) NOT NULL,
		source      VARCHAR(50),
		outcome     VARCHAR(20) NOT NULL,
		row_count   INTEGER,
		rejected    INTEGER,
		synthetic   BOOLEAN,
		duration_ms BIGINT,
		error       TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_load_events_at ON load_events(at);
	CREATE INDEX IF NOT EXISTS idx_load_events_symbol ON load_events(symbol);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *PostgresRecorder) RecordLoad(evt *model.LoadEvent) error {
	_, err := r.db.Exec(`INSERT INTO load_events
		(at, request_id, symbol, source, outcome, row_count, rejected, synthetic, duration_ms, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		eventTime(evt), evt.RequestID, evt.Symbol, evt.Source, string(evt.Outcome),
		evt.Rows, evt.Rejected, evt.Synthetic, evt.Duration.Milliseconds(), evt.Error,
	)
	if err != nil {
		return fmt.Errorf("insert load event: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) RecentLoads(limit int) ([]model.LoadEvent, error) {
	rows, err := r.db.Query(`SELECT at, request_id, symbol, source, outcome,
		row_count, rejected, synthetic, duration_ms, error
		FROM load_events ORDER BY at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query load events: %w", err)
	}
	defer rows.Close()

	var out []model.LoadEvent
	for rows.Next() {
		var (
			evt     model.LoadEvent
			durMs   int64
			outcome string
		)
		if err := rows.Scan(&evt.At, &evt.RequestID, &evt.Symbol, &evt.Source, &outcome,
			&evt.Rows, &evt.Rejected, &evt.Synthetic, &durMs, &evt.Error); err != nil {
			return nil, fmt.Errorf("scan load event: %w", err)
		}
		evt.Outcome = model.LoadOutcome(outcome)
		evt.Duration = time.Duration(durMs) * time.Millisecond
		out = append(out, evt)
	}
	return out, rows.Err()
}

func (r *PostgresRecorder) Close() error {
	log.Println("[INFO] closing postgres recorder")
	return r.db.Close()
}
