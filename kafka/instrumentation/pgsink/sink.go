// Package pgsink durably records Runner instrumentation events to Postgres,
// giving kafka/group.InstrumentationEmitter a persistence backend beyond
// the default logging emitter.
package pgsink

import (
	"context"
	"encoding/json"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rcoedo/kafkajs/kafka/group"
	"github.com/rcoedo/kafkajs/pgrepo"
	"github.com/rcoedo/kafkajs/protocol"
)

// Config configures a Sink.
type Config struct {
	// Table is the table events are written to and read from. Must already
	// exist; the Sink issues no DDL.
	Table string `yaml:"table" default:"runner_events"`
}

// Record is one persisted instrumentation event.
type Record struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

// Sink implements group.InstrumentationEmitter on top of a pgrepo.DB,
// persisting every event it receives as a row and exposing ListEvents for
// later inspection.
type Sink struct {
	db    *pgrepo.DB
	table string
	log   protocol.Logger
}

// New wraps db as an InstrumentationEmitter. db must already be started.
func New(db *pgrepo.DB, cfg Config, log protocol.Logger) (*Sink, error) {
	if db == nil {
		return nil, errors.New("pgsink: db cannot be nil")
	}
	if cfg.Table == "" {
		cfg.Table = "runner_events"
	}
	if log == nil {
		log = protocol.NopLogger{}
	}

	return &Sink{db: db, table: cfg.Table, log: log}, nil
}

// Emit persists one Runner event. Marshal failures and write failures are
// logged, not returned, matching group.InstrumentationEmitter's fire-and-
// forget contract — a broken instrumentation sink must never stall the
// fetch loop.
func (s *Sink) Emit(ctx context.Context, event group.Event) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		s.log.Error(ctx, "pgsink: marshal event payload", "event", event.Name, "error", err)
		return
	}

	query := `INSERT INTO ` + s.table + ` (id, name, payload, created_at) VALUES ($1, $2, $3, $4)`
	_, err = s.db.Master().Exec(ctx, query, uuid.New(), event.Name, payload, time.Now())
	if err != nil {
		s.log.Error(ctx, "pgsink: insert event", "event", event.Name, "error", err)
	}
}

// ListEvents returns the most recent events, newest first, up to limit.
func (s *Sink) ListEvents(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}

	var records []Record
	query := `SELECT id, name, payload, created_at FROM ` + s.table + ` ORDER BY created_at DESC LIMIT $1`
	if err := pgxscan.Select(ctx, s.db.Replica(ctx), &records, query, limit); err != nil {
		return nil, errors.Wrap(err, "pgsink: list events")
	}

	return records, nil
}
