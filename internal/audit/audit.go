// Package audit writes access audit events. Recording is fire-and-forget:
// a failed write is logged and swallowed, it never blocks or fails the
// operation being audited.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"

	"github.com/rs/zerolog"
)

type Event struct {
	ActorUserID  string
	TargetUserID string
	Action       string
	Resource     string
	IPAddress    string
	UserAgent    string
	Metadata     map[string]interface{}
}

type Recorder struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRecorder(db *sql.DB, logger zerolog.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

func (r *Recorder) Record(ctx context.Context, event Event) {
	var metadata []byte
	if event.Metadata != nil {
		encoded, err := json.Marshal(event.Metadata)
		if err != nil {
			r.logger.Error().Err(err).Str("action", event.Action).Msg("audit metadata encoding failed")
		} else {
			metadata = encoded
		}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access_audit_logs
        (actor_user_id, target_user_id, action, resource, ip_address, user_agent, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		nullString(event.ActorUserID), nullString(event.TargetUserID), event.Action,
		event.Resource, nullString(event.IPAddress), nullString(event.UserAgent), metadata,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("action", event.Action).Msg("audit log write failed")
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

// SampleEvent decides whether a sampled event should be emitted for the
// given rate in [0, 1].
func SampleEvent(rate float64) bool {
	if rate <= 0 {
		return false
	}
	if rate >= 1 {
		return true
	}
	return rand.Float64() < rate
}
