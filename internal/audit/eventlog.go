// Package audit records administrative mutations in the event_log table so
// dataset edits can be traced and replayed against the exported file.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type Event struct {
	Offset    int64
	Actor     string
	Type      string // e.g. InstitutionAdded, SpecializationDeleted
	Key       string // natural key: "name|city" or a numeric id
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (actor, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.Actor, e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// Record is the convenience form: payload marshalled, errors swallowed by
// the caller's choice. Audit must never block the mutation it describes.
func (r *EventRepo) Record(ctx context.Context, actor, typ, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}
	return r.Append(ctx, Event{Actor: actor, Type: typ, Key: key, DataJSON: string(data)})
}

// Recent returns the newest events, for the admin screen.
func (r *EventRepo) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT "offset", actor, typ, key, data, created_at FROM event_log
		 ORDER BY "offset" DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.Actor, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
