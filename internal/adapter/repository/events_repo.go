package repository

import (
	"context"
	"encoding/json"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

// UserEventsLimit caps the history returned for one user.
const UserEventsLimit = 100

type EventsRepo struct {
	pool *pgxpool.Pool
}

func NewEventsRepo(pool *pgxpool.Pool) *EventsRepo {
	return &EventsRepo{pool: pool}
}

func (r *EventsRepo) Insert(ctx context.Context, e domain.AnalyticsEvent) error {
	if r.pool == nil {
		return nil
	}

	dataB, _ := json.Marshal(e.EventData)
	_, err := r.pool.Exec(ctx, `INSERT INTO analytics_events (id, event_type, event_data, user_id, session_id, timestamp)
		VALUES ($1,$2,$3,$4,nullif($5, ''),$6)`,
		e.ID, e.EventType, dataB, e.UserID, e.SessionID, e.Timestamp)
	return err
}

// ListByUser returns the user's most recent events, newest first.
func (r *EventsRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.AnalyticsEvent, error) {
	if r.pool == nil {
		return []domain.AnalyticsEvent{}, nil
	}

	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT coalesce(json_agg(row_to_json(e) ORDER BY e.timestamp DESC), '[]')
		FROM (SELECT id, event_type, event_data, user_id, session_id, timestamp
		      FROM analytics_events WHERE user_id = $1
		      ORDER BY timestamp DESC LIMIT $2) e`, userID, UserEventsLimit).Scan(&raw)
	if err != nil {
		return nil, err
	}
	out := []domain.AnalyticsEvent{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
