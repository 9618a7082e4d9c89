package activity

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles activity event persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new activity repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create appends an event to the feed
func (r *Repository) Create(ctx context.Context, event *Event) (*Event, error) {
	query := `
		INSERT INTO activity_events (event_id, group_id, actor_id, action, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		event.EventID, event.GroupID, event.ActorID, event.Action, event.Detail,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity event: %w", err)
	}

	return event, nil
}

// ListByGroup retrieves a page of a group's events, newest first
func (r *Repository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Event, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM activity_events WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity events: %w", err)
	}

	query := `
		SELECT a.id, a.event_id, a.group_id, a.actor_id, a.action, a.detail, a.created_at, u.username
		FROM activity_events a
		JOIN users u ON a.actor_id = u.id
		WHERE a.group_id = $1
		ORDER BY a.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{}
		if err := rows.Scan(
			&event.ID,
			&event.EventID,
			&event.GroupID,
			&event.ActorID,
			&event.Action,
			&event.Detail,
			&event.CreatedAt,
			&event.ActorUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity event: %w", err)
		}
		events = append(events, event)
	}

	return events, total, nil
}
