package activity

import "time"

// Event is one entry in a group's activity feed. Events are append-only and
// carry a client-visible UUID alongside the database id.
type Event struct {
	ID            int64     `json:"id"`
	EventID       string    `json:"event_id"`
	GroupID       int64     `json:"group_id"`
	ActorID       int64     `json:"actor_id"`
	ActorUsername string    `json:"actor_username,omitempty"`
	Action        string    `json:"action"`
	Detail        string    `json:"detail"`
	CreatedAt     time.Time `json:"created_at"`
}
