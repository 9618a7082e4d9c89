package activity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type memStore struct {
	events  []*Event
	failing bool
}

func (m *memStore) Create(_ context.Context, event *Event) (*Event, error) {
	if m.failing {
		return nil, errors.New("insert failed")
	}
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return event, nil
}

func (m *memStore) ListByGroup(_ context.Context, groupID int64, limit, offset int) ([]*Event, int, error) {
	var events []*Event
	for _, e := range m.events {
		if e.GroupID == groupID {
			events = append(events, e)
		}
	}
	return events, len(events), nil
}

type memPublisher struct {
	published []*Event
	failing   bool
}

func (m *memPublisher) Publish(_ context.Context, event *Event) error {
	if m.failing {
		return errors.New("broker unavailable")
	}
	m.published = append(m.published, event)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecordStoresAndPublishes(t *testing.T) {
	store := &memStore{}
	pub := &memPublisher{}
	svc := NewService(store, pub, discardLogger())

	svc.Record(context.Background(), 1, 2, "expense.created", "alice paid 45.99")

	if len(store.events) != 1 {
		t.Fatalf("got %d stored events, want 1", len(store.events))
	}
	e := store.events[0]
	if e.EventID == "" {
		t.Error("event has no uuid")
	}
	if e.Action != "expense.created" || e.GroupID != 1 || e.ActorID != 2 {
		t.Errorf("stored event = %+v", e)
	}
	if len(pub.published) != 1 {
		t.Errorf("got %d published events, want 1", len(pub.published))
	}
}

// Recording must never propagate failures to the caller.
func TestRecordSwallowsFailures(t *testing.T) {
	t.Run("store failure", func(t *testing.T) {
		svc := NewService(&memStore{failing: true}, &memPublisher{}, discardLogger())
		svc.Record(context.Background(), 1, 2, "expense.created", "x")
	})

	t.Run("publish failure", func(t *testing.T) {
		store := &memStore{}
		svc := NewService(store, &memPublisher{failing: true}, discardLogger())
		svc.Record(context.Background(), 1, 2, "expense.created", "x")
		if len(store.events) != 1 {
			t.Error("store write should survive a publish failure")
		}
	})

	t.Run("nil publisher", func(t *testing.T) {
		svc := NewService(&memStore{}, nil, discardLogger())
		svc.Record(context.Background(), 1, 2, "expense.created", "x")
	})
}
