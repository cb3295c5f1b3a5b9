package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreEventType names the collection a change event refers to.
type StoreEventType string

const (
	EventProductsChanged StoreEventType = "products.changed"
	EventMembersChanged  StoreEventType = "members.changed"
	EventSalesChanged    StoreEventType = "sales.changed"
)

// StoreEvent is published after every successful mutation. The report
// layer subscribes to invalidate its search index; dashboards subscribe
// to refresh their figures.
type StoreEvent struct {
	Type      StoreEventType `json:"type"`
	Operation string         `json:"operation"` // insert, update, delete, reorder
	ID        int64          `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventCallback handles one store event.
type EventCallback func(ctx context.Context, event StoreEvent) error

// Subscribe registers a callback for the given event type and returns a
// subscription id for Unsubscribe.
func (s *Store) Subscribe(event StoreEventType, callback EventCallback) string {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	unsubscribe := s.bus.Subscribe(string(event), callback)
	id := uuid.New().String()
	s.subs[id] = unsubscribe
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (s *Store) Unsubscribe(id string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if unsubscribe, ok := s.subs[id]; ok {
		unsubscribe()
		delete(s.subs, id)
	}
}

// emit publishes a change event. Events fire only after the mutation has
// committed, so subscribers always observe the new state on re-fetch.
func (s *Store) emit(event StoreEventType, operation string, id int64) {
	s.bus.Emit(string(event), StoreEvent{
		Type:      event,
		Operation: operation,
		ID:        id,
		Timestamp: time.Now(),
	})
	s.logger.Debug("store event",
		zap.String("event", string(event)),
		zap.String("operation", operation),
		zap.Int64("id", id))
}
