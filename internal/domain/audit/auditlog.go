// Package audit holds the append-only audit trail fed by domain events.
package audit

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("audit entry not found")

// LogEntry is one audit record. Entries are written once by the event
// recorder and never mutated.
type LogEntry struct {
	id          uint
	aggregateID string
	eventType   string
	payload     []byte
	occurredAt  time.Time
	createdAt   time.Time
}

func NewLogEntry(aggregateID, eventType string, payload []byte, occurredAt time.Time) (*LogEntry, error) {
	if eventType == "" {
		return nil, errors.New("event type is required")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return &LogEntry{
		aggregateID: aggregateID,
		eventType:   eventType,
		payload:     payload,
		occurredAt:  occurredAt,
		createdAt:   time.Now(),
	}, nil
}

func ReconstructLogEntry(id uint, aggregateID, eventType string, payload []byte, occurredAt, createdAt time.Time) (*LogEntry, error) {
	if id == 0 {
		return nil, errors.New("audit entry ID cannot be zero")
	}
	return &LogEntry{
		id:          id,
		aggregateID: aggregateID,
		eventType:   eventType,
		payload:     payload,
		occurredAt:  occurredAt,
		createdAt:   createdAt,
	}, nil
}

func (e *LogEntry) ID() uint             { return e.id }
func (e *LogEntry) AggregateID() string  { return e.aggregateID }
func (e *LogEntry) EventType() string    { return e.eventType }
func (e *LogEntry) Payload() []byte      { return e.payload }
func (e *LogEntry) OccurredAt() time.Time { return e.occurredAt }
func (e *LogEntry) CreatedAt() time.Time  { return e.createdAt }

func (e *LogEntry) SetID(id uint) error {
	if e.id != 0 {
		return errors.New("audit entry ID is already set")
	}
	if id == 0 {
		return errors.New("audit entry ID cannot be zero")
	}
	e.id = id
	return nil
}

type LogFilter struct {
	AggregateID string
	EventType   string
	Page        int
	PageSize    int
}

type LogRepository interface {
	Save(ctx context.Context, entry *LogEntry) error
	List(ctx context.Context, filter LogFilter) ([]*LogEntry, int64, error)
}
