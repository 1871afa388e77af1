package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"planner/internal/core"
)

// EventType names what changed in the journal.
type EventType string

const (
	RecordUpdated       EventType = "record.updated"
	TransactionAppended EventType = "transaction.appended"
	BonusUnlocked       EventType = "bonus.unlocked"
)

func (t EventType) Valid() bool {
	switch t {
	case RecordUpdated, TransactionAppended, BonusUnlocked:
		return true
	default:
		return false
	}
}

// Event is a lightweight notification. It carries the affected date only;
// consumers reload the tables to see the new state.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Date      core.Date `json:"date"`
	Key       string    `json:"key,omitempty"`
	Overall   float64   `json:"overall,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

var ErrMalformedEvent = errors.New("malformed event")

// NewEvent creates an event with a fresh id.
func NewEvent(typ EventType, date core.Date) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Date:      date,
		Timestamp: time.Now().UTC(),
	}
}

func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedEvent)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrMalformedEvent, e.Type)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrMalformedEvent)
	}
	return nil
}

// ToJSON converts the event to JSON bytes
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes and validates an event.
func EventFromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
