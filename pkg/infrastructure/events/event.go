package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is one entry of an audit stream
type Event interface {
	ID() string
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

// EventStore appends events to named streams and replays them by version
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
}

// Record is the stored form of an Event. Version is assigned by the store.
type Record struct {
	EventID   string      `json:"id"`
	EventType string      `json:"type"`
	Stream    string      `json:"stream"`
	Payload   interface{} `json:"data"`
	At        time.Time   `json:"timestamp"`
	Seq       int         `json:"version"`
}

var _ Event = Record{}

func (r Record) ID() string           { return r.EventID }
func (r Record) Type() string         { return r.EventType }
func (r Record) StreamID() string     { return r.Stream }
func (r Record) Data() interface{}    { return r.Payload }
func (r Record) Timestamp() time.Time { return r.At }
func (r Record) Version() int         { return r.Seq }

// NewEvent creates an unversioned event with a fresh id
func NewEvent(eventType, streamID string, data interface{}) Event {
	return Record{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Stream:    streamID,
		Payload:   data,
		At:        time.Now().UTC(),
	}
}
