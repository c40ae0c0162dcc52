package events

import (
	"sync"

	"github.com/vsinha/prodplan/pkg/infrastructure/logger"
)

// InMemoryEventStore keeps the reservation audit trail for the life of the
// process. With a retention limit each stream exposes only its newest events;
// versions keep counting so readers can resume from the last version seen.
// Older events are dropped in batches once a stream holds twice the limit.
type InMemoryEventStore struct {
	mu        sync.RWMutex
	streams   map[string]*stream
	retention int
	log       *logger.Logger
}

type stream struct {
	events  []Event
	version int
}

// retained returns the newest limit events, or all of them when limit <= 0
func (s *stream) retained(limit int) []Event {
	if limit > 0 && len(s.events) > limit {
		return s.events[len(s.events)-limit:]
	}
	return s.events
}

var _ EventStore = (*InMemoryEventStore)(nil)

// StoreOption configures an InMemoryEventStore
type StoreOption func(*InMemoryEventStore)

// WithRetention bounds every stream to the newest n events; n <= 0 keeps all
func WithRetention(n int) StoreOption {
	return func(s *InMemoryEventStore) {
		if n > 0 {
			s.retention = n
		}
	}
}

func NewInMemoryEventStore(log *logger.Logger, opts ...StoreOption) *InMemoryEventStore {
	if log == nil {
		log = logger.Nop()
	}
	s := &InMemoryEventStore{
		streams: make(map[string]*stream),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.streams[streamID]
	if !ok {
		st = &stream{}
		s.streams[streamID] = st
	}

	st.version++
	st.events = append(st.events, Record{
		EventID:   event.ID(),
		EventType: event.Type(),
		Stream:    streamID,
		Payload:   event.Data(),
		At:        event.Timestamp(),
		Seq:       st.version,
	})

	if s.retention > 0 && len(st.events) > 2*s.retention {
		dropped := len(st.events) - s.retention
		kept := make([]Event, s.retention, 2*s.retention+1)
		copy(kept, st.events[dropped:])
		st.events = kept
		s.log.Debug("audit events trimmed", "stream", streamID, "dropped", dropped)
	}
	return nil
}

// ReadEvents returns the retained events of a stream from fromVersion on.
// Versions before the oldest retained event read from the oldest.
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.streams[streamID]
	if !ok || fromVersion > st.version {
		return []Event{}, nil
	}

	retained := st.retained(s.retention)
	offset := fromVersion - (st.version - len(retained) + 1)
	if offset < 0 {
		offset = 0
	}
	out := make([]Event, len(retained)-offset)
	copy(out, retained[offset:])
	return out, nil
}

// Version returns the version of the newest event in a stream, 0 if empty
func (s *InMemoryEventStore) Version(streamID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.streams[streamID]; ok {
		return st.version
	}
	return 0
}
