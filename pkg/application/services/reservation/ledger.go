package reservation

import (
	"sort"
	"sync"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// epsilon below which a reserved quantity is treated as fully released
const epsilon = 1e-9

// Ledger tracks reserved quantities per material and the set of committed
// orders. It is the only mutable state of a planning session; all updates go
// through Apply, which serializes writers and applies a change atomically.
type Ledger struct {
	mu    sync.RWMutex
	state LedgerState
}

// LedgerState is the mutable view handed to Apply
type LedgerState struct {
	reserved  entities.Quantities
	committed map[entities.OrderID]bool
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{state: LedgerState{
		reserved:  entities.Quantities{},
		committed: make(map[entities.OrderID]bool),
	}}
}

// Reserved returns a copy of the reserved quantity per material
func (l *Ledger) Reserved() entities.Quantities {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.reserved.Clone()
}

// Get returns the reserved quantity of one material, zero when absent
func (l *Ledger) Get(material entities.Material) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.reserved.Get(material)
}

// IsCommitted reports whether the order's materials are currently reserved
func (l *Ledger) IsCommitted(id entities.OrderID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.committed[id]
}

// Committed returns the committed order ids, sorted
func (l *Ledger) Committed() []entities.OrderID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.committedIDs()
}

// Snapshot returns a consistent copy of reservations and committed orders
func (l *Ledger) Snapshot() dto.LedgerSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return dto.LedgerSnapshot{
		Reserved:  l.state.reserved.Clone(),
		Committed: l.state.committedIDs(),
	}
}

// Apply runs fn against a copy of the ledger under the write lock and keeps
// the copy only if fn succeeds. A failing fn leaves the ledger untouched.
// Hooks run after the copy is kept, still under the write lock, so they see
// updates one at a time in the order they were applied.
func (l *Ledger) Apply(fn func(state *LedgerState) error, hooks ...func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	working := l.state.clone()
	if err := fn(&working); err != nil {
		return err
	}
	l.state = working

	for _, hook := range hooks {
		hook()
	}
	return nil
}

func (s *LedgerState) clone() LedgerState {
	committed := make(map[entities.OrderID]bool, len(s.committed))
	for id := range s.committed {
		committed[id] = true
	}
	return LedgerState{
		reserved:  s.reserved.Clone(),
		committed: committed,
	}
}

func (s *LedgerState) committedIDs() []entities.OrderID {
	ids := make([]entities.OrderID, 0, len(s.committed))
	for id := range s.committed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// Reserved returns the reserved quantity of a material within the pending change
func (s *LedgerState) Reserved(material entities.Material) float64 {
	return s.reserved.Get(material)
}

// Reserve adds qty to the material's reservation, creating the entry if absent
func (s *LedgerState) Reserve(material entities.Material, qty float64) {
	if qty <= 0 {
		return
	}
	s.reserved.Add(material, qty)
}

// Release subtracts qty from the material's reservation, floored at zero, and
// returns the amount actually released
func (s *LedgerState) Release(material entities.Material, qty float64) float64 {
	current := s.reserved.Get(material)
	if qty <= 0 || current <= 0 {
		return 0
	}

	released := qty
	if released > current {
		released = current
	}
	if remaining := current - released; remaining > epsilon {
		s.reserved[material] = remaining
	} else {
		delete(s.reserved, material)
	}
	return released
}

// IsCommitted reports whether the order is committed within the pending change
func (s *LedgerState) IsCommitted(id entities.OrderID) bool {
	return s.committed[id]
}

// MarkCommitted adds the order to the committed set
func (s *LedgerState) MarkCommitted(id entities.OrderID) {
	s.committed[id] = true
}

// Unmark removes the order from the committed set
func (s *LedgerState) Unmark(id entities.OrderID) {
	delete(s.committed, id)
}
