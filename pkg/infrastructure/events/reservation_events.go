package events

import (
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// LedgerStream is the stream every reservation event is appended to
const LedgerStream = "ledger"

const (
	ReservationCommittedEvent = "reservation.committed"
	ReservationReleasedEvent  = "reservation.released"
)

// ReservationChanged records the orders and per-material deltas of one ledger update.
// Deltas are positive for commits and the actually released amount for releases.
type ReservationChanged struct {
	Orders  []entities.OrderID  `json:"orders"`
	Skipped []entities.OrderID  `json:"skipped,omitempty"`
	Deltas  entities.Quantities `json:"deltas"`
}
