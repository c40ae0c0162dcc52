package entities

import "errors"

var (
	// ErrEmptySelection is returned when an operation needs at least one order id
	ErrEmptySelection = errors.New("no orders selected")

	// ErrNoMatchingOrders is returned when none of the selected ids is a known order
	ErrNoMatchingOrders = errors.New("none of the selected orders exist in the catalog")

	// ErrOrderAlreadyCommitted is returned by strict commits of reserved orders
	ErrOrderAlreadyCommitted = errors.New("order materials already reserved")
)
