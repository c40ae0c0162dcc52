package repositories

import "github.com/vsinha/prodplan/pkg/domain/entities"

// OrderRepository provides access to the customer orders of a planning session
type OrderRepository interface {
	GetOrder(id entities.OrderID) (*entities.Order, error)
	// GetAllOrders returns orders in catalog order
	GetAllOrders() ([]*entities.Order, error)
	LoadOrders(orders []*entities.Order) error
}
