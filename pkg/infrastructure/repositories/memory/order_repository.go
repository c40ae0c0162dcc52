package memory

import (
	"fmt"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
)

// OrderRepository provides in-memory order storage. Orders keep the order in
// which they were loaded.
type OrderRepository struct {
	orders    []entities.Order
	ordersMap map[entities.OrderID]int
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository(expectedOrders int) *OrderRepository {
	return &OrderRepository{
		orders:    make([]entities.Order, 0, expectedOrders),
		ordersMap: make(map[entities.OrderID]int, expectedOrders),
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadOrders loads orders into the repository
func (r *OrderRepository) LoadOrders(orders []*entities.Order) error {
	for _, order := range orders {
		if err := r.AddOrder(*order); err != nil {
			return err
		}
	}
	return nil
}

// AddOrder adds an order to the repository
func (r *OrderRepository) AddOrder(order entities.Order) error {
	if _, exists := r.ordersMap[order.ID]; exists {
		return fmt.Errorf("duplicate order id: %s", order.ID)
	}
	r.ordersMap[order.ID] = len(r.orders)
	r.orders = append(r.orders, order)
	return nil
}

// GetOrder returns the order with the given id
func (r *OrderRepository) GetOrder(id entities.OrderID) (*entities.Order, error) {
	index, exists := r.ordersMap[id]
	if !exists {
		return nil, fmt.Errorf("order not found: %s", id)
	}
	return &r.orders[index], nil
}

// GetAllOrders returns all orders in load order
func (r *OrderRepository) GetAllOrders() ([]*entities.Order, error) {
	orders := make([]*entities.Order, 0, len(r.orders))
	for i := range r.orders {
		orders = append(orders, &r.orders[i])
	}
	return orders, nil
}
