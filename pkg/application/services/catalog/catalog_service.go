package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
	"github.com/vsinha/prodplan/pkg/domain/services"
)

// Service answers browsing queries over the loaded order catalog
type Service struct {
	orderRepo       repositories.OrderRepository
	requirementRepo repositories.RequirementRepository
	validator       *services.CatalogValidator
}

// NewService creates a new catalog service
func NewService(orderRepo repositories.OrderRepository, requirementRepo repositories.RequirementRepository) *Service {
	return &Service{
		orderRepo:       orderRepo,
		requirementRepo: requirementRepo,
		validator:       services.NewCatalogValidator(),
	}
}

// Customers returns the distinct non-empty customer names, sorted
func (s *Service) Customers() ([]string, error) {
	orders, err := s.orderRepo.GetAllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	seen := make(map[string]bool)
	customers := make([]string, 0)
	for _, order := range orders {
		if order.Customer == "" || seen[order.Customer] {
			continue
		}
		seen[order.Customer] = true
		customers = append(customers, order.Customer)
	}
	sort.Strings(customers)
	return customers, nil
}

// FilterOrders returns the orders of a customer (all customers when empty)
// whose descriptive fields contain search, in catalog order
func (s *Service) FilterOrders(customer, search string) ([]*entities.Order, error) {
	orders, err := s.orderRepo.GetAllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	customer = strings.TrimSpace(customer)
	filtered := make([]*entities.Order, 0, len(orders))
	for _, order := range orders {
		if customer != "" && order.Customer != customer {
			continue
		}
		if !order.Matches(search) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered, nil
}

// Validate checks the loaded catalog for duplicates and coverage gaps
func (s *Service) Validate() (*services.ValidationResult, error) {
	orders, err := s.orderRepo.GetAllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	rows, err := s.requirementRepo.GetAllRows()
	if err != nil {
		return nil, fmt.Errorf("failed to load requirement rows: %w", err)
	}
	return s.validator.ValidateCatalog(orders, rows), nil
}
