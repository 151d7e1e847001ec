package repository

import (
	"context"

	"haulhub/internal/domain"
)

// OrderRepository defines the persistence operations for material orders.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// GetAll retrieves all orders, newest first.
	GetAll(ctx context.Context) ([]*domain.Order, error)

	// UpdateStatus updates just the status of an order.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
