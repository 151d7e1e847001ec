package repository

import (
	"context"

	"haulhub/internal/domain"
)

// TruckRepository defines the persistence operations for fleet trucks.
type TruckRepository interface {
	// Create persists a new truck. The store assigns ID and timestamps.
	Create(ctx context.Context, truck *domain.Truck) error

	// GetByID retrieves a truck by ID.
	GetByID(ctx context.Context, id int64) (*domain.Truck, error)

	// GetAll retrieves all trucks.
	GetAll(ctx context.Context) ([]*domain.Truck, error)

	// Update updates an existing truck.
	Update(ctx context.Context, truck *domain.Truck) error

	// UpdateStatus updates just the fleet status of a truck.
	UpdateStatus(ctx context.Context, id int64, status domain.TruckStatus) error

	// Delete removes a truck.
	Delete(ctx context.Context, id int64) error
}
