package repository

import (
	"context"

	"haulhub/internal/domain"
)

// HaulFilter selects a slice of the haul list.
type HaulFilter string

const (
	HaulFilterActive        HaulFilter = "active"
	HaulFilterCompleted     HaulFilter = "completed"
	HaulFilterPending       HaulFilter = "pending"
	HaulFilterMyHauls       HaulFilter = "my_hauls"
	HaulFilterMyAssignments HaulFilter = "my_assignments"
)

// ListHaulsParams contains filtering and pagination for haul listings.
// UserID scopes the my_hauls/my_assignments filters to the acting user.
type ListHaulsParams struct {
	Filter  HaulFilter
	UserID  int64
	Page    int
	PerPage int
}

// HaulRepository defines the persistence operations for hauls.
type HaulRepository interface {
	// Create persists a new haul. The store assigns ID, CreatedAt and
	// UpdatedAt and writes them back onto the haul.
	Create(ctx context.Context, haul *domain.Haul) error

	// GetByID retrieves a haul by ID.
	GetByID(ctx context.Context, id int64) (*domain.Haul, error)

	// List retrieves a filtered, paginated page of hauls plus the total
	// count matching the filter.
	List(ctx context.Context, params ListHaulsParams) ([]*domain.Haul, int, error)

	// GetAll retrieves all hauls, newest first. Used by reporting.
	GetAll(ctx context.Context) ([]*domain.Haul, error)

	// Update updates an existing haul. The store refreshes UpdatedAt.
	Update(ctx context.Context, haul *domain.Haul) error

	// Delete removes a haul.
	Delete(ctx context.Context, id int64) error
}
