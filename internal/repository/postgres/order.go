package postgres

import (
	"context"
	"database/sql"
	"errors"

	"haulhub/internal/domain"
	"haulhub/internal/repository"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

const orderColumns = `
	id, material_id, material_name, material_price_per_trip, material_unit,
	truck_type_id, truck_type_name, truck_type_capacity, truck_type_multiplier,
	quantity, distance_km,
	customer_name, customer_phone, customer_email, customer_address,
	total_price, status, created_at
`

// Create persists a new order. The material and truck-type snapshots are
// denormalized onto the row so a later catalog change cannot reprice an
// existing order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			id, material_id, material_name, material_price_per_trip, material_unit,
			truck_type_id, truck_type_name, truck_type_capacity, truck_type_multiplier,
			quantity, distance_km,
			customer_name, customer_phone, customer_email, customer_address,
			total_price, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	status := order.Status
	if status == "" {
		status = domain.OrderStatusPending
	}

	_, err := r.q.ExecContext(ctx, query,
		order.ID,
		order.Material.ID, order.Material.Name, order.Material.PricePerTrip, order.Material.Unit,
		order.Truck.ID, order.Truck.Name, order.Truck.Capacity, order.Truck.PriceMultiplier,
		order.Quantity, order.DistanceKm,
		order.Customer.Name, order.Customer.Phone, nullString(order.Customer.Email), nullString(order.Customer.Address),
		order.TotalPrice, status, order.CreatedAt,
	)
	return err
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetAll retrieves all orders, newest first.
func (r *OrderRepository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// UpdateStatus updates just the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result, err := r.q.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var email, address sql.NullString

	err := row.Scan(
		&order.ID,
		&order.Material.ID, &order.Material.Name, &order.Material.PricePerTrip, &order.Material.Unit,
		&order.Truck.ID, &order.Truck.Name, &order.Truck.Capacity, &order.Truck.PriceMultiplier,
		&order.Quantity, &order.DistanceKm,
		&order.Customer.Name, &order.Customer.Phone, &email, &address,
		&order.TotalPrice, &order.Status, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Customer.Email = email.String
	order.Customer.Address = address.String
	return &order, nil
}
