package postgres

import (
	"context"
	"database/sql"
	"errors"

	"haulhub/internal/domain"
	"haulhub/internal/repository"
)

// TruckRepository is a PostgreSQL implementation of repository.TruckRepository.
type TruckRepository struct {
	q Querier
}

// NewTruckRepository creates a new PostgreSQL truck repository.
func NewTruckRepository(db *sql.DB) *TruckRepository {
	return &TruckRepository{q: db}
}

// NewTruckRepositoryWithTx creates a truck repository using a transaction.
func NewTruckRepositoryWithTx(tx *sql.Tx) *TruckRepository {
	return &TruckRepository{q: tx}
}

const truckColumns = `
	id, make, model, year, license_plate, capacity, fuel_type, status,
	driver_id, created_at, updated_at
`

// Create persists a new truck. Postgres assigns the id and timestamps.
func (r *TruckRepository) Create(ctx context.Context, truck *domain.Truck) error {
	query := `
		INSERT INTO trucks (make, model, year, license_plate, capacity, fuel_type, status, driver_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	status := truck.Status
	if status == "" {
		status = domain.TruckStatusAvailable
	}

	return r.q.QueryRowContext(ctx, query,
		truck.Make, truck.Model, truck.Year, truck.LicensePlate,
		truck.Capacity, truck.FuelType, status, nullInt(truck.DriverID),
	).Scan(&truck.ID, &truck.CreatedAt, &truck.UpdatedAt)
}

// GetByID retrieves a truck by ID.
func (r *TruckRepository) GetByID(ctx context.Context, id int64) (*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE id = $1`

	truck, err := scanTruck(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return truck, nil
}

// GetAll retrieves all trucks.
func (r *TruckRepository) GetAll(ctx context.Context) ([]*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trucks []*domain.Truck
	for rows.Next() {
		truck, err := scanTruck(rows)
		if err != nil {
			return nil, err
		}
		trucks = append(trucks, truck)
	}
	return trucks, rows.Err()
}

// Update updates an existing truck.
func (r *TruckRepository) Update(ctx context.Context, truck *domain.Truck) error {
	query := `
		UPDATE trucks
		SET make = $1, model = $2, year = $3, license_plate = $4, capacity = $5,
			fuel_type = $6, status = $7, driver_id = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		truck.Make, truck.Model, truck.Year, truck.LicensePlate,
		truck.Capacity, truck.FuelType, truck.Status, nullInt(truck.DriverID),
		truck.ID,
	).Scan(&truck.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// UpdateStatus updates just the fleet status of a truck.
func (r *TruckRepository) UpdateStatus(ctx context.Context, id int64, status domain.TruckStatus) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE trucks SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
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

// Delete removes a truck.
func (r *TruckRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM trucks WHERE id = $1`, id)
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

func scanTruck(row rowScanner) (*domain.Truck, error) {
	var truck domain.Truck
	var driverID sql.NullInt64

	err := row.Scan(
		&truck.ID, &truck.Make, &truck.Model, &truck.Year, &truck.LicensePlate,
		&truck.Capacity, &truck.FuelType, &truck.Status,
		&driverID, &truck.CreatedAt, &truck.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	truck.DriverID = intPtr(driverID)
	return &truck, nil
}
