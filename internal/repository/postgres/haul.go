package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"haulhub/internal/domain"
	"haulhub/internal/repository"
)

// HaulRepository is a PostgreSQL implementation of repository.HaulRepository.
type HaulRepository struct {
	q Querier
}

// NewHaulRepository creates a new PostgreSQL haul repository.
func NewHaulRepository(db *sql.DB) *HaulRepository {
	return &HaulRepository{q: db}
}

// NewHaulRepositoryWithTx creates a haul repository using a transaction.
func NewHaulRepositoryWithTx(tx *sql.Tx) *HaulRepository {
	return &HaulRepository{q: tx}
}

const haulColumns = `
	id, haul_type,
	pickup_address, pickup_city, pickup_state, pickup_zip, pickup_date,
	pickup_contact_name, pickup_contact_phone, pickup_instructions,
	pickup_latitude, pickup_longitude,
	delivery_address, delivery_city, delivery_state, delivery_zip, delivery_date,
	delivery_contact_name, delivery_contact_phone, delivery_instructions,
	delivery_latitude, delivery_longitude,
	load_type, load_description, load_weight, load_volume, load_hazardous,
	special_requirements, distance_miles, estimated_duration_hours,
	quoted_price, final_price, fuel_cost, payment_status, payment_method,
	status, notes, user_id, truck_id, driver_id, created_at, updated_at
`

// Create persists a new haul. Postgres assigns the id and timestamps.
func (r *HaulRepository) Create(ctx context.Context, haul *domain.Haul) error {
	query := `
		INSERT INTO hauls (
			haul_type,
			pickup_address, pickup_city, pickup_state, pickup_zip, pickup_date,
			pickup_contact_name, pickup_contact_phone, pickup_instructions,
			pickup_latitude, pickup_longitude,
			delivery_address, delivery_city, delivery_state, delivery_zip, delivery_date,
			delivery_contact_name, delivery_contact_phone, delivery_instructions,
			delivery_latitude, delivery_longitude,
			load_type, load_description, load_weight, load_volume, load_hazardous,
			special_requirements, distance_miles, estimated_duration_hours,
			quoted_price, final_price, fuel_cost, payment_status, payment_method,
			status, notes, user_id, truck_id, driver_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39
		)
		RETURNING id, created_at, updated_at
	`

	return r.q.QueryRowContext(ctx, query,
		haul.HaulType,
		haul.Pickup.Address, haul.Pickup.City, haul.Pickup.State, haul.Pickup.Zip, haul.Pickup.Date,
		haul.Pickup.ContactName, haul.Pickup.ContactPhone, nullString(haul.Pickup.Instructions),
		nullFloat(haul.Pickup.Latitude), nullFloat(haul.Pickup.Longitude),
		haul.Delivery.Address, haul.Delivery.City, haul.Delivery.State, haul.Delivery.Zip, haul.Delivery.Date,
		haul.Delivery.ContactName, haul.Delivery.ContactPhone, nullString(haul.Delivery.Instructions),
		nullFloat(haul.Delivery.Latitude), nullFloat(haul.Delivery.Longitude),
		haul.Load.Type, haul.Load.Description, nullFloat(haul.Load.Weight), nullFloat(haul.Load.Volume), haul.Load.Hazardous,
		nullString(haul.Load.SpecialRequirements), nullFloat(haul.DistanceMiles), nullFloat(haul.EstimatedDuration),
		nullFloat(haul.QuotedPrice), nullFloat(haul.FinalPrice), nullFloat(haul.FuelCost), haul.PaymentStatus, nullString(haul.PaymentMethod),
		haul.Status, nullString(haul.Notes), haul.UserID, nullInt(haul.TruckID), nullInt(haul.DriverID),
	).Scan(&haul.ID, &haul.CreatedAt, &haul.UpdatedAt)
}

// GetByID retrieves a haul by ID.
func (r *HaulRepository) GetByID(ctx context.Context, id int64) (*domain.Haul, error) {
	query := `SELECT ` + haulColumns + ` FROM hauls WHERE id = $1`

	haul, err := scanHaul(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return haul, nil
}

// List retrieves a filtered, paginated page of hauls plus the total count.
func (r *HaulRepository) List(ctx context.Context, params repository.ListHaulsParams) ([]*domain.Haul, int, error) {
	where, args := haulFilterClause(params)

	var total int
	countQuery := `SELECT COUNT(*) FROM hauls` + where
	if err := r.q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage < 1 {
		perPage = 10
	}

	query := fmt.Sprintf(
		`SELECT %s FROM hauls%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		haulColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var hauls []*domain.Haul
	for rows.Next() {
		haul, err := scanHaul(rows)
		if err != nil {
			return nil, 0, err
		}
		hauls = append(hauls, haul)
	}
	return hauls, total, rows.Err()
}

// GetAll retrieves all hauls, newest first.
func (r *HaulRepository) GetAll(ctx context.Context) ([]*domain.Haul, error) {
	query := `SELECT ` + haulColumns + ` FROM hauls ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hauls []*domain.Haul
	for rows.Next() {
		haul, err := scanHaul(rows)
		if err != nil {
			return nil, err
		}
		hauls = append(hauls, haul)
	}
	return hauls, rows.Err()
}

// Update updates an existing haul. updated_at is set by the store, not
// computed by the caller.
func (r *HaulRepository) Update(ctx context.Context, haul *domain.Haul) error {
	query := `
		UPDATE hauls SET
			haul_type = $1,
			pickup_address = $2, pickup_city = $3, pickup_state = $4, pickup_zip = $5, pickup_date = $6,
			pickup_contact_name = $7, pickup_contact_phone = $8, pickup_instructions = $9,
			pickup_latitude = $10, pickup_longitude = $11,
			delivery_address = $12, delivery_city = $13, delivery_state = $14, delivery_zip = $15, delivery_date = $16,
			delivery_contact_name = $17, delivery_contact_phone = $18, delivery_instructions = $19,
			delivery_latitude = $20, delivery_longitude = $21,
			load_type = $22, load_description = $23, load_weight = $24, load_volume = $25, load_hazardous = $26,
			special_requirements = $27, distance_miles = $28, estimated_duration_hours = $29,
			quoted_price = $30, final_price = $31, fuel_cost = $32, payment_status = $33, payment_method = $34,
			status = $35, notes = $36, truck_id = $37, driver_id = $38,
			updated_at = NOW()
		WHERE id = $39
		RETURNING updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		haul.HaulType,
		haul.Pickup.Address, haul.Pickup.City, haul.Pickup.State, haul.Pickup.Zip, haul.Pickup.Date,
		haul.Pickup.ContactName, haul.Pickup.ContactPhone, nullString(haul.Pickup.Instructions),
		nullFloat(haul.Pickup.Latitude), nullFloat(haul.Pickup.Longitude),
		haul.Delivery.Address, haul.Delivery.City, haul.Delivery.State, haul.Delivery.Zip, haul.Delivery.Date,
		haul.Delivery.ContactName, haul.Delivery.ContactPhone, nullString(haul.Delivery.Instructions),
		nullFloat(haul.Delivery.Latitude), nullFloat(haul.Delivery.Longitude),
		haul.Load.Type, haul.Load.Description, nullFloat(haul.Load.Weight), nullFloat(haul.Load.Volume), haul.Load.Hazardous,
		nullString(haul.Load.SpecialRequirements), nullFloat(haul.DistanceMiles), nullFloat(haul.EstimatedDuration),
		nullFloat(haul.QuotedPrice), nullFloat(haul.FinalPrice), nullFloat(haul.FuelCost), haul.PaymentStatus, nullString(haul.PaymentMethod),
		haul.Status, nullString(haul.Notes), nullInt(haul.TruckID), nullInt(haul.DriverID),
		haul.ID,
	).Scan(&haul.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// Delete removes a haul.
func (r *HaulRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM hauls WHERE id = $1`, id)
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

// haulFilterClause builds the WHERE clause for a haul list filter.
func haulFilterClause(params repository.ListHaulsParams) (string, []any) {
	switch params.Filter {
	case repository.HaulFilterActive:
		return ` WHERE status IN ('assigned', 'in_progress')`, nil
	case repository.HaulFilterCompleted:
		return ` WHERE status = 'completed'`, nil
	case repository.HaulFilterPending:
		return ` WHERE status = 'pending'`, nil
	case repository.HaulFilterMyHauls:
		return ` WHERE user_id = $1`, []any{params.UserID}
	case repository.HaulFilterMyAssignments:
		return ` WHERE driver_id = $1`, []any{params.UserID}
	default:
		return ``, nil
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHaul(row rowScanner) (*domain.Haul, error) {
	var haul domain.Haul
	var (
		pickupInstructions, deliveryInstructions         sql.NullString
		pickupLat, pickupLng, deliveryLat, deliveryLng   sql.NullFloat64
		loadWeight, loadVolume                           sql.NullFloat64
		specialRequirements, paymentMethod, notes        sql.NullString
		distanceMiles, estimatedDuration                 sql.NullFloat64
		quotedPrice, finalPrice, fuelCost                sql.NullFloat64
		truckID, driverID                                sql.NullInt64
	)

	err := row.Scan(
		&haul.ID, &haul.HaulType,
		&haul.Pickup.Address, &haul.Pickup.City, &haul.Pickup.State, &haul.Pickup.Zip, &haul.Pickup.Date,
		&haul.Pickup.ContactName, &haul.Pickup.ContactPhone, &pickupInstructions,
		&pickupLat, &pickupLng,
		&haul.Delivery.Address, &haul.Delivery.City, &haul.Delivery.State, &haul.Delivery.Zip, &haul.Delivery.Date,
		&haul.Delivery.ContactName, &haul.Delivery.ContactPhone, &deliveryInstructions,
		&deliveryLat, &deliveryLng,
		&haul.Load.Type, &haul.Load.Description, &loadWeight, &loadVolume, &haul.Load.Hazardous,
		&specialRequirements, &distanceMiles, &estimatedDuration,
		&quotedPrice, &finalPrice, &fuelCost, &haul.PaymentStatus, &paymentMethod,
		&haul.Status, &notes, &haul.UserID, &truckID, &driverID, &haul.CreatedAt, &haul.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	haul.Pickup.Instructions = pickupInstructions.String
	haul.Pickup.Latitude = floatPtr(pickupLat)
	haul.Pickup.Longitude = floatPtr(pickupLng)
	haul.Delivery.Instructions = deliveryInstructions.String
	haul.Delivery.Latitude = floatPtr(deliveryLat)
	haul.Delivery.Longitude = floatPtr(deliveryLng)
	haul.Load.Weight = floatPtr(loadWeight)
	haul.Load.Volume = floatPtr(loadVolume)
	haul.Load.SpecialRequirements = specialRequirements.String
	haul.DistanceMiles = floatPtr(distanceMiles)
	haul.EstimatedDuration = floatPtr(estimatedDuration)
	haul.QuotedPrice = floatPtr(quotedPrice)
	haul.FinalPrice = floatPtr(finalPrice)
	haul.FuelCost = floatPtr(fuelCost)
	haul.PaymentMethod = paymentMethod.String
	haul.Notes = notes.String
	haul.TruckID = intPtr(truckID)
	haul.DriverID = intPtr(driverID)

	return &haul, nil
}
