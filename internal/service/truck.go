package service

import (
	"context"

	"haulhub/internal/domain"
	"haulhub/internal/repository"
)

// TruckService handles fleet truck management. Truck lifecycle is plain
// CRUD plus a status enum; the haul state machine does not apply here.
type TruckService struct {
	truckRepo repository.TruckRepository
}

// NewTruckService creates a new TruckService.
func NewTruckService(truckRepo repository.TruckRepository) *TruckService {
	return &TruckService{truckRepo: truckRepo}
}

// CreateTruckRequest contains the parameters for registering a truck.
type CreateTruckRequest struct {
	Make         string
	Model        string
	Year         int
	LicensePlate string
	Capacity     float64
	FuelType     string
	Status       domain.TruckStatus
	DriverID     *int64
}

// CreateTruck registers a new fleet truck.
func (s *TruckService) CreateTruck(ctx context.Context, req CreateTruckRequest) (*domain.Truck, error) {
	if err := validateTruck(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.TruckStatusAvailable
	}

	truck := &domain.Truck{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Capacity:     req.Capacity,
		FuelType:     req.FuelType,
		Status:       status,
		DriverID:     req.DriverID,
	}

	if err := s.truckRepo.Create(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

// GetTruck retrieves a truck by ID.
func (s *TruckService) GetTruck(ctx context.Context, truckID int64) (*domain.Truck, error) {
	if truckID <= 0 {
		return nil, ErrInvalidTruckID
	}
	return s.truckRepo.GetByID(ctx, truckID)
}

// GetAllTrucks retrieves all fleet trucks.
func (s *TruckService) GetAllTrucks(ctx context.Context) ([]*domain.Truck, error) {
	return s.truckRepo.GetAll(ctx)
}

// UpdateTruck applies edits to a fleet truck.
func (s *TruckService) UpdateTruck(ctx context.Context, truckID int64, req CreateTruckRequest) (*domain.Truck, error) {
	if truckID <= 0 {
		return nil, ErrInvalidTruckID
	}
	if err := validateTruck(req); err != nil {
		return nil, err
	}

	truck, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return nil, err
	}

	truck.Make = req.Make
	truck.Model = req.Model
	truck.Year = req.Year
	truck.LicensePlate = req.LicensePlate
	truck.Capacity = req.Capacity
	truck.FuelType = req.FuelType
	if req.Status != "" {
		truck.Status = req.Status
	}
	truck.DriverID = req.DriverID

	if err := s.truckRepo.Update(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

// DeleteTruck removes a truck from the fleet.
func (s *TruckService) DeleteTruck(ctx context.Context, truckID int64) error {
	if truckID <= 0 {
		return ErrInvalidTruckID
	}
	return s.truckRepo.Delete(ctx, truckID)
}

func validateTruck(req CreateTruckRequest) error {
	if req.Make == "" || req.Model == "" || req.LicensePlate == "" {
		return ErrMissingTruckDetails
	}

	if req.Status != "" {
		switch req.Status {
		case domain.TruckStatusAvailable, domain.TruckStatusInUse, domain.TruckStatusMaintenance:
		default:
			return ErrInvalidTruckStatus
		}
	}

	return nil
}
