package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"haulhub/internal/domain"
	"haulhub/internal/lifecycle"
	"haulhub/internal/redis"
	"haulhub/internal/repository"
	"haulhub/internal/repository/postgres"
)

// haulLockTTL bounds how long a transition may hold the per-haul lock.
const haulLockTTL = 10 * time.Second

// HaulService handles haul operations, including all status transitions.
// Transition legality is decided by the lifecycle package; this service
// adds locking, persistence and side effects around those decisions.
type HaulService struct {
	db                  *sql.DB
	haulRepo            repository.HaulRepository
	truckRepo           repository.TruckRepository
	userRepo            repository.UserRepository
	cacheStore          redis.CacheStoreInterface
	lockStore           redis.LockStoreInterface
	notificationService *NotificationService
}

// NewHaulService creates a new HaulService.
func NewHaulService(
	db *sql.DB,
	haulRepo repository.HaulRepository,
	truckRepo repository.TruckRepository,
	userRepo repository.UserRepository,
	cacheStore redis.CacheStoreInterface,
	lockStore redis.LockStoreInterface,
	notificationService *NotificationService,
) *HaulService {
	return &HaulService{
		db:                  db,
		haulRepo:            haulRepo,
		truckRepo:           truckRepo,
		userRepo:            userRepo,
		cacheStore:          cacheStore,
		lockStore:           lockStore,
		notificationService: notificationService,
	}
}

// CreateHaulRequest contains the parameters for creating a haul.
type CreateHaulRequest struct {
	HaulType          domain.HaulType
	Pickup            domain.Leg
	Delivery          domain.Leg
	Load              domain.Load
	DistanceMiles     *float64
	EstimatedDuration *float64
	QuotedPrice       *float64
	FinalPrice        *float64
	FuelCost          *float64
	PaymentStatus     domain.PaymentStatus
	PaymentMethod     string
	Notes             string
	UserID            int64
	TruckID           *int64
}

// CreateHaul creates a new haul in pending status. The requested status
// field of the API payload is deliberately ignored: every haul enters
// the lifecycle at pending and moves only through transitions.
func (s *HaulService) CreateHaul(ctx context.Context, req CreateHaulRequest) (*domain.Haul, error) {
	if err := validateCreateHaul(req); err != nil {
		return nil, err
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPending
	}

	haul := &domain.Haul{
		HaulType:          req.HaulType,
		Pickup:            req.Pickup,
		Delivery:          req.Delivery,
		Load:              req.Load,
		DistanceMiles:     req.DistanceMiles,
		EstimatedDuration: req.EstimatedDuration,
		QuotedPrice:       req.QuotedPrice,
		FinalPrice:        req.FinalPrice,
		FuelCost:          req.FuelCost,
		PaymentStatus:     paymentStatus,
		PaymentMethod:     req.PaymentMethod,
		Status:            domain.HaulStatusPending,
		Notes:             req.Notes,
		UserID:            req.UserID,
		TruckID:           req.TruckID,
	}

	if err := s.haulRepo.Create(ctx, haul); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyHaulCreated(ctx, haul)
	}

	return haul, nil
}

// GetHaul retrieves a haul by ID.
func (s *HaulService) GetHaul(ctx context.Context, haulID int64) (*domain.Haul, error) {
	if haulID <= 0 {
		return nil, ErrInvalidHaulID
	}
	return s.haulRepo.GetByID(ctx, haulID)
}

// GetHaulStatus returns a slim status snapshot, served from cache when
// fresh. Dispatch boards poll this heavily.
func (s *HaulService) GetHaulStatus(ctx context.Context, haulID int64) (*redis.CachedHaul, error) {
	if haulID <= 0 {
		return nil, ErrInvalidHaulID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetHaul(ctx, haulID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	haul, err := s.haulRepo.GetByID(ctx, haulID)
	if err != nil {
		return nil, err
	}

	snapshot := snapshotHaul(haul)
	if s.cacheStore != nil {
		_ = s.cacheStore.SetHaul(ctx, snapshot)
	}
	return snapshot, nil
}

// ListHauls retrieves a filtered, paginated haul listing plus total count.
func (s *HaulService) ListHauls(ctx context.Context, params repository.ListHaulsParams) ([]*domain.Haul, int, error) {
	return s.haulRepo.List(ctx, params)
}

// UpdateHaul applies edits to a non-terminal haul. Status is never
// writable here; it only moves through Assign/Start/Complete/Cancel.
// The edit runs under the same per-haul lock as the transitions: the
// full-row write would otherwise race a concurrent transition and
// revert its status from the stale read.
func (s *HaulService) UpdateHaul(ctx context.Context, haulID int64, req CreateHaulRequest) (*domain.Haul, error) {
	if haulID <= 0 {
		return nil, ErrInvalidHaulID
	}
	if err := validateCreateHaul(req); err != nil {
		return nil, err
	}

	var result *domain.Haul
	err := s.withHaulLock(ctx, haulID, func() error {
		haul, err := s.haulRepo.GetByID(ctx, haulID)
		if err != nil {
			return err
		}

		if lifecycle.IsTerminal(haul.Status) {
			return ErrHaulTerminal
		}

		haul.HaulType = req.HaulType
		haul.Pickup = req.Pickup
		haul.Delivery = req.Delivery
		haul.Load = req.Load
		haul.DistanceMiles = req.DistanceMiles
		haul.EstimatedDuration = req.EstimatedDuration
		haul.QuotedPrice = req.QuotedPrice
		if req.FinalPrice != nil {
			haul.FinalPrice = req.FinalPrice
		}
		haul.FuelCost = req.FuelCost
		if req.PaymentStatus != "" {
			haul.PaymentStatus = req.PaymentStatus
		}
		haul.PaymentMethod = req.PaymentMethod
		haul.Notes = req.Notes
		haul.TruckID = req.TruckID

		if err := s.haulRepo.Update(ctx, haul); err != nil {
			return err
		}

		result = haul
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, haulID)
	return result, nil
}

// DeleteHaul removes a haul.
func (s *HaulService) DeleteHaul(ctx context.Context, haulID int64) error {
	if haulID <= 0 {
		return ErrInvalidHaulID
	}
	if err := s.haulRepo.Delete(ctx, haulID); err != nil {
		return err
	}
	s.invalidateCaches(ctx, haulID)
	return nil
}

// Assign moves a pending haul to assigned and records the driver. The
// driver must exist and hold the driver role; anything else is an
// invalid assignment regardless of haul status.
func (s *HaulService) Assign(ctx context.Context, haulID, driverID int64) (*domain.Haul, error) {
	if haulID <= 0 {
		return nil, ErrInvalidHaulID
	}
	if driverID <= 0 {
		return nil, ErrInvalidAssignment
	}

	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidAssignment
		}
		return nil, err
	}
	if driver.Role != domain.RoleDriver {
		return nil, ErrInvalidAssignment
	}

	var result *domain.Haul
	err = s.withHaulLock(ctx, haulID, func() error {
		haul, err := s.haulRepo.GetByID(ctx, haulID)
		if err != nil {
			return err
		}

		next, err := lifecycle.Transition(haul.Status, lifecycle.ActionAssign)
		if err != nil {
			return err
		}

		haul.Status = next
		haul.DriverID = &driverID
		if err := s.haulRepo.Update(ctx, haul); err != nil {
			return err
		}

		result = haul
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, result)
	if s.notificationService != nil {
		_ = s.notificationService.NotifyHaulAssigned(ctx, result, driverID)
	}
	return result, nil
}

// Start moves a pending haul to in_progress. If a truck is attached its
// fleet status flips to in_use in the same transaction.
func (s *HaulService) Start(ctx context.Context, haulID int64) (*domain.Haul, error) {
	result, err := s.transitionWithTruck(ctx, haulID, lifecycle.ActionStart, domain.TruckStatusInUse)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyHaulStarted(ctx, result)
	}
	return result, nil
}

// Complete moves an in_progress haul to completed and releases its truck.
func (s *HaulService) Complete(ctx context.Context, haulID int64) (*domain.Haul, error) {
	result, err := s.transitionWithTruck(ctx, haulID, lifecycle.ActionComplete, domain.TruckStatusAvailable)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyHaulCompleted(ctx, result)
	}
	return result, nil
}

// Cancel moves a pending or assigned haul to cancelled. A haul that has
// started cannot be cancelled, only completed.
func (s *HaulService) Cancel(ctx context.Context, haulID int64) (*domain.Haul, error) {
	if haulID <= 0 {
		return nil, ErrInvalidHaulID
	}

	var result *domain.Haul
	err := s.withHaulLock(ctx, haulID, func() error {
		haul, err := s.haulRepo.GetByID(ctx, haulID)
		if err != nil {
			return err
		}

		next, err := lifecycle.Transition(haul.Status, lifecycle.ActionCancel)
		if err != nil {
			return err
		}

		haul.Status = next
		if err := s.haulRepo.Update(ctx, haul); err != nil {
			return err
		}

		result = haul
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, result)
	if s.notificationService != nil {
		_ = s.notificationService.NotifyHaulCancelled(ctx, result)
	}
	return result, nil
}

// transitionWithTruck applies a lifecycle action and, when the haul has
// an attached truck, updates the truck's fleet status in the same
// database transaction.
func (s *HaulService) transitionWithTruck(ctx context.Context, haulID int64, action lifecycle.Action, truckStatus domain.TruckStatus) (*domain.Haul, error) {
	if haulID <= 0 {
		return nil, ErrInvalidHaulID
	}

	var result *domain.Haul
	err := s.withHaulLock(ctx, haulID, func() error {
		haul, err := s.haulRepo.GetByID(ctx, haulID)
		if err != nil {
			return err
		}

		next, err := lifecycle.Transition(haul.Status, action)
		if err != nil {
			return err
		}
		haul.Status = next

		if haul.TruckID == nil || s.db == nil {
			if err := s.haulRepo.Update(ctx, haul); err != nil {
				return err
			}
			result = haul
			return nil
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		txHaulRepo := postgres.NewHaulRepositoryWithTx(tx)
		txTruckRepo := postgres.NewTruckRepositoryWithTx(tx)

		if err = txHaulRepo.Update(ctx, haul); err != nil {
			return err
		}
		if err = txTruckRepo.UpdateStatus(ctx, *haul.TruckID, truckStatus); err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return err
		}

		result = haul
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, result)
	return result, nil
}

// withHaulLock serializes transitions per haul via the lock store, so
// two simultaneous requests cannot both pass the state-machine check.
func (s *HaulService) withHaulLock(ctx context.Context, haulID int64, fn func() error) error {
	if s.lockStore == nil {
		return fn()
	}

	acquired, err := s.lockStore.AcquireHaulLock(ctx, haulID, haulLockTTL)
	if err != nil {
		// Redis being down must not freeze dispatch; Postgres remains
		// the authority on the final state.
		return fn()
	}
	if !acquired {
		return ErrHaulLocked
	}
	defer func() {
		_ = s.lockStore.ReleaseHaulLock(ctx, haulID)
	}()

	return fn()
}

func (s *HaulService) refreshCaches(ctx context.Context, haul *domain.Haul) {
	if s.cacheStore == nil || haul == nil {
		return
	}
	_ = s.cacheStore.SetHaul(ctx, snapshotHaul(haul))
	_ = s.cacheStore.InvalidateReportSummary(ctx)
}

func (s *HaulService) invalidateCaches(ctx context.Context, haulID int64) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateHaul(ctx, haulID)
	_ = s.cacheStore.InvalidateReportSummary(ctx)
}

func snapshotHaul(haul *domain.Haul) *redis.CachedHaul {
	return &redis.CachedHaul{
		ID:          haul.ID,
		Status:      string(haul.Status),
		HaulType:    string(haul.HaulType),
		UserID:      haul.UserID,
		DriverID:    haul.DriverID,
		TruckID:     haul.TruckID,
		QuotedPrice: haul.QuotedPrice,
	}
}

// validateCreateHaul checks the request fields shared by create and update.
func validateCreateHaul(req CreateHaulRequest) error {
	switch req.HaulType {
	case domain.HaulTypePickup, domain.HaulTypeDelivery, domain.HaulTypeBoth:
	default:
		return ErrInvalidHaulType
	}

	if !legComplete(req.Pickup) || !legComplete(req.Delivery) {
		return ErrMissingLegDetails
	}

	if req.DistanceMiles != nil && *req.DistanceMiles < 0 {
		return ErrInvalidDistance
	}

	return nil
}

func legComplete(leg domain.Leg) bool {
	return leg.Address != "" && leg.City != "" && leg.ContactName != "" && leg.ContactPhone != ""
}
