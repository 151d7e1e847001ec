package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"haulhub/internal/domain"
	"haulhub/internal/lifecycle"
	"haulhub/internal/service"
)

func newHaulService(haulRepo *MockHaulRepository, truckRepo *MockTruckRepository, userRepo *MockUserRepository, cacheStore *MockCacheStore, lockStore *MockLockStore) *service.HaulService {
	return service.NewHaulService(nil, haulRepo, truckRepo, userRepo, cacheStore, lockStore, service.NewNotificationService())
}

func validHaulRequest(userID int64) service.CreateHaulRequest {
	return service.CreateHaulRequest{
		HaulType: domain.HaulTypeDelivery,
		Pickup: domain.Leg{
			Address:      "14 Quarry Rd",
			City:         "Sylhet",
			Date:         time.Now().Add(24 * time.Hour),
			ContactName:  "Site Office",
			ContactPhone: "+8801700000001",
		},
		Delivery: domain.Leg{
			Address:      "88 Depot Ave",
			City:         "Dhaka",
			Date:         time.Now().Add(48 * time.Hour),
			ContactName:  "Yard Foreman",
			ContactPhone: "+8801700000002",
		},
		Load: domain.Load{
			Type:        "gravel",
			Description: "crushed gravel, 12 tons",
		},
		UserID: userID,
	}
}

func seedHaul(t *testing.T, haulRepo *MockHaulRepository, status domain.HaulStatus) *domain.Haul {
	t.Helper()
	req := validHaulRequest(1)
	haul := &domain.Haul{
		HaulType: req.HaulType,
		Pickup:   req.Pickup,
		Delivery: req.Delivery,
		Load:     req.Load,
		Status:   status,
		UserID:   req.UserID,
	}
	haulRepo.AddHaul(haul)
	return haul
}

func seedDriver(userRepo *MockUserRepository) *domain.User {
	driver := &domain.User{Name: "Rahim", Email: "rahim@haulhub.test", Role: domain.RoleDriver}
	userRepo.AddUser(driver)
	return driver
}

func TestCreateHaulStartsPending(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), NewMockLockStore())

	haul, err := svc.CreateHaul(context.Background(), validHaulRequest(7))
	if err != nil {
		t.Fatalf("CreateHaul failed: %v", err)
	}
	if haul.Status != domain.HaulStatusPending {
		t.Errorf("expected status pending, got %s", haul.Status)
	}
	if haul.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("expected payment status pending, got %s", haul.PaymentStatus)
	}
	if haul.UserID != 7 {
		t.Errorf("expected user_id 7, got %d", haul.UserID)
	}
	if haul.ID == 0 {
		t.Error("expected a persisted id")
	}
}

func TestCreateHaulValidation(t *testing.T) {
	svc := newHaulService(NewMockHaulRepository(), NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), NewMockLockStore())
	ctx := context.Background()

	badType := validHaulRequest(1)
	badType.HaulType = "roundtrip"
	if _, err := svc.CreateHaul(ctx, badType); !errors.Is(err, service.ErrInvalidHaulType) {
		t.Errorf("expected ErrInvalidHaulType, got %v", err)
	}

	noContact := validHaulRequest(1)
	noContact.Delivery.ContactPhone = ""
	if _, err := svc.CreateHaul(ctx, noContact); !errors.Is(err, service.ErrMissingLegDetails) {
		t.Errorf("expected ErrMissingLegDetails, got %v", err)
	}

	negDistance := validHaulRequest(1)
	distance := -12.5
	negDistance.DistanceMiles = &distance
	if _, err := svc.CreateHaul(ctx, negDistance); !errors.Is(err, service.ErrInvalidDistance) {
		t.Errorf("expected ErrInvalidDistance, got %v", err)
	}
}

func TestAssignHaul(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	userRepo := NewMockUserRepository()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), userRepo, NewMockCacheStore(), NewMockLockStore())

	haul := seedHaul(t, haulRepo, domain.HaulStatusPending)
	driver := seedDriver(userRepo)

	result, err := svc.Assign(context.Background(), haul.ID, driver.ID)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if result.Status != domain.HaulStatusAssigned {
		t.Errorf("expected status assigned, got %s", result.Status)
	}
	if result.DriverID == nil || *result.DriverID != driver.ID {
		t.Errorf("expected driver_id %d, got %v", driver.ID, result.DriverID)
	}
}

func TestAssignRejectsInvalidDriver(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	userRepo := NewMockUserRepository()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), userRepo, NewMockCacheStore(), NewMockLockStore())
	ctx := context.Background()

	haul := seedHaul(t, haulRepo, domain.HaulStatusPending)

	// Missing driver id.
	if _, err := svc.Assign(ctx, haul.ID, 0); !errors.Is(err, service.ErrInvalidAssignment) {
		t.Errorf("expected ErrInvalidAssignment for zero driver, got %v", err)
	}

	// Driver does not exist.
	if _, err := svc.Assign(ctx, haul.ID, 999); !errors.Is(err, service.ErrInvalidAssignment) {
		t.Errorf("expected ErrInvalidAssignment for unknown driver, got %v", err)
	}

	// User exists but is not a driver.
	admin := &domain.User{Name: "Admin", Email: "admin@haulhub.test", Role: domain.RoleAdmin}
	userRepo.AddUser(admin)
	if _, err := svc.Assign(ctx, haul.ID, admin.ID); !errors.Is(err, service.ErrInvalidAssignment) {
		t.Errorf("expected ErrInvalidAssignment for non-driver, got %v", err)
	}

	// Haul must still be pending and unassigned.
	stored := haulRepo.GetHaul(haul.ID)
	if stored.Status != domain.HaulStatusPending || stored.DriverID != nil {
		t.Errorf("failed assigns must not mutate the haul, got status=%s driver=%v", stored.Status, stored.DriverID)
	}
}

func TestAssignRejectsNonPendingHaul(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	userRepo := NewMockUserRepository()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), userRepo, NewMockCacheStore(), NewMockLockStore())

	haul := seedHaul(t, haulRepo, domain.HaulStatusInProgress)
	driver := seedDriver(userRepo)

	_, err := svc.Assign(context.Background(), haul.ID, driver.ID)

	var invalid *lifecycle.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if invalid.Status != domain.HaulStatusInProgress || invalid.Action != lifecycle.ActionAssign {
		t.Errorf("error should carry status and action, got status=%s action=%s", invalid.Status, invalid.Action)
	}
}

func TestStartAndCompleteHaul(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), NewMockLockStore())
	ctx := context.Background()

	haul := seedHaul(t, haulRepo, domain.HaulStatusPending)

	started, err := svc.Start(ctx, haul.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if started.Status != domain.HaulStatusInProgress {
		t.Errorf("expected in_progress, got %s", started.Status)
	}

	completed, err := svc.Complete(ctx, haul.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if completed.Status != domain.HaulStatusCompleted {
		t.Errorf("expected completed, got %s", completed.Status)
	}

	// Completed is terminal; a second complete must fail.
	_, err = svc.Complete(ctx, haul.ID)
	var invalid *lifecycle.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError on replay, got %v", err)
	}
}

func TestCompleteRequiresStartedHaul(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), NewMockLockStore())

	haul := seedHaul(t, haulRepo, domain.HaulStatusPending)

	_, err := svc.Complete(context.Background(), haul.ID)
	var invalid *lifecycle.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if invalid.Status != domain.HaulStatusPending || invalid.Action != lifecycle.ActionComplete {
		t.Errorf("error should carry status and action, got status=%s action=%s", invalid.Status, invalid.Action)
	}
}

func TestCancelHaul(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), NewMockLockStore())
	ctx := context.Background()

	pending := seedHaul(t, haulRepo, domain.HaulStatusPending)
	if haul, err := svc.Cancel(ctx, pending.ID); err != nil || haul.Status != domain.HaulStatusCancelled {
		t.Errorf("cancel of pending haul failed: status=%v err=%v", haul, err)
	}

	assigned := seedHaul(t, haulRepo, domain.HaulStatusAssigned)
	if haul, err := svc.Cancel(ctx, assigned.ID); err != nil || haul.Status != domain.HaulStatusCancelled {
		t.Errorf("cancel of assigned haul failed: status=%v err=%v", haul, err)
	}

	started := seedHaul(t, haulRepo, domain.HaulStatusInProgress)
	_, err := svc.Cancel(ctx, started.ID)
	var invalid *lifecycle.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Errorf("in-progress hauls must not be cancellable, got %v", err)
	}
}

func TestUpdateRejectsTerminalHaul(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), NewMockLockStore())

	haul := seedHaul(t, haulRepo, domain.HaulStatusCompleted)

	_, err := svc.UpdateHaul(context.Background(), haul.ID, validHaulRequest(1))
	if !errors.Is(err, service.ErrHaulTerminal) {
		t.Errorf("expected ErrHaulTerminal, got %v", err)
	}
}

// hookedHaulRepository runs a callback before the first read, so tests
// can interleave another operation inside a service call's critical
// section.
type hookedHaulRepository struct {
	*MockHaulRepository
	beforeRead func()
}

func (r *hookedHaulRepository) GetByID(ctx context.Context, id int64) (*domain.Haul, error) {
	if r.beforeRead != nil {
		hook := r.beforeRead
		r.beforeRead = nil
		hook()
	}
	return r.MockHaulRepository.GetByID(ctx, id)
}

func TestUpdateHaulHoldsTransitionLock(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	lockStore := NewMockLockStore()
	lockStore.HoldLocks = true
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), lockStore)

	haul := seedHaul(t, haulRepo, domain.HaulStatusPending)

	if _, err := svc.UpdateHaul(context.Background(), haul.ID, validHaulRequest(1)); !errors.Is(err, service.ErrHaulLocked) {
		t.Errorf("expected ErrHaulLocked, got %v", err)
	}
	if haulRepo.UpdateCallCount != 0 {
		t.Error("locked edit must not write")
	}
}

func TestUpdateDoesNotRevertConcurrentTransition(t *testing.T) {
	inner := NewMockHaulRepository()
	haulRepo := &hookedHaulRepository{MockHaulRepository: inner}
	lockStore := NewMockLockStore()
	svc := service.NewHaulService(nil, haulRepo, NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), lockStore, service.NewNotificationService())
	ctx := context.Background()

	haul := seedHaul(t, inner, domain.HaulStatusPending)

	// A start landing inside the edit's read-modify-write window must be
	// serialized by the haul lock, not silently overwritten by the edit.
	var startErr error
	haulRepo.beforeRead = func() {
		_, startErr = svc.Start(ctx, haul.ID)
	}

	if _, err := svc.UpdateHaul(ctx, haul.ID, validHaulRequest(1)); err != nil {
		t.Fatalf("UpdateHaul failed: %v", err)
	}
	if !errors.Is(startErr, service.ErrHaulLocked) {
		t.Fatalf("concurrent start should hit the held lock, got %v", startErr)
	}
	if got := inner.GetHaul(haul.ID).Status; got != domain.HaulStatusPending {
		t.Errorf("edit must not move status, got %s", got)
	}

	// Once the edit releases the lock the transition applies normally.
	started, err := svc.Start(ctx, haul.ID)
	if err != nil {
		t.Fatalf("Start after edit failed: %v", err)
	}
	if started.Status != domain.HaulStatusInProgress {
		t.Errorf("expected in_progress, got %s", started.Status)
	}
}

func TestTransitionBlockedByHeldLock(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	lockStore := NewMockLockStore()
	lockStore.HoldLocks = true
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), lockStore)

	haul := seedHaul(t, haulRepo, domain.HaulStatusPending)

	if _, err := svc.Start(context.Background(), haul.ID); !errors.Is(err, service.ErrHaulLocked) {
		t.Errorf("expected ErrHaulLocked, got %v", err)
	}
	if haulRepo.GetHaul(haul.ID).Status != domain.HaulStatusPending {
		t.Error("locked transition must not change status")
	}
}

func TestTransitionProceedsWhenLockStoreFails(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	lockStore := NewMockLockStore()
	lockStore.AcquireError = errors.New("redis: connection refused")
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), NewMockCacheStore(), lockStore)

	haul := seedHaul(t, haulRepo, domain.HaulStatusPending)

	started, err := svc.Start(context.Background(), haul.ID)
	if err != nil {
		t.Fatalf("transition should proceed without the lock, got %v", err)
	}
	if started.Status != domain.HaulStatusInProgress {
		t.Errorf("expected in_progress, got %s", started.Status)
	}
}

func TestTransitionRefreshesStatusCache(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	cacheStore := NewMockCacheStore()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), cacheStore, NewMockLockStore())

	haul := seedHaul(t, haulRepo, domain.HaulStatusPending)

	if _, err := svc.Start(context.Background(), haul.ID); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if got := cacheStore.CachedStatus(haul.ID); got != string(domain.HaulStatusInProgress) {
		t.Errorf("expected cached status in_progress, got %q", got)
	}
	if cacheStore.InvalidateSummaryCallCount == 0 {
		t.Error("transitions must invalidate the report summary cache")
	}
}

func TestGetHaulStatusCacheAside(t *testing.T) {
	haulRepo := NewMockHaulRepository()
	cacheStore := NewMockCacheStore()
	svc := newHaulService(haulRepo, NewMockTruckRepository(), NewMockUserRepository(), cacheStore, NewMockLockStore())
	ctx := context.Background()

	haul := seedHaul(t, haulRepo, domain.HaulStatusAssigned)

	snapshot, err := svc.GetHaulStatus(ctx, haul.ID)
	if err != nil {
		t.Fatalf("GetHaulStatus failed: %v", err)
	}
	if snapshot.Status != string(domain.HaulStatusAssigned) {
		t.Errorf("expected assigned, got %s", snapshot.Status)
	}

	// Second read should come from the cache.
	setCalls := cacheStore.SetHaulCallCount
	if _, err := svc.GetHaulStatus(ctx, haul.ID); err != nil {
		t.Fatalf("cached GetHaulStatus failed: %v", err)
	}
	if cacheStore.SetHaulCallCount != setCalls {
		t.Error("cache hit should not rewrite the snapshot")
	}
}
