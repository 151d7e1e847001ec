package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"haulhub/internal/domain"
	"haulhub/internal/redis"
	"haulhub/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK HAUL REPOSITORY
// ──────────────────────────────────────────────

// MockHaulRepository is a mock implementation of HaulRepository.
type MockHaulRepository struct {
	mu     sync.RWMutex
	hauls  map[int64]*domain.Haul
	nextID int64

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockHaulRepository creates a new mock haul repository.
func NewMockHaulRepository() *MockHaulRepository {
	return &MockHaulRepository{
		hauls:  make(map[int64]*domain.Haul),
		nextID: 1,
	}
}

// AddHaul adds a haul to the mock repository, assigning an ID if unset.
func (m *MockHaulRepository) AddHaul(haul *domain.Haul) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if haul.ID == 0 {
		haul.ID = m.nextID
		m.nextID++
	} else if haul.ID >= m.nextID {
		m.nextID = haul.ID + 1
	}
	m.hauls[haul.ID] = haul
}

func (m *MockHaulRepository) Create(ctx context.Context, haul *domain.Haul) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	haul.ID = m.nextID
	m.nextID++
	haul.CreatedAt = time.Now()
	haul.UpdatedAt = haul.CreatedAt
	copy := *haul
	m.hauls[haul.ID] = &copy
	return nil
}

func (m *MockHaulRepository) GetByID(ctx context.Context, id int64) (*domain.Haul, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	haul, ok := m.hauls[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *haul
	return &copy, nil
}

func (m *MockHaulRepository) List(ctx context.Context, params repository.ListHaulsParams) ([]*domain.Haul, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.Haul
	for _, h := range m.hauls {
		if haulMatchesFilter(h, params) {
			copy := *h
			matched = append(matched, &copy)
		}
	}
	return matched, len(matched), nil
}

func haulMatchesFilter(haul *domain.Haul, params repository.ListHaulsParams) bool {
	switch params.Filter {
	case repository.HaulFilterActive:
		return haul.Status == domain.HaulStatusAssigned || haul.Status == domain.HaulStatusInProgress
	case repository.HaulFilterCompleted:
		return haul.Status == domain.HaulStatusCompleted
	case repository.HaulFilterPending:
		return haul.Status == domain.HaulStatusPending
	case repository.HaulFilterMyHauls:
		return haul.UserID == params.UserID
	case repository.HaulFilterMyAssignments:
		return haul.DriverID != nil && *haul.DriverID == params.UserID
	default:
		return true
	}
}

func (m *MockHaulRepository) GetAll(ctx context.Context) ([]*domain.Haul, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Haul, 0, len(m.hauls))
	for _, h := range m.hauls {
		copy := *h
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockHaulRepository) Update(ctx context.Context, haul *domain.Haul) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hauls[haul.ID]; !ok {
		return repository.ErrNotFound
	}
	haul.UpdatedAt = time.Now()
	copy := *haul
	m.hauls[haul.ID] = &copy
	return nil
}

func (m *MockHaulRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hauls[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.hauls, id)
	return nil
}

// GetHaul returns a haul for test assertions.
func (m *MockHaulRepository) GetHaul(id int64) *domain.Haul {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hauls[id]
}

// ──────────────────────────────────────────────
// MOCK TRUCK REPOSITORY
// ──────────────────────────────────────────────

// MockTruckRepository is a mock implementation of TruckRepository.
type MockTruckRepository struct {
	mu     sync.RWMutex
	trucks map[int64]*domain.Truck
	nextID int64

	// Counters for verification
	UpdateStatusCallCount int32

	// Error injection
	UpdateStatusError error
}

// NewMockTruckRepository creates a new mock truck repository.
func NewMockTruckRepository() *MockTruckRepository {
	return &MockTruckRepository{
		trucks: make(map[int64]*domain.Truck),
		nextID: 1,
	}
}

// AddTruck adds a truck to the mock repository, assigning an ID if unset.
func (m *MockTruckRepository) AddTruck(truck *domain.Truck) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if truck.ID == 0 {
		truck.ID = m.nextID
		m.nextID++
	} else if truck.ID >= m.nextID {
		m.nextID = truck.ID + 1
	}
	m.trucks[truck.ID] = truck
}

func (m *MockTruckRepository) Create(ctx context.Context, truck *domain.Truck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	truck.ID = m.nextID
	m.nextID++
	truck.CreatedAt = time.Now()
	truck.UpdatedAt = truck.CreatedAt
	copy := *truck
	m.trucks[truck.ID] = &copy
	return nil
}

func (m *MockTruckRepository) GetByID(ctx context.Context, id int64) (*domain.Truck, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	truck, ok := m.trucks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *truck
	return &copy, nil
}

func (m *MockTruckRepository) GetAll(ctx context.Context) ([]*domain.Truck, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Truck, 0, len(m.trucks))
	for _, t := range m.trucks {
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTruckRepository) Update(ctx context.Context, truck *domain.Truck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trucks[truck.ID]; !ok {
		return repository.ErrNotFound
	}
	truck.UpdatedAt = time.Now()
	copy := *truck
	m.trucks[truck.ID] = &copy
	return nil
}

func (m *MockTruckRepository) UpdateStatus(ctx context.Context, id int64, status domain.TruckStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	truck, ok := m.trucks[id]
	if !ok {
		return repository.ErrNotFound
	}
	truck.Status = status
	return nil
}

func (m *MockTruckRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trucks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.trucks, id)
	return nil
}

// GetTruck returns a truck for test assertions.
func (m *MockTruckRepository) GetTruck(id int64) *domain.Truck {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trucks[id]
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

// AddUser adds a user to the mock repository, assigning an ID if unset.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	} else if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK ORDER REPOSITORY
// ──────────────────────────────────────────────

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockOrderRepository creates a new mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *order
	m.orders[order.ID] = &copy
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *order
	return &copy, nil
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		copy := *o
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.Status = status
	return nil
}

// GetOrder returns an order for test assertions.
func (m *MockOrderRepository) GetOrder(id string) *domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id]
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is an in-memory implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu      sync.RWMutex
	hauls   map[int64]*redis.CachedHaul
	summary []byte

	// Counters for verification
	SetHaulCallCount           int32
	InvalidateSummaryCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		hauls: make(map[int64]*redis.CachedHaul),
	}
}

func (m *MockCacheStore) GetHaul(ctx context.Context, haulID int64) (*redis.CachedHaul, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	haul, ok := m.hauls[haulID]
	if !ok {
		return nil, nil
	}
	copy := *haul
	return &copy, nil
}

func (m *MockCacheStore) SetHaul(ctx context.Context, haul *redis.CachedHaul) error {
	atomic.AddInt32(&m.SetHaulCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *haul
	m.hauls[haul.ID] = &copy
	return nil
}

func (m *MockCacheStore) InvalidateHaul(ctx context.Context, haulID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hauls, haulID)
	return nil
}

func (m *MockCacheStore) GetReportSummary(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summary, nil
}

func (m *MockCacheStore) SetReportSummary(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary = data
	return nil
}

func (m *MockCacheStore) InvalidateReportSummary(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateSummaryCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary = nil
	return nil
}

// CachedStatus returns the cached status of a haul, or "" when absent.
func (m *MockCacheStore) CachedStatus(haulID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if haul, ok := m.hauls[haulID]; ok {
		return haul.Status
	}
	return ""
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[int64]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
	// HoldLocks makes every acquire fail as if another request holds the lock.
	HoldLocks bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[int64]bool),
	}
}

func (m *MockLockStore) AcquireHaulLock(ctx context.Context, haulID int64, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HoldLocks || m.locks[haulID] {
		return false, nil
	}
	m.locks[haulID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseHaulLock(ctx context.Context, haulID int64) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, haulID)
	return nil
}

// Interface assertions.
var (
	_ repository.HaulRepository  = (*MockHaulRepository)(nil)
	_ repository.TruckRepository = (*MockTruckRepository)(nil)
	_ repository.UserRepository  = (*MockUserRepository)(nil)
	_ repository.OrderRepository = (*MockOrderRepository)(nil)
	_ redis.CacheStoreInterface  = (*MockCacheStore)(nil)
	_ redis.LockStoreInterface   = (*MockLockStore)(nil)
)
