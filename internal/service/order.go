package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"haulhub/internal/domain"
	"haulhub/internal/pricing"
	"haulhub/internal/repository"
)

// OrderService handles the public material-ordering flow.
type OrderService struct {
	orderRepo           repository.OrderRepository
	notificationService *NotificationService
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repository.OrderRepository, notificationService *NotificationService) *OrderService {
	return &OrderService{
		orderRepo:           orderRepo,
		notificationService: notificationService,
	}
}

// QuoteRequest contains the four pricing inputs.
type QuoteRequest struct {
	MaterialID  string
	TruckTypeID string
	Quantity    int
	DistanceKm  float64
}

// Quote validates the inputs, resolves the catalog entries and returns
// the computed total. This is the price-preview path; it never persists.
func (s *OrderService) Quote(req QuoteRequest) (int, error) {
	material, truck, err := resolveQuoteInputs(req)
	if err != nil {
		return 0, err
	}
	return pricing.ComputeQuote(&material, &truck, req.Quantity, req.DistanceKm), nil
}

// CreateOrderRequest contains the parameters for placing an order.
type CreateOrderRequest struct {
	MaterialID  string
	TruckTypeID string
	Quantity    int
	DistanceKm  float64
	Customer    domain.CustomerInfo
}

// CreateOrder prices and persists a material order. The total is always
// recomputed server-side from the catalog; any client-supplied price is
// ignored.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	material, truck, err := resolveQuoteInputs(QuoteRequest{
		MaterialID:  req.MaterialID,
		TruckTypeID: req.TruckTypeID,
		Quantity:    req.Quantity,
		DistanceKm:  req.DistanceKm,
	})
	if err != nil {
		return nil, err
	}

	if req.Customer.Name == "" || req.Customer.Phone == "" {
		return nil, ErrMissingCustomerInfo
	}

	order := &domain.Order{
		ID:         uuid.New().String(),
		Material:   material,
		Truck:      truck,
		Quantity:   req.Quantity,
		DistanceKm: req.DistanceKm,
		Customer:   req.Customer,
		TotalPrice: pricing.ComputeQuote(&material, &truck, req.Quantity, req.DistanceKm),
		Status:     domain.OrderStatusPending,
		CreatedAt:  time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyOrderReceived(ctx, order)
	}

	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// orderStatusRank orders the forward-only progression.
var orderStatusRank = map[domain.OrderStatus]int{
	domain.OrderStatusPending:    0,
	domain.OrderStatusConfirmed:  1,
	domain.OrderStatusInProgress: 2,
	domain.OrderStatusCompleted:  3,
}

// UpdateOrderStatus advances an order's status. Progression is forward
// only: pending -> confirmed -> in-progress -> completed; moving
// backwards, repeating a status or using an unknown one fails. Skipping
// stages is allowed, so a phoned-in order can go straight from pending
// to completed.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	newRank, ok := orderStatusRank[status]
	if !ok {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if newRank <= orderStatusRank[order.Status] {
		return nil, ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}

func resolveQuoteInputs(req QuoteRequest) (domain.Material, domain.TruckType, error) {
	material, ok := pricing.MaterialByID(req.MaterialID)
	if !ok {
		return domain.Material{}, domain.TruckType{}, ErrInvalidMaterial
	}

	truck, ok := pricing.TruckTypeByID(req.TruckTypeID)
	if !ok {
		return domain.Material{}, domain.TruckType{}, ErrInvalidTruckType
	}

	if req.Quantity < 1 {
		return domain.Material{}, domain.TruckType{}, ErrInvalidQuantity
	}
	if req.DistanceKm < 0 {
		return domain.Material{}, domain.TruckType{}, ErrInvalidDistance
	}

	return material, truck, nil
}
