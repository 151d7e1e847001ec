package tests

import (
	"context"
	"errors"
	"testing"

	"haulhub/internal/domain"
	"haulhub/internal/service"
)

func newOrderService(orderRepo *MockOrderRepository) *service.OrderService {
	return service.NewOrderService(orderRepo, service.NewNotificationService())
}

func validOrderRequest() service.CreateOrderRequest {
	return service.CreateOrderRequest{
		MaterialID:  "2", // Gravel, 3000 per trip
		TruckTypeID: "2", // TATA, 1.2x
		Quantity:    2,
		DistanceKm:  10,
		Customer: domain.CustomerInfo{
			Name:  "Karim Traders",
			Phone: "+8801800000001",
		},
	}
}

func TestQuotePreview(t *testing.T) {
	svc := newOrderService(NewMockOrderRepository())

	// 3000 * 2 * 1.2 * (1 + 10*0.05) = 10800
	total, err := svc.Quote(service.QuoteRequest{
		MaterialID:  "2",
		TruckTypeID: "2",
		Quantity:    2,
		DistanceKm:  10,
	})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if total != 10800 {
		t.Errorf("expected 10800, got %d", total)
	}

	// Base case: one trip of sand, zero distance.
	total, err = svc.Quote(service.QuoteRequest{
		MaterialID:  "1",
		TruckTypeID: "1",
		Quantity:    1,
		DistanceKm:  0,
	})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if total != 2500 {
		t.Errorf("expected 2500, got %d", total)
	}
}

func TestQuoteValidation(t *testing.T) {
	svc := newOrderService(NewMockOrderRepository())

	cases := []struct {
		name string
		req  service.QuoteRequest
		want error
	}{
		{"unknown material", service.QuoteRequest{MaterialID: "99", TruckTypeID: "1", Quantity: 1}, service.ErrInvalidMaterial},
		{"unknown truck type", service.QuoteRequest{MaterialID: "1", TruckTypeID: "99", Quantity: 1}, service.ErrInvalidTruckType},
		{"zero quantity", service.QuoteRequest{MaterialID: "1", TruckTypeID: "1", Quantity: 0}, service.ErrInvalidQuantity},
		{"negative distance", service.QuoteRequest{MaterialID: "1", TruckTypeID: "1", Quantity: 1, DistanceKm: -5}, service.ErrInvalidDistance},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Quote(tc.req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateOrder(t *testing.T) {
	orderRepo := NewMockOrderRepository()
	svc := newOrderService(orderRepo)

	order, err := svc.CreateOrder(context.Background(), validOrderRequest())
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if order.ID == "" {
		t.Error("expected a generated order id")
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected pending, got %s", order.Status)
	}
	if order.TotalPrice != 10800 {
		t.Errorf("expected server-side total 10800, got %d", order.TotalPrice)
	}
	if order.Material.Name != "Gravel" || order.Truck.Name != "TATA" {
		t.Errorf("catalog snapshot not recorded: %s / %s", order.Material.Name, order.Truck.Name)
	}
	if orderRepo.GetOrder(order.ID) == nil {
		t.Error("order was not persisted")
	}
}

func TestCreateOrderRequiresCustomerContact(t *testing.T) {
	svc := newOrderService(NewMockOrderRepository())

	req := validOrderRequest()
	req.Customer.Phone = ""
	if _, err := svc.CreateOrder(context.Background(), req); !errors.Is(err, service.ErrMissingCustomerInfo) {
		t.Errorf("expected ErrMissingCustomerInfo, got %v", err)
	}
}

func TestOrderStatusForwardOnly(t *testing.T) {
	orderRepo := NewMockOrderRepository()
	svc := newOrderService(orderRepo)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validOrderRequest())
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// pending -> confirmed -> in-progress -> completed
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusConfirmed,
		domain.OrderStatusInProgress,
		domain.OrderStatusCompleted,
	} {
		updated, err := svc.UpdateOrderStatus(ctx, order.ID, status)
		if err != nil {
			t.Fatalf("advance to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("expected %s, got %s", status, updated.Status)
		}
	}

	// Backwards and repeated moves are rejected.
	if _, err := svc.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusConfirmed); !errors.Is(err, service.ErrInvalidOrderStatus) {
		t.Errorf("expected ErrInvalidOrderStatus going backwards, got %v", err)
	}
	if _, err := svc.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusCompleted); !errors.Is(err, service.ErrInvalidOrderStatus) {
		t.Errorf("expected ErrInvalidOrderStatus on replay, got %v", err)
	}
	if _, err := svc.UpdateOrderStatus(ctx, order.ID, "shipped"); !errors.Is(err, service.ErrInvalidOrderStatus) {
		t.Errorf("expected ErrInvalidOrderStatus for unknown status, got %v", err)
	}
}

func TestOrderStatusMaySkipStages(t *testing.T) {
	orderRepo := NewMockOrderRepository()
	svc := newOrderService(orderRepo)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validOrderRequest())
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// Forward jumps are fine; only backwards moves are rejected.
	updated, err := svc.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("pending -> completed should be allowed, got %v", err)
	}
	if updated.Status != domain.OrderStatusCompleted {
		t.Errorf("expected completed, got %s", updated.Status)
	}
	if _, err := svc.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusInProgress); !errors.Is(err, service.ErrInvalidOrderStatus) {
		t.Errorf("expected ErrInvalidOrderStatus going backwards, got %v", err)
	}
}
