package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"haulhub/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationHaulCreated   NotificationType = "HAUL_CREATED"
	NotificationHaulAssigned  NotificationType = "HAUL_ASSIGNED"
	NotificationHaulStarted   NotificationType = "HAUL_STARTED"
	NotificationHaulCompleted NotificationType = "HAUL_COMPLETED"
	NotificationHaulCancelled NotificationType = "HAUL_CANCELLED"
	NotificationOrderReceived NotificationType = "ORDER_RECEIVED"
)

// Notification represents a notification to be delivered.
type Notification struct {
	Type        NotificationType
	RecipientID int64
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery. The current
// implementation logs; a push/SMS/email client would slot in behind the
// same methods.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyHaulCreated notifies dispatch that a new haul was requested.
func (s *NotificationService) NotifyHaulCreated(ctx context.Context, haul *domain.Haul) error {
	return s.send(ctx, Notification{
		Type:        NotificationHaulCreated,
		RecipientID: haul.UserID,
		Title:       "Haul Requested",
		Message:     fmt.Sprintf("Haul #%d (%s) created and awaiting dispatch", haul.ID, haul.HaulType),
		Data: map[string]interface{}{
			"haul_id": haul.ID,
			"status":  haul.Status,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyHaulAssigned notifies the driver they have been assigned a haul.
func (s *NotificationService) NotifyHaulAssigned(ctx context.Context, haul *domain.Haul, driverID int64) error {
	return s.send(ctx, Notification{
		Type:        NotificationHaulAssigned,
		RecipientID: driverID,
		Title:       "Haul Assigned",
		Message:     fmt.Sprintf("You have been assigned haul #%d: %s to %s", haul.ID, haul.Pickup.City, haul.Delivery.City),
		Data: map[string]interface{}{
			"haul_id":   haul.ID,
			"driver_id": driverID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyHaulStarted notifies the requesting customer the haul is underway.
func (s *NotificationService) NotifyHaulStarted(ctx context.Context, haul *domain.Haul) error {
	return s.send(ctx, Notification{
		Type:        NotificationHaulStarted,
		RecipientID: haul.UserID,
		Title:       "Haul Started",
		Message:     fmt.Sprintf("Haul #%d is now in progress", haul.ID),
		Data: map[string]interface{}{
			"haul_id": haul.ID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyHaulCompleted notifies the requesting customer the haul is done.
func (s *NotificationService) NotifyHaulCompleted(ctx context.Context, haul *domain.Haul) error {
	return s.send(ctx, Notification{
		Type:        NotificationHaulCompleted,
		RecipientID: haul.UserID,
		Title:       "Haul Completed",
		Message:     fmt.Sprintf("Haul #%d has been completed", haul.ID),
		Data: map[string]interface{}{
			"haul_id": haul.ID,
			"revenue": haul.Revenue(),
		},
		CreatedAt: time.Now(),
	})
}

// NotifyHaulCancelled notifies the affected parties of a cancellation.
func (s *NotificationService) NotifyHaulCancelled(ctx context.Context, haul *domain.Haul) error {
	recipient := haul.UserID
	if haul.DriverID != nil {
		recipient = *haul.DriverID
	}
	return s.send(ctx, Notification{
		Type:        NotificationHaulCancelled,
		RecipientID: recipient,
		Title:       "Haul Cancelled",
		Message:     fmt.Sprintf("Haul #%d has been cancelled", haul.ID),
		Data: map[string]interface{}{
			"haul_id": haul.ID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyOrderReceived acknowledges a public material order.
func (s *NotificationService) NotifyOrderReceived(ctx context.Context, order *domain.Order) error {
	return s.send(ctx, Notification{
		Type:  NotificationOrderReceived,
		Title: "Order Received",
		Message: fmt.Sprintf("Order %s: %d x %s via %s, total %d",
			order.ID, order.Quantity, order.Material.Name, order.Truck.Name, order.TotalPrice),
		Data: map[string]interface{}{
			"order_id":    order.ID,
			"total_price": order.TotalPrice,
		},
		CreatedAt: time.Now(),
	})
}

// send delivers a notification. Currently logs to stdout.
func (s *NotificationService) send(ctx context.Context, n Notification) error {
	log.Printf("[NOTIFICATION] type=%s recipient=%d title=%q message=%q",
		n.Type, n.RecipientID, n.Title, n.Message)
	return nil
}
