package domain

import "time"

// OrderStatus represents the current status of a material order.
// Order progression is simple and forward-only; it is not gated by role
// the way the haul lifecycle is.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusCompleted  OrderStatus = "completed"
)

// Material is a construction commodity with a fixed per-trip price.
// Static reference data, never mutated at runtime.
type Material struct {
	ID           string
	Name         string
	PricePerTrip int
	Unit         string
}

// TruckType is a pricing-catalog entry for a truck class. Distinct from
// the fleet Truck asset.
type TruckType struct {
	ID              string
	Name            string
	Capacity        string
	PriceMultiplier float64
}

// CustomerInfo holds the contact details captured by the public ordering flow.
type CustomerInfo struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Order is a material-purchase request priced by the quote calculator.
type Order struct {
	ID         string
	Material   Material
	Truck      TruckType
	Quantity   int
	DistanceKm float64
	Customer   CustomerInfo
	TotalPrice int
	Status     OrderStatus
	CreatedAt  time.Time
}
