package domain

import "time"

// TruckStatus represents the current status of a fleet truck.
type TruckStatus string

const (
	TruckStatusAvailable   TruckStatus = "available"
	TruckStatusInUse       TruckStatus = "in_use"
	TruckStatusMaintenance TruckStatus = "maintenance"
)

// Truck is a fleet asset managed by admin and dispatcher users.
type Truck struct {
	ID           int64
	Make         string
	Model        string
	Year         int
	LicensePlate string
	Capacity     float64 // tons
	FuelType     string
	Status       TruckStatus
	DriverID     *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
