package domain

import "time"

// HaulStatus represents the current status of a haul.
type HaulStatus string

const (
	HaulStatusPending    HaulStatus = "pending"
	HaulStatusAssigned   HaulStatus = "assigned"
	HaulStatusInProgress HaulStatus = "in_progress"
	HaulStatusCompleted  HaulStatus = "completed"
	HaulStatusCancelled  HaulStatus = "cancelled"
)

// HaulType classifies the legs a haul covers.
type HaulType string

const (
	HaulTypePickup   HaulType = "pickup"
	HaulTypeDelivery HaulType = "delivery"
	HaulTypeBoth     HaulType = "both"
)

// PaymentStatus represents how much of a haul has been paid for.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
)

// Leg holds one end of a haul (pickup or delivery).
type Leg struct {
	Address      string
	City         string
	State        string
	Zip          string
	Date         time.Time
	ContactName  string
	ContactPhone string
	Instructions string
	Latitude     *float64
	Longitude    *float64
}

// Load describes what is being hauled.
type Load struct {
	Type                string
	Description         string
	Weight              *float64
	Volume              *float64
	Hazardous           bool
	SpecialRequirements string
}

// Haul represents one pickup/delivery job tracked through the status lifecycle.
type Haul struct {
	ID                int64
	HaulType          HaulType
	Pickup            Leg
	Delivery          Leg
	Load              Load
	DistanceMiles     *float64
	EstimatedDuration *float64 // hours
	QuotedPrice       *float64
	FinalPrice        *float64
	FuelCost          *float64
	PaymentStatus     PaymentStatus
	PaymentMethod     string
	Status            HaulStatus
	Notes             string
	UserID            int64
	TruckID           *int64
	DriverID          *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Revenue returns the price to count toward revenue reports: the final
// price when settled, else the quote, else zero.
func (h *Haul) Revenue() float64 {
	if h.FinalPrice != nil {
		return *h.FinalPrice
	}
	if h.QuotedPrice != nil {
		return *h.QuotedPrice
	}
	return 0
}
