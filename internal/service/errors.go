package service

import "errors"

var (
	// ErrInvalidHaulID is returned when a haul ID is missing or not positive.
	ErrInvalidHaulID = errors.New("invalid haul id")

	// ErrInvalidOrderID is returned when an order ID is empty.
	ErrInvalidOrderID = errors.New("invalid order id")

	// ErrInvalidTruckID is returned when a truck ID is missing or not positive.
	ErrInvalidTruckID = errors.New("invalid truck id")

	// ErrInvalidAssignment is returned when an assign action has no driver
	// id, or the driver does not exist or is not a driver-role user.
	ErrInvalidAssignment = errors.New("invalid assignment: a valid driver is required")

	// ErrAccessDenied is returned when the role gate denies a resource.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrHaulLocked is returned when another transition on the same haul
	// is in flight and holds the haul lock.
	ErrHaulLocked = errors.New("haul transition already in progress")

	// ErrHaulTerminal is returned when editing a completed or cancelled haul.
	ErrHaulTerminal = errors.New("haul is in a terminal status")

	// ErrInvalidHaulType is returned for an unknown haul type.
	ErrInvalidHaulType = errors.New("invalid haul type")

	// ErrMissingLegDetails is returned when a pickup/delivery leg lacks
	// required address or contact fields.
	ErrMissingLegDetails = errors.New("pickup and delivery details are required")

	// ErrInvalidMaterial is returned for an unknown material id.
	ErrInvalidMaterial = errors.New("invalid material")

	// ErrInvalidTruckType is returned for an unknown truck type id.
	ErrInvalidTruckType = errors.New("invalid truck type")

	// ErrInvalidQuantity is returned when an order quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidDistance is returned when a distance is negative.
	ErrInvalidDistance = errors.New("distance must be zero or greater")

	// ErrMissingCustomerInfo is returned when an order lacks contact details.
	ErrMissingCustomerInfo = errors.New("customer name and phone are required")

	// ErrInvalidOrderStatus is returned for an unknown order status or a
	// backwards order-status change.
	ErrInvalidOrderStatus = errors.New("invalid order status")

	// ErrInvalidTruckStatus is returned for an unknown fleet status.
	ErrInvalidTruckStatus = errors.New("invalid truck status")

	// ErrMissingTruckDetails is returned when a truck lacks required fields.
	ErrMissingTruckDetails = errors.New("make, model and license plate are required")
)
