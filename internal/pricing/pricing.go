// Package pricing computes deterministic price quotes for material
// orders and exposes the static material/truck-type catalogs.
package pricing

import (
	"math"

	"haulhub/internal/domain"
)

// distanceRatePerKm is the per-kilometre surcharge applied to the base
// cost: each km adds 5% of the base.
const distanceRatePerKm = 0.05

// ComputeQuote returns the total price for a prospective order:
//
//	baseCost = material.PricePerTrip * quantity
//	total    = round(baseCost * truck.PriceMultiplier * (1 + distanceKm*0.05))
//
// Rounding is half-away-from-zero to the nearest integer currency unit.
// If either the material or the truck type is unset the result is 0; no
// partial pricing. The function is pure and has no memoized state, so it
// is safe to call on every input change. Callers are responsible for
// validating quantity >= 1 and distanceKm >= 0 before invoking; the
// calculator does not defend against negative inputs.
func ComputeQuote(material *domain.Material, truck *domain.TruckType, quantity int, distanceKm float64) int {
	if material == nil || truck == nil {
		return 0
	}

	baseCost := float64(material.PricePerTrip * quantity)
	distanceMultiplier := 1 + distanceKm*distanceRatePerKm

	return int(math.Round(baseCost * truck.PriceMultiplier * distanceMultiplier))
}
