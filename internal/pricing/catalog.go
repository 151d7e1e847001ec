package pricing

import "haulhub/internal/domain"

// Static reference data for the public ordering flow. Fixed lists; a
// real catalog service would replace these, but the ordering UI only
// ever offers these entries.
var materials = []domain.Material{
	{ID: "1", Name: "Sand", PricePerTrip: 2500, Unit: "per trip"},
	{ID: "2", Name: "Gravel", PricePerTrip: 3000, Unit: "per trip"},
	{ID: "3", Name: "Stone Chips", PricePerTrip: 2800, Unit: "per trip"},
	{ID: "4", Name: "Brick", PricePerTrip: 3500, Unit: "per trip"},
	{ID: "5", Name: "Cement", PricePerTrip: 4000, Unit: "per trip"},
}

var truckTypes = []domain.TruckType{
	{ID: "1", Name: "Ashok Leyland", Capacity: "10 tons", PriceMultiplier: 1.0},
	{ID: "2", Name: "TATA", Capacity: "12 tons", PriceMultiplier: 1.2},
	{ID: "3", Name: "Howo", Capacity: "15 tons", PriceMultiplier: 1.5},
}

// Materials returns the material catalog. The slice is a copy; callers
// may not mutate the reference data.
func Materials() []domain.Material {
	out := make([]domain.Material, len(materials))
	copy(out, materials)
	return out
}

// TruckTypes returns the truck-type pricing catalog.
func TruckTypes() []domain.TruckType {
	out := make([]domain.TruckType, len(truckTypes))
	copy(out, truckTypes)
	return out
}

// MaterialByID looks up a material in the catalog.
func MaterialByID(id string) (domain.Material, bool) {
	for _, m := range materials {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Material{}, false
}

// TruckTypeByID looks up a truck type in the catalog.
func TruckTypeByID(id string) (domain.TruckType, bool) {
	for _, t := range truckTypes {
		if t.ID == id {
			return t, true
		}
	}
	return domain.TruckType{}, false
}
