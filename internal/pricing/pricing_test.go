package pricing

import (
	"testing"

	"haulhub/internal/domain"
)

func TestComputeQuote_BaseScenario(t *testing.T) {
	material := &domain.Material{ID: "1", Name: "Sand", PricePerTrip: 2500}
	truck := &domain.TruckType{ID: "1", Name: "Ashok Leyland", PriceMultiplier: 1.0}

	total := ComputeQuote(material, truck, 1, 0)
	if total != 2500 {
		t.Errorf("expected 2500, got %d", total)
	}
}

func TestComputeQuote_MultiplierAndDistance(t *testing.T) {
	material := &domain.Material{ID: "2", Name: "Gravel", PricePerTrip: 3000}
	truck := &domain.TruckType{ID: "2", Name: "TATA", PriceMultiplier: 1.2}

	// baseCost=6000, distanceMultiplier=1.5, total=round(6000*1.2*1.5)=10800
	total := ComputeQuote(material, truck, 2, 10)
	if total != 10800 {
		t.Errorf("expected 10800, got %d", total)
	}
}

func TestComputeQuote_NilInputsPriceToZero(t *testing.T) {
	material := &domain.Material{ID: "1", PricePerTrip: 2500}
	truck := &domain.TruckType{ID: "1", PriceMultiplier: 1.0}

	if got := ComputeQuote(nil, truck, 3, 12); got != 0 {
		t.Errorf("expected 0 for nil material, got %d", got)
	}
	if got := ComputeQuote(material, nil, 3, 12); got != 0 {
		t.Errorf("expected 0 for nil truck, got %d", got)
	}
	if got := ComputeQuote(nil, nil, 3, 12); got != 0 {
		t.Errorf("expected 0 for nil inputs, got %d", got)
	}
}

func TestComputeQuote_IsPure(t *testing.T) {
	material := &domain.Material{ID: "3", PricePerTrip: 2800}
	truck := &domain.TruckType{ID: "3", PriceMultiplier: 1.5}

	first := ComputeQuote(material, truck, 4, 7.5)
	for i := 0; i < 10; i++ {
		if got := ComputeQuote(material, truck, 4, 7.5); got != first {
			t.Fatalf("expected %d on call %d, got %d", first, i, got)
		}
	}
}

func TestComputeQuote_MonotonicInDistance(t *testing.T) {
	material := &domain.Material{ID: "4", PricePerTrip: 3500}
	truck := &domain.TruckType{ID: "2", PriceMultiplier: 1.2}

	prev := ComputeQuote(material, truck, 1, 0)
	for km := 1.0; km <= 50; km++ {
		cur := ComputeQuote(material, truck, 1, km)
		if cur <= prev {
			t.Fatalf("expected quote to strictly increase with distance: %d at %.0fkm, %d before", cur, km, prev)
		}
		prev = cur
	}
}

func TestComputeQuote_RoundsHalfAwayFromZero(t *testing.T) {
	// baseCost=1, multiplier=1.0, distance 10km -> 1*1.5 = 1.5, rounds up to 2.
	material := &domain.Material{ID: "x", PricePerTrip: 1}
	truck := &domain.TruckType{ID: "x", PriceMultiplier: 1.0}

	if got := ComputeQuote(material, truck, 1, 10); got != 2 {
		t.Errorf("expected 1.5 to round to 2, got %d", got)
	}
}

func TestCatalog_Contents(t *testing.T) {
	mats := Materials()
	if len(mats) != 5 {
		t.Fatalf("expected 5 materials, got %d", len(mats))
	}
	trucks := TruckTypes()
	if len(trucks) != 3 {
		t.Fatalf("expected 3 truck types, got %d", len(trucks))
	}

	m, ok := MaterialByID("5")
	if !ok || m.Name != "Cement" || m.PricePerTrip != 4000 {
		t.Errorf("unexpected material for id 5: %+v", m)
	}

	tt, ok := TruckTypeByID("3")
	if !ok || tt.PriceMultiplier != 1.5 {
		t.Errorf("unexpected truck type for id 3: %+v", tt)
	}

	if _, ok := MaterialByID("99"); ok {
		t.Error("expected lookup miss for unknown material id")
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	mats := Materials()
	mats[0].PricePerTrip = 1

	again, _ := MaterialByID("1")
	if again.PricePerTrip != 2500 {
		t.Error("catalog mutated through returned slice")
	}
}
