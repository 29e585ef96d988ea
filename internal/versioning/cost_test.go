package versioning

import (
	"testing"

	"github.com/OGThorhunter/craved-artisan-sub018/models"
)

func TestTotalCostSumsStoredLineTotals(t *testing.T) {
	t.Parallel()

	snapshots := []models.IngredientSnapshot{
		// Stored totals are authoritative even when they disagree with
		// quantity * price, which can happen after historical rounding.
		{Quantity: 2, PricePerUnit: 1.5, TotalCost: 3.01},
		{Quantity: 1, PricePerUnit: 2, TotalCost: 2},
	}

	if got := TotalCost(snapshots); got != 5.01 {
		t.Fatalf("expected 5.01, got %v", got)
	}
	if got := TotalCost(nil); got != 0 {
		t.Fatalf("expected 0 for empty list, got %v", got)
	}
}

func TestCostAggregateFirstVersion(t *testing.T) {
	t.Parallel()

	delta, percent := CostAggregate(5, nil)
	if delta != nil || percent != nil {
		t.Fatalf("expected both aggregates absent for a first version, got delta=%v percent=%v", delta, percent)
	}
}

func TestCostAggregateAgainstPrevious(t *testing.T) {
	t.Parallel()

	previous := &models.RecipeVersion{Version: 1, TotalCost: 3}
	delta, percent := CostAggregate(5, previous)
	if delta == nil || *delta != 2 {
		t.Fatalf("expected delta 2, got %v", delta)
	}
	if percent == nil || *percent != 2.0/3.0*100 {
		t.Fatalf("expected percent %v, got %v", 2.0/3.0*100, percent)
	}

	delta, percent = CostAggregate(2, &models.RecipeVersion{Version: 1, TotalCost: 5})
	if delta == nil || *delta != -3 {
		t.Fatalf("expected delta -3, got %v", delta)
	}
	if percent == nil || *percent != -60 {
		t.Fatalf("expected percent -60, got %v", percent)
	}
}

func TestCostAggregateZeroPreviousTotal(t *testing.T) {
	t.Parallel()

	delta, percent := CostAggregate(4, &models.RecipeVersion{Version: 1, TotalCost: 0})
	if delta == nil || *delta != 4 {
		t.Fatalf("expected delta 4, got %v", delta)
	}
	if percent != nil {
		t.Fatalf("expected percent absent when previous total is zero, got %v", *percent)
	}
}
