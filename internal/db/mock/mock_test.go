package mock

import (
	"context"
	"testing"

	"github.com/OGThorhunter/craved-artisan-sub018/models"
)

func TestNewSeedsVersionHistory(t *testing.T) {
	database, err := New(context.Background())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	var vendor models.User
	if err := database.Where("email = ?", "marta@hearthandgrain.com").First(&vendor).Error; err != nil {
		t.Fatalf("expected seeded vendor: %v", err)
	}

	var recipe models.Recipe
	if err := database.Preload("Ingredients").First(&recipe).Error; err != nil {
		t.Fatalf("expected seeded recipe: %v", err)
	}
	if len(recipe.Ingredients) != 3 {
		t.Fatalf("expected 3 live line items, got %d", len(recipe.Ingredients))
	}

	var versions []models.RecipeVersion
	if err := database.Preload("Ingredients").Where("recipe_id = ?", recipe.ID).Order("version asc").Find(&versions).Error; err != nil {
		t.Fatalf("failed to load versions: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("expected 2 seeded versions, got %d", len(versions))
	}

	if versions[0].CostDelta != nil || versions[0].CostDeltaPercent != nil {
		t.Fatalf("first version must have no cost aggregates: %+v", versions[0])
	}
	if versions[1].CostDelta == nil || versions[1].CostDeltaPercent == nil {
		t.Fatal("second version must carry stored cost aggregates")
	}
	if got := *versions[1].CostDelta; got != versions[1].TotalCost-versions[0].TotalCost {
		t.Fatalf("stored cost delta %v disagrees with totals", got)
	}
}
