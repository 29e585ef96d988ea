package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OGThorhunter/craved-artisan-sub018/models"
)

func TestRecipeIngredientUpsert(t *testing.T) {
	db, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	fixture := seedVersionFixture(t, db)

	// Posting an ingredient already on the recipe updates the line in place.
	body, _ := json.Marshal(recipeIngredientRequest{
		IngredientID: fixture.flour.ID,
		Quantity:     4,
		Unit:         "kg",
		Notes:        "sifted",
	})
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/app/api/recipes/%d/ingredients", fixture.recipe.ID), bytes.NewReader(body))
	req = authenticateRequest(t, sm, req, fixture.vendor.ID)
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var lines []models.RecipeIngredient
	if err := db.Where("recipe_id = ?", fixture.recipe.ID).Find(&lines).Error; err != nil {
		t.Fatalf("failed to load lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("upsert must not duplicate lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line.IngredientID == fixture.flour.ID && (line.Quantity != 4 || line.Notes != "sifted") {
			t.Fatalf("flour line not updated: %+v", line)
		}
	}

	// A new ingredient becomes a new line.
	saltBody, _ := json.Marshal(recipeIngredientRequest{
		IngredientID: fixture.salt.ID,
		Quantity:     0.5,
		Unit:         "kg",
	})
	saltReq := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/app/api/recipes/%d/ingredients", fixture.recipe.ID), bytes.NewReader(saltBody))
	saltReq = authenticateRequest(t, sm, saltReq, fixture.vendor.ID)
	saltW := httptest.NewRecorder()
	RecipeResource(saltW, saltReq)
	if saltW.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", saltW.Code, saltW.Body.String())
	}

	var count int64
	if err := db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", fixture.recipe.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count lines: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 lines after adding salt, got %d", count)
	}
}

func TestRecipeIngredientRemove(t *testing.T) {
	db, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	fixture := seedVersionFixture(t, db)

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/app/api/recipes/%d/ingredients/%d", fixture.recipe.ID, fixture.yeast.ID), nil)
	req = authenticateRequest(t, sm, req, fixture.vendor.ID)
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	// Removing it again is a 404, not a silent success.
	again := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/app/api/recipes/%d/ingredients/%d", fixture.recipe.ID, fixture.yeast.ID), nil)
	again = authenticateRequest(t, sm, again, fixture.vendor.ID)
	againW := httptest.NewRecorder()
	RecipeResource(againW, again)
	if againW.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", againW.Code)
	}
}

func TestRecipeIngredientRejectsForeignIngredient(t *testing.T) {
	db, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	fixture := seedVersionFixture(t, db)

	other := models.User{Email: "other@example.com", PasswordHash: "hash"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("failed to create other vendor: %v", err)
	}
	foreign := models.Ingredient{Name: "Saffron", Unit: "g", CostPerUnit: 12, OwnerID: other.ID}
	if err := db.Create(&foreign).Error; err != nil {
		t.Fatalf("failed to create foreign ingredient: %v", err)
	}

	body, _ := json.Marshal(recipeIngredientRequest{
		IngredientID: foreign.ID,
		Quantity:     1,
		Unit:         "g",
	})
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/app/api/recipes/%d/ingredients", fixture.recipe.ID), bytes.NewReader(body))
	req = authenticateRequest(t, sm, req, fixture.vendor.ID)
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for foreign ingredient, got %d", w.Code)
	}
}
