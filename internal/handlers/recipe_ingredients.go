package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	applog "github.com/OGThorhunter/craved-artisan-sub018/internal/log"
	"github.com/OGThorhunter/craved-artisan-sub018/models"
)

type recipeIngredientRequest struct {
	IngredientID uint    `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Notes        string  `json:"notes"`
}

type recipeIngredientResponse struct {
	ID           uint                `json:"id"`
	RecipeID     uint                `json:"recipe_id"`
	IngredientID uint                `json:"ingredient_id"`
	Quantity     float64             `json:"quantity"`
	Unit         string              `json:"unit"`
	Notes        string              `json:"notes,omitempty"`
	Ingredient   *ingredientResponse `json:"ingredient,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// recipeIngredientSubresource handles the live line items of a recipe:
// POST /{recipe}/ingredients, PUT and DELETE /{recipe}/ingredients/{ingredient}.
// Line items are keyed by ingredient ID, so a recipe holds at most one line
// per ingredient — versions rely on that uniqueness.
func recipeIngredientSubresource(w http.ResponseWriter, r *http.Request, userID, recipeID uint, rest []string) {
	ctx := r.Context()
	if _, err := findOwnedRecipe(r, userID, recipeID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load recipe for line items", "error", err, "recipe", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	if len(rest) == 0 {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		upsertRecipeIngredient(w, r, userID, recipeID)
		return
	}

	idValue, err := strconv.ParseUint(rest[0], 10, 64)
	if err != nil || len(rest) > 1 {
		http.NotFound(w, r)
		return
	}
	ingredientID := uint(idValue)

	switch r.Method {
	case http.MethodPut:
		updateRecipeIngredient(w, r, recipeID, ingredientID)
	case http.MethodDelete:
		removeRecipeIngredient(w, r, recipeID, ingredientID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func upsertRecipeIngredient(w http.ResponseWriter, r *http.Request, userID, recipeID uint) {
	ctx := r.Context()
	var payload recipeIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validateRecipeIngredientPayload(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := findOwnedIngredient(r, userID, payload.IngredientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusBadRequest, "ingredient not found")
			return
		}
		applog.Error(ctx, "failed to load ingredient for line item", "error", err, "ingredient", payload.IngredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}

	var line models.RecipeIngredient
	err := database.WithContext(ctx).
		Where("recipe_id = ? AND ingredient_id = ?", recipeID, payload.IngredientID).
		First(&line).Error
	switch {
	case err == nil:
		updates := map[string]any{
			"quantity": payload.Quantity,
			"unit":     strings.TrimSpace(payload.Unit),
			"notes":    payload.Notes,
		}
		if err := database.WithContext(ctx).Model(&line).Updates(updates).Error; err != nil {
			applog.Error(ctx, "failed to update line item", "error", err, "recipe", recipeID)
			writeJSONError(w, http.StatusBadRequest, "unable to update recipe ingredient")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: payload.IngredientID,
			Quantity:     payload.Quantity,
			Unit:         strings.TrimSpace(payload.Unit),
			Notes:        payload.Notes,
		}
		if err := database.WithContext(ctx).Create(&line).Error; err != nil {
			applog.Error(ctx, "failed to create line item", "error", err, "recipe", recipeID)
			writeJSONError(w, http.StatusBadRequest, "unable to add recipe ingredient")
			return
		}
	default:
		applog.Error(ctx, "failed to look up line item", "error", err, "recipe", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe ingredient")
		return
	}

	if err := database.WithContext(ctx).Preload("Ingredient").First(&line, line.ID).Error; err != nil {
		applog.Error(ctx, "failed to reload line item", "error", err, "id", line.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe ingredient")
		return
	}

	writeJSON(w, http.StatusCreated, projectRecipeIngredient(line))
}

func updateRecipeIngredient(w http.ResponseWriter, r *http.Request, recipeID, ingredientID uint) {
	ctx := r.Context()
	var line models.RecipeIngredient
	if err := database.WithContext(ctx).
		Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load line item", "error", err, "recipe", recipeID, "ingredient", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe ingredient")
		return
	}

	var payload recipeIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Quantity <= 0 {
		writeJSONError(w, http.StatusBadRequest, "quantity must be greater than zero")
		return
	}

	updates := map[string]any{
		"quantity": payload.Quantity,
		"notes":    payload.Notes,
	}
	if strings.TrimSpace(payload.Unit) != "" {
		updates["unit"] = strings.TrimSpace(payload.Unit)
	}

	if err := database.WithContext(ctx).Model(&line).Updates(updates).Error; err != nil {
		applog.Error(ctx, "failed to update line item", "error", err, "id", line.ID)
		writeJSONError(w, http.StatusBadRequest, "unable to update recipe ingredient")
		return
	}

	if err := database.WithContext(ctx).Preload("Ingredient").First(&line, line.ID).Error; err != nil {
		applog.Error(ctx, "failed to reload line item", "error", err, "id", line.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe ingredient")
		return
	}

	writeJSON(w, http.StatusOK, projectRecipeIngredient(line))
}

func removeRecipeIngredient(w http.ResponseWriter, r *http.Request, recipeID, ingredientID uint) {
	ctx := r.Context()
	result := database.WithContext(ctx).
		Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
		Delete(&models.RecipeIngredient{})
	if result.Error != nil {
		applog.Error(ctx, "failed to delete line item", "error", result.Error, "recipe", recipeID, "ingredient", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to remove recipe ingredient")
		return
	}
	if result.RowsAffected == 0 {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func projectRecipeIngredient(line models.RecipeIngredient) recipeIngredientResponse {
	response := recipeIngredientResponse{
		ID:           line.ID,
		RecipeID:     line.RecipeID,
		IngredientID: line.IngredientID,
		Quantity:     line.Quantity,
		Unit:         line.Unit,
		Notes:        line.Notes,
		CreatedAt:    line.CreatedAt,
		UpdatedAt:    line.UpdatedAt,
	}
	if line.Ingredient != nil {
		projected := projectIngredient(*line.Ingredient)
		response.Ingredient = &projected
	}
	return response
}

func validateRecipeIngredientPayload(payload recipeIngredientRequest) error {
	if payload.IngredientID == 0 {
		return errors.New("ingredient_id is required")
	}
	if payload.Quantity <= 0 {
		return errors.New("quantity must be greater than zero")
	}
	if strings.TrimSpace(payload.Unit) == "" {
		return errors.New("unit is required")
	}
	return nil
}
