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

type recipeRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Instructions string  `json:"instructions"`
	Yield        float64 `json:"yield"`
	YieldUnit    string  `json:"yield_unit"`
	PrepTime     int     `json:"prep_time"`
	CookTime     int     `json:"cook_time"`
	Difficulty   string  `json:"difficulty"`
}

type recipeResponse struct {
	ID           uint                       `json:"id"`
	Name         string                     `json:"name"`
	Description  string                     `json:"description,omitempty"`
	Instructions string                     `json:"instructions,omitempty"`
	Yield        float64                    `json:"yield"`
	YieldUnit    string                     `json:"yield_unit,omitempty"`
	PrepTime     int                        `json:"prep_time,omitempty"`
	CookTime     int                        `json:"cook_time,omitempty"`
	Difficulty   string                     `json:"difficulty,omitempty"`
	Ingredients  []recipeIngredientResponse `json:"ingredients,omitempty"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

// RecipeResource dispatches everything under /app/api/recipes: recipe CRUD,
// live line items, and the immutable version history.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/recipes")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r, userID)
		case http.MethodPost:
			createRecipe(w, r, userID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	recipeID := uint(idValue)

	switch {
	case len(segments) == 1:
		switch r.Method {
		case http.MethodGet:
			showRecipe(w, r, userID, recipeID)
		case http.MethodPut:
			updateRecipe(w, r, userID, recipeID)
		case http.MethodDelete:
			deleteRecipe(w, r, userID, recipeID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case segments[1] == "ingredients":
		recipeIngredientSubresource(w, r, userID, recipeID, segments[2:])
	case segments[1] == "versions":
		recipeVersionSubresource(w, r, userID, recipeID, segments[2:])
	default:
		http.NotFound(w, r)
	}
}

func listRecipes(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	var results []models.Recipe
	if err := database.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Where("owner_id = ?", userID).
		Order("name asc").
		Find(&results).Error; err != nil {
		applog.Error(ctx, "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}

	responses := make([]recipeResponse, 0, len(results))
	for _, recipe := range results {
		responses = append(responses, projectRecipe(recipe))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showRecipe(w http.ResponseWriter, r *http.Request, userID, recipeID uint) {
	ctx := r.Context()
	recipe, err := findOwnedRecipe(r, userID, recipeID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load recipe", "error", err, "id", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(*recipe))
}

func createRecipe(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	var payload recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if strings.TrimSpace(payload.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}

	recipe := models.Recipe{
		Name:         strings.TrimSpace(payload.Name),
		Description:  payload.Description,
		Instructions: payload.Instructions,
		Yield:        payload.Yield,
		YieldUnit:    strings.TrimSpace(payload.YieldUnit),
		PrepTime:     payload.PrepTime,
		CookTime:     payload.CookTime,
		Difficulty:   strings.TrimSpace(payload.Difficulty),
		OwnerID:      userID,
	}
	if recipe.Yield <= 0 {
		recipe.Yield = 1
	}

	if err := database.WithContext(ctx).Create(&recipe).Error; err != nil {
		applog.Error(ctx, "failed to create recipe", "error", err)
		writeJSONError(w, http.StatusBadRequest, "unable to create recipe")
		return
	}

	writeJSON(w, http.StatusCreated, projectRecipe(recipe))
}

func updateRecipe(w http.ResponseWriter, r *http.Request, userID, recipeID uint) {
	ctx := r.Context()
	recipe, err := findOwnedRecipe(r, userID, recipeID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load recipe for update", "error", err, "id", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	var payload recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if strings.TrimSpace(payload.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}

	updates := map[string]any{
		"name":         strings.TrimSpace(payload.Name),
		"description":  payload.Description,
		"instructions": payload.Instructions,
		"yield":        payload.Yield,
		"yield_unit":   strings.TrimSpace(payload.YieldUnit),
		"prep_time":    payload.PrepTime,
		"cook_time":    payload.CookTime,
		"difficulty":   strings.TrimSpace(payload.Difficulty),
	}

	if err := database.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
		applog.Error(ctx, "failed to update recipe", "error", err, "id", recipeID)
		writeJSONError(w, http.StatusBadRequest, "unable to update recipe")
		return
	}

	writeJSON(w, http.StatusOK, projectRecipe(*recipe))
}

func deleteRecipe(w http.ResponseWriter, r *http.Request, userID, recipeID uint) {
	ctx := r.Context()
	if _, err := findOwnedRecipe(r, userID, recipeID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load recipe for delete", "error", err, "id", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	if err := database.WithContext(ctx).Delete(&models.Recipe{}, recipeID).Error; err != nil {
		applog.Error(ctx, "failed to delete recipe", "error", err, "id", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func findOwnedRecipe(r *http.Request, userID, recipeID uint, preload bool) (*models.Recipe, error) {
	query := database.WithContext(r.Context()).Where("id = ? AND owner_id = ?", recipeID, userID)
	if preload {
		query = query.Preload("Ingredients.Ingredient")
	}
	var recipe models.Recipe
	if err := query.First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func projectRecipe(recipe models.Recipe) recipeResponse {
	response := recipeResponse{
		ID:           recipe.ID,
		Name:         recipe.Name,
		Description:  recipe.Description,
		Instructions: recipe.Instructions,
		Yield:        recipe.Yield,
		YieldUnit:    recipe.YieldUnit,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Difficulty:   recipe.Difficulty,
		CreatedAt:    recipe.CreatedAt,
		UpdatedAt:    recipe.UpdatedAt,
	}
	for _, line := range recipe.Ingredients {
		response.Ingredients = append(response.Ingredients, projectRecipeIngredient(line))
	}
	return response
}
