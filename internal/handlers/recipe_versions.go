package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	applog "github.com/OGThorhunter/craved-artisan-sub018/internal/log"
	"github.com/OGThorhunter/craved-artisan-sub018/internal/versioning"
	"github.com/OGThorhunter/craved-artisan-sub018/models"
)

type createVersionRequest struct {
	Notes string `json:"notes"`
}

type editorSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type snapshotResponse struct {
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	PricePerUnit   float64 `json:"price_per_unit"`
	TotalCost      float64 `json:"total_cost"`
	Notes          string  `json:"notes,omitempty"`
}

type versionResponse struct {
	ID               uint               `json:"id"`
	Version          int                `json:"version"`
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	Instructions     string             `json:"instructions,omitempty"`
	Yield            float64            `json:"yield"`
	YieldUnit        string             `json:"yield_unit,omitempty"`
	PrepTime         int                `json:"prep_time,omitempty"`
	CookTime         int                `json:"cook_time,omitempty"`
	Difficulty       string             `json:"difficulty,omitempty"`
	TotalCost        float64            `json:"total_cost"`
	Notes            string             `json:"notes,omitempty"`
	CostDelta        *float64           `json:"cost_delta,omitempty"`
	CostDeltaPercent *float64           `json:"cost_delta_percent,omitempty"`
	Editor           *editorSummary     `json:"editor,omitempty"`
	Ingredients      []snapshotResponse `json:"ingredients"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type versionDiffResponse struct {
	CurrentVersion          int                         `json:"current_version"`
	PreviousVersion         *int                        `json:"previous_version,omitempty"`
	CurrentTotalCost        float64                     `json:"current_total_cost"`
	PreviousTotalCost       *float64                    `json:"previous_total_cost,omitempty"`
	CostDelta               *float64                    `json:"cost_delta,omitempty"`
	CostDeltaPercent        *float64                    `json:"cost_delta_percent,omitempty"`
	CostDeltaDisplay        string                      `json:"cost_delta_display"`
	CostDeltaPercentDisplay string                      `json:"cost_delta_percent_display"`
	Changes                 []versioning.IngredientDiff `json:"changes"`
}

// recipeVersionSubresource dispatches the version history routes:
//
//	GET  /{recipe}/versions             list, newest first
//	POST /{recipe}/versions             snapshot the live recipe
//	GET  /{recipe}/versions/{n}         single version
//	GET  /{recipe}/versions/{n}/diff    compare against version n-1
//	POST /{recipe}/versions/{n}/restore copy a snapshot back into the live recipe
func recipeVersionSubresource(w http.ResponseWriter, r *http.Request, userID, recipeID uint, rest []string) {
	ctx := r.Context()
	recipe, err := findOwnedRecipe(r, userID, recipeID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load recipe for versions", "error", err, "recipe", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	if len(rest) == 0 {
		switch r.Method {
		case http.MethodGet:
			listRecipeVersions(w, r, recipeID)
		case http.MethodPost:
			createRecipeVersion(w, r, userID, recipe)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	number, err := strconv.Atoi(rest[0])
	if err != nil || number < 1 {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(rest) == 1:
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		showRecipeVersion(w, r, recipeID, number)
	case len(rest) == 2 && rest[1] == "diff":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		diffRecipeVersion(w, r, recipeID, number)
	case len(rest) == 2 && rest[1] == "restore":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		restoreRecipeVersion(w, r, recipe, number)
	default:
		http.NotFound(w, r)
	}
}

// createRecipeVersion freezes the live recipe into a new immutable version.
// Line items are snapshotted at the ingredient's current price; the stored
// cost aggregates are computed here, once, against the latest existing
// version. The composite unique index on (recipe_id, version) turns a race
// between two simultaneous snapshot requests into a constraint error.
func createRecipeVersion(w http.ResponseWriter, r *http.Request, userID uint, recipe *models.Recipe) {
	ctx := r.Context()

	if len(recipe.Ingredients) == 0 {
		writeJSONError(w, http.StatusBadRequest, "cannot create a version for a recipe with no ingredients")
		return
	}

	var payload createVersionRequest
	if r.Body != nil {
		// The notes body is optional; decode errors on an empty body are fine.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	snapshots := make([]models.IngredientSnapshot, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		if line.Ingredient == nil {
			writeJSONError(w, http.StatusConflict, "recipe references a deleted ingredient")
			return
		}
		lineCost := line.Quantity * line.Ingredient.CostPerUnit
		snapshots = append(snapshots, models.IngredientSnapshot{
			IngredientID:   line.IngredientID,
			IngredientName: line.Ingredient.Name,
			Quantity:       line.Quantity,
			Unit:           line.Unit,
			PricePerUnit:   line.Ingredient.CostPerUnit,
			TotalCost:      lineCost,
			Notes:          line.Notes,
		})
	}
	totalCost := versioning.TotalCost(snapshots)

	var created models.RecipeVersion
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var latest models.RecipeVersion
		var previous *models.RecipeVersion
		err := tx.Where("recipe_id = ?", recipe.ID).Order("version desc").First(&latest).Error
		switch {
		case err == nil:
			previous = &latest
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		nextVersion := 1
		if previous != nil {
			nextVersion = previous.Version + 1
		}

		costDelta, costDeltaPercent := versioning.CostAggregate(totalCost, previous)

		created = models.RecipeVersion{
			RecipeID:         recipe.ID,
			Version:          nextVersion,
			Name:             recipe.Name,
			Description:      recipe.Description,
			Instructions:     recipe.Instructions,
			Yield:            recipe.Yield,
			YieldUnit:        recipe.YieldUnit,
			PrepTime:         recipe.PrepTime,
			CookTime:         recipe.CookTime,
			Difficulty:       recipe.Difficulty,
			TotalCost:        totalCost,
			Notes:            payload.Notes,
			EditorID:         &userID,
			CostDelta:        costDelta,
			CostDeltaPercent: costDeltaPercent,
			Ingredients:      snapshots,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		applog.Error(ctx, "failed to create recipe version", "error", err, "recipe", recipe.ID)
		writeJSONError(w, http.StatusConflict, "unable to create recipe version")
		return
	}

	if err := database.WithContext(ctx).Preload("Ingredients").Preload("Editor").First(&created, created.ID).Error; err != nil {
		applog.Error(ctx, "failed to reload created version", "error", err, "id", created.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe version")
		return
	}

	applog.Info(ctx, "recipe version created",
		"recipe", recipe.ID,
		"version", created.Version,
		"totalCost", created.TotalCost,
	)
	writeJSON(w, http.StatusCreated, projectVersion(created))
}

func listRecipeVersions(w http.ResponseWriter, r *http.Request, recipeID uint) {
	ctx := r.Context()
	var versions []models.RecipeVersion
	if err := database.WithContext(ctx).
		Preload("Ingredients").
		Preload("Editor").
		Where("recipe_id = ?", recipeID).
		Order("version desc").
		Find(&versions).Error; err != nil {
		applog.Error(ctx, "failed to list recipe versions", "error", err, "recipe", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe versions")
		return
	}

	responses := make([]versionResponse, 0, len(versions))
	for _, version := range versions {
		responses = append(responses, projectVersion(version))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showRecipeVersion(w http.ResponseWriter, r *http.Request, recipeID uint, number int) {
	ctx := r.Context()
	version, err := findRecipeVersion(r, recipeID, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load recipe version", "error", err, "recipe", recipeID, "version", number)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe version")
		return
	}
	writeJSON(w, http.StatusOK, projectVersion(*version))
}

// diffRecipeVersion compares a version against its immediate predecessor.
// The first version has no predecessor and every line comes back as added.
func diffRecipeVersion(w http.ResponseWriter, r *http.Request, recipeID uint, number int) {
	ctx := r.Context()
	current, err := findRecipeVersion(r, recipeID, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load version for diff", "error", err, "recipe", recipeID, "version", number)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe version")
		return
	}

	var previous *models.RecipeVersion
	if number > 1 {
		previous, err = findRecipeVersion(r, recipeID, number-1)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Error(ctx, "failed to load previous version for diff", "error", err, "recipe", recipeID, "version", number-1)
			writeJSONError(w, http.StatusInternalServerError, "unable to load recipe version")
			return
		}
	}

	response := versionDiffResponse{
		CurrentVersion:          current.Version,
		CurrentTotalCost:        current.TotalCost,
		CostDelta:               current.CostDelta,
		CostDeltaPercent:        current.CostDeltaPercent,
		CostDeltaDisplay:        versioning.FormatDelta(derefOrZero(current.CostDelta), false),
		CostDeltaPercentDisplay: versioning.FormatDelta(derefOrZero(current.CostDeltaPercent), true),
		Changes:                 versioning.ComputeDiff(current, previous),
	}
	if previous != nil {
		response.PreviousVersion = &previous.Version
		response.PreviousTotalCost = &previous.TotalCost
	}

	writeJSON(w, http.StatusOK, response)
}

// restoreRecipeVersion copies a historical snapshot back into the live recipe.
// History stays append-only: the version itself is untouched and the vendor is
// expected to snapshot again once they are happy with the restored state.
func restoreRecipeVersion(w http.ResponseWriter, r *http.Request, recipe *models.Recipe, number int) {
	ctx := r.Context()
	version, err := findRecipeVersion(r, recipe.ID, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load version for restore", "error", err, "recipe", recipe.ID, "version", number)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe version")
		return
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":         version.Name,
			"description":  version.Description,
			"instructions": version.Instructions,
			"yield":        version.Yield,
			"yield_unit":   version.YieldUnit,
			"prep_time":    version.PrepTime,
			"cook_time":    version.CookTime,
			"difficulty":   version.Difficulty,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for _, snapshot := range version.Ingredients {
			line := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: snapshot.IngredientID,
				Quantity:     snapshot.Quantity,
				Unit:         snapshot.Unit,
				Notes:        snapshot.Notes,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		applog.Error(ctx, "failed to restore recipe version", "error", err, "recipe", recipe.ID, "version", number)
		writeJSONError(w, http.StatusInternalServerError, "unable to restore recipe version")
		return
	}

	applog.Info(ctx, "recipe restored from version", "recipe", recipe.ID, "version", number)

	restored, err := findOwnedRecipe(r, recipe.OwnerID, recipe.ID, true)
	if err != nil {
		applog.Error(ctx, "failed to reload restored recipe", "error", err, "recipe", recipe.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(*restored))
}

func findRecipeVersion(r *http.Request, recipeID uint, number int) (*models.RecipeVersion, error) {
	var version models.RecipeVersion
	err := database.WithContext(r.Context()).
		Preload("Ingredients").
		Preload("Editor").
		Where("recipe_id = ? AND version = ?", recipeID, number).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func projectVersion(version models.RecipeVersion) versionResponse {
	response := versionResponse{
		ID:               version.ID,
		Version:          version.Version,
		Name:             version.Name,
		Description:      version.Description,
		Instructions:     version.Instructions,
		Yield:            version.Yield,
		YieldUnit:        version.YieldUnit,
		PrepTime:         version.PrepTime,
		CookTime:         version.CookTime,
		Difficulty:       version.Difficulty,
		TotalCost:        version.TotalCost,
		Notes:            version.Notes,
		CostDelta:        version.CostDelta,
		CostDeltaPercent: version.CostDeltaPercent,
		Ingredients:      make([]snapshotResponse, 0, len(version.Ingredients)),
		CreatedAt:        version.CreatedAt,
		UpdatedAt:        version.UpdatedAt,
	}
	if version.Editor != nil {
		response.Editor = &editorSummary{
			ID:    version.Editor.ID,
			Name:  version.Editor.Name,
			Email: version.Editor.Email,
		}
	}
	for _, snapshot := range version.Ingredients {
		response.Ingredients = append(response.Ingredients, snapshotResponse{
			IngredientID:   snapshot.IngredientID,
			IngredientName: snapshot.IngredientName,
			Quantity:       snapshot.Quantity,
			Unit:           snapshot.Unit,
			PricePerUnit:   snapshot.PricePerUnit,
			TotalCost:      snapshot.TotalCost,
			Notes:          snapshot.Notes,
		})
	}
	return response
}

func derefOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
