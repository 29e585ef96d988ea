package models

import (
	"gorm.io/gorm"
)

// RecipeVersion is an immutable snapshot of a recipe, created only when a
// vendor explicitly asks for one. Version numbers start at 1 and increase by
// one per recipe; the composite unique index is what serializes concurrent
// snapshot requests. Rows are never edited or deleted — "rollback" copies a
// version's data forward into the live recipe.
type RecipeVersion struct {
	gorm.Model
	RecipeID     uint                 `gorm:"not null;index:idx_recipe_version,unique" json:"recipe_id"`
	Version      int                  `gorm:"not null;index:idx_recipe_version,unique" json:"version"`
	Name         string               `gorm:"not null" json:"name"`
	Description  string               `gorm:"type:text" json:"description"`
	Instructions string               `gorm:"type:text" json:"instructions"`
	Yield        float64              `gorm:"not null;default:1" json:"yield"`
	YieldUnit    string               `json:"yield_unit"`
	PrepTime     int                  `json:"prep_time"`
	CookTime     int                  `json:"cook_time"`
	Difficulty   string               `json:"difficulty"`
	TotalCost    float64              `gorm:"not null" json:"total_cost"`
	Notes        string               `gorm:"type:text" json:"notes"`
	EditorID     *uint                `json:"editor_id,omitempty"`
	Editor       *User                `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
	Ingredients  []IngredientSnapshot `gorm:"foreignKey:RecipeVersionID" json:"ingredients"`

	// Stored once at creation. Nil on the first version; CostDeltaPercent is
	// also nil when the previous version's total was zero.
	CostDelta        *float64 `json:"cost_delta,omitempty"`
	CostDeltaPercent *float64 `json:"cost_delta_percent,omitempty"`
}

// IngredientSnapshot freezes one recipe line item at version-creation time.
// PricePerUnit and TotalCost are copied, not derived on read, so later price
// edits and rounding-rule changes never alter history. Each version owns its
// own full set of snapshots; none are shared across versions.
type IngredientSnapshot struct {
	gorm.Model
	RecipeVersionID uint        `gorm:"not null;index:idx_version_snapshot,unique" json:"recipe_version_id"`
	IngredientID    uint        `gorm:"not null;index:idx_version_snapshot,unique" json:"ingredient_id"`
	IngredientName  string      `gorm:"not null" json:"ingredient_name"`
	Quantity        float64     `gorm:"not null" json:"quantity"`
	Unit            string      `gorm:"not null" json:"unit"`
	PricePerUnit    float64     `gorm:"not null" json:"price_per_unit"`
	TotalCost       float64     `gorm:"not null" json:"total_cost"`
	Notes           string      `gorm:"type:text" json:"notes"`
	Ingredient      *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}
