package models

import (
	"gorm.io/gorm"
)

// RecipeIngredient is a live line item on a recipe. Quantity is expressed in
// Unit, which may differ from the ingredient's base unit. The composite unique
// index keeps one line per ingredient per recipe.
type RecipeIngredient struct {
	gorm.Model
	RecipeID     uint        `gorm:"not null;index:idx_recipe_ingredient,unique" json:"recipe_id"`
	IngredientID uint        `gorm:"not null;index:idx_recipe_ingredient,unique" json:"ingredient_id"`
	Quantity     float64     `gorm:"not null" json:"quantity"`
	Unit         string      `gorm:"not null" json:"unit"`
	Notes        string      `gorm:"type:text" json:"notes"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}
