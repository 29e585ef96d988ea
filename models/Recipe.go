package models

import (
	"gorm.io/gorm"
)

// Recipe is the live, editable recipe a vendor works on day to day. Versions
// are explicit immutable snapshots of it; the recipe itself carries no history.
type Recipe struct {
	gorm.Model
	Name         string             `gorm:"not null" json:"name"`
	Description  string             `gorm:"type:text" json:"description"`
	Instructions string             `gorm:"type:text" json:"instructions"`
	Yield        float64            `gorm:"not null;default:1" json:"yield"`
	YieldUnit    string             `json:"yield_unit"`
	PrepTime     int                `json:"prep_time"`
	CookTime     int                `json:"cook_time"`
	Difficulty   string             `json:"difficulty"`
	OwnerID      uint               `gorm:"not null" json:"owner_id"`
	Owner        *User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	Versions     []RecipeVersion    `gorm:"foreignKey:RecipeID" json:"versions,omitempty"`
}
