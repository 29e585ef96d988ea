package models

import (
	"gorm.io/gorm"
)

// Ingredient is a vendor-owned ingredient definition. CostPerUnit is the live
// price; recipe versions freeze a copy of it, so editing this record never
// changes historical snapshots.
type Ingredient struct {
	gorm.Model
	Name        string  `gorm:"not null;index:idx_ingredient_owner_name,unique" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Unit        string  `gorm:"not null" json:"unit"`
	CostPerUnit float64 `gorm:"not null" json:"cost_per_unit"`
	Supplier    string  `json:"supplier"`
	OwnerID     uint    `gorm:"not null;index:idx_ingredient_owner_name,unique" json:"owner_id"`
	Owner       *User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
