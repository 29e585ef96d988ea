package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/OGThorhunter/craved-artisan-sub018/internal/db"
	applog "github.com/OGThorhunter/craved-artisan-sub018/internal/log"
	"github.com/OGThorhunter/craved-artisan-sub018/internal/versioning"
	"github.com/OGThorhunter/craved-artisan-sub018/models"
)

// New returns an in-memory sqlite database seeded with representative
// marketplace data: a vendor, a small pantry, and a recipe with two
// versions so the diff endpoints have history to work with.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:artisan-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("sourdough"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	vendor := &models.User{
		Name:         "Marta Kowalski",
		Email:        "marta@hearthandgrain.com",
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Create(vendor).Error; err != nil {
		return err
	}

	flour := models.Ingredient{
		Name:        "Bread Flour",
		Description: "High-protein flour milled for open crumb loaves.",
		Unit:        "kg",
		CostPerUnit: 1.50,
		Supplier:    "Valley Mills",
		OwnerID:     vendor.ID,
	}
	yeast := models.Ingredient{
		Name:        "Instant Yeast",
		Description: "Single-bake sachets, no proofing required.",
		Unit:        "pkg",
		CostPerUnit: 2.00,
		Supplier:    "Ferment Co.",
		OwnerID:     vendor.ID,
	}
	salt := models.Ingredient{
		Name:        "Sea Salt",
		Description: "Coarse flakes harvested from tidal pans.",
		Unit:        "kg",
		CostPerUnit: 0.80,
		OwnerID:     vendor.ID,
	}

	ingredients := []*models.Ingredient{&flour, &yeast, &salt}
	for _, ingredient := range ingredients {
		if err := database.WithContext(ctx).Create(ingredient).Error; err != nil {
			return err
		}
	}

	loaf := models.Recipe{
		Name:         "Country Loaf",
		Description:  "Weekend staple with a long cold ferment.",
		Instructions: "Mix, rest, shape, proof overnight, bake at 240C.",
		Yield:        2,
		YieldUnit:    "loaves",
		PrepTime:     40,
		CookTime:     45,
		Difficulty:   "intermediate",
		OwnerID:      vendor.ID,
	}
	if err := database.WithContext(ctx).Create(&loaf).Error; err != nil {
		return err
	}

	lines := []models.RecipeIngredient{
		{RecipeID: loaf.ID, IngredientID: flour.ID, Quantity: 3, Unit: "kg"},
		{RecipeID: loaf.ID, IngredientID: yeast.ID, Quantity: 1, Unit: "pkg"},
		{RecipeID: loaf.ID, IngredientID: salt.ID, Quantity: 0.06, Unit: "kg", Notes: "hold back a pinch for topping"},
	}
	for _, line := range lines {
		lineCopy := line
		if err := database.WithContext(ctx).Create(&lineCopy).Error; err != nil {
			return err
		}
	}

	// Two historical versions: the original two-ingredient bake and the
	// current formula after flour was scaled up and salt introduced.
	firstSnapshots := []models.IngredientSnapshot{
		{IngredientID: flour.ID, IngredientName: flour.Name, Quantity: 2, Unit: "kg", PricePerUnit: 1.50, TotalCost: 3.00},
		{IngredientID: yeast.ID, IngredientName: yeast.Name, Quantity: 1, Unit: "pkg", PricePerUnit: 2.00, TotalCost: 2.00},
	}
	first := models.RecipeVersion{
		RecipeID:     loaf.ID,
		Version:      1,
		Name:         loaf.Name,
		Description:  loaf.Description,
		Instructions: loaf.Instructions,
		Yield:        loaf.Yield,
		YieldUnit:    loaf.YieldUnit,
		PrepTime:     loaf.PrepTime,
		CookTime:     loaf.CookTime,
		Difficulty:   loaf.Difficulty,
		TotalCost:    versioning.TotalCost(firstSnapshots),
		Notes:        "Baseline formula from the farmers market stall.",
		EditorID:     &vendor.ID,
		Ingredients:  firstSnapshots,
	}
	if err := database.WithContext(ctx).Create(&first).Error; err != nil {
		return err
	}

	secondSnapshots := []models.IngredientSnapshot{
		{IngredientID: flour.ID, IngredientName: flour.Name, Quantity: 3, Unit: "kg", PricePerUnit: 1.50, TotalCost: 4.50},
		{IngredientID: yeast.ID, IngredientName: yeast.Name, Quantity: 1, Unit: "pkg", PricePerUnit: 2.00, TotalCost: 2.00},
		{IngredientID: salt.ID, IngredientName: salt.Name, Quantity: 0.06, Unit: "kg", PricePerUnit: 0.80, TotalCost: 0.048},
	}
	secondTotal := versioning.TotalCost(secondSnapshots)
	costDelta, costDeltaPercent := versioning.CostAggregate(secondTotal, &first)
	second := models.RecipeVersion{
		RecipeID:         loaf.ID,
		Version:          2,
		Name:             loaf.Name,
		Description:      loaf.Description,
		Instructions:     loaf.Instructions,
		Yield:            loaf.Yield,
		YieldUnit:        loaf.YieldUnit,
		PrepTime:         loaf.PrepTime,
		CookTime:         loaf.CookTime,
		Difficulty:       loaf.Difficulty,
		TotalCost:        secondTotal,
		Notes:            "Scaled flour for the larger oven and added salt.",
		EditorID:         &vendor.ID,
		CostDelta:        costDelta,
		CostDeltaPercent: costDeltaPercent,
		Ingredients:      secondSnapshots,
	}
	if err := database.WithContext(ctx).Create(&second).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
