package versioning

import (
	"github.com/OGThorhunter/craved-artisan-sub018/models"
)

// TotalCost sums the stored line totals of a version's snapshots. Line totals
// are frozen at snapshot time and deliberately not rederived from quantity and
// price, so historical versions stay stable under any future rounding change.
func TotalCost(snapshots []models.IngredientSnapshot) float64 {
	total := 0.0
	for i := range snapshots {
		total += snapshots[i].TotalCost
	}
	return total
}

// CostAggregate computes the stored cost-change summary for a version being
// created. Both results are nil when there is no previous version, and the
// percentage is nil when the previous total is zero rather than producing an
// infinite or NaN value. The summary is written once at creation and never
// recomputed on read.
func CostAggregate(total float64, previous *models.RecipeVersion) (costDelta, costDeltaPercent *float64) {
	if previous == nil {
		return nil, nil
	}

	delta := total - previous.TotalCost
	costDelta = &delta

	if previous.TotalCost != 0 {
		percent := delta / previous.TotalCost * 100
		costDeltaPercent = &percent
	}

	return costDelta, costDeltaPercent
}
