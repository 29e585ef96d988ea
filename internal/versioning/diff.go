package versioning

import (
	"sort"

	"github.com/OGThorhunter/craved-artisan-sub018/models"
)

// ChangeType classifies how an ingredient line moved between two versions.
type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
	ChangeModified  ChangeType = "modified"
	ChangeUnchanged ChangeType = "unchanged"
)

// sortRank orders diff rows for display: removals first, then modifications,
// additions, and finally untouched lines.
func (c ChangeType) sortRank() int {
	switch c {
	case ChangeRemoved:
		return 0
	case ChangeModified:
		return 1
	case ChangeAdded:
		return 2
	default:
		return 3
	}
}

// IngredientDiff is one row of a version comparison. Pointer fields are nil
// when the corresponding side of the comparison has no such ingredient; delta
// fields are populated (possibly zero) exactly when the ingredient exists on
// both sides. One-sided rows also omit notes when the snapshot has none;
// paired rows carry both sides so a cleared note still shows as a change.
type IngredientDiff struct {
	IngredientID   uint       `json:"ingredient_id"`
	IngredientName string     `json:"ingredient_name"`
	ChangeType     ChangeType `json:"change_type"`

	CurrentQuantity      *float64 `json:"current_quantity,omitempty"`
	PreviousQuantity     *float64 `json:"previous_quantity,omitempty"`
	CurrentUnit          *string  `json:"current_unit,omitempty"`
	PreviousUnit         *string  `json:"previous_unit,omitempty"`
	CurrentPricePerUnit  *float64 `json:"current_price_per_unit,omitempty"`
	PreviousPricePerUnit *float64 `json:"previous_price_per_unit,omitempty"`
	CurrentTotalCost     *float64 `json:"current_total_cost,omitempty"`
	PreviousTotalCost    *float64 `json:"previous_total_cost,omitempty"`
	CurrentNotes         *string  `json:"current_notes,omitempty"`
	PreviousNotes        *string  `json:"previous_notes,omitempty"`

	QuantityDelta *float64 `json:"quantity_delta,omitempty"`
	PriceDelta    *float64 `json:"price_delta,omitempty"`
	CostDelta     *float64 `json:"cost_delta,omitempty"`
}

// ComputeDiff compares the ingredient snapshots of two recipe versions and
// returns one row per ingredient that appears in either. A nil previous means
// current is the recipe's first version and every line is reported as added.
//
// Rows come back sorted removed, modified, added, unchanged. Within one change
// type, rows keep the order of the current version's ingredient list, followed
// by previous-only ingredients in the previous list's order. The function is
// pure: it never mutates its inputs and performs no I/O.
//
// Snapshots must have unique ingredient IDs within each version; duplicate IDs
// are a precondition violation and must be rejected before persistence.
func ComputeDiff(current *models.RecipeVersion, previous *models.RecipeVersion) []IngredientDiff {
	if current == nil {
		return []IngredientDiff{}
	}

	if previous == nil {
		diffs := make([]IngredientDiff, 0, len(current.Ingredients))
		for i := range current.Ingredients {
			diffs = append(diffs, addedDiff(&current.Ingredients[i]))
		}
		return diffs
	}

	currentByID := make(map[uint]*models.IngredientSnapshot, len(current.Ingredients))
	for i := range current.Ingredients {
		currentByID[current.Ingredients[i].IngredientID] = &current.Ingredients[i]
	}
	previousByID := make(map[uint]*models.IngredientSnapshot, len(previous.Ingredients))
	for i := range previous.Ingredients {
		previousByID[previous.Ingredients[i].IngredientID] = &previous.Ingredients[i]
	}

	// Union of ingredient IDs: current list order first, then ingredients that
	// only the previous version had, in that list's order.
	ids := make([]uint, 0, len(currentByID)+len(previousByID))
	for i := range current.Ingredients {
		ids = append(ids, current.Ingredients[i].IngredientID)
	}
	for i := range previous.Ingredients {
		if _, ok := currentByID[previous.Ingredients[i].IngredientID]; !ok {
			ids = append(ids, previous.Ingredients[i].IngredientID)
		}
	}

	diffs := make([]IngredientDiff, 0, len(ids))
	for _, id := range ids {
		cur := currentByID[id]
		prev := previousByID[id]

		switch {
		case cur != nil && prev == nil:
			diffs = append(diffs, addedDiff(cur))
		case cur == nil && prev != nil:
			diffs = append(diffs, removedDiff(prev))
		default:
			diffs = append(diffs, pairedDiff(cur, prev))
		}
	}

	sort.SliceStable(diffs, func(i, j int) bool {
		return diffs[i].ChangeType.sortRank() < diffs[j].ChangeType.sortRank()
	})

	return diffs
}

func addedDiff(snapshot *models.IngredientSnapshot) IngredientDiff {
	return IngredientDiff{
		IngredientID:        snapshot.IngredientID,
		IngredientName:      snapshot.IngredientName,
		ChangeType:          ChangeAdded,
		CurrentQuantity:     ptr(snapshot.Quantity),
		CurrentUnit:         ptr(snapshot.Unit),
		CurrentPricePerUnit: ptr(snapshot.PricePerUnit),
		CurrentTotalCost:    ptr(snapshot.TotalCost),
		CurrentNotes:        notesPtr(snapshot.Notes),
	}
}

func removedDiff(snapshot *models.IngredientSnapshot) IngredientDiff {
	return IngredientDiff{
		IngredientID:         snapshot.IngredientID,
		IngredientName:       snapshot.IngredientName,
		ChangeType:           ChangeRemoved,
		PreviousQuantity:     ptr(snapshot.Quantity),
		PreviousUnit:         ptr(snapshot.Unit),
		PreviousPricePerUnit: ptr(snapshot.PricePerUnit),
		PreviousTotalCost:    ptr(snapshot.TotalCost),
		PreviousNotes:        notesPtr(snapshot.Notes),
	}
}

func pairedDiff(cur, prev *models.IngredientSnapshot) IngredientDiff {
	quantityDelta := cur.Quantity - prev.Quantity
	priceDelta := cur.PricePerUnit - prev.PricePerUnit
	costDelta := cur.TotalCost - prev.TotalCost

	changeType := ChangeUnchanged
	if quantityDelta != 0 || priceDelta != 0 || cur.Unit != prev.Unit || cur.Notes != prev.Notes {
		changeType = ChangeModified
	}

	// The current version's name wins when the ingredient was renamed upstream
	// between the two snapshots.
	return IngredientDiff{
		IngredientID:         cur.IngredientID,
		IngredientName:       cur.IngredientName,
		ChangeType:           changeType,
		CurrentQuantity:      ptr(cur.Quantity),
		PreviousQuantity:     ptr(prev.Quantity),
		CurrentUnit:          ptr(cur.Unit),
		PreviousUnit:         ptr(prev.Unit),
		CurrentPricePerUnit:  ptr(cur.PricePerUnit),
		PreviousPricePerUnit: ptr(prev.PricePerUnit),
		CurrentTotalCost:     ptr(cur.TotalCost),
		PreviousTotalCost:    ptr(prev.TotalCost),
		CurrentNotes:         ptr(cur.Notes),
		PreviousNotes:        ptr(prev.Notes),
		QuantityDelta:        ptr(quantityDelta),
		PriceDelta:           ptr(priceDelta),
		CostDelta:            ptr(costDelta),
	}
}

func ptr[T any](v T) *T {
	return &v
}

func notesPtr(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
