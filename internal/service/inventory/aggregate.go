package inventory

import "github.com/karanvs/stockbook/internal/domain/models"

// Totals folds the full movement history into a per-serial {in, out} tally.
// Pure function of its input; summation order does not matter.
func Totals(movements []models.StockMovement) map[string]models.MovementTotals {
	totals := make(map[string]models.MovementTotals)
	for _, m := range movements {
		t := totals[m.SerialNumber]
		if m.Direction == models.MovementIn {
			t.In += m.Qty
		} else {
			t.Out += m.Qty
		}
		totals[m.SerialNumber] = t
	}
	return totals
}

// Annotate pairs each item with its live tally. The snapshot columns on the
// item are left untouched; callers that render totals should prefer the live
// values.
func Annotate(items []models.InventoryItem, totals map[string]models.MovementTotals) []models.ItemWithTotals {
	annotated := make([]models.ItemWithTotals, 0, len(items))
	for _, item := range items {
		annotated = append(annotated, models.ItemWithTotals{
			InventoryItem: item,
			Live:          totals[item.InventoryNo],
		})
	}
	return annotated
}
