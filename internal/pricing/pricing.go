// Package pricing combines derived quantities, the cut optimizer output,
// and the injected price table into a cost breakdown. It is a pure
// combination step: no rounding tricks, no lookups outside the table.
package pricing

import "github.com/fenceworks/fencecalc/internal/model"

// ForQuantities prices one run's quantities for one fence type / height
// combination. A missing price table entry fails with PricingNotFoundError.
func ForQuantities(q model.Quantities, plan model.StockPlan, table model.PriceTable, taxExempt bool) (model.CostBreakdown, error) {
	entry, ok := table.Lookup(q.Key.FenceType, q.Key.Height)
	if !ok {
		return model.CostBreakdown{}, &model.PricingNotFoundError{FenceType: q.Key.FenceType, Height: q.Key.Height}
	}

	materials := float64(q.Panels)*entry.PanelPrice +
		q.LinearFeet*entry.LinearFootPrice +
		plan.TotalCost +
		float64(q.Posts.Total())*entry.PostPrice +
		float64(q.Gates.Total())*entry.GateKitPrice +
		float64(q.Hardware)*entry.HardwarePrice +
		float64(q.ConcreteBags)*entry.ConcreteBagPrice

	labor := (q.FenceLength + q.GateLength) * entry.LaborRate
	subtotal := materials + labor

	var tax float64
	if !taxExempt {
		tax = subtotal * entry.TaxRate
	}
	markup := subtotal * entry.MarkupRate

	return model.CostBreakdown{
		MaterialsCost: materials,
		LaborCost:     labor,
		Subtotal:      subtotal,
		Tax:           tax,
		Markup:        markup,
		Total:         subtotal + tax + markup,
	}, nil
}
