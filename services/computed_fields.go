package services

// ComputedItemFields builds the payload returned after an inline edit to a
// line item: the freshly recomputed dependent figures under stable keys, so
// an editing UI can update in place without a full reload.
func ComputedItemFields(comp *SheetComputation, sectionID, itemID string) map[string]string {
	fields := map[string]string{
		"section_subtotal": comp.SectionTotalsByID(sectionID).GrandTotal.StringFixed(MoneyPlaces),
		"grand_total":      comp.Sheet.GrandTotal.StringFixed(MoneyPlaces),
	}
	if r, ok := comp.Result(itemID); ok {
		fields["discount_amount"] = r.DiscountAmount.StringFixed(MoneyPlaces)
		fields["unit_cost"] = r.UnitCost.StringFixed(MoneyPlaces)
		fields["total_cost"] = r.TotalCost.StringFixed(MoneyPlaces)
		fields["unit_cost_base"] = r.UnitCostBase.StringFixed(MoneyPlaces)
		fields["base_unit_price"] = r.BaseUnitPrice.StringFixed(MoneyPlaces)
		fields["base_total_price"] = r.BaseTotalPrice.StringFixed(MoneyPlaces)
		fields["final_unit_price"] = r.FinalUnitPrice.StringFixed(MoneyPlaces)
		fields["final_total_price"] = r.FinalTotalPrice.StringFixed(MoneyPlaces)
	}
	return fields
}

// ComputedSheetFields builds the payload returned after an inline edit to a
// sheet-wide parameter. A sheet-level change can reprice every item that
// inherits it, so only the rollups are returned.
func ComputedSheetFields(comp *SheetComputation) map[string]string {
	return map[string]string{
		"grand_total":         comp.Sheet.GrandTotal.StringFixed(MoneyPlaces),
		"grand_total_display": comp.GrandTotalDisplay.StringFixed(MoneyPlaces),
		"total_cost":          comp.Sheet.TotalCost.StringFixed(MoneyPlaces),
		"total_base_cost":     comp.Sheet.TotalBaseCost.StringFixed(MoneyPlaces),
		"total_discount":      comp.Sheet.TotalDiscount.StringFixed(MoneyPlaces),
		"total_margin":        comp.Sheet.TotalMargin.StringFixed(MoneyPlaces),
		"total_shipping":      comp.Sheet.TotalShipping.StringFixed(MoneyPlaces),
		"total_customs":       comp.Sheet.TotalCustoms.StringFixed(MoneyPlaces),
		"total_finances":      comp.Sheet.TotalFinances.StringFixed(MoneyPlaces),
		"total_installation":  comp.Sheet.TotalInstallation.StringFixed(MoneyPlaces),
	}
}
