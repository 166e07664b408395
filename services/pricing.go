package services

import "github.com/shopspring/decimal"

// LineItemResult holds every figure the pricing pipeline produces for one
// line item, in the base currency. Intermediates are kept individually so
// breakdown displays and exports never have to re-derive them.
type LineItemResult struct {
	ItemID string

	// Rates actually applied, after the override cascade.
	Rates EffectiveRates

	DiscountAmount decimal.Decimal // per unit, supplier currency
	UnitCost       decimal.Decimal // base unit cost minus discount
	TotalCost      decimal.Decimal // unit cost * quantity

	ExchangeRate decimal.Decimal // supplier currency -> base
	RateMissing  bool            // fell back to factor 1
	UnitCostBase decimal.Decimal // unit cost converted to base currency

	BaseUnitPrice  decimal.Decimal // margin-marked-up unit price
	BaseTotalPrice decimal.Decimal

	AddonFraction   decimal.Decimal // shipping + customs + finances + installation
	FinalUnitPrice  decimal.Decimal
	FinalTotalPrice decimal.Decimal
}

// PriceLineItem runs the pricing pipeline for one line item. The evaluation
// order is fixed and every step is rounded to money precision before
// feeding the next, so recomputed figures reproduce historical quotes
// exactly:
//
//  1. discount amount  = base unit cost * discount
//  2. unit cost        = base unit cost - discount amount
//  3. total cost       = unit cost * quantity
//  4. exchange rate    = factor(supplier currency -> base currency)
//  5. unit cost (base) = unit cost * exchange rate
//  6. base unit price  = unit cost (base) / (1 - margin), capped at cost
//     when margin >= 100%
//  7. base total price = base unit price * quantity
//  8. add-on fraction  = shipping + customs + finances + installation
//  9. final unit price = base unit price + unit cost (base) * add-on fraction
//  10. final total price = final unit price * quantity
//
// The function is pure: identical inputs yield identical results.
func PriceLineItem(item LineItem, defaults SheetDefaults, catalog RateCatalog) LineItemResult {
	rates := item.Effective(defaults)

	discountAmount := item.BaseUnitCost.Mul(rates.Discount).Round(MoneyPlaces)
	unitCost := item.BaseUnitCost.Sub(discountAmount).Round(MoneyPlaces)
	totalCost := unitCost.Mul(item.Quantity).Round(MoneyPlaces)

	exchangeRate, rateOK := catalog.Factor(item.SupplierCurrency, BaseCurrency)
	unitCostBase := unitCost.Mul(exchangeRate).Round(MoneyPlaces)

	one := decimal.NewFromInt(1)
	var baseUnitPrice decimal.Decimal
	if rates.Margin.GreaterThanOrEqual(one) {
		// margin of 100% or more would divide by zero or flip the sign;
		// the price degrades to bare cost instead
		baseUnitPrice = unitCostBase
	} else {
		baseUnitPrice = unitCostBase.Div(one.Sub(rates.Margin)).Round(MoneyPlaces)
	}
	baseTotalPrice := baseUnitPrice.Mul(item.Quantity).Round(MoneyPlaces)

	addon := rates.AddonFraction()
	finalUnitPrice := baseUnitPrice.Add(unitCostBase.Mul(addon)).Round(MoneyPlaces)
	finalTotalPrice := finalUnitPrice.Mul(item.Quantity).Round(MoneyPlaces)

	return LineItemResult{
		ItemID:          item.ID,
		Rates:           rates,
		DiscountAmount:  discountAmount,
		UnitCost:        unitCost,
		TotalCost:       totalCost,
		ExchangeRate:    exchangeRate,
		RateMissing:     !rateOK,
		UnitCostBase:    unitCostBase,
		BaseUnitPrice:   baseUnitPrice,
		BaseTotalPrice:  baseTotalPrice,
		AddonFraction:   addon,
		FinalUnitPrice:  finalUnitPrice,
		FinalTotalPrice: finalTotalPrice,
	}
}
