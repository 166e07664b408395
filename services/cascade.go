package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Percent is a percentage parameter on a line item that either inherits the
// sheet-wide default or overrides it. Values are whole-number percents
// (40 means 40%). The two states are explicit so that an override of 0 is
// never confused with "inherit".
type Percent struct {
	overridden bool
	value      decimal.Decimal
}

// Inherit returns a Percent that falls back to the sheet default.
func Inherit() Percent {
	return Percent{}
}

// Override returns a Percent that replaces the sheet default.
func Override(v decimal.Decimal) Percent {
	return Percent{overridden: true, value: v}
}

// ParsePercent interprets a stored override field: the empty string means
// inherit, anything else must be a decimal whole-number percent.
func ParsePercent(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Inherit(), nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Percent{}, fmt.Errorf("invalid percent %q: %w", s, err)
	}
	return Override(v), nil
}

// Overridden reports whether the value replaces the sheet default.
func (p Percent) Overridden() bool {
	return p.overridden
}

// Whole returns the whole-number percent actually in effect given the
// sheet default, for display.
func (p Percent) Whole(sheetDefault decimal.Decimal) decimal.Decimal {
	if p.overridden {
		return p.value
	}
	return sheetDefault
}

// Resolve returns the effective fraction used in arithmetic: the override
// if present, else the sheet default, divided by 100. Pure; re-evaluated on
// every read.
func (p Percent) Resolve(sheetDefault decimal.Decimal) decimal.Decimal {
	return p.Whole(sheetDefault).Div(decimal.NewFromInt(100))
}

// String renders the stored form of the field: empty when inheriting.
func (p Percent) String() string {
	if !p.overridden {
		return ""
	}
	return p.value.String()
}

// SheetDefaults carries a sheet's six default percentages. They are always
// defined so every line item has a fallback.
type SheetDefaults struct {
	Margin       decimal.Decimal
	Discount     decimal.Decimal
	Shipping     decimal.Decimal
	Customs      decimal.Decimal
	Finances     decimal.Decimal
	Installation decimal.Decimal
}

// EffectiveRates are the six fractions actually used for one line item
// after resolving overrides against the sheet defaults.
type EffectiveRates struct {
	Margin       decimal.Decimal
	Discount     decimal.Decimal
	Shipping     decimal.Decimal
	Customs      decimal.Decimal
	Finances     decimal.Decimal
	Installation decimal.Decimal
}

// AddonFraction is the sum of the four add-on fractions (shipping, customs,
// finances, installation) applied on top of the margin-based price.
func (r EffectiveRates) AddonFraction() decimal.Decimal {
	return r.Shipping.Add(r.Customs).Add(r.Finances).Add(r.Installation)
}
