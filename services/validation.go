package services

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{2,10}$`)

// SheetForm carries the user-editable fields of a costing sheet create or
// edit request, before persistence.
type SheetForm struct {
	Title             string
	CustomerReference string
	OutputCurrency    string
	Status            string
}

// Validate checks the form and returns field-keyed errors.
func (f SheetForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.OutputCurrency, validation.Required, validation.Match(currencyCodePattern)),
		validation.Field(&f.Status, validation.Required, validation.In("draft", "final")),
	)
}

// RateForm carries an exchange-rate create or edit request.
type RateForm struct {
	CurrencyCode string
	CurrencyName string
	Rate         string
}

// Validate checks the form. The rate must parse as a positive decimal.
func (f RateForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.CurrencyCode, validation.Required, validation.Match(currencyCodePattern)),
		validation.Field(&f.Rate, validation.Required, validation.By(positiveDecimal)),
	)
}

// SectionForm carries a section create or edit request.
type SectionForm struct {
	SectionNumber string
	Title         string
}

// Validate checks the form.
func (f SectionForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.SectionNumber, validation.Required, validation.Length(1, 20)),
		validation.Field(&f.Title, validation.Required, validation.Length(1, 255)),
	)
}

// ItemForm carries a line-item create request. Numeric fields arrive as
// strings and are validated as decimals before anything is written.
type ItemForm struct {
	ItemNumber       string
	Description      string
	Quantity         string
	Unit             string
	SupplierCurrency string
	BaseUnitCost     string
}

// Validate checks the form.
func (f ItemForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&f.Quantity, validation.Required, validation.By(nonNegativeDecimal)),
		validation.Field(&f.Unit, validation.Required, validation.In(unitValues()...)),
		validation.Field(&f.SupplierCurrency, validation.Required, validation.Match(currencyCodePattern)),
		validation.Field(&f.BaseUnitCost, validation.Required, validation.By(nonNegativeDecimal)),
	)
}

// Units are the accepted units of measure for line items.
var Units = []string{"EA", "LOT", "Mtr", "Roll", "Set", "Pair", "Box", "Pkt"}

func unitValues() []any {
	vals := make([]any, len(Units))
	for i, u := range Units {
		vals[i] = u
	}
	return vals
}

func positiveDecimal(value any) error {
	s, _ := value.(string)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return validation.NewError("validation_decimal", "must be a valid decimal number")
	}
	if !d.IsPositive() {
		return validation.NewError("validation_decimal_positive", "must be greater than zero")
	}
	return nil
}

func nonNegativeDecimal(value any) error {
	s, _ := value.(string)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return validation.NewError("validation_decimal", "must be a valid decimal number")
	}
	if d.IsNegative() {
		return validation.NewError("validation_decimal_negative", "must be zero or greater")
	}
	return nil
}
