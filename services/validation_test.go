package services

import "testing"

func TestSheetForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    SheetForm
		wantErr bool
	}{
		{"valid", SheetForm{Title: "Sheet", OutputCurrency: "SAR", Status: "draft"}, false},
		{"missing title", SheetForm{OutputCurrency: "SAR", Status: "draft"}, true},
		{"lowercase currency", SheetForm{Title: "Sheet", OutputCurrency: "sar", Status: "draft"}, true},
		{"bad status", SheetForm{Title: "Sheet", OutputCurrency: "SAR", Status: "open"}, true},
		{"final status", SheetForm{Title: "Sheet", OutputCurrency: "USD", Status: "final"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRateForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    RateForm
		wantErr bool
	}{
		{"valid", RateForm{CurrencyCode: "USD", CurrencyName: "US Dollar", Rate: "1.0"}, false},
		{"missing code", RateForm{Rate: "1.0"}, true},
		{"lowercase code", RateForm{CurrencyCode: "usd", Rate: "1.0"}, true},
		{"zero rate", RateForm{CurrencyCode: "USD", Rate: "0"}, true},
		{"negative rate", RateForm{CurrencyCode: "USD", Rate: "-3.75"}, true},
		{"non-numeric rate", RateForm{CurrencyCode: "USD", Rate: "abc"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSectionForm_Validate(t *testing.T) {
	if err := (SectionForm{SectionNumber: "1", Title: "Cameras"}).Validate(); err != nil {
		t.Errorf("valid section rejected: %v", err)
	}
	if err := (SectionForm{SectionNumber: "", Title: "Cameras"}).Validate(); err == nil {
		t.Error("expected error for missing section number")
	}
	if err := (SectionForm{SectionNumber: "1", Title: ""}).Validate(); err == nil {
		t.Error("expected error for missing title")
	}
}

func TestItemForm_Validate(t *testing.T) {
	valid := ItemForm{
		ItemNumber:       "1.1",
		Description:      "Dome camera",
		Quantity:         "4",
		Unit:             "EA",
		SupplierCurrency: "USD",
		BaseUnitCost:     "412.50",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid item rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(f *ItemForm)
	}{
		{"missing description", func(f *ItemForm) { f.Description = "" }},
		{"negative quantity", func(f *ItemForm) { f.Quantity = "-1" }},
		{"non-numeric quantity", func(f *ItemForm) { f.Quantity = "four" }},
		{"unknown unit", func(f *ItemForm) { f.Unit = "Kg" }},
		{"negative cost", func(f *ItemForm) { f.BaseUnitCost = "-5" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			if err := f.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestItemForm_ZeroQuantityAllowed(t *testing.T) {
	f := ItemForm{
		ItemNumber:       "1.1",
		Description:      "Placeholder",
		Quantity:         "0",
		Unit:             "LOT",
		SupplierCurrency: "SAR",
		BaseUnitCost:     "0",
	}
	if err := f.Validate(); err != nil {
		t.Errorf("zero quantity/cost should be allowed: %v", err)
	}
}
