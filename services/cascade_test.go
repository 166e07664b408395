package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		overridden bool
		value      string
		wantErr    bool
	}{
		{"empty inherits", "", false, "", false},
		{"whitespace inherits", "  ", false, "", false},
		{"whole number", "40", true, "40", false},
		{"decimal", "12.5", true, "12.5", false},
		{"zero is an override", "0", true, "0", false},
		{"garbage", "abc", false, "", true},
		{"trailing junk", "40x", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePercent(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePercent(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePercent(%q) error: %v", tt.input, err)
			}
			if p.Overridden() != tt.overridden {
				t.Errorf("Overridden() = %v, want %v", p.Overridden(), tt.overridden)
			}
			if tt.overridden && !p.Whole(decimal.Zero).Equal(dec(tt.value)) {
				t.Errorf("Whole(0) = %s, want %s", p.Whole(decimal.Zero), tt.value)
			}
		})
	}
}

func TestPercent_Resolve(t *testing.T) {
	sheetDefault := dec("40")

	// Inherit falls back to the sheet default
	if got := Inherit().Resolve(sheetDefault); !got.Equal(dec("0.4")) {
		t.Errorf("inherit Resolve(40) = %s, want 0.4", got)
	}

	// Override replaces it
	if got := Override(dec("25")).Resolve(sheetDefault); !got.Equal(dec("0.25")) {
		t.Errorf("override Resolve = %s, want 0.25", got)
	}

	// An override of zero is a real zero, not a fallthrough
	if got := Override(decimal.Zero).Resolve(sheetDefault); !got.IsZero() {
		t.Errorf("zero override Resolve = %s, want 0", got)
	}
}

func TestPercent_StringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "0", "40", "12.5"} {
		p, err := ParsePercent(s)
		if err != nil {
			t.Fatalf("ParsePercent(%q) error: %v", s, err)
		}
		if p.String() != s {
			t.Errorf("ParsePercent(%q).String() = %q", s, p.String())
		}
	}
}

func TestEffective_MixedOverrides(t *testing.T) {
	defaults := SheetDefaults{
		Margin:       dec("40"),
		Discount:     dec("10"),
		Shipping:     dec("5"),
		Customs:      dec("2"),
		Finances:     dec("1"),
		Installation: dec("3"),
	}

	item := LineItem{
		Margin:   Override(dec("20")),
		Discount: Override(decimal.Zero),
		// remaining four inherit
	}

	rates := item.Effective(defaults)
	if !rates.Margin.Equal(dec("0.2")) {
		t.Errorf("Margin = %s, want 0.2", rates.Margin)
	}
	if !rates.Discount.IsZero() {
		t.Errorf("Discount = %s, want 0", rates.Discount)
	}
	if !rates.Shipping.Equal(dec("0.05")) {
		t.Errorf("Shipping = %s, want 0.05", rates.Shipping)
	}
	if !rates.Installation.Equal(dec("0.03")) {
		t.Errorf("Installation = %s, want 0.03", rates.Installation)
	}
}

func TestAddonFraction(t *testing.T) {
	rates := EffectiveRates{
		Shipping:     dec("0.05"),
		Customs:      dec("0.02"),
		Finances:     dec("0.01"),
		Installation: dec("0.03"),
		Margin:       dec("0.4"), // not part of the add-on
		Discount:     dec("0.1"), // not part of the add-on
	}
	if got := rates.AddonFraction(); !got.Equal(dec("0.11")) {
		t.Errorf("AddonFraction() = %s, want 0.11", got)
	}
}
