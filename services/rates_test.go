package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() RateCatalog {
	return NewRateCatalog(
		RateEntry{Code: "SAR", Rate: dec("3.75")},
		RateEntry{Code: "USD", Rate: dec("1")},
		RateEntry{Code: "EUR", Rate: dec("0.92")},
	)
}

func TestFactor(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name   string
		from   string
		to     string
		expect string
		ok     bool
	}{
		{"usd to sar", "USD", "SAR", "3.75", true},
		{"sar to usd", "SAR", "USD", "0.266667", true},
		{"eur to sar", "EUR", "SAR", "4.076087", true},
		{"same currency", "SAR", "SAR", "1", true},
		{"missing from", "JPY", "SAR", "1", false},
		{"missing to", "SAR", "JPY", "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := catalog.Factor(tt.from, tt.to)
			if ok != tt.ok {
				t.Errorf("Factor(%s, %s) ok = %v, want %v", tt.from, tt.to, ok, tt.ok)
			}
			if !got.Equal(dec(tt.expect)) {
				t.Errorf("Factor(%s, %s) = %s, want %s", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestFactor_SameCurrencyIgnoresCatalog(t *testing.T) {
	// A same-currency conversion is exactly 1 even for unknown codes
	catalog := NewRateCatalog()
	got, ok := catalog.Factor("JPY", "JPY")
	if !ok {
		t.Error("expected ok for same-currency factor")
	}
	if !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Factor(JPY, JPY) = %s, want 1", got)
	}
}

func TestFactor_ZeroRateFallsBack(t *testing.T) {
	catalog := NewRateCatalog(
		RateEntry{Code: "SAR", Rate: dec("3.75")},
		RateEntry{Code: "XXX", Rate: decimal.Zero},
	)
	got, ok := catalog.Factor("XXX", "SAR")
	if ok {
		t.Error("expected ok=false for zero source rate")
	}
	if !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("factor = %s, want fallback 1", got)
	}
}

func TestConvert(t *testing.T) {
	catalog := testCatalog()

	got, ok := catalog.Convert(dec("100"), "USD", "SAR")
	if !ok {
		t.Error("expected ok for USD -> SAR")
	}
	if !got.Equal(dec("375.00")) {
		t.Errorf("Convert(100, USD, SAR) = %s, want 375.00", got)
	}

	// Same-currency conversion returns the amount untouched
	amount := dec("123.456")
	got, ok = catalog.Convert(amount, "SAR", "SAR")
	if !ok || !got.Equal(amount) {
		t.Errorf("Convert same currency = %s, want %s", got, amount)
	}
}

func TestConvert_RoundsToMoneyPrecision(t *testing.T) {
	catalog := testCatalog()
	// 10 SAR -> USD: 10 * 0.266667 = 2.66667 -> 2.67
	got, ok := catalog.Convert(dec("10"), "SAR", "USD")
	if !ok {
		t.Fatal("expected ok")
	}
	if !got.Equal(dec("2.67")) {
		t.Errorf("Convert(10, SAR, USD) = %s, want 2.67", got)
	}
}

func TestCodes_Sorted(t *testing.T) {
	catalog := testCatalog()
	codes := catalog.Codes()
	want := []string{"EUR", "SAR", "USD"}
	if len(codes) != len(want) {
		t.Fatalf("Codes() returned %d codes, want %d", len(codes), len(want))
	}
	for i, code := range want {
		if codes[i] != code {
			t.Errorf("Codes()[%d] = %q, want %q", i, codes[i], code)
		}
	}
}

func TestNewRateCatalog_LaterDuplicateWins(t *testing.T) {
	catalog := NewRateCatalog(
		RateEntry{Code: "USD", Rate: dec("1")},
		RateEntry{Code: "USD", Rate: dec("1.5")},
	)
	rate, ok := catalog.Rate("USD")
	if !ok {
		t.Fatal("expected USD rate")
	}
	if !rate.Equal(dec("1.5")) {
		t.Errorf("rate = %s, want 1.5", rate)
	}
}
