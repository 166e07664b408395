package services

import "testing"

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"zero", "0", "0.00"},
		{"small", "12.5", "12.50"},
		{"thousands", "1234.56", "1,234.56"},
		{"millions", "1234567.891", "1,234,567.89"},
		{"exactly three digits", "999", "999.00"},
		{"four digits", "1000", "1,000.00"},
		{"negative", "-1234.5", "-1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(dec(tt.input)); got != tt.expect {
				t.Errorf("FormatAmount(%s) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(dec("1563"), "SAR"); got != "1,563.00 SAR" {
		t.Errorf("FormatMoney = %q, want %q", got, "1,563.00 SAR")
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"1", "1"},
		{"24", "24"},
		{"2.5", "2.50"},
		{"0", "0"},
		{"420.25", "420.25"},
	}
	for _, tt := range tests {
		if got := FormatQty(dec(tt.input)); got != tt.expect {
			t.Errorf("FormatQty(%s) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
