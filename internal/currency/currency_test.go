package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConvert(t *testing.T) {
	c := Default()

	tests := []struct {
		amount   string
		from, to string
		want     string
	}{
		{"1000", "INR", "USD", "12"},
		{"1000", "INR", "inr", "1000"},
		{"12", "USD", "INR", "1000"},
		{"100", "INR", "JPY", "180"},
		{"1000", "", "EUR", "11"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			got, err := c.Convert(decimal.RequireFromString(tt.amount), tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Convert(%s %s->%s) = %s, want %s", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}

	if _, err := c.Convert(decimal.NewFromInt(1), "INR", "XYZ"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	c := Default()
	inr, _ := c.Lookup("INR")
	usd, _ := c.Lookup("usd")

	if got := Format(decimal.RequireFromString("1234567.5"), inr); got != "₹1,234,567.5" {
		t.Errorf("Format = %q", got)
	}
	if got := Format(decimal.RequireFromString("-12"), usd); got != "$12" {
		t.Errorf("Format = %q", got)
	}
}

func TestNewConverterRequiresBase(t *testing.T) {
	_, err := NewConverter([]Currency{{Code: "USD", Rate: decimal.NewFromInt(1)}})
	if err == nil {
		t.Error("expected error for table without base currency")
	}
}
