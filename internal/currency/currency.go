// Package currency converts and formats amounts for display using a static
// rate table. Stored amounts are always in the base currency (INR).
package currency

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Base is the currency every stored amount is denominated in.
const Base = "INR"

// ErrUnknownCurrency is returned for codes missing from the rate table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency is one entry of the rate table. Rate is units per one INR.
type Currency struct {
	Code   string
	Symbol string
	Name   string
	Rate   decimal.Decimal
}

var defaultTable = []Currency{
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee", Rate: decimal.NewFromInt(1)},
	{Code: "USD", Symbol: "$", Name: "US Dollar", Rate: decimal.RequireFromString("0.012")},
	{Code: "EUR", Symbol: "€", Name: "Euro", Rate: decimal.RequireFromString("0.011")},
	{Code: "GBP", Symbol: "£", Name: "British Pound", Rate: decimal.RequireFromString("0.0095")},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", Rate: decimal.RequireFromString("1.8")},
}

// Converter is an immutable rate table.
type Converter struct {
	list   []Currency
	byCode map[string]Currency
}

// NewConverter builds a converter over table. The table must contain Base.
func NewConverter(table []Currency) (*Converter, error) {
	c := &Converter{byCode: make(map[string]Currency, len(table))}
	for _, cur := range table {
		if !cur.Rate.IsPositive() {
			return nil, errors.New("currency: rate for " + cur.Code + " must be positive")
		}
		c.list = append(c.list, cur)
		c.byCode[strings.ToUpper(cur.Code)] = cur
	}
	if _, ok := c.byCode[Base]; !ok {
		return nil, errors.New("currency: table is missing " + Base)
	}
	return c, nil
}

// Default returns the built-in rate table.
func Default() *Converter {
	c, err := NewConverter(defaultTable)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns the table in display order.
func (c *Converter) List() []Currency {
	out := make([]Currency, len(c.list))
	copy(out, c.list)
	return out
}

// Lookup finds a currency by code (case-insensitive). An empty code
// resolves to Base.
func (c *Converter) Lookup(code string) (Currency, error) {
	if code == "" {
		code = Base
	}
	cur, ok := c.byCode[strings.ToUpper(code)]
	if !ok {
		return Currency{}, ErrUnknownCurrency
	}
	return cur, nil
}

// Convert scales amount from one currency to another via the base rate.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	src, err := c.Lookup(from)
	if err != nil {
		return decimal.Zero, err
	}
	dst, err := c.Lookup(to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Div(src.Rate).Mul(dst.Rate).Round(2), nil
}

// Format renders amount (already in cur) with its symbol and thousands
// separators, dropping trailing zero decimals.
func Format(amount decimal.Decimal, cur Currency) string {
	return cur.Symbol + humanize.CommafWithDigits(amount.Abs().InexactFloat64(), 2)
}
