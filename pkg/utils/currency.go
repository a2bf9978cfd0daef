package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatNumber renders d with Indonesian grouping, e.g. 56000 -> "56.000".
func FormatNumber(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	p := message.NewPrinter(language.Indonesian)
	return p.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// FormatRupiah renders d as an Indonesian rupiah amount, e.g. "Rp 56.000".
func FormatRupiah(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-Rp " + FormatNumber(d.Neg())
	}
	return "Rp " + FormatNumber(d)
}
