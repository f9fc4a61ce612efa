// Package format renders amounts for people.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is the currency all amounts are in.
var Currency = currency.MustParseISO("KES")

var printer = message.NewPrinter(language.English)

// Amount formats an amount with two decimals and thousands separators,
// prefixed with the currency code, e.g. "KES 1,234.50".
func Amount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%s %v", Currency, number.Decimal(f, number.Scale(2)))
}

// Percent formats a percentage with one decimal, e.g. "72.5%".
func Percent(d decimal.Decimal) string {
	f, _ := d.Round(1).Float64()
	return printer.Sprintf("%v%%", number.Decimal(f, number.Scale(1)))
}
