// Package money renders decimal amounts for people: dashboards, the
// assistant prompt and exported sheets.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	Symbol = "R$"
	masked = "R$ ••••"
)

// Formatter prints amounts with locale-aware separators and two decimals.
type Formatter struct {
	p *message.Printer
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// Default formats the way Brazilian freelancers read money: R$ 1.234,56.
var Default = NewFormatter(language.BrazilianPortuguese)

func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return f.p.Sprintf("%s %v", Symbol, number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatPrivate hides the figure when privacy is on.
func (f *Formatter) FormatPrivate(amount decimal.Decimal, privacy bool) string {
	if privacy {
		return masked
	}
	return f.Format(amount)
}

func Format(amount decimal.Decimal) string { return Default.Format(amount) }
