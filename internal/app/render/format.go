package render

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"
)

// Formatter renders dates and money the way the documents are printed (pt-BR).
type Formatter struct {
	loc     *time.Location
	printer *message.Printer
}

func NewFormatter(timezone string) (Formatter, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Formatter{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return Formatter{
		loc:     loc,
		printer: message.NewPrinter(language.BrazilianPortuguese),
	}, nil
}

// defaultFormatter uses DefaultTimezone, or UTC if the zone database cannot load it.
func defaultFormatter() Formatter {
	f, err := NewFormatter(DefaultTimezone)
	if err != nil {
		return Formatter{loc: time.UTC, printer: message.NewPrinter(language.BrazilianPortuguese)}
	}
	return f
}

func (f Formatter) zero() bool { return f.loc == nil || f.printer == nil }

func (f Formatter) Date(t time.Time) string {
	return t.In(f.loc).Format(dateLayout)
}

func (f Formatter) DateTime(t time.Time) string {
	return t.In(f.loc).Format(dateTimeLayout)
}

// Money prints a value with two decimals and pt-BR separators, e.g. "R$ 1.800,50".
func (f Formatter) Money(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return "R$ " + f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}
