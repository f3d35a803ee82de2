package core

import (
	"github.com/pkg/errors"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MoneyFormatter formats whole currency amounts for display, eg. "₹ 4,500" for INR in en-IN.
type MoneyFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

func NewMoneyFormatter(code, locale string) (*MoneyFormatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing currency %q", code)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing locale %q", locale)
	}
	return &MoneyFormatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

func (f *MoneyFormatter) Format(amount int64) string {
	return f.printer.Sprintf("%v %d", currency.Symbol(f.unit), amount)
}

func (f *MoneyFormatter) Code() string { return f.unit.String() }
