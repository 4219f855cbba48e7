package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Money columns are numeric(10,2).
const MoneyScale = 2

var MaxMoney = decimal.New(9999999999, -MoneyScale)

var (
	ErrMoneyNotPositive = errors.New("must be greater than 0")
	ErrMoneyPrecision   = errors.New("must have at most 2 decimal places")
	ErrMoneyTooLarge    = errors.New("must not exceed 99999999.99")
)

// CheckMoney rejects amounts that would not survive storage unchanged:
// non-positive values, sub-cent fractions and values past the column range.
func CheckMoney(d decimal.Decimal) error {
	switch {
	case !d.IsPositive():
		return ErrMoneyNotPositive
	case !d.Equal(d.Round(MoneyScale)):
		return ErrMoneyPrecision
	case d.GreaterThan(MaxMoney):
		return ErrMoneyTooLarge
	}
	return nil
}
