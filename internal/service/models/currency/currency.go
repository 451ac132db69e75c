package currency

import (
	"database/sql/driver"
	"errors"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
)

var ErrInvalidCurrency = errors.New("invalid currency")

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

// ParseCurrency parses s. An empty string defaults to EUR, the only currency the shop prices in.
func ParseCurrency(s string) (Currency, error) {
	switch s {
	case "", CurrencyEUR.String():
		return CurrencyEUR, nil
	default:
		return "", ErrInvalidCurrency
	}
}
