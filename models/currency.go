package models

import "strings"

// CurrencyType tags a currency as fiat money or a cryptocurrency.
type CurrencyType int

const (
	UnknownCurrencyType CurrencyType = iota
	Fiat
	Cryptocurrency
)

func (t CurrencyType) String() string {
	switch t {
	case Fiat:
		return "FIAT"
	case Cryptocurrency:
		return "CRYPTOCURRENCY"
	}
	return "UNKNOWN"
}

// ParseCurrencyType is the inverse of String. Unrecognized tags map to
// UnknownCurrencyType.
func ParseCurrencyType(s string) CurrencyType {
	switch strings.ToUpper(s) {
	case "FIAT":
		return Fiat
	case "CRYPTOCURRENCY":
		return Cryptocurrency
	}
	return UnknownCurrencyType
}

// Currency describes a tradable currency. Code is the canonical
// uppercase identifier ("BTC"). Currencies are registered once and not
// mutated afterwards.
type Currency struct {
	Code        string
	Name        string
	Description string
	Type        CurrencyType
}

func NewCurrency(code string, name string, description string, typ CurrencyType) *Currency {
	return &Currency{
		Code:        strings.ToUpper(code),
		Name:        name,
		Description: description,
		Type:        typ,
	}
}

// CurrencyPair is a (trading, settlement) currency combination.
// Trading is the currency being bought or sold and Settlement the
// currency it is paid with; both are currency codes.
type CurrencyPair struct {
	Trading    string `json:"trading"`
	Settlement string `json:"settlement"`
}

func (p CurrencyPair) String() string {
	return p.Trading + "/" + p.Settlement
}
