// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"github.com/go-playground/validator/v10"
)

// Constants for all supported currencies.
const (
	USD  = "USD"
	EUR  = "EUR"
	BTC  = "BTC"
	ETH  = "ETH"
	USDT = "USDT"
)

// MaxCodeLength bounds the length of a currency code.
const MaxCodeLength = 10

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	USD,
	EUR,
	BTC,
	ETH,
	USDT,
}

var cryptoCurrencies = map[string]bool{
	BTC:  true,
	ETH:  true,
	USDT: true,
}

// IsSupportedCurrency returns true if the currency is supported.
func IsSupportedCurrency(currency string) bool {
	if len(currency) == 0 || len(currency) > MaxCodeLength {
		return false
	}

	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}

	return false
}

// IsCrypto returns true if the currency settles on an external chain and
// therefore carries a deposit address.
func IsCrypto(currency string) bool {
	return cryptoCurrencies[currency]
}

// ValidCurrency validates whether the currency is supported.
var ValidCurrency validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return IsSupportedCurrency(c)
	}

	return false
}
