// Package randompkg provides functionality for generating random application common items.
package randompkg

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/go-petr/pet-wallet/pkg/currencypkg"
	"github.com/go-petr/pet-wallet/pkg/moneypkg"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// UserID generates a random user identifier.
func UserID() string {
	return "user_" + String(12)
}

// AmountBetween generates a random amount between min and max whole units.
func AmountBetween(min, max int) moneypkg.Amount {
	units := int64(min) + Intn(max-min)
	return moneypkg.Amount(units * 1e8)
}

// Currency generates a random supported currency code.
func Currency() string {
	return currencypkg.SupportedCurrencies[Intn(len(currencypkg.SupportedCurrencies))]
}

// HexString generates a random hex string of n bytes, used for mock
// deposit addresses and external transaction hashes.
func HexString(n int) string {
	b := make([]byte, n)

	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	return hex.EncodeToString(b)
}

// Address generates a random deposit address.
func Address() string {
	return "0x" + HexString(20)
}
