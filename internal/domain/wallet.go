// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/go-petr/pet-wallet/pkg/moneypkg"
	"github.com/google/uuid"
)

var (
	// ErrWalletNotFound indicates that the wallet is not found.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletAlreadyExists indicates that the owner already has a wallet for the currency.
	ErrWalletAlreadyExists = errors.New("wallet for this currency already exists")
	// ErrWalletInactive indicates that the wallet has been deactivated.
	ErrWalletInactive = errors.New("wallet is inactive")
	// ErrInvalidOwner indicates that the wallet does not belong to the acting user.
	ErrInvalidOwner = errors.New("wallet does not belong to user")
	// ErrCurrencyNotSupported indicates an unknown currency code.
	ErrCurrencyNotSupported = errors.New("currency is not supported")
)

// Wallet holds a user's balance for a specific currency.
//
// Balance is never mutated outside the ledger's atomic posting primitive.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Currency  string          `json:"currency"`
	Balance   moneypkg.Amount `json:"balance"`
	Address   string          `json:"address,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateWalletParams is the input data to create a wallet.
type CreateWalletParams struct {
	OwnerID  string `json:"owner_id"`
	Currency string `json:"currency"`
	Address  string `json:"address"`
}

// CurrencyShare describes one currency's slice of a user's holdings.
//
// Percentage is a decimal string with two fractional digits. Shares are
// computed over raw balances without exchange-rate conversion.
type CurrencyShare struct {
	Currency   string          `json:"currency"`
	Balance    moneypkg.Amount `json:"balance"`
	Percentage string          `json:"percentage"`
}
