// Package helpers provides shared fixtures for integration and unit tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/moneypkg"
	"github.com/go-petr/pet-wallet/pkg/randompkg"
	"github.com/google/uuid"
)

const seedWalletQuery = `
INSERT INTO
    wallets (id, owner_id, currency, balance, address)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, owner_id, currency, balance, address, is_active, created_at, updated_at
`

// SeedWallet inserts a wallet with the given balance, bypassing the ledger.
// Test seeding only; production balances move exclusively through postings.
func SeedWallet(t *testing.T, db dbpkg.SQLInterface, ownerID, currency string, balance moneypkg.Amount) domain.Wallet {
	t.Helper()

	address := ""
	if currencypkg.IsCrypto(currency) {
		address = randompkg.Address()
	}

	row := db.QueryRowContext(context.Background(), seedWalletQuery,
		uuid.New(), ownerID, currency, balance, address)

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.OwnerID,
		&w.Currency,
		&w.Balance,
		&w.Address,
		&w.IsActive,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("SeedWallet(%v, %v, %v) returned error: %v", ownerID, currency, balance, err)
	}

	return w
}

const deactivateWalletQuery = `
UPDATE wallets SET is_active = false WHERE id = $1
`

// DeactivateWallet marks the seeded wallet inactive.
func DeactivateWallet(t *testing.T, db dbpkg.SQLInterface, id uuid.UUID) {
	t.Helper()

	if _, err := db.ExecContext(context.Background(), deactivateWalletQuery, id); err != nil {
		t.Fatalf("DeactivateWallet(%v) returned error: %v", id, err)
	}
}

// RandomWallet returns an in-memory wallet fixture for unit tests.
func RandomWallet(ownerID, currency string) domain.Wallet {
	return domain.Wallet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Currency:  currency,
		Balance:   randompkg.AmountBetween(100, 1_000),
		IsActive:  true,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
		UpdatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomTransaction returns an in-memory transaction fixture for unit tests.
func RandomTransaction(fromUserID, toUserID string, txType domain.TransactionType, status domain.TransactionStatus) domain.Transaction {
	return domain.Transaction{
		ID:         uuid.New(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     randompkg.AmountBetween(1, 100),
		Type:       txType,
		Status:     status,
		CreatedAt:  time.Now().Truncate(time.Second).UTC(),
	}
}
