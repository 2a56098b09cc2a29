// Package walletrepo manages repository layer of wallets.
//
// It never mutates balances; every balance change goes through the ledger
// repository's atomic posting primitive.
package walletrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/google/uuid"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates wallet repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns wallet RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const walletColumns = `id, owner_id, currency, balance, address, is_active, created_at, updated_at`

func scanWallet(row *sql.Row) (domain.Wallet, error) {
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

	return w, err
}

const createQuery = `
INSERT INTO
    wallets (id, owner_id, currency, address)
VALUES
    ($1, $2, $3, $4)
RETURNING ` + walletColumns

// Create creates a wallet with zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateWalletParams) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, uuid.New(), arg.OwnerID, arg.Currency, arg.Address)

	w, err := scanWallet(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "wallets_owner_currency_key" {
				return w, domain.ErrWalletAlreadyExists
			}
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const getQuery = `
SELECT ` + walletColumns + `
FROM wallets
WHERE id = $1
`

// Get returns the wallet with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	w, err := scanWallet(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		l.Error().Err(err).Send()

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const getByOwnerCurrencyQuery = `
SELECT ` + walletColumns + `
FROM wallets
WHERE owner_id = $1 AND currency = $2
`

// GetByOwnerCurrency returns the owner's wallet for the given currency.
func (r *RepoPGS) GetByOwnerCurrency(ctx context.Context, ownerID, currency string) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	w, err := scanWallet(r.db.QueryRowContext(ctx, getByOwnerCurrencyQuery, ownerID, currency))
	if err != nil {
		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		l.Error().Err(err).Send()

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const listQuery = `
SELECT ` + walletColumns + `
FROM wallets
WHERE owner_id = $1
ORDER BY created_at, id
`

// List returns all wallets of the given owner in creation order.
func (r *RepoPGS) List(ctx context.Context, ownerID string) ([]domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, ownerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Wallet{}

	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(
			&w.ID,
			&w.OwnerID,
			&w.Currency,
			&w.Balance,
			&w.Address,
			&w.IsActive,
			&w.CreatedAt,
			&w.UpdatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, w)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deactivateQuery = `
UPDATE wallets
SET is_active = false, updated_at = now()
WHERE id = $1
RETURNING ` + walletColumns

// Deactivate marks the wallet inactive. Wallets are never hard-deleted.
func (r *RepoPGS) Deactivate(ctx context.Context, id uuid.UUID) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	w, err := scanWallet(r.db.QueryRowContext(ctx, deactivateQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		l.Error().Err(err).Send()

		return w, errorspkg.ErrInternal
	}

	return w, nil
}
