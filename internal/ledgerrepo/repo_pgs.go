// Package ledgerrepo manages repository layer of the transaction ledger.
//
// It is the only writer of wallet balances. Every balance change happens
// inside Apply or Reverse, which re-read balances under row locks and commit
// the balance deltas together with the transaction record as one unit.
package ledgerrepo

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/moneypkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns ledger RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{db: db, conn: db}
}

const transactionColumns = `
	id, from_user_id, to_user_id, from_wallet_id, to_wallet_id,
	amount, fee, type, status, external_tx_hash, description,
	created_at, completed_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		t           domain.Transaction
		fromUser    sql.NullString
		toUser      sql.NullString
		fromWallet  uuid.NullUUID
		toWallet    uuid.NullUUID
		completedAt sql.NullTime
	)

	err := row.Scan(
		&t.ID,
		&fromUser,
		&toUser,
		&fromWallet,
		&toWallet,
		&t.Amount,
		&t.Fee,
		&t.Type,
		&t.Status,
		&t.ExternalTxHash,
		&t.Description,
		&t.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return t, err
	}

	t.FromUserID = fromUser.String
	t.ToUserID = toUser.String
	t.FromWalletID = fromWallet.UUID
	t.ToWalletID = toWallet.UUID
	t.CompletedAt = completedAt.Time

	return t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

const recordQuery = `
INSERT INTO
    transactions (id, from_user_id, to_user_id, from_wallet_id, to_wallet_id,
                  amount, fee, type, status, external_tx_hash, description, completed_at)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + transactionColumns

// Record inserts a transaction row without touching any balance.
//
// It exists for postings that move no internal balance; everything else must
// go through Apply.
func (r *RepoPGS) Record(ctx context.Context, arg domain.PostingParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if !arg.Amount.IsPositive() {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	var completedAt sql.NullTime
	if arg.Status == domain.StatusCompleted {
		completedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}

	row := r.db.QueryRowContext(ctx, recordQuery,
		uuid.New(),
		nullString(arg.FromUserID),
		nullString(arg.ToUserID),
		nullUUID(arg.FromWalletID),
		nullUUID(arg.ToWalletID),
		arg.Amount,
		arg.Fee,
		arg.Type,
		arg.Status,
		arg.ExternalTxHash,
		arg.Description,
		completedAt,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("Record(ctx, %+v)", arg)
		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE
    (from_user_id = $1 OR to_user_id = $1)
    AND ($2 = '' OR type = $2)
    AND ($3 = '' OR status = $3)
ORDER BY created_at DESC, id DESC
LIMIT $4 OFFSET $5
`

// List returns the user's transactions newest first.
//
// Pagination is offset based and stable only in the absence of concurrent
// inserts between pages.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery,
		arg.UserID,
		string(arg.Type),
		string(arg.Status),
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const lockWalletQuery = `
SELECT balance, is_active
FROM wallets
WHERE id = $1
FOR UPDATE
`

const addBalanceQuery = `
UPDATE wallets
SET balance = balance + $1, updated_at = now()
WHERE id = $2
`

type lockedWallet struct {
	balance  moneypkg.Amount
	isActive bool
}

func lockWallet(ctx context.Context, tx *sql.Tx, id uuid.UUID) (lockedWallet, error) {
	var w lockedWallet

	err := tx.QueryRowContext(ctx, lockWalletQuery, id).Scan(&w.balance, &w.isActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		return w, err
	}

	return w, nil
}

// Apply executes one posting as a single database transaction.
//
// Wallet rows are locked in ascending id order so that two concurrent
// postings over the same wallet pair cannot deadlock. Balances are re-read
// under the locks; validation failures leave the ledger untouched and create
// no transaction record.
func (r *RepoPGS) Apply(ctx context.Context, arg domain.PostingParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if !arg.Amount.IsPositive() {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	if arg.FromWalletID == arg.ToWalletID {
		return domain.Transaction{}, domain.ErrSameWallet
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	defer func() { _ = tx.Rollback() }()

	internal := make([]uuid.UUID, 0, 2)
	if arg.FromWalletID != uuid.Nil {
		internal = append(internal, arg.FromWalletID)
	}

	if arg.ToWalletID != uuid.Nil {
		internal = append(internal, arg.ToWalletID)
	}

	sort.Slice(internal, func(i, j int) bool {
		return internal[i].String() < internal[j].String()
	})

	locked := make(map[uuid.UUID]lockedWallet, len(internal))

	for _, id := range internal {
		w, err := lockWallet(ctx, tx, id)
		if err != nil {
			if err == domain.ErrWalletNotFound {
				return domain.Transaction{}, err
			}

			l.Error().Err(err).Send()

			return domain.Transaction{}, errorspkg.ErrInternal
		}

		if !w.isActive {
			return domain.Transaction{}, domain.ErrWalletInactive
		}

		locked[id] = w
	}

	if arg.FromWalletID != uuid.Nil {
		if locked[arg.FromWalletID].balance.LessThan(arg.Amount) {
			return domain.Transaction{}, domain.ErrInsufficientBalance
		}
	}

	// The deltas are applied in the same lock order they were acquired in.
	deltas := map[uuid.UUID]moneypkg.Amount{
		arg.FromWalletID: -arg.Amount,
		arg.ToWalletID:   arg.Amount,
	}

	for _, id := range internal {
		if _, err := tx.ExecContext(ctx, addBalanceQuery, deltas[id], id); err != nil {
			l.Error().Err(err).Send()
			return domain.Transaction{}, errorspkg.ErrInternal
		}
	}

	t, err := NewTxRepoPGS(tx).Record(ctx, arg)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}

const getForUpdateQuery = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE id = $1
FOR UPDATE
`

const setStatusQuery = `
UPDATE transactions
SET status = $2, completed_at = $3, external_tx_hash = $4
WHERE id = $1
RETURNING ` + transactionColumns

// Reverse compensates a pending posting and marks it failed.
//
// It credits back every balance delta the posting applied. Calling it again
// once the transaction is already failed is a no-op returning the stored row,
// so the settlement provider may safely retry.
func (r *RepoPGS) Reverse(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	defer func() { _ = tx.Rollback() }()

	t, err := scanTransaction(tx.QueryRowContext(ctx, getForUpdateQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return domain.Transaction{}, errorspkg.ErrInternal
	}

	if t.Status == domain.StatusFailed {
		return t, nil
	}

	if t.Status != domain.StatusPending {
		return domain.Transaction{}, domain.ErrTransactionNotPending
	}

	// Undo the original deltas under the same ordered locking discipline.
	internal := make([]uuid.UUID, 0, 2)
	if t.FromWalletID != uuid.Nil {
		internal = append(internal, t.FromWalletID)
	}

	if t.ToWalletID != uuid.Nil {
		internal = append(internal, t.ToWalletID)
	}

	sort.Slice(internal, func(i, j int) bool {
		return internal[i].String() < internal[j].String()
	})

	deltas := map[uuid.UUID]moneypkg.Amount{
		t.FromWalletID: t.Amount,
		t.ToWalletID:   -t.Amount,
	}

	for _, walletID := range internal {
		if _, err := lockWallet(ctx, tx, walletID); err != nil {
			l.Error().Err(err).Send()
			return domain.Transaction{}, errorspkg.ErrInternal
		}

		if _, err := tx.ExecContext(ctx, addBalanceQuery, deltas[walletID], walletID); err != nil {
			l.Error().Err(err).Send()
			return domain.Transaction{}, errorspkg.ErrInternal
		}
	}

	completedAt := sql.NullTime{Time: time.Now().UTC(), Valid: true}

	t, err = scanTransaction(tx.QueryRowContext(ctx, setStatusQuery, id, domain.StatusFailed, completedAt, t.ExternalTxHash))
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}

// Confirm marks a pending posting completed, storing the external hash.
//
// Confirming an already completed transaction is a no-op returning the
// stored row.
func (r *RepoPGS) Confirm(ctx context.Context, id uuid.UUID, externalTxHash string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	defer func() { _ = tx.Rollback() }()

	t, err := scanTransaction(tx.QueryRowContext(ctx, getForUpdateQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return domain.Transaction{}, errorspkg.ErrInternal
	}

	if t.Status == domain.StatusCompleted {
		return t, nil
	}

	if t.Status != domain.StatusPending {
		return domain.Transaction{}, domain.ErrTransactionNotPending
	}

	if externalTxHash == "" {
		externalTxHash = t.ExternalTxHash
	}

	completedAt := sql.NullTime{Time: time.Now().UTC(), Valid: true}

	t, err = scanTransaction(tx.QueryRowContext(ctx, setStatusQuery, id, domain.StatusCompleted, completedAt, externalTxHash))
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}
