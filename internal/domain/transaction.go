package domain

import (
	"errors"
	"time"

	"github.com/go-petr/pet-wallet/pkg/moneypkg"
	"github.com/google/uuid"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates a zero, negative or unparsable amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance indicates that the wallet does not carry sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameWallet indicates that the source and destination wallets are identical.
	ErrSameWallet = errors.New("source and destination wallets are the same")
	// ErrCurrencyMismatch indicates that the wallets hold different currencies.
	ErrCurrencyMismatch = errors.New("wallets currency mismatch")
	// ErrTransactionNotPending indicates that the transaction is already terminal.
	ErrTransactionNotPending = errors.New("transaction is not pending")
	// ErrMissingAddress indicates that a crypto withdrawal lacks a destination address.
	ErrMissingAddress = errors.New("destination address is required")
)

// TransactionType classifies a money movement.
type TransactionType string

// All transaction types.
const (
	TypeTransfer   TransactionType = "transfer"
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeExchange   TransactionType = "exchange"
)

// TransactionStatus is the settlement state of a transaction.
//
// pending may transition to completed, failed or cancelled; the other three
// are terminal. Parties and amount never change after creation.
type TransactionStatus string

// All transaction statuses.
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Transaction is the append-only record of a single money movement.
//
// A zero FromWalletID or ToWalletID marks the external side of a deposit or
// withdrawal. Empty user ids mark external parties likewise.
type Transaction struct {
	ID             uuid.UUID         `json:"id"`
	FromUserID     string            `json:"from_user_id,omitempty"`
	ToUserID       string            `json:"to_user_id,omitempty"`
	FromWalletID   uuid.UUID         `json:"from_wallet_id,omitempty"`
	ToWalletID     uuid.UUID         `json:"to_wallet_id,omitempty"`
	Amount         moneypkg.Amount   `json:"amount"`
	Fee            moneypkg.Amount   `json:"fee"`
	Type           TransactionType   `json:"type"`
	Status         TransactionStatus `json:"status"`
	ExternalTxHash string            `json:"external_tx_hash,omitempty"`
	Description    string            `json:"description,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	CompletedAt    time.Time         `json:"completed_at,omitempty"`
}

// PostingParams is the input data for the ledger's atomic posting primitive.
//
// FromWalletID == uuid.Nil makes it a credit-only posting (deposit);
// ToWalletID == uuid.Nil makes it a debit-only posting (withdrawal).
type PostingParams struct {
	FromUserID     string
	ToUserID       string
	FromWalletID   uuid.UUID
	ToWalletID     uuid.UUID
	Amount         moneypkg.Amount
	Fee            moneypkg.Amount
	Type           TransactionType
	Status         TransactionStatus
	ExternalTxHash string
	Description    string
}

// ListTransactionsParams is the input data to list a user's transactions.
//
// Empty Type or Status means no filtering on that field.
type ListTransactionsParams struct {
	UserID string
	Limit  int32
	Offset int32
	Type   TransactionType
	Status TransactionStatus
}

// TransferResult is the outcome of a completed internal transfer.
type TransferResult struct {
	Transaction Transaction `json:"transaction"`
	FromWallet  Wallet      `json:"from_wallet"`
	ToWallet    Wallet      `json:"to_wallet"`
}
