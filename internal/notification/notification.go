// Package notification delivers fire-and-forget ledger events to downstream systems.
package notification

import (
	"context"

	"github.com/go-petr/pet-wallet/pkg/moneypkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event kinds emitted by the transfer engine.
const (
	KindTransferCompleted   = "transfer_completed"
	KindDepositCompleted    = "deposit_completed"
	KindWithdrawalCompleted = "withdrawal_completed"
	KindWithdrawalPending   = "withdrawal_pending"
	KindWithdrawalFailed    = "withdrawal_failed"
)

// Event describes a completed or pending ledger operation.
type Event struct {
	Kind          string
	UserID        string
	TransactionID uuid.UUID
	Amount        moneypkg.Amount
	Currency      string
}

// Dispatcher delivers events to downstream systems.
//
// A failing dispatcher must never roll back or block the ledger operation
// that produced the event.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

// LogDispatcher is a stub implementation that writes events to the logger.
type LogDispatcher struct{}

// NewLogDispatcher returns a logging dispatcher stub.
func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

// Dispatch writes the event to the context logger.
func (d *LogDispatcher) Dispatch(ctx context.Context, event Event) error {
	zerolog.Ctx(ctx).Info().
		Str("kind", event.Kind).
		Str("user_id", event.UserID).
		Str("transaction_id", event.TransactionID.String()).
		Str("amount", event.Amount.String()).
		Str("currency", event.Currency).
		Msg("notification")

	return nil
}
