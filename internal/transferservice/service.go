// Package transferservice manages business logic layer of money movement.
//
// Every balance change it causes goes through the ledger repository's atomic
// posting primitive; the service validates ownership and shape, the store
// verifies balances and wallet state under lock.
package transferservice

import (
	"context"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/notification"
	"github.com/go-petr/pet-wallet/internal/walletdelivery"
	"github.com/go-petr/pet-wallet/pkg/moneypkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Apply(ctx context.Context, arg domain.PostingParams) (domain.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
	Reverse(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
	Confirm(ctx context.Context, id uuid.UUID, externalTxHash string) (domain.Transaction, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo          Repo
	walletService walletdelivery.Service
	dispatcher    notification.Dispatcher
}

// New returns transfer service struct to manage money movement business logic.
func New(tr Repo, ws walletdelivery.Service, nd notification.Dispatcher) *Service {
	return &Service{
		repo:          tr,
		walletService: ws,
		dispatcher:    nd,
	}
}

// ownedWallet resolves the wallet and checks it belongs to the acting user.
// Balance and active state are verified later, under the store's lock.
func (s *Service) ownedWallet(ctx context.Context, actorUserID string, walletID uuid.UUID) (domain.Wallet, error) {
	wallet, err := s.walletService.Get(ctx, walletID)
	if err != nil {
		return domain.Wallet{}, err
	}

	if wallet.OwnerID != actorUserID {
		return domain.Wallet{}, domain.ErrInvalidOwner
	}

	return wallet, nil
}

// notify dispatches a ledger event. Dispatch failures are logged and dropped;
// the underlying operation has already committed.
func (s *Service) notify(ctx context.Context, event notification.Event) {
	if s.dispatcher == nil {
		return
	}

	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("kind", event.Kind).Msg("notification dispatch failed")
	}
}

// walletCurrency resolves the wallet's currency for notification events.
// Empty when the lookup fails; the event still goes out.
func (s *Service) walletCurrency(ctx context.Context, walletID uuid.UUID) string {
	wallet, err := s.walletService.Get(ctx, walletID)
	if err != nil {
		return ""
	}

	return wallet.Currency
}

// Transfer moves amount between two internal wallets as one atomic operation.
func (s *Service) Transfer(ctx context.Context, actorUserID string, fromWalletID, toWalletID uuid.UUID, amount moneypkg.Amount, description string) (domain.TransferResult, error) {
	if !amount.IsPositive() {
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	if fromWalletID == toWalletID {
		return domain.TransferResult{}, domain.ErrSameWallet
	}

	fromWallet, err := s.ownedWallet(ctx, actorUserID, fromWalletID)
	if err != nil {
		return domain.TransferResult{}, err
	}

	toWallet, err := s.walletService.Get(ctx, toWalletID)
	if err != nil {
		return domain.TransferResult{}, err
	}

	if fromWallet.Currency != toWallet.Currency {
		return domain.TransferResult{}, domain.ErrCurrencyMismatch
	}

	transaction, err := s.repo.Apply(ctx, domain.PostingParams{
		FromUserID:   fromWallet.OwnerID,
		ToUserID:     toWallet.OwnerID,
		FromWalletID: fromWalletID,
		ToWalletID:   toWalletID,
		Amount:       amount,
		Type:         domain.TypeTransfer,
		Status:       domain.StatusCompleted,
		Description:  description,
	})
	if err != nil {
		return domain.TransferResult{}, err
	}

	s.notify(ctx, notification.Event{
		Kind:          notification.KindTransferCompleted,
		UserID:        toWallet.OwnerID,
		TransactionID: transaction.ID,
		Amount:        amount,
		Currency:      fromWallet.Currency,
	})

	fromWallet, err = s.walletService.Get(ctx, fromWalletID)
	if err != nil {
		return domain.TransferResult{}, err
	}

	toWallet, err = s.walletService.Get(ctx, toWalletID)
	if err != nil {
		return domain.TransferResult{}, err
	}

	return domain.TransferResult{
		Transaction: transaction,
		FromWallet:  fromWallet,
		ToWallet:    toWallet,
	}, nil
}

// RecordDeposit credits the wallet with an externally sourced amount.
//
// Deposits are confirmed on record; external confirmation workflows belong to
// the settlement provider.
func (s *Service) RecordDeposit(ctx context.Context, actorUserID string, walletID uuid.UUID, amount moneypkg.Amount, externalTxHash, description string) (domain.Transaction, error) {
	if !amount.IsPositive() {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	wallet, err := s.ownedWallet(ctx, actorUserID, walletID)
	if err != nil {
		return domain.Transaction{}, err
	}

	transaction, err := s.repo.Apply(ctx, domain.PostingParams{
		ToUserID:       actorUserID,
		ToWalletID:     walletID,
		Amount:         amount,
		Type:           domain.TypeDeposit,
		Status:         domain.StatusCompleted,
		ExternalTxHash: externalTxHash,
		Description:    description,
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	s.notify(ctx, notification.Event{
		Kind:          notification.KindDepositCompleted,
		UserID:        actorUserID,
		TransactionID: transaction.ID,
		Amount:        amount,
		Currency:      wallet.Currency,
	})

	return transaction, nil
}

// RecordWithdrawal debits the wallet towards an external destination,
// settling synchronously.
func (s *Service) RecordWithdrawal(ctx context.Context, actorUserID string, walletID uuid.UUID, amount moneypkg.Amount, externalTxHash, description string) (domain.Transaction, error) {
	if !amount.IsPositive() {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	wallet, err := s.ownedWallet(ctx, actorUserID, walletID)
	if err != nil {
		return domain.Transaction{}, err
	}

	transaction, err := s.repo.Apply(ctx, domain.PostingParams{
		FromUserID:     actorUserID,
		FromWalletID:   walletID,
		Amount:         amount,
		Type:           domain.TypeWithdrawal,
		Status:         domain.StatusCompleted,
		ExternalTxHash: externalTxHash,
		Description:    description,
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	s.notify(ctx, notification.Event{
		Kind:          notification.KindWithdrawalCompleted,
		UserID:        actorUserID,
		TransactionID: transaction.ID,
		Amount:        amount,
		Currency:      wallet.Currency,
	})

	return transaction, nil
}

// InitiateCryptoWithdrawal debits the wallet immediately but leaves the
// transaction pending until the settlement provider confirms or rejects it.
func (s *Service) InitiateCryptoWithdrawal(ctx context.Context, actorUserID string, walletID uuid.UUID, amount moneypkg.Amount, destinationAddress string) (domain.Transaction, error) {
	if !amount.IsPositive() {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	if destinationAddress == "" {
		return domain.Transaction{}, domain.ErrMissingAddress
	}

	wallet, err := s.ownedWallet(ctx, actorUserID, walletID)
	if err != nil {
		return domain.Transaction{}, err
	}

	transaction, err := s.repo.Apply(ctx, domain.PostingParams{
		FromUserID:   actorUserID,
		FromWalletID: walletID,
		Amount:       amount,
		Type:         domain.TypeWithdrawal,
		Status:       domain.StatusPending,
		Description:  "withdraw to " + destinationAddress,
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	s.notify(ctx, notification.Event{
		Kind:          notification.KindWithdrawalPending,
		UserID:        actorUserID,
		TransactionID: transaction.ID,
		Amount:        amount,
		Currency:      wallet.Currency,
	})

	return transaction, nil
}

// ConfirmCryptoWithdrawal marks a pending withdrawal settled on chain.
// Called by the settlement provider; idempotent.
func (s *Service) ConfirmCryptoWithdrawal(ctx context.Context, transactionID uuid.UUID, externalTxHash string) (domain.Transaction, error) {
	transaction, err := s.repo.Confirm(ctx, transactionID, externalTxHash)
	if err != nil {
		return domain.Transaction{}, err
	}

	s.notify(ctx, notification.Event{
		Kind:          notification.KindWithdrawalCompleted,
		UserID:        transaction.FromUserID,
		TransactionID: transaction.ID,
		Amount:        transaction.Amount,
		Currency:      s.walletCurrency(ctx, transaction.FromWalletID),
	})

	return transaction, nil
}

// FailCryptoWithdrawal compensates a pending withdrawal rejected by the
// settlement provider, crediting the debited amount back. Idempotent.
func (s *Service) FailCryptoWithdrawal(ctx context.Context, transactionID uuid.UUID) (domain.Transaction, error) {
	transaction, err := s.repo.Reverse(ctx, transactionID)
	if err != nil {
		return domain.Transaction{}, err
	}

	s.notify(ctx, notification.Event{
		Kind:          notification.KindWithdrawalFailed,
		UserID:        transaction.FromUserID,
		TransactionID: transaction.ID,
		Amount:        transaction.Amount,
		Currency:      s.walletCurrency(ctx, transaction.FromWalletID),
	})

	return transaction, nil
}
