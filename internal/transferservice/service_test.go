package transferservice

import (
	"context"
	"errors"
	"testing"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/notification"
	"github.com/go-petr/pet-wallet/internal/walletdelivery"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/moneypkg"
	"github.com/go-petr/pet-wallet/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// recordingDispatcher captures dispatched events; fail makes every dispatch
// return an error.
type recordingDispatcher struct {
	events []notification.Event
	fail   bool
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, event notification.Event) error {
	d.events = append(d.events, event)

	if d.fail {
		return errors.New("dispatch failed")
	}

	return nil
}

func randomWallet(ownerID, currency string, balance moneypkg.Amount) domain.Wallet {
	return domain.Wallet{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Currency: currency,
		Balance:  balance,
		IsActive: true,
	}
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	actor := randompkg.UserID()
	peer := randompkg.UserID()

	fromWallet := randomWallet(actor, currencypkg.USD, 100_0000_0000)
	toWallet := randomWallet(peer, currencypkg.USD, 0)
	eurWallet := randomWallet(peer, currencypkg.EUR, 0)
	foreignWallet := randomWallet(peer, currencypkg.USD, 0)

	amount := moneypkg.Amount(10_0000_0000)

	completed := domain.Transaction{
		ID:           uuid.New(),
		FromUserID:   actor,
		ToUserID:     peer,
		FromWalletID: fromWallet.ID,
		ToWalletID:   toWallet.ID,
		Amount:       amount,
		Type:         domain.TypeTransfer,
		Status:       domain.StatusCompleted,
	}

	testCases := []struct {
		name          string
		fromWalletID  uuid.UUID
		toWalletID    uuid.UUID
		amount        moneypkg.Amount
		buildStubs    func(repo *MockRepo, ws *walletdelivery.MockService)
		checkResponse func(t *testing.T, got domain.TransferResult, err error)
	}{
		{
			name:         "OK",
			fromWalletID: fromWallet.ID,
			toWalletID:   toWallet.ID,
			amount:       amount,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				ws.EXPECT().Get(gomock.Any(), fromWallet.ID).Return(fromWallet, nil)
				ws.EXPECT().Get(gomock.Any(), toWallet.ID).Return(toWallet, nil)

				repo.EXPECT().
					Apply(gomock.Any(), domain.PostingParams{
						FromUserID:   actor,
						ToUserID:     peer,
						FromWalletID: fromWallet.ID,
						ToWalletID:   toWallet.ID,
						Amount:       amount,
						Type:         domain.TypeTransfer,
						Status:       domain.StatusCompleted,
					}).
					Times(1).
					Return(completed, nil)

				// Fresh balances are re-read after the posting commits.
				debited := fromWallet
				debited.Balance = fromWallet.Balance.Sub(amount)
				credited := toWallet
				credited.Balance = toWallet.Balance.Add(amount)

				ws.EXPECT().Get(gomock.Any(), fromWallet.ID).Return(debited, nil)
				ws.EXPECT().Get(gomock.Any(), toWallet.ID).Return(credited, nil)
			},
			checkResponse: func(t *testing.T, got domain.TransferResult, err error) {
				require.NoError(t, err)
				require.Equal(t, completed, got.Transaction)
				require.Equal(t, fromWallet.Balance.Sub(amount), got.FromWallet.Balance)
				require.Equal(t, toWallet.Balance.Add(amount), got.ToWallet.Balance)
			},
		},
		{
			name:         "InvalidAmount",
			fromWalletID: fromWallet.ID,
			toWalletID:   toWallet.ID,
			amount:       0,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:         "SameWallet",
			fromWalletID: fromWallet.ID,
			toWalletID:   fromWallet.ID,
			amount:       amount,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrSameWallet)
			},
		},
		{
			name:         "NotOwner",
			fromWalletID: foreignWallet.ID,
			toWalletID:   toWallet.ID,
			amount:       amount,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				ws.EXPECT().Get(gomock.Any(), foreignWallet.ID).Return(foreignWallet, nil)
				repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidOwner)
			},
		},
		{
			name:         "CurrencyMismatch",
			fromWalletID: fromWallet.ID,
			toWalletID:   eurWallet.ID,
			amount:       amount,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				ws.EXPECT().Get(gomock.Any(), fromWallet.ID).Return(fromWallet, nil)
				ws.EXPECT().Get(gomock.Any(), eurWallet.ID).Return(eurWallet, nil)
				repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrCurrencyMismatch)
			},
		},
		{
			name:         "WalletNotFound",
			fromWalletID: fromWallet.ID,
			toWalletID:   toWallet.ID,
			amount:       amount,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				ws.EXPECT().Get(gomock.Any(), fromWallet.ID).Return(domain.Wallet{}, domain.ErrWalletNotFound)
				repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrWalletNotFound)
			},
		},
		{
			name:         "InsufficientBalance",
			fromWalletID: fromWallet.ID,
			toWalletID:   toWallet.ID,
			amount:       amount,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				ws.EXPECT().Get(gomock.Any(), fromWallet.ID).Return(fromWallet, nil)
				ws.EXPECT().Get(gomock.Any(), toWallet.ID).Return(toWallet, nil)
				repo.EXPECT().
					Apply(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Transaction{}, domain.ErrInsufficientBalance)
			},
			checkResponse: func(t *testing.T, got domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrInsufficientBalance)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			ws := walletdelivery.NewMockService(ctrl)
			tc.buildStubs(repo, ws)

			service := New(repo, ws, &recordingDispatcher{})

			got, err := service.Transfer(context.Background(), actor, tc.fromWalletID, tc.toWalletID, tc.amount, "")
			tc.checkResponse(t, got, err)
		})
	}
}

func TestTransferNotifiesRecipient(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actor := randompkg.UserID()
	peer := randompkg.UserID()

	fromWallet := randomWallet(actor, currencypkg.USD, 100_0000_0000)
	toWallet := randomWallet(peer, currencypkg.USD, 0)

	completed := domain.Transaction{
		ID:     uuid.New(),
		Amount: 1_0000_0000,
		Type:   domain.TypeTransfer,
		Status: domain.StatusCompleted,
	}

	repo := NewMockRepo(ctrl)
	ws := walletdelivery.NewMockService(ctrl)

	ws.EXPECT().Get(gomock.Any(), fromWallet.ID).Return(fromWallet, nil).Times(2)
	ws.EXPECT().Get(gomock.Any(), toWallet.ID).Return(toWallet, nil).Times(2)
	repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(completed, nil)

	dispatcher := &recordingDispatcher{}
	service := New(repo, ws, dispatcher)

	_, err := service.Transfer(context.Background(), actor, fromWallet.ID, toWallet.ID, 1_0000_0000, "")
	require.NoError(t, err)

	require.Len(t, dispatcher.events, 1)
	require.Equal(t, notification.KindTransferCompleted, dispatcher.events[0].Kind)
	require.Equal(t, peer, dispatcher.events[0].UserID)
	require.Equal(t, completed.ID, dispatcher.events[0].TransactionID)
}

func TestTransferSurvivesDispatchFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actor := randompkg.UserID()

	fromWallet := randomWallet(actor, currencypkg.USD, 100_0000_0000)
	toWallet := randomWallet(randompkg.UserID(), currencypkg.USD, 0)

	repo := NewMockRepo(ctrl)
	ws := walletdelivery.NewMockService(ctrl)

	ws.EXPECT().Get(gomock.Any(), fromWallet.ID).Return(fromWallet, nil).Times(2)
	ws.EXPECT().Get(gomock.Any(), toWallet.ID).Return(toWallet, nil).Times(2)
	repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(domain.Transaction{ID: uuid.New()}, nil)

	service := New(repo, ws, &recordingDispatcher{fail: true})

	_, err := service.Transfer(context.Background(), actor, fromWallet.ID, toWallet.ID, 1_0000_0000, "")
	require.NoError(t, err)
}

func TestRecordDeposit(t *testing.T) {
	t.Parallel()

	actor := randompkg.UserID()
	wallet := randomWallet(actor, currencypkg.BTC, 0)

	amount := moneypkg.Amount(2_0000_0000)

	testCases := []struct {
		name          string
		amount        moneypkg.Amount
		buildStubs    func(repo *MockRepo, ws *walletdelivery.MockService)
		checkResponse func(t *testing.T, got domain.Transaction, err error)
	}{
		{
			name:   "OK",
			amount: amount,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				ws.EXPECT().Get(gomock.Any(), wallet.ID).Return(wallet, nil)

				repo.EXPECT().
					Apply(gomock.Any(), domain.PostingParams{
						ToUserID:       actor,
						ToWalletID:     wallet.ID,
						Amount:         amount,
						Type:           domain.TypeDeposit,
						Status:         domain.StatusCompleted,
						ExternalTxHash: "0xdeadbeef",
					}).
					Times(1).
					Return(domain.Transaction{
						ID:     uuid.New(),
						Amount: amount,
						Type:   domain.TypeDeposit,
						Status: domain.StatusCompleted,
					}, nil)
			},
			checkResponse: func(t *testing.T, got domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.TypeDeposit, got.Type)
				require.Equal(t, domain.StatusCompleted, got.Status)
			},
		},
		{
			name:   "InvalidAmount",
			amount: -1,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			ws := walletdelivery.NewMockService(ctrl)
			tc.buildStubs(repo, ws)

			service := New(repo, ws, &recordingDispatcher{})

			got, err := service.RecordDeposit(context.Background(), actor, wallet.ID, tc.amount, "0xdeadbeef", "")
			tc.checkResponse(t, got, err)
		})
	}
}

func TestRecordWithdrawal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actor := randompkg.UserID()
	wallet := randomWallet(actor, currencypkg.USD, 50_0000_0000)

	amount := moneypkg.Amount(20_0000_0000)

	repo := NewMockRepo(ctrl)
	ws := walletdelivery.NewMockService(ctrl)

	ws.EXPECT().Get(gomock.Any(), wallet.ID).Return(wallet, nil)
	repo.EXPECT().
		Apply(gomock.Any(), domain.PostingParams{
			FromUserID:   actor,
			FromWalletID: wallet.ID,
			Amount:       amount,
			Type:         domain.TypeWithdrawal,
			Status:       domain.StatusCompleted,
			Description:  "rent",
		}).
		Return(domain.Transaction{
			ID:     uuid.New(),
			Amount: amount,
			Type:   domain.TypeWithdrawal,
			Status: domain.StatusCompleted,
		}, nil)

	dispatcher := &recordingDispatcher{}
	service := New(repo, ws, dispatcher)

	got, err := service.RecordWithdrawal(context.Background(), actor, wallet.ID, amount, "", "rent")
	require.NoError(t, err)
	require.Equal(t, domain.TypeWithdrawal, got.Type)

	require.Len(t, dispatcher.events, 1)
	require.Equal(t, notification.KindWithdrawalCompleted, dispatcher.events[0].Kind)
}

func TestInitiateCryptoWithdrawal(t *testing.T) {
	t.Parallel()

	actor := randompkg.UserID()
	wallet := randomWallet(actor, currencypkg.BTC, 5_0000_0000)

	amount := moneypkg.Amount(1_0000_0000)
	destination := randompkg.Address()

	testCases := []struct {
		name          string
		amount        moneypkg.Amount
		destination   string
		buildStubs    func(repo *MockRepo, ws *walletdelivery.MockService)
		checkResponse func(t *testing.T, got domain.Transaction, err error)
	}{
		{
			name:        "OK",
			amount:      amount,
			destination: destination,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				ws.EXPECT().Get(gomock.Any(), wallet.ID).Return(wallet, nil)

				repo.EXPECT().
					Apply(gomock.Any(), domain.PostingParams{
						FromUserID:   actor,
						FromWalletID: wallet.ID,
						Amount:       amount,
						Type:         domain.TypeWithdrawal,
						Status:       domain.StatusPending,
						Description:  "withdraw to " + destination,
					}).
					Times(1).
					Return(domain.Transaction{
						ID:     uuid.New(),
						Amount: amount,
						Type:   domain.TypeWithdrawal,
						Status: domain.StatusPending,
					}, nil)
			},
			checkResponse: func(t *testing.T, got domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.StatusPending, got.Status)
			},
		},
		{
			name:        "MissingAddress",
			amount:      amount,
			destination: "",
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrMissingAddress)
			},
		},
		{
			name:        "InvalidAmount",
			amount:      0,
			destination: destination,
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				repo.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			ws := walletdelivery.NewMockService(ctrl)
			tc.buildStubs(repo, ws)

			service := New(repo, ws, &recordingDispatcher{})

			got, err := service.InitiateCryptoWithdrawal(context.Background(), actor, wallet.ID, tc.amount, tc.destination)
			tc.checkResponse(t, got, err)
		})
	}
}

func TestConfirmCryptoWithdrawal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := randompkg.UserID()
	wallet := randomWallet(owner, currencypkg.BTC, 5_0000_0000)
	transactionID := uuid.New()

	confirmed := domain.Transaction{
		ID:             transactionID,
		FromUserID:     owner,
		FromWalletID:   wallet.ID,
		Amount:         1_0000_0000,
		Type:           domain.TypeWithdrawal,
		Status:         domain.StatusCompleted,
		ExternalTxHash: "0xabc",
	}

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Confirm(gomock.Any(), transactionID, "0xabc").Return(confirmed, nil)

	ws := walletdelivery.NewMockService(ctrl)
	ws.EXPECT().Get(gomock.Any(), wallet.ID).Return(wallet, nil)

	dispatcher := &recordingDispatcher{}
	service := New(repo, ws, dispatcher)

	got, err := service.ConfirmCryptoWithdrawal(context.Background(), transactionID, "0xabc")
	require.NoError(t, err)
	require.Equal(t, confirmed, got)

	require.Len(t, dispatcher.events, 1)
	require.Equal(t, notification.KindWithdrawalCompleted, dispatcher.events[0].Kind)
	require.Equal(t, owner, dispatcher.events[0].UserID)
	require.Equal(t, currencypkg.BTC, dispatcher.events[0].Currency)
}

func TestFailCryptoWithdrawal(t *testing.T) {
	t.Parallel()

	owner := randompkg.UserID()
	wallet := randomWallet(owner, currencypkg.ETH, 5_0000_0000)
	transactionID := uuid.New()

	failed := domain.Transaction{
		ID:           transactionID,
		FromUserID:   owner,
		FromWalletID: wallet.ID,
		Amount:       1_0000_0000,
		Type:         domain.TypeWithdrawal,
		Status:       domain.StatusFailed,
	}

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, ws *walletdelivery.MockService)
		checkResponse func(t *testing.T, got domain.Transaction, err error, events []notification.Event)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				repo.EXPECT().Reverse(gomock.Any(), transactionID).Return(failed, nil)
				ws.EXPECT().Get(gomock.Any(), wallet.ID).Return(wallet, nil)
			},
			checkResponse: func(t *testing.T, got domain.Transaction, err error, events []notification.Event) {
				require.NoError(t, err)
				require.Equal(t, domain.StatusFailed, got.Status)
				require.Len(t, events, 1)
				require.Equal(t, notification.KindWithdrawalFailed, events[0].Kind)
				require.Equal(t, currencypkg.ETH, events[0].Currency)
			},
		},
		{
			name: "EventSurvivesWalletLookupFailure",
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				repo.EXPECT().Reverse(gomock.Any(), transactionID).Return(failed, nil)
				ws.EXPECT().
					Get(gomock.Any(), wallet.ID).
					Return(domain.Wallet{}, errorspkg.ErrInternal)
			},
			checkResponse: func(t *testing.T, got domain.Transaction, err error, events []notification.Event) {
				require.NoError(t, err)
				require.Len(t, events, 1)
				require.Empty(t, events[0].Currency)
			},
		},
		{
			name: "NotPending",
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				repo.EXPECT().
					Reverse(gomock.Any(), transactionID).
					Return(domain.Transaction{}, domain.ErrTransactionNotPending)
			},
			checkResponse: func(t *testing.T, got domain.Transaction, err error, events []notification.Event) {
				require.ErrorIs(t, err, domain.ErrTransactionNotPending)
				require.Empty(t, events)
			},
		},
		{
			name: "NotFound",
			buildStubs: func(repo *MockRepo, ws *walletdelivery.MockService) {
				repo.EXPECT().
					Reverse(gomock.Any(), transactionID).
					Return(domain.Transaction{}, domain.ErrTransactionNotFound)
			},
			checkResponse: func(t *testing.T, got domain.Transaction, err error, events []notification.Event) {
				require.ErrorIs(t, err, domain.ErrTransactionNotFound)
				require.Empty(t, events)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			ws := walletdelivery.NewMockService(ctrl)
			tc.buildStubs(repo, ws)

			dispatcher := &recordingDispatcher{}
			service := New(repo, ws, dispatcher)

			got, err := service.FailCryptoWithdrawal(context.Background(), transactionID)
			tc.checkResponse(t, got, err, dispatcher.events)
		})
	}
}
