// Package transferdelivery manages delivery layer of money movement.
package transferdelivery

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/moneypkg"
	"github.com/go-petr/pet-wallet/pkg/tokenpkg"
	"github.com/go-petr/pet-wallet/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, actorUserID string, fromWalletID, toWalletID uuid.UUID, amount moneypkg.Amount, description string) (domain.TransferResult, error)
	RecordDeposit(ctx context.Context, actorUserID string, walletID uuid.UUID, amount moneypkg.Amount, externalTxHash, description string) (domain.Transaction, error)
	RecordWithdrawal(ctx context.Context, actorUserID string, walletID uuid.UUID, amount moneypkg.Amount, externalTxHash, description string) (domain.Transaction, error)
	InitiateCryptoWithdrawal(ctx context.Context, actorUserID string, walletID uuid.UUID, amount moneypkg.Amount, destinationAddress string) (domain.Transaction, error)
	ConfirmCryptoWithdrawal(ctx context.Context, transactionID uuid.UUID, externalTxHash string) (domain.Transaction, error)
	FailCryptoWithdrawal(ctx context.Context, transactionID uuid.UUID) (domain.Transaction, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

func writeError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidOwner:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case domain.ErrWalletNotFound,
		domain.ErrTransactionNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrInvalidAmount,
		domain.ErrInsufficientBalance,
		domain.ErrSameWallet,
		domain.ErrCurrencyMismatch,
		domain.ErrWalletInactive,
		domain.ErrMissingAddress,
		domain.ErrTransactionNotPending:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

type transferRequest struct {
	FromWalletID string `json:"from_wallet_id" binding:"required,uuid"`
	ToWalletID   string `json:"to_wallet_id" binding:"required,uuid"`
	Amount       string `json:"amount" binding:"required"`
	Description  string `json:"description"`
}

// Create handles http request to transfer money between two wallets.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	amount, err := moneypkg.FromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Transfer(ctx,
		authPayload.UserID,
		uuid.MustParse(req.FromWalletID),
		uuid.MustParse(req.ToWalletID),
		amount,
		req.Description,
	)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: result})
}

type depositRequest struct {
	WalletID       string `json:"wallet_id" binding:"required,uuid"`
	Amount         string `json:"amount" binding:"required"`
	ExternalTxHash string `json:"external_tx_hash"`
	Description    string `json:"description"`
}

// Deposit handles http request to credit a wallet from an external source.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req depositRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	amount, err := moneypkg.FromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transaction, err := h.service.RecordDeposit(ctx,
		authPayload.UserID,
		uuid.MustParse(req.WalletID),
		amount,
		req.ExternalTxHash,
		req.Description,
	)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{transaction}})
}

type withdrawRequest struct {
	WalletID       string `json:"wallet_id" binding:"required,uuid"`
	Amount         string `json:"amount" binding:"required"`
	ExternalTxHash string `json:"external_tx_hash"`
	Description    string `json:"description"`
}

// Withdraw handles http request to debit a wallet towards an external
// destination with synchronous settlement.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req withdrawRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	amount, err := moneypkg.FromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transaction, err := h.service.RecordWithdrawal(ctx,
		authPayload.UserID,
		uuid.MustParse(req.WalletID),
		amount,
		req.ExternalTxHash,
		req.Description,
	)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{transaction}})
}

type cryptoWithdrawRequest struct {
	WalletID           string `json:"wallet_id" binding:"required,uuid"`
	Amount             string `json:"amount" binding:"required"`
	DestinationAddress string `json:"destination_address" binding:"required"`
}

// WithdrawCrypto handles http request to start an asynchronously settled
// crypto withdrawal. The wallet is debited immediately; the transaction stays
// pending until the settlement provider reports back.
func (h *Handler) WithdrawCrypto(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req cryptoWithdrawRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	amount, err := moneypkg.FromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transaction, err := h.service.InitiateCryptoWithdrawal(ctx,
		authPayload.UserID,
		uuid.MustParse(req.WalletID),
		amount,
		req.DestinationAddress,
	)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{transaction}})
}

type settlementURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type confirmRequest struct {
	ExternalTxHash string `json:"external_tx_hash"`
}

// Confirm handles the settlement provider callback for a settled withdrawal.
func (h *Handler) Confirm(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri settlementURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	// The settlement provider may POST without a body; every field is optional.
	var req confirmRequest
	if err := gctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	transaction, err := h.service.ConfirmCryptoWithdrawal(ctx, uuid.MustParse(uri.ID), req.ExternalTxHash)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{transaction}})
}

// Fail handles the settlement provider callback for a rejected withdrawal,
// triggering the compensating credit.
func (h *Handler) Fail(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri settlementURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	transaction, err := h.service.FailCryptoWithdrawal(ctx, uuid.MustParse(uri.ID))
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{transaction}})
}
