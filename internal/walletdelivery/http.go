// Package walletdelivery manages delivery layer of wallets.
package walletdelivery

import (
	"context"
	"errors"
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

// Service provides service layer interface needed by wallet delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package walletdelivery
type Service interface {
	Ensure(ctx context.Context, ownerID, currency, address string) (domain.Wallet, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Wallet, error)
	List(ctx context.Context, ownerID string) ([]domain.Wallet, error)
	Deactivate(ctx context.Context, id uuid.UUID) (domain.Wallet, error)
	PortfolioValue(ctx context.Context, ownerID, baseCurrency string) (moneypkg.Amount, error)
	Distribution(ctx context.Context, ownerID string) ([]domain.CurrencyShare, error)
}

// Handler facilitates wallet delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns wallet handler.
func NewHandler(ws Service) *Handler {
	return &Handler{service: ws}
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

type walletData struct {
	Wallet domain.Wallet `json:"wallet"`
}

type ensureRequest struct {
	Currency string `json:"currency" binding:"required,currency"`
	Address  string `json:"address"`
}

// Ensure handles http request to get or create the user's wallet for a currency.
func (h *Handler) Ensure(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req ensureRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	wallet, err := h.service.Ensure(ctx, authPayload.UserID, req.Currency, req.Address)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrCurrencyNotSupported:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: walletData{wallet}})
}

// List handles http request to list the user's wallets.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	wallets, err := h.service.List(ctx, authPayload.UserID)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: wallets})
}

type getRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Get handles http request to get one of the user's wallets.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	wallet, err := h.service.Get(ctx, uuid.MustParse(req.ID))
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrWalletNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	if wallet.OwnerID != authPayload.UserID && authPayload.Role != tokenpkg.RoleAdmin {
		gctx.JSON(http.StatusForbidden, web.Error(domain.ErrInvalidOwner))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: walletData{wallet}})
}

type portfolioRequest struct {
	Base string `form:"base" binding:"omitempty,currency"`
}

type portfolioData struct {
	Base  string          `json:"base"`
	Total moneypkg.Amount `json:"total"`
}

// Portfolio handles http request to get the user's total portfolio value.
func (h *Handler) Portfolio(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req portfolioRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	if req.Base == "" {
		req.Base = "USD"
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	total, err := h.service.PortfolioValue(ctx, authPayload.UserID, req.Base)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrCurrencyNotSupported:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: portfolioData{Base: req.Base, Total: total}})
}

// Distribution handles http request to get the user's holdings distribution.
func (h *Handler) Distribution(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	shares, err := h.service.Distribution(ctx, authPayload.UserID)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: shares})
}

type deactivateRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Deactivate handles http request to deactivate a wallet. Admin only.
func (h *Handler) Deactivate(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req deactivateRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	wallet, err := h.service.Deactivate(ctx, uuid.MustParse(req.ID))
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrWalletNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: walletData{wallet}})
}
