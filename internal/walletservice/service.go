// Package walletservice manages business logic layer of wallets.
package walletservice

import (
	"context"
	"errors"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
	"github.com/go-petr/pet-wallet/pkg/moneypkg"
	"github.com/go-petr/pet-wallet/pkg/randompkg"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by wallet service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package walletservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateWalletParams) (domain.Wallet, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Wallet, error)
	GetByOwnerCurrency(ctx context.Context, ownerID, currency string) (domain.Wallet, error)
	List(ctx context.Context, ownerID string) ([]domain.Wallet, error)
	Deactivate(ctx context.Context, id uuid.UUID) (domain.Wallet, error)
}

// Service facilitates wallet service layer logic.
type Service struct {
	repo Repo
}

// New returns wallet service struct to manage wallet business logic.
func New(wr Repo) *Service {
	return &Service{repo: wr}
}

// Create creates a wallet for the given owner and currency.
//
// It fails with domain.ErrWalletAlreadyExists if the owner already holds a
// wallet for that currency; use Ensure for the tolerant idiom.
func (s *Service) Create(ctx context.Context, ownerID, currency, address string) (domain.Wallet, error) {
	if !currencypkg.IsSupportedCurrency(currency) {
		return domain.Wallet{}, domain.ErrCurrencyNotSupported
	}

	return s.repo.Create(ctx, domain.CreateWalletParams{
		OwnerID:  ownerID,
		Currency: currency,
		Address:  address,
	})
}

// Ensure returns the owner's wallet for the currency, creating it on first use.
//
// Crypto wallets created without an explicit address get a placeholder deposit
// address; the real one comes from the settlement provider.
func (s *Service) Ensure(ctx context.Context, ownerID, currency, address string) (domain.Wallet, error) {
	if !currencypkg.IsSupportedCurrency(currency) {
		return domain.Wallet{}, domain.ErrCurrencyNotSupported
	}

	wallet, err := s.repo.GetByOwnerCurrency(ctx, ownerID, currency)
	if err == nil {
		return wallet, nil
	}

	if !errors.Is(err, domain.ErrWalletNotFound) {
		return domain.Wallet{}, err
	}

	if address == "" && currencypkg.IsCrypto(currency) {
		address = randompkg.Address()
	}

	wallet, err = s.Create(ctx, ownerID, currency, address)

	// Lost the create race to a concurrent request; the wallet exists now.
	if errors.Is(err, domain.ErrWalletAlreadyExists) {
		return s.repo.GetByOwnerCurrency(ctx, ownerID, currency)
	}

	return wallet, err
}

// Get returns the wallet with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Wallet, error) {
	return s.repo.Get(ctx, id)
}

// List returns the owner's wallets in creation order.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Wallet, error) {
	return s.repo.List(ctx, ownerID)
}

// Deactivate marks the wallet inactive.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (domain.Wallet, error) {
	return s.repo.Deactivate(ctx, id)
}

// PortfolioValue sums the owner's wallet balances.
//
// The sum is taken over raw balances with no exchange-rate conversion, so
// currencies are weighted equally regardless of their market value. This
// mirrors the product's current contract; a converting aggregation would need
// a rate source.
func (s *Service) PortfolioValue(ctx context.Context, ownerID, baseCurrency string) (moneypkg.Amount, error) {
	if !currencypkg.IsSupportedCurrency(baseCurrency) {
		return 0, domain.ErrCurrencyNotSupported
	}

	wallets, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	var total moneypkg.Amount
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}

	return total, nil
}

// Distribution returns each currency's share of the owner's total holdings.
//
// Shares carry the same equal-weighting caveat as PortfolioValue. A zero
// total yields an empty slice.
func (s *Service) Distribution(ctx context.Context, ownerID string) ([]domain.CurrencyShare, error) {
	wallets, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var total moneypkg.Amount
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}

	if !total.IsPositive() {
		return []domain.CurrencyShare{}, nil
	}

	hundred := decimal.NewFromInt(100)

	shares := make([]domain.CurrencyShare, 0, len(wallets))

	for _, w := range wallets {
		pct := w.Balance.Decimal().Div(total.Decimal()).Mul(hundred)

		shares = append(shares, domain.CurrencyShare{
			Currency:   w.Currency,
			Balance:    w.Balance,
			Percentage: pct.StringFixed(2),
		})
	}

	return shares, nil
}
