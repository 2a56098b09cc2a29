// Package statementservice manages user-scoped transaction querying and export.
package statementservice

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/google/uuid"
)

// Listing page bounds.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrUnsupportedFormat indicates an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Repo provides data access layer interface needed by statement service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package statementservice
type Repo interface {
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
}

// Service facilitates statement service layer logic.
type Service struct {
	repo Repo
}

// New returns statement service struct to manage transaction queries and exports.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// Get returns the transaction if the user participates in it.
func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (domain.Transaction, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	if t.FromUserID != userID && t.ToUserID != userID {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}

	return t, nil
}

// List returns the user's transactions newest first, with optional type and
// status filters.
func (s *Service) List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	if arg.Limit <= 0 {
		arg.Limit = DefaultLimit
	}

	if arg.Limit > MaxLimit {
		arg.Limit = MaxLimit
	}

	if arg.Offset < 0 {
		arg.Offset = 0
	}

	return s.repo.List(ctx, arg)
}

// listAll pages through the user's complete transaction history.
func (s *Service) listAll(ctx context.Context, userID string) ([]domain.Transaction, error) {
	all := []domain.Transaction{}

	for offset := int32(0); ; offset += MaxLimit {
		page, err := s.repo.List(ctx, domain.ListTransactionsParams{
			UserID: userID,
			Limit:  MaxLimit,
			Offset: offset,
		})
		if err != nil {
			return nil, err
		}

		all = append(all, page...)

		if int32(len(page)) < MaxLimit {
			return all, nil
		}
	}
}

// Filename returns the export file name for the given format, embedding the
// export date.
func Filename(format string) string {
	return fmt.Sprintf("transactions_%s.%s", time.Now().Format("2006-01-02"), format)
}

// Export serializes the user's full transaction history to the given format.
// Pure formatting, no side effects.
func (s *Service) Export(ctx context.Context, userID, format string) ([]byte, string, error) {
	transactions, err := s.listAll(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case FormatCSV:
		data, err := exportCSV(transactions)
		return data, Filename(format), err
	case FormatJSON:
		data, err := json.Marshal(transactions)
		if err != nil {
			return nil, "", errorspkg.ErrInternal
		}

		return data, Filename(format), nil
	default:
		return nil, "", ErrUnsupportedFormat
	}
}

func exportCSV(transactions []domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	records := [][]string{{"ID", "Type", "Status", "Amount", "Fee", "Date", "Description"}}

	for _, t := range transactions {
		records = append(records, []string{
			t.ID.String(),
			string(t.Type),
			string(t.Status),
			t.Amount.String(),
			t.Fee.String(),
			t.CreatedAt.UTC().Format(time.RFC3339),
			t.Description,
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, errorspkg.ErrInternal
	}

	return buf.Bytes(), nil
}
