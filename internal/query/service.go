package query

import (
	"context"
	"time"

	"github.com/sango-pay/sango_pay/internal/ledger"
)

// Service answers read-only balance and history lookups. It never mutates
// either store.
type Service struct {
	accounts ledger.AccountStore
	log      ledger.TransactionLog
}

// NewService builds a query service over the two stores.
func NewService(accounts ledger.AccountStore, log ledger.TransactionLog) *Service {
	return &Service{accounts: accounts, log: log}
}

// Balance is a point-in-time read of an account's funds.
type Balance struct {
	AccountID string
	Amount    int64
	AsOf      time.Time
}

// Balance returns the current balance for the account.
func (s *Service) Balance(ctx context.Context, accountID string) (Balance, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return Balance{}, err
	}
	return Balance{AccountID: account.ID, Amount: account.Balance, AsOf: time.Now().UTC()}, nil
}

// Transactions lists ledger entries touching the account inside the optional
// inclusive window, ascending by id.
func (s *Service) Transactions(ctx context.Context, accountID string, from, to *time.Time) ([]ledger.Transaction, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return nil, err
	}
	return s.log.ByAccount(ctx, accountID, from, to)
}
