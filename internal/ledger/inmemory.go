package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type inMemoryAccounts struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewInMemoryAccounts creates a concurrency-safe in-memory account store
// useful for unit tests and local development.
func NewInMemoryAccounts() AccountStore {
	return &inMemoryAccounts{accounts: make(map[string]Account)}
}

func (s *inMemoryAccounts) Get(_ context.Context, id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return account, nil
}

func (s *inMemoryAccounts) Create(_ context.Context, initialBalance int64) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account := Account{
		ID:        uuid.NewString(),
		Balance:   initialBalance,
		CreatedAt: time.Now().UTC(),
	}
	s.accounts[account.ID] = account
	return account, nil
}

func (s *inMemoryAccounts) ApplyDelta(_ context.Context, id string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return 0, ErrAccountNotFound
	}
	next := account.Balance + delta
	if next < 0 {
		return 0, ErrInsufficientFunds
	}
	account.Balance = next
	s.accounts[id] = account
	return next, nil
}

type inMemoryLog struct {
	mu      sync.RWMutex
	nextID  int64
	entries []Transaction
}

// NewInMemoryLog creates an append-only in-memory transaction log.
func NewInMemoryLog() TransactionLog {
	return &inMemoryLog{nextID: 1}
}

func (l *inMemoryLog) Append(_ context.Context, tx Transaction) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx.ID = l.nextID
	tx.CreatedAt = time.Now().UTC()
	l.nextID++
	l.entries = append(l.entries, tx)
	return tx, nil
}

func (l *inMemoryLog) ByAccount(_ context.Context, accountID string, from, to *time.Time) ([]Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var matched []Transaction
	for _, tx := range l.entries {
		if tx.SenderID != accountID && tx.ReceiverID != accountID {
			continue
		}
		if from != nil && tx.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && tx.CreatedAt.After(*to) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched, nil
}
