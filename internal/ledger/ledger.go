package ledger

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAccountNotFound occurs when an operation references an account
	// that was never created.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds occurs when a debit would drive an account
	// balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStoreUnavailable indicates the backing store failed at the I/O
	// level. The store never retries; that is the caller's call.
	ErrStoreUnavailable = errors.New("store unavailable")
)

const (
	// KindDeposit marks funds entering an account from outside the system.
	KindDeposit = "deposit"
	// KindWithdrawal marks funds leaving an account to outside the system.
	KindWithdrawal = "withdrawal"
	// KindTransfer marks funds moving between two accounts.
	KindTransfer = "transfer"
)

// Account holds a non-negative balance in integer minor units.
type Account struct {
	ID        string
	Balance   int64
	CreatedAt time.Time
}

// Transaction is one immutable ledger entry. For deposits and withdrawals
// SenderID equals ReceiverID and marks the affected account.
type Transaction struct {
	ID         int64
	Kind       string
	SenderID   string
	ReceiverID string
	Amount     int64
	CreatedAt  time.Time
}

// AccountStore persists account balances. ApplyDelta is the only mutation
// path after creation and must be atomic with respect to concurrent callers
// on the same account.
type AccountStore interface {
	Get(ctx context.Context, id string) (Account, error)
	Create(ctx context.Context, initialBalance int64) (Account, error)
	ApplyDelta(ctx context.Context, id string, delta int64) (int64, error)
}

// TransactionLog is the append-only audit trail. Append assigns the next
// monotonically increasing id and the entry timestamp; entries are never
// updated or deleted.
type TransactionLog interface {
	Append(ctx context.Context, tx Transaction) (Transaction, error)
	ByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]Transaction, error)
}
