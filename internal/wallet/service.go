package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/sango-pay/sango_pay/internal/ledger"
	"github.com/sango-pay/sango_pay/internal/notification"
)

// ErrInvalidAmount occurs when a caller submits a non-positive amount.
var ErrInvalidAmount = errors.New("amount must be positive")

// Service is the balance-mutation engine. Every operation holds the affected
// accounts' locks from before the balance change until the ledger append
// returns, so the check-update-log sequence appears atomic to other callers.
type Service struct {
	accounts ledger.AccountStore
	log      ledger.TransactionLog
	locks    *lockTable
	notifier notification.Notifier
}

// NewService builds a wallet engine over the given stores.
func NewService(accounts ledger.AccountStore, log ledger.TransactionLog, notifier notification.Notifier) *Service {
	return &Service{accounts: accounts, log: log, locks: newLockTable(), notifier: notifier}
}

// CreateAccount provisions a new account with a zero opening balance.
func (s *Service) CreateAccount(ctx context.Context) (ledger.Account, error) {
	return s.accounts.Create(ctx, 0)
}

// Deposit credits the account and appends a self-referencing ledger record.
func (s *Service) Deposit(ctx context.Context, accountID string, amount int64) (ledger.Transaction, error) {
	if amount <= 0 {
		return ledger.Transaction{}, ErrInvalidAmount
	}

	unlock := s.locks.acquire(accountID)
	defer unlock()

	if _, err := s.accounts.ApplyDelta(ctx, accountID, amount); err != nil {
		return ledger.Transaction{}, err
	}

	tx, err := s.log.Append(ctx, ledger.Transaction{
		Kind:       ledger.KindDeposit,
		SenderID:   accountID,
		ReceiverID: accountID,
		Amount:     amount,
	})
	if err != nil {
		// the credit must not remain observable without its record
		_, _ = s.accounts.ApplyDelta(ctx, accountID, -amount)
		return ledger.Transaction{}, err
	}
	return tx, nil
}

// Withdraw debits the account and appends a self-referencing ledger record.
// An overdraft attempt fails with ErrInsufficientFunds and leaves no trace.
func (s *Service) Withdraw(ctx context.Context, accountID string, amount int64) (ledger.Transaction, error) {
	if amount <= 0 {
		return ledger.Transaction{}, ErrInvalidAmount
	}

	unlock := s.locks.acquire(accountID)
	defer unlock()

	if _, err := s.accounts.ApplyDelta(ctx, accountID, -amount); err != nil {
		return ledger.Transaction{}, err
	}

	tx, err := s.log.Append(ctx, ledger.Transaction{
		Kind:       ledger.KindWithdrawal,
		SenderID:   accountID,
		ReceiverID: accountID,
		Amount:     amount,
	})
	if err != nil {
		_, _ = s.accounts.ApplyDelta(ctx, accountID, amount)
		return ledger.Transaction{}, err
	}
	return tx, nil
}

// Transfer moves amount from sender to receiver as one atomic unit: either
// both balance changes and the single ledger record happen, or none do.
// Transfers to the same account are allowed; they verify cover and record
// the movement without changing the balance.
func (s *Service) Transfer(ctx context.Context, senderID, receiverID string, amount int64) (ledger.Transaction, error) {
	if amount <= 0 {
		return ledger.Transaction{}, ErrInvalidAmount
	}

	unlock := s.locks.acquirePair(senderID, receiverID)
	defer unlock()

	sender, err := s.accounts.Get(ctx, senderID)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return ledger.Transaction{}, fmt.Errorf("sender: %w", err)
		}
		return ledger.Transaction{}, err
	}
	if _, err := s.accounts.Get(ctx, receiverID); err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return ledger.Transaction{}, fmt.Errorf("receiver: %w", err)
		}
		return ledger.Transaction{}, err
	}

	if senderID == receiverID {
		if sender.Balance < amount {
			return ledger.Transaction{}, ledger.ErrInsufficientFunds
		}
	} else {
		if _, err := s.accounts.ApplyDelta(ctx, senderID, -amount); err != nil {
			return ledger.Transaction{}, err
		}
		if _, err := s.accounts.ApplyDelta(ctx, receiverID, amount); err != nil {
			_, _ = s.accounts.ApplyDelta(ctx, senderID, amount)
			return ledger.Transaction{}, err
		}
	}

	tx, err := s.log.Append(ctx, ledger.Transaction{
		Kind:       ledger.KindTransfer,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
	})
	if err != nil {
		if senderID != receiverID {
			_, _ = s.accounts.ApplyDelta(ctx, receiverID, -amount)
			_, _ = s.accounts.ApplyDelta(ctx, senderID, amount)
		}
		return ledger.Transaction{}, err
	}

	if s.notifier != nil && senderID != receiverID {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferReceived,
			Destination: receiverID,
			Body:        fmt.Sprintf("You received %d from account %s", amount, senderID),
		})
	}

	return tx, nil
}
