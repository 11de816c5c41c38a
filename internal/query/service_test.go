package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sango-pay/sango_pay/internal/ledger"
	"github.com/sango-pay/sango_pay/internal/wallet"
)

func TestBalanceAndTransactions(t *testing.T) {
	accounts := ledger.NewInMemoryAccounts()
	log := ledger.NewInMemoryLog()
	engine := wallet.NewService(accounts, log, nil)
	svc := NewService(accounts, log)

	ctx := context.Background()
	a, _ := accounts.Create(ctx, 0)
	b, _ := accounts.Create(ctx, 0)

	if _, err := engine.Deposit(ctx, a.ID, 10_000); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := engine.Transfer(ctx, a.ID, b.ID, 6_000); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	balance, err := svc.Balance(ctx, a.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Amount != 4_000 {
		t.Fatalf("expected balance 4000, got %d", balance.Amount)
	}

	entries, err := svc.Transactions(ctx, a.ID, nil, nil)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != ledger.KindDeposit || entries[1].Kind != ledger.KindTransfer {
		t.Fatalf("unexpected entry order: %+v", entries)
	}
}

func TestBalanceUnknownAccount(t *testing.T) {
	svc := NewService(ledger.NewInMemoryAccounts(), ledger.NewInMemoryLog())
	if _, err := svc.Balance(context.Background(), "missing"); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
	if _, err := svc.Transactions(context.Background(), "missing", nil, nil); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}

func TestTransactionsWindowIsInclusive(t *testing.T) {
	accounts := ledger.NewInMemoryAccounts()
	log := ledger.NewInMemoryLog()
	engine := wallet.NewService(accounts, log, nil)
	svc := NewService(accounts, log)

	ctx := context.Background()
	a, _ := accounts.Create(ctx, 0)
	tx, err := engine.Deposit(ctx, a.ID, 100)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	// a window whose bounds equal the record timestamp still matches it
	from, to := tx.CreatedAt, tx.CreatedAt
	entries, err := svc.Transactions(ctx, a.ID, &from, &to)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected inclusive bounds to match, got %d entries", len(entries))
	}

	past := tx.CreatedAt.Add(-time.Second)
	entries, err = svc.Transactions(ctx, a.ID, nil, &past)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty result before window, got %d", len(entries))
	}
}
