package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestInMemoryAccounts_ApplyDelta(t *testing.T) {
	s := NewInMemoryAccounts()
	ctx := context.Background()

	account, err := s.Create(ctx, 0)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	balance, err := s.ApplyDelta(ctx, account.ID, 2_500)
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if balance != 2_500 {
		t.Fatalf("expected balance 2500, got %d", balance)
	}

	if _, err := s.ApplyDelta(ctx, account.ID, -3_000); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	// a rejected debit must leave the balance exactly as it was
	got, err := s.Get(ctx, account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Balance != 2_500 {
		t.Fatalf("balance changed by rejected debit: %d", got.Balance)
	}
}

func TestInMemoryAccounts_ApplyDeltaUnknownAccount(t *testing.T) {
	s := NewInMemoryAccounts()
	if _, err := s.ApplyDelta(context.Background(), "missing", 100); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}

func TestInMemoryAccounts_ConcurrentDeltas(t *testing.T) {
	s := NewInMemoryAccounts()
	ctx := context.Background()
	account, _ := s.Create(ctx, 0)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ApplyDelta(ctx, account.ID, 100); err != nil {
				t.Errorf("credit failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := s.Get(ctx, account.ID)
	if got.Balance != workers*100 {
		t.Fatalf("expected balance %d, got %d", workers*100, got.Balance)
	}
}

func TestInMemoryLog_AppendAssignsMonotonicIDs(t *testing.T) {
	l := NewInMemoryLog()
	ctx := context.Background()

	first, err := l.Append(ctx, Transaction{Kind: KindDeposit, SenderID: "a", ReceiverID: "a", Amount: 100})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := l.Append(ctx, Transaction{Kind: KindTransfer, SenderID: "a", ReceiverID: "b", Amount: 50})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1,2 got %d,%d", first.ID, second.ID)
	}
	if second.CreatedAt.Before(first.CreatedAt) {
		t.Fatalf("timestamps not monotonic with ids")
	}
}

func TestInMemoryLog_ByAccountWindow(t *testing.T) {
	l := NewInMemoryLog()
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Minute)
	l.Append(ctx, Transaction{Kind: KindDeposit, SenderID: "a", ReceiverID: "a", Amount: 100})
	l.Append(ctx, Transaction{Kind: KindTransfer, SenderID: "a", ReceiverID: "b", Amount: 60})
	l.Append(ctx, Transaction{Kind: KindDeposit, SenderID: "c", ReceiverID: "c", Amount: 10})
	after := time.Now().UTC().Add(time.Minute)

	entries, err := l.ByAccount(ctx, "a", &before, &after)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID >= entries[1].ID {
		t.Fatalf("entries not in ascending id order")
	}

	// receiver side is matched too
	entries, err = l.ByAccount(ctx, "b", nil, nil)
	if err != nil {
		t.Fatalf("query receiver: %v", err)
	}
	if len(entries) != 1 || entries[0].Kind != KindTransfer {
		t.Fatalf("expected one transfer for b, got %+v", entries)
	}

	// a window in the past excludes everything
	farPast := time.Now().UTC().Add(-2 * time.Hour)
	entries, err = l.ByAccount(ctx, "a", nil, &farPast)
	if err != nil {
		t.Fatalf("query windowed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty window, got %d entries", len(entries))
	}
}

func TestInMemoryLog_ByAccountIsRestartable(t *testing.T) {
	l := NewInMemoryLog()
	ctx := context.Background()
	l.Append(ctx, Transaction{Kind: KindDeposit, SenderID: "a", ReceiverID: "a", Amount: 100})

	first, _ := l.ByAccount(ctx, "a", nil, nil)
	second, _ := l.ByAccount(ctx, "a", nil, nil)
	if len(first) != len(second) || first[0].ID != second[0].ID {
		t.Fatalf("repeated query returned different results")
	}
}
