package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAccounts persists accounts in PostgreSQL. Balance updates rely on a
// single conditional UPDATE so concurrent deltas on one row serialize inside
// the database; the schema additionally enforces balance >= 0.
type PostgresAccounts struct {
	db *pgxpool.Pool
}

// NewPostgresAccounts constructs a Postgres-backed account store.
func NewPostgresAccounts(db *pgxpool.Pool) *PostgresAccounts {
	return &PostgresAccounts{db: db}
}

// Get fetches an account by identifier.
func (s *PostgresAccounts) Get(ctx context.Context, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}
	row := s.db.QueryRow(ctx, `SELECT id, balance, created_at FROM accounts WHERE id = $1`, accountID)
	var (
		idVal     uuid.UUID
		account   Account
		createdAt time.Time
	)
	if err := row.Scan(&idVal, &account.Balance, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, storeErr("get account", err)
	}
	account.ID = idVal.String()
	account.CreatedAt = createdAt.UTC()
	return account, nil
}

// Create inserts a new account with the given opening balance.
func (s *PostgresAccounts) Create(ctx context.Context, initialBalance int64) (Account, error) {
	account := Account{
		ID:        uuid.NewString(),
		Balance:   initialBalance,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx, `INSERT INTO accounts (id, balance, created_at) VALUES ($1, $2, $3)`,
		uuid.MustParse(account.ID), account.Balance, account.CreatedAt)
	if err != nil {
		return Account{}, storeErr("create account", err)
	}
	return account, nil
}

// ApplyDelta atomically adds delta to the account balance. The UPDATE only
// matches when the resulting balance stays non-negative, so an overdraft
// attempt changes nothing.
func (s *PostgresAccounts) ApplyDelta(ctx context.Context, id string, delta int64) (int64, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return 0, ErrAccountNotFound
	}

	const query = `UPDATE accounts SET balance = balance + $2
        WHERE id = $1 AND balance + $2 >= 0
        RETURNING balance`

	var balance int64
	err = s.db.QueryRow(ctx, query, accountID, delta).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, storeErr("apply delta", err)
	}

	// No row matched: the account is either missing or short of funds.
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists); err != nil {
		return 0, storeErr("apply delta", err)
	}
	if !exists {
		return 0, ErrAccountNotFound
	}
	return 0, ErrInsufficientFunds
}

// PostgresLog stores ledger entries in PostgreSQL. Entry ids come from a
// BIGSERIAL sequence so append order and id order agree.
type PostgresLog struct {
	db *pgxpool.Pool
}

// NewPostgresLog constructs a Postgres-backed transaction log.
func NewPostgresLog(db *pgxpool.Pool) *PostgresLog {
	return &PostgresLog{db: db}
}

// Append stores the record and returns it with its assigned id and timestamp.
func (l *PostgresLog) Append(ctx context.Context, tx Transaction) (Transaction, error) {
	const query = `INSERT INTO transactions (kind, sender_id, receiver_id, amount, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	tx.CreatedAt = time.Now().UTC()
	if err := l.db.QueryRow(ctx, query, tx.Kind, tx.SenderID, tx.ReceiverID, tx.Amount, tx.CreatedAt).Scan(&tx.ID); err != nil {
		return Transaction{}, storeErr("append transaction", err)
	}
	return tx, nil
}

// ByAccount returns entries touching the account inside the optional
// inclusive time window, in ascending id order.
func (l *PostgresLog) ByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]Transaction, error) {
	const query = `SELECT id, kind, sender_id, receiver_id, amount, created_at
        FROM transactions
        WHERE (sender_id = $1 OR receiver_id = $1)
          AND ($2::timestamptz IS NULL OR created_at >= $2)
          AND ($3::timestamptz IS NULL OR created_at <= $3)
        ORDER BY id ASC`

	rows, err := l.db.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, storeErr("query transactions", err)
	}
	defer rows.Close()

	var entries []Transaction
	for rows.Next() {
		var (
			tx        Transaction
			createdAt time.Time
		)
		if err := rows.Scan(&tx.ID, &tx.Kind, &tx.SenderID, &tx.ReceiverID, &tx.Amount, &createdAt); err != nil {
			return nil, storeErr("scan transaction", err)
		}
		tx.CreatedAt = createdAt.UTC()
		entries = append(entries, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("query transactions", err)
	}
	return entries, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
