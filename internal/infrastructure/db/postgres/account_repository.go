package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tinyboard/account-registry/internal/core/domain"
)

// SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// AccountRepository is the pgx implementation of ports.AccountRepository.
// Reads go through the read pool, mutations through the write pool.
type AccountRepository struct {
	pools *Pools
}

func NewAccountRepository(pools *Pools) *AccountRepository {
	return &AccountRepository{pools: pools}
}

// FindByUsername returns the account with the exact (case-sensitive) username,
// or a wrapped domain.ErrAccountNotFound when no row matches.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	err := r.pools.Read.QueryRow(ctx, `
		SELECT username, created_at, last_seen_at, role
		FROM accounts
		WHERE username = $1
	`, username).Scan(
		&account.Username,
		&account.CreatedAt,
		&account.LastSeenAt,
		&account.Role,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("find account %q: %w", username, domain.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("find account %q: %w", username, err)
	}

	return &account, nil
}

// Insert persists a new account. The primary key on username is the
// authoritative uniqueness check: a violation comes back as a wrapped
// domain.ErrAccountExists no matter which concurrent writer got there first.
func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) error {
	_, err := r.pools.Write.Exec(ctx, `
		INSERT INTO accounts (username, created_at, last_seen_at, role)
		VALUES ($1, $2, $3, $4)
	`, account.Username, account.CreatedAt, account.LastSeenAt, int(account.Role))

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("insert account %q: %w", account.Username, domain.ErrAccountExists)
		}
		return fmt.Errorf("insert account %q: %w", account.Username, err)
	}

	return nil
}

// ListPage returns at most limit accounts ordered ascending by username.
func (r *AccountRepository) ListPage(ctx context.Context, limit int) ([]domain.Account, error) {
	rows, err := r.pools.Read.Query(ctx, `
		SELECT username, created_at, last_seen_at, role
		FROM accounts
		ORDER BY username
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.Username,
			&account.CreatedAt,
			&account.LastSeenAt,
			&account.Role,
		); err != nil {
			return nil, fmt.Errorf("list accounts: scan: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// TouchLastSeen advances last_seen_at for the named account. The GREATEST
// guard keeps the column monotonic under replayed or out-of-order touches.
// Touching a missing account affects zero rows and is not an error.
func (r *AccountRepository) TouchLastSeen(ctx context.Context, username string, ts time.Time) error {
	_, err := r.pools.Write.Exec(ctx, `
		UPDATE accounts
		SET last_seen_at = GREATEST(last_seen_at, $1)
		WHERE username = $2
	`, ts, username)
	if err != nil {
		return fmt.Errorf("touch account %q: %w", username, err)
	}
	return nil
}
