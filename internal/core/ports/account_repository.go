package ports

import (
	"context"
	"time"

	"github.com/tinyboard/account-registry/internal/core/domain"
)

// AccountRepository defines the persistence interface for accounts.
//
// FindByUsername has exactly three outcomes: the account, a wrapped
// domain.ErrAccountNotFound when no row matches, or any other error when the
// query itself failed. Callers must never treat "no row" and "query failed"
// as the same case.
//
// Insert is the authoritative uniqueness check: it returns a wrapped
// domain.ErrAccountExists when the store's unique constraint rejects the row,
// regardless of what any earlier read observed.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) error
	ListPage(ctx context.Context, limit int) ([]domain.Account, error)
	TouchLastSeen(ctx context.Context, username string, ts time.Time) error
}
