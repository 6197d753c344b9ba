package ports

import (
	"context"

	"github.com/tinyboard/account-registry/internal/core/domain"
)

type ListingService interface {
	// List returns at most the configured page size of accounts, ordered
	// ascending by username. An empty store yields an empty slice, not an error.
	List(ctx context.Context) ([]domain.Account, error)

	// Lookup returns a single account by exact username.
	Lookup(ctx context.Context, username string) (*domain.Account, error)
}
