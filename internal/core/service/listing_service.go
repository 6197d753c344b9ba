package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tinyboard/account-registry/internal/core/domain"
	"github.com/tinyboard/account-registry/internal/core/ports"
)

const defaultPageSize = 32

// ListingService serves the bounded, ordered account listing over the
// repository's read path.
type ListingService struct {
	repo     ports.AccountRepository
	pageSize int
	logger   zerolog.Logger
}

// NewListingService creates a ListingService with the given fixed page size.
// If pageSize <= 0, defaultPageSize is used.
func NewListingService(repo ports.AccountRepository, pageSize int, logger zerolog.Logger) *ListingService {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &ListingService{repo: repo, pageSize: pageSize, logger: logger}
}

// List returns the first page of accounts ordered ascending by username.
func (s *ListingService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.ListPage(ctx, s.pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list accounts")
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// Lookup returns a single account by exact username.
func (s *ListingService) Lookup(ctx context.Context, username string) (*domain.Account, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to look up account")
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	return account, nil
}
