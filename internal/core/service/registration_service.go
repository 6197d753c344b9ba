package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/tinyboard/account-registry/internal/api/metrics"
	"github.com/tinyboard/account-registry/internal/core/domain"
	"github.com/tinyboard/account-registry/internal/core/ports"
)

// RegistrationService implements the create-if-absent protocol:
// validate, advisory duplicate check on the read path, authoritative insert
// on the write path.
type RegistrationService struct {
	repo    ports.AccountRepository
	baseURL string
	logger  zerolog.Logger
}

func NewRegistrationService(repo ports.AccountRepository, baseURL string, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{repo: repo, baseURL: baseURL, logger: logger}
}

// Register runs the registration sequence for a raw candidate username.
//
// The advisory read gives a fast duplicate answer in the common case, but two
// concurrent calls with the same name can both pass it. The store's unique
// constraint decides the race: the losing insert comes back as
// domain.ErrAccountExists, indistinguishable to the caller from an advisory
// hit.
func (s *RegistrationService) Register(ctx context.Context, username string) (*ports.RegistrationResult, error) {
	timer := prometheus.NewTimer(metrics.RegistrationDuration)
	defer timer.ObserveDuration()

	if err := domain.ValidateUsername(username); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("rejected_invalid").Inc()
		return nil, err
	}

	_, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues("rejected_duplicate").Inc()
		return nil, domain.ErrAccountExists
	case errors.Is(err, domain.ErrAccountNotFound):
		// free to attempt the insert
	default:
		// A failed read is not "no row". Abort without attempting the insert.
		s.logger.Error().Err(err).Str("username", username).Msg("duplicate check failed")
		metrics.RegistrationsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("register: duplicate check: %w", err)
	}

	account := domain.NewAccount(username, domain.RoleUser, time.Now().UTC())

	if err := s.repo.Insert(ctx, account); err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			// A concurrent registration won the race between the read and the
			// insert. Same conflict signal as the advisory path.
			s.logger.Info().Str("username", username).Msg("insert lost registration race")
			metrics.RegistrationsTotal.WithLabelValues("rejected_duplicate").Inc()
			return nil, domain.ErrAccountExists
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to insert account")
		metrics.RegistrationsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("register: insert: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("account registered")
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()

	return &ports.RegistrationResult{
		Account:  account,
		Location: s.baseURL + "/users/" + account.Username,
	}, nil
}
