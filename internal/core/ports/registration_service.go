package ports

import (
	"context"

	"github.com/tinyboard/account-registry/internal/core/domain"
)

// RegistrationResult is returned on successful registration. Location is a
// resource reference for the new account, ready for the boundary layer to
// surface as a Location header.
type RegistrationResult struct {
	Account  *domain.Account
	Location string
}

type RegistrationService interface {
	Register(ctx context.Context, username string) (*RegistrationResult, error)
}
