package auth

import (
	"context"

	"github.com/bariqpay/bariq-cli/session"
)

// CredentialStorer defines the contract for any component that can hold
// the session credential and swap in a refreshed access token.
type CredentialStorer interface {
	Read() *session.Credential
	UpdateAccessToken(ctx context.Context, token string) error
}

// TokenRefresher defines the contract for any component that can exchange
// a refresh token for a new access token against the backend.
type TokenRefresher interface {
	PerformTokenRefresh(ctx context.Context, refreshToken string) (accessToken string, err error)
}
