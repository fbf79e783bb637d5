package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrNoRefreshToken is returned when no refresh token is stored. The
// exchange is not attempted in that case; the caller must treat the
// session as unrecoverable.
var ErrNoRefreshToken = errors.New("no refresh token available")

// Service orchestrates the token refresh exchange using its dependencies.
// Concurrent callers are serialized: a caller whose rejected access token
// has already been replaced by an earlier refresh returns without a
// redundant exchange. Each caller still keeps its own single-retry
// budget; the service never retries on its own.
type Service struct {
	mu        sync.Mutex
	Storer    CredentialStorer
	Refresher TokenRefresher
}

// NewService is the constructor for our auth service.
func NewService(storer CredentialStorer, refresher TokenRefresher) *Service {
	return &Service{
		Storer:    storer,
		Refresher: refresher,
	}
}

// Refresh exchanges the stored refresh token for a new access token and
// saves it. staleAccess is the access token the caller saw rejected; when
// the stored token has already moved past it, the stored token is fresh
// enough and no network call is made.
//
// On any failure the store is left untouched. Clearing the session is the
// dispatcher's decision, not this service's.
func (s *Service) Refresh(ctx context.Context, staleAccess string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred := s.Storer.Read()
	if cred == nil || cred.RefreshToken == "" {
		return ErrNoRefreshToken
	}
	if staleAccess != "" && cred.AccessToken != staleAccess {
		log.Debug().Msg("Access token already refreshed by a concurrent call")
		return nil
	}

	access, err := s.Refresher.PerformTokenRefresh(ctx, cred.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to perform token refresh: %w", err)
	}
	if access == "" {
		return fmt.Errorf("refresh response carried no access token")
	}

	if err := s.Storer.UpdateAccessToken(ctx, access); err != nil {
		return fmt.Errorf("failed to save refreshed token: %w", err)
	}
	log.Info().Msg("Access token refreshed and saved successfully.")
	return nil
}
