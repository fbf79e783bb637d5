package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bariqpay/bariq-cli/db"
	"github.com/rs/zerolog/log"
)

// Credential holds the pair of opaque bearer strings issued at login.
// Both tokens are replaced together on login; only the access token
// moves on refresh.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// Store is the single source of truth for "am I logged in, and as whom".
// It caches the session in memory and mirrors every change to a
// db.CredentialRepository so the session survives process restarts.
// A session exists only when both a credential and a user record are
// present; neither alone counts as authenticated.
//
// All field groups are written and cleared together. Methods are safe to
// call from concurrent request completions.
type Store struct {
	mu   sync.Mutex
	repo db.CredentialRepository

	cred *Credential
	user json.RawMessage
	role Role
}

// NewStore creates a Store backed by the given repository. A nil
// repository yields a memory-only store, which is useful in tests and
// for embedding the client library without persistence.
func NewStore(repo db.CredentialRepository) *Store {
	return &Store{repo: repo}
}

// Init loads any persisted session into memory. Call it once on startup
// before the store is handed to the dispatcher.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return nil
	}
	rec, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load persisted session: %w", err)
	}
	if rec == nil {
		return nil
	}

	role, err := ParseRole(rec.Role)
	if err != nil {
		// A corrupt role tag means the record cannot be trusted; start clean.
		log.Warn().Err(err).Msg("Discarding persisted session with unknown role")
		return s.repo.Clear(ctx)
	}

	s.cred = &Credential{AccessToken: rec.AccessToken, RefreshToken: rec.RefreshToken}
	if rec.User != "" {
		s.user = json.RawMessage(rec.User)
	}
	s.role = role
	log.Debug().Str("role", string(role)).Msg("Restored persisted session")
	return nil
}

// Read returns a copy of the stored credential, or nil when no credential
// is present. It never fails; absence is an ordinary state.
func (s *Store) Read() *Credential {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cred == nil {
		return nil
	}
	cred := *s.cred
	return &cred
}

// Write replaces the credential, user record, and role together. The
// record is persisted first; on persistence failure the in-memory state
// is left untouched so a partial session is never observable.
func (s *Store) Write(ctx context.Context, cred Credential, user json.RawMessage, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		rec := &db.Credential{
			AccessToken:  cred.AccessToken,
			RefreshToken: cred.RefreshToken,
			User:         string(user),
			Role:         string(role),
		}
		if err := s.repo.Put(ctx, rec); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
	}

	c := cred
	s.cred = &c
	s.user = append(json.RawMessage(nil), user...)
	s.role = role
	log.Debug().Str("role", string(role)).Msg("Session stored")
	return nil
}

// UpdateAccessToken swaps in a fresh access token, leaving the refresh
// token, user record, and role untouched. Used only by the refresh path.
func (s *Store) UpdateAccessToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cred == nil {
		return fmt.Errorf("no stored credential to update")
	}
	if s.repo != nil {
		if err := s.repo.UpdateAccessToken(ctx, token); err != nil {
			return fmt.Errorf("failed to persist refreshed access token: %w", err)
		}
	}
	s.cred.AccessToken = token
	return nil
}

// Clear removes the credential, user record, and role together.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear persisted session: %w", err)
		}
	}
	s.cred = nil
	s.user = nil
	s.role = RoleNone
	log.Debug().Msg("Session cleared")
	return nil
}

// IsAuthenticated reports whether a full session exists. Both the
// credential and the user record must be present; checking only one
// would accept a half-written session.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred != nil && len(s.user) > 0
}

// Role returns the role tag of the current session, or RoleNone.
func (s *Store) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// User returns the stored user record as raw JSON. The shape is
// role-specific and owned by the backend; callers must not assume fields
// beyond what DisplayName and MerchantProfile surface.
func (s *Store) User() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(json.RawMessage(nil), s.user...)
}

// DisplayName extracts a best-effort human-readable name from the opaque
// user record. Returns an empty string when nothing usable is present.
func (s *Store) DisplayName() string {
	raw := s.User()
	if len(raw) == 0 {
		return ""
	}
	var fields struct {
		Name         string `json:"name"`
		FullName     string `json:"full_name"`
		BusinessName string `json:"business_name"`
		Email        string `json:"email"`
		Username     string `json:"username"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	for _, v := range []string{fields.FullName, fields.Name, fields.BusinessName, fields.Email, fields.Username} {
		if v != "" {
			return v
		}
	}
	return ""
}

// MerchantProfile returns the nested merchant profile for merchant
// sessions, or nil when absent.
func (s *Store) MerchantProfile() json.RawMessage {
	raw := s.User()
	if len(raw) == 0 {
		return nil
	}
	var fields struct {
		Merchant json.RawMessage `json:"merchant"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields.Merchant
}
