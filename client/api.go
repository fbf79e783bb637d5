package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bariqpay/bariq-cli/routes"
	"github.com/bariqpay/bariq-cli/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the versioned API prefix used unless BARIQ_API_URL
// overrides it.
const DefaultBaseURL = "https://api.bariq.sa/api/v1"

// Navigator receives the single navigation performed when a session is
// torn down: the login surface for the role that was active. UI hosts
// route the browser; the CLI prints where to log back in.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// SessionRefresher exchanges the stored refresh token for a new access
// token. staleAccess is the access token the caller saw rejected.
// Implemented by auth.Service; wired in after construction because the
// service's refresher is this client.
type SessionRefresher interface {
	Refresh(ctx context.Context, staleAccess string) error
}

// Client dispatches every outbound API call: it attaches the bearer
// credential, detects authorization failure, refreshes the credential at
// most once per call, replays the original request, and on unrecoverable
// failure tears the session down and performs exactly one navigation to
// the role's login surface.
type Client struct {
	baseURL   string
	http      *http.Client
	store     *session.Store
	refresher SessionRefresher
	nav       Navigator
}

// New creates a Client. No request timeout is set beyond the transport
// default; pass a context to individual calls for cancellation.
func New(baseURL string, store *session.Store, nav Navigator) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		store:   store,
		nav:     nav,
	}
}

// SetRefresher wires in the session refresh service. Without one, a 401
// is always terminal.
func (c *Client) SetRefresher(r SessionRefresher) { c.refresher = r }

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.http = h
	}
}

// Store exposes the credential store the client was built around.
func (c *Client) Store() *session.Store { return c.store }

// call is the per-dispatch context: the request description plus an
// explicit attempt counter. It lives only for the duration of one Do and
// is never shared between calls, so one call's retry can never consume
// another's budget.
type call struct {
	method     string
	path       string
	body       []byte
	query      url.Values
	bearer     string // explicit bearer override (refresh exchange only)
	authExempt bool
	attempts   int
	sentBearer string // token attached to the most recent send
}

// CallOption customizes a single dispatch.
type CallOption func(*call)

// WithQuery attaches URL query parameters to the call.
func WithQuery(q url.Values) CallOption {
	return func(cl *call) { cl.query = q }
}

// withBearer overrides the stored access token with an explicit bearer.
// Only the refresh exchange uses it, to authenticate with the refresh
// token instead of the access token.
func withBearer(token string) CallOption {
	return func(cl *call) { cl.bearer = token }
}

// authExempt marks login/refresh/logout calls: their 401s are credential
// errors, not session expiry, and surface directly to the caller.
func authExempt() CallOption {
	return func(cl *call) { cl.authExempt = true }
}

// Do dispatches one logical call. The body is marshalled once and the
// identical bytes are reused on replay, so a side-effecting request is
// never mutated or duplicated beyond the single controlled replay.
//
// Any HTTP response, including 4xx/5xx, yields a Result with a nil
// error; a non-nil error means the request could not be completed at the
// transport level (or the response body was unreadable).
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...CallOption) (*Result, error) {
	cl := &call{method: method, path: path}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Result{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		cl.body = payload
	}
	for _, opt := range opts {
		opt(cl)
	}

	reqID := uuid.NewString()
	for {
		status, respBody, err := c.send(ctx, cl, reqID)
		if err != nil {
			return &Result{}, err
		}

		if status == http.StatusUnauthorized && !cl.authExempt {
			if cl.attempts == 0 && c.refresher != nil {
				cl.attempts++
				if rerr := c.refresher.Refresh(ctx, cl.sentBearer); rerr == nil {
					log.Debug().Str("path", cl.path).Str("request_id", reqID).Msg("Replaying request with refreshed token")
					continue
				} else {
					log.Info().Err(rerr).Str("path", cl.path).Msg("Token refresh failed")
				}
			}
			// Either the refresh failed, no refresher is wired, or the
			// replayed request was rejected again. Terminal: tear down.
			c.forceLogout(ctx)
			res, perr := parseEnvelope(status, respBody)
			return res, perr
		}

		return parseEnvelope(status, respBody)
	}
}

// Get is shorthand for a Do with the GET method and no body.
func (c *Client) Get(ctx context.Context, path string, opts ...CallOption) (*Result, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

// send performs a single HTTP round trip for the call and returns the
// status and raw body. Transport and read failures come back as errors.
func (c *Client) send(ctx context.Context, cl *call, reqID string) (int, []byte, error) {
	endpoint := c.baseURL + cl.path
	if len(cl.query) > 0 {
		endpoint += "?" + cl.query.Encode()
	}

	var reader io.Reader
	if cl.body != nil {
		reader = bytes.NewReader(cl.body)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, endpoint, reader)
	if err != nil {
		log.Error().Err(err).Str("method", cl.method).Str("url", endpoint).Msg("Failed to create HTTP request object")
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", reqID)

	// Absence of a credential is not an error; unauthenticated calls are
	// allowed and the backend decides.
	bearer := cl.bearer
	if bearer == "" {
		if cred := c.store.Read(); cred != nil {
			bearer = cred.AccessToken
		}
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	cl.sentBearer = bearer

	log.Debug().Str("method", cl.method).Str("url", endpoint).Str("request_id", reqID).Msg("Sending HTTP request")
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", cl.method).Str("url", endpoint).Msg("HTTP request failed")
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", endpoint).Msg("Failed to read response body")
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().Str("method", cl.method).Str("url", endpoint).Int("status", resp.StatusCode).Msg("HTTP request completed")
	return resp.StatusCode, respBody, nil
}

// forceLogout clears the session and performs the single logout
// navigation. The role is captured before the clear, since clearing
// erases it.
func (c *Client) forceLogout(ctx context.Context) {
	role := c.store.Role()
	if err := c.store.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to clear session during forced logout")
	}
	target := routes.LoginFor(role)
	log.Info().Str("role", string(role)).Str("target", target).Msg("Session terminated; routing to login")
	if c.nav != nil {
		c.nav.Navigate(target)
	}
}
