package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bariqpay/bariq-cli/session"
	"github.com/rs/zerolog/log"
)

// loginPayload is the common shape of a successful login response.
type loginPayload struct {
	User         json.RawMessage `json:"user"`
	Customer     json.RawMessage `json:"customer"`
	Merchant     json.RawMessage `json:"merchant"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

// CustomerLogin authenticates a customer with username and password and,
// on success, stores the full session. A 401 here is a credential error
// and surfaces directly; it never triggers a refresh.
func (c *Client) CustomerLogin(ctx context.Context, username, password string) (*Result, error) {
	body := map[string]string{"username": username, "password": password}
	res, err := c.Do(ctx, http.MethodPost, "/auth/customer/login", body, authExempt())
	if err != nil || !res.Success {
		return res, err
	}
	return res, c.storeLogin(ctx, res, session.RoleCustomer)
}

// MerchantLogin authenticates a merchant user with email and password.
// The merchant profile returned alongside the user record is folded into
// the stored user blob, matching how merchant sessions are rendered.
func (c *Client) MerchantLogin(ctx context.Context, email, password string) (*Result, error) {
	body := map[string]string{"email": email, "password": password}
	res, err := c.Do(ctx, http.MethodPost, "/auth/merchant/login", body, authExempt())
	if err != nil || !res.Success {
		return res, err
	}
	return res, c.storeLogin(ctx, res, session.RoleMerchant)
}

// AdminLogin authenticates an admin user with email and password.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*Result, error) {
	body := map[string]string{"email": email, "password": password}
	res, err := c.Do(ctx, http.MethodPost, "/auth/admin/login", body, authExempt())
	if err != nil || !res.Success {
		return res, err
	}
	return res, c.storeLogin(ctx, res, session.RoleAdmin)
}

// NafathInitiate starts a Nafath identity verification for a customer.
// The returned data carries the verification session to poll with
// NafathVerify.
func (c *Client) NafathInitiate(ctx context.Context, nationalID string) (*Result, error) {
	body := map[string]string{"national_id": nationalID}
	return c.Do(ctx, http.MethodPost, "/auth/nafath/initiate", body, authExempt())
}

// NafathVerify polls a Nafath verification session; once the user has
// approved, it completes like a customer login and stores the session.
func (c *Client) NafathVerify(ctx context.Context, sessionID, nationalID string) (*Result, error) {
	body := map[string]string{"session_id": sessionID, "national_id": nationalID}
	res, err := c.Do(ctx, http.MethodPost, "/auth/nafath/verify", body, authExempt())
	if err != nil || !res.Success {
		return res, err
	}
	return res, c.storeLogin(ctx, res, session.RoleCustomer)
}

// Logout tells the backend to end the session (best effort) and clears
// the local session. It returns the role that was active, so callers can
// route to the matching login surface.
func (c *Client) Logout(ctx context.Context) (session.Role, error) {
	role := c.store.Role()
	if c.store.Read() != nil {
		if _, err := c.Do(ctx, http.MethodPost, "/auth/logout", nil, authExempt()); err != nil {
			log.Warn().Err(err).Msg("Backend logout failed; clearing local session anyway")
		}
	}
	if err := c.store.Clear(ctx); err != nil {
		return role, err
	}
	return role, nil
}

// PerformTokenRefresh exchanges a refresh token for a new access token.
// The refresh token itself is the bearer credential on this call, and
// the response carries a new access token only. Implements
// auth.TokenRefresher.
func (c *Client) PerformTokenRefresh(ctx context.Context, refreshToken string) (string, error) {
	res, err := c.Do(ctx, http.MethodPost, "/auth/refresh", nil, authExempt(), withBearer(refreshToken))
	if err != nil {
		return "", err
	}
	if !res.Success {
		return "", fmt.Errorf("refresh rejected with status %d: %s", res.Status, res.Message)
	}
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := res.Decode(&payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", errors.New("refresh response carried no access token")
	}
	return payload.AccessToken, nil
}

// storeLogin extracts the token pair and user record from a successful
// login result and writes them to the store in one atomic update.
func (c *Client) storeLogin(ctx context.Context, res *Result, role session.Role) error {
	var payload loginPayload
	if err := res.Decode(&payload); err != nil {
		return fmt.Errorf("failed to parse login payload: %w", err)
	}
	if payload.AccessToken == "" || payload.RefreshToken == "" {
		return errors.New("login response missing token pair")
	}

	user, err := loginUser(payload, role)
	if err != nil {
		return err
	}

	cred := session.Credential{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
	}
	if err := c.store.Write(ctx, cred, user, role); err != nil {
		return err
	}
	log.Info().Str("role", string(role)).Msg("Logged in")
	return nil
}

// loginUser picks the role-specific user record out of a login payload.
// Merchant logins fold the merchant profile into the user blob.
func loginUser(payload loginPayload, role session.Role) (json.RawMessage, error) {
	switch role {
	case session.RoleCustomer:
		if len(payload.Customer) == 0 {
			return nil, errors.New("login response missing customer record")
		}
		return payload.Customer, nil
	case session.RoleMerchant:
		if len(payload.User) == 0 {
			return nil, errors.New("login response missing user record")
		}
		if len(payload.Merchant) == 0 {
			return payload.User, nil
		}
		var user map[string]json.RawMessage
		if err := json.Unmarshal(payload.User, &user); err != nil {
			return nil, fmt.Errorf("failed to parse user record: %w", err)
		}
		user["merchant"] = payload.Merchant
		merged, err := json.Marshal(user)
		if err != nil {
			return nil, fmt.Errorf("failed to merge merchant profile: %w", err)
		}
		return merged, nil
	default:
		if len(payload.User) == 0 {
			return nil, errors.New("login response missing user record")
		}
		return payload.User, nil
	}
}
