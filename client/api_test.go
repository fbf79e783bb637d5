package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bariqpay/bariq-cli/auth"
	"github.com/bariqpay/bariq-cli/routes"
	"github.com/bariqpay/bariq-cli/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// navRecorder captures the navigation targets the dispatcher emits on
// forced logout.
type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *navRecorder) targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store, *navRecorder) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(nil)
	nav := &navRecorder{}
	c := New(server.URL, store, nav)
	c.SetRefresher(auth.NewService(store, c))
	return c, store, nav
}

func seedSession(t *testing.T, store *session.Store, access, refresh string, role session.Role) {
	t.Helper()
	err := store.Write(context.Background(),
		session.Credential{AccessToken: access, RefreshToken: refresh},
		json.RawMessage(`{"full_name":"Test User"}`), role)
	require.NoError(t, err)
}

func writeEnvelope(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Scenario A: a 401 with a valid refresh token triggers one refresh and
// one replay; the refresh token itself is never replaced.
func TestDo_RefreshAndReplay(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer A2":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"ok":true}}`)
		default:
			writeEnvelope(w, http.StatusUnauthorized, `{"success":false,"message":"token expired"}`)
		}
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		require.Equal(t, "Bearer R1", r.Header.Get("Authorization"),
			"refresh must authenticate with the refresh token")
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"access_token":"A2"}}`)
	})

	c, store, nav := newTestClient(t, mux)
	seedSession(t, store, "A1", "R1", session.RoleCustomer)

	res, err := c.Get(context.Background(), "/things")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))

	cred := store.Read()
	require.NotNil(t, cred)
	assert.Equal(t, "A2", cred.AccessToken)
	assert.Equal(t, "R1", cred.RefreshToken, "refresh token must be unchanged")
	assert.True(t, store.IsAuthenticated())
	assert.Empty(t, nav.targets(), "no navigation on a recovered call")
}

// Scenario B: a failing refresh clears the whole session and performs
// exactly one navigation to the role's login surface.
func TestDo_RefreshFailureForcesLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, `{"success":false,"message":"token expired"}`)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, `{"success":false,"message":"boom"}`)
	})

	c, store, nav := newTestClient(t, mux)
	seedSession(t, store, "A1", "R1", session.RoleCustomer)

	res, err := c.Get(context.Background(), "/things")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Read())
	assert.Equal(t, session.RoleNone, store.Role())
	assert.Equal(t, []string{routes.LoginCustomer}, nav.targets(),
		"navigation must use the role captured before the clear")
}

// Scenario C: a 401 from a login endpoint is a credential error, not a
// session expiry. It surfaces directly; the store is untouched and the
// refresh endpoint is never called.
func TestDo_LoginEndpointExemptFromRefresh(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/customer/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, `{"success":false,"message":"invalid credentials"}`)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})

	c, store, nav := newTestClient(t, mux)
	seedSession(t, store, "A1", "R1", session.RoleCustomer)

	res, err := c.CustomerLogin(context.Background(), "user", "wrong")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "invalid credentials", res.Message)

	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
	assert.True(t, store.IsAuthenticated(), "store must be untouched by a rejected login")
	assert.Empty(t, nav.targets())
}

// Scenario D: with no refresh token stored, a 401 tears the session down
// immediately and the refresh endpoint sees no traffic.
func TestDo_NoRefreshTokenImmediateTeardown(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, `{"success":false}`)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})

	c, store, nav := newTestClient(t, mux)
	seedSession(t, store, "A1", "", session.RoleMerchant)

	res, err := c.Get(context.Background(), "/things")
	require.NoError(t, err)
	assert.False(t, res.Success)

	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, []string{routes.LoginMerchant}, nav.targets())
}

// Single-retry invariant: against a backend that always rejects, a call
// replays exactly once and never triggers a second refresh.
func TestDo_SingleRetryInvariant(t *testing.T) {
	var endpointCalls, refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&endpointCalls, 1)
		writeEnvelope(w, http.StatusUnauthorized, `{"success":false}`)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"access_token":"A2"}}`)
	})

	c, store, nav := newTestClient(t, mux)
	seedSession(t, store, "A1", "R1", session.RoleAdmin)

	res, err := c.Get(context.Background(), "/things")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	assert.Equal(t, int32(2), atomic.LoadInt32(&endpointCalls), "original send plus exactly one replay")
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls), "second 401 must not trigger a second refresh")
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, []string{routes.LoginAdmin}, nav.targets())
}

// A replayed side-effecting request reuses the original body bytes
// unchanged; only the bearer credential moves.
func TestDo_ReplayReusesOriginalBody(t *testing.T) {
	var mu sync.Mutex
	var bodies []string
	var bearers []string

	mux := http.NewServeMux()
	mux.HandleFunc("/customers/me/payments", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(raw))
		bearers = append(bearers, r.Header.Get("Authorization"))
		mu.Unlock()
		if r.Header.Get("Authorization") == "Bearer A2" {
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"payment_id":"p1"}}`)
			return
		}
		writeEnvelope(w, http.StatusUnauthorized, `{"success":false}`)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"access_token":"A2"}}`)
	})

	c, store, _ := newTestClient(t, mux)
	seedSession(t, store, "A1", "R1", session.RoleCustomer)

	res, err := c.MakePayment(context.Background(), "tx-9", 150.50, "card")
	require.NoError(t, err)
	assert.True(t, res.Success)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2, "one send plus one replay, never more")
	assert.Equal(t, bodies[0], bodies[1], "replay must carry the identical body bytes")
	assert.Equal(t, "Bearer A1", bearers[0])
	assert.Equal(t, "Bearer A2", bearers[1])
}

// Two concurrent calls each keep their own single-retry budget; the
// refresh exchanges are coalesced so the backend sees at most one per
// stale token.
func TestDo_ConcurrentCallsIndependentRetryBudgets(t *testing.T) {
	var refreshCalls int32
	var aCalls, bCalls int32

	mux := http.NewServeMux()
	serve := func(counter *int32) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(counter, 1)
			if r.Header.Get("Authorization") == "Bearer A2" {
				writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"ok":true}}`)
				return
			}
			writeEnvelope(w, http.StatusUnauthorized, `{"success":false}`)
		}
	}
	mux.HandleFunc("/a", serve(&aCalls))
	mux.HandleFunc("/b", serve(&bCalls))
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"access_token":"A2"}}`)
	})

	c, store, _ := newTestClient(t, mux)
	seedSession(t, store, "A1", "R1", session.RoleCustomer)

	var wg sync.WaitGroup
	results := make([]*Result, 2)
	errs := make([]error, 2)
	for i, path := range []string{"/a", "/b"} {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i], errs[i] = c.Get(context.Background(), path)
		}(i, path)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.True(t, results[i].Success)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&aCalls), int32(2), "a call never exceeds its own retry budget")
	assert.LessOrEqual(t, atomic.LoadInt32(&bCalls), int32(2), "a call never exceeds its own retry budget")
	assert.GreaterOrEqual(t, atomic.LoadInt32(&refreshCalls), int32(1))
	assert.LessOrEqual(t, atomic.LoadInt32(&refreshCalls), int32(2))

	cred := store.Read()
	require.NotNil(t, cred)
	assert.Equal(t, "A2", cred.AccessToken)
}

// A success envelope with success=false is a domain rejection: passed
// through verbatim, never treated as an auth event.
func TestDo_DomainRejectionPassthrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/merchants/customers/check-credit", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"success":false,"message":"insufficient credit","error_code":"CRD_002"}`)
	})

	c, store, nav := newTestClient(t, mux)
	seedSession(t, store, "A1", "R1", session.RoleMerchant)

	res, err := c.CheckCustomerCredit(context.Background(), "BQ-1", 999)
	require.NoError(t, err)
	assert.False(t, res.Success, "success must mirror the envelope, not the transport")
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "insufficient credit", res.Message)
	assert.Equal(t, "CRD_002", res.ErrorCode)

	assert.True(t, store.IsAuthenticated())
	assert.Empty(t, nav.targets())
}

// Absence of a credential is not an error: the call goes out without an
// Authorization header and the backend decides.
func TestDo_UnauthenticatedCallAllowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/public/cities", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"cities":["Riyadh","Jeddah"]}}`)
	})

	c, _, _ := newTestClient(t, mux)

	res, err := c.Cities(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
}

// Network-level failures come back as normalized failure results with an
// error value, never a panic.
func TestDo_TransportFailure(t *testing.T) {
	store := session.NewStore(nil)
	c := New("http://127.0.0.1:1", store, nil)

	res, err := c.Get(context.Background(), "/things")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Success)
}

// When the envelope omits the success flag, the HTTP status class decides.
func TestDo_StatusFallbackWithoutEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/raw", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"anything":1}`)
	})

	c, _, _ := newTestClient(t, mux)

	res, err := c.Get(context.Background(), "/raw")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.Status)
}

// Pagination meta is surfaced on the result.
func TestDo_MetaParsed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/customers/me/transactions", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK,
			`{"success":true,"data":{"transactions":[]},"meta":{"page":2,"per_page":20,"total":55,"pages":3}}`)
	})

	c, store, _ := newTestClient(t, mux)
	seedSession(t, store, "A1", "R1", session.RoleCustomer)

	res, err := c.CustomerTransactions(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, res.Meta)
	assert.Equal(t, 2, res.Meta.Page)
	assert.Equal(t, 55, res.Meta.Total)
	assert.Equal(t, 3, res.Meta.Pages)
}
