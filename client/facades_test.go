package client

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/bariqpay/bariq-cli/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The facades are thin path/method wrappers; spot-check that they hit
// the expected endpoints with the expected verbs.
func TestFacades_EndpointsAndMethods(t *testing.T) {
	type seen struct {
		method string
		path   string
		query  string
	}
	var last seen

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = seen{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{}}`)
	})

	c, store, _ := newTestClient(t, handler)
	seedSession(t, store, "A1", "R1", session.RoleAdmin)
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() (*Result, error)
		method string
		path   string
		query  string
	}{
		{"customer profile", func() (*Result, error) { return c.CustomerProfile(ctx) },
			http.MethodGet, "/customers/me", ""},
		{"customer update", func() (*Result, error) { return c.UpdateCustomerProfile(ctx, map[string]string{"phone": "x"}) },
			http.MethodPut, "/customers/me", ""},
		{"confirm transaction", func() (*Result, error) { return c.ConfirmTransaction(ctx, "tx-1") },
			http.MethodPost, "/customers/me/transactions/tx-1/confirm", ""},
		{"transactions filtered", func() (*Result, error) {
			return c.CustomerTransactions(ctx, url.Values{"status": {"pending"}})
		}, http.MethodGet, "/customers/me/transactions", "status=pending"},
		{"merchant lookup", func() (*Result, error) { return c.LookupCustomer(ctx, "BQ-9") },
			http.MethodGet, "/merchants/customers/lookup/BQ-9", ""},
		{"delete staff", func() (*Result, error) { return c.DeleteStaff(ctx, "s-1") },
			http.MethodDelete, "/merchants/me/staff/s-1", ""},
		{"process return", func() (*Result, error) { return c.ProcessReturn(ctx, "tx-2", map[string]string{"reason": "defect"}) },
			http.MethodPost, "/merchants/me/transactions/tx-2/return", ""},
		{"admin approve merchant", func() (*Result, error) { return c.AdminApproveMerchant(ctx, "m-1") },
			http.MethodPut, "/admin/merchants/m-1/approve", ""},
		{"admin update setting", func() (*Result, error) { return c.AdminUpdateSetting(ctx, "grace_days", 5) },
			http.MethodPut, "/admin/settings/grace_days", ""},
		{"admin overdue", func() (*Result, error) { return c.AdminOverdueTransactions(ctx) },
			http.MethodGet, "/admin/transactions/overdue", ""},
		{"public business types", func() (*Result, error) { return c.BusinessTypes(ctx) },
			http.MethodGet, "/public/business-types", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.call()
			require.NoError(t, err)
			assert.True(t, res.Success)
			assert.Equal(t, tt.method, last.method)
			assert.Equal(t, tt.path, last.path)
			assert.Equal(t, tt.query, last.query)
		})
	}
}

func TestResult_Decode(t *testing.T) {
	res := &Result{Data: []byte(`{"balance":250.5}`)}
	var payload struct {
		Balance float64 `json:"balance"`
	}
	require.NoError(t, res.Decode(&payload))
	assert.Equal(t, 250.5, payload.Balance)

	empty := &Result{}
	require.Error(t, empty.Decode(&payload))
}
