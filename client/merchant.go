package client

import (
	"context"
	"net/http"
	"net/url"
)

// Merchant-facing resources under /merchants/me.

// MerchantProfile fetches the logged-in merchant's profile.
func (c *Client) MerchantProfile(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/merchants/me")
}

// UpdateMerchantProfile updates merchant profile fields.
func (c *Client) UpdateMerchantProfile(ctx context.Context, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/merchants/me", data)
}

// UpdateMerchantBankAccount updates the settlement bank account.
func (c *Client) UpdateMerchantBankAccount(ctx context.Context, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/merchants/me/bank", data)
}

// MerchantDashboard fetches the merchant's summary report.
func (c *Client) MerchantDashboard(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/merchants/me/reports/summary")
}

// MerchantBranches lists the merchant's branches.
func (c *Client) MerchantBranches(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/merchants/me/branches")
}

// MerchantBranch fetches one branch by id.
func (c *Client) MerchantBranch(ctx context.Context, id string) (*Result, error) {
	return c.Get(ctx, "/merchants/me/branches/"+id)
}

// CreateBranch registers a new branch.
func (c *Client) CreateBranch(ctx context.Context, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/merchants/me/branches", data)
}

// UpdateBranch updates a branch.
func (c *Client) UpdateBranch(ctx context.Context, id string, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/merchants/me/branches/"+id, data)
}

// MerchantStaff lists the merchant's staff accounts.
func (c *Client) MerchantStaff(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/merchants/me/staff", WithQuery(params))
}

// CreateStaff creates a staff account.
func (c *Client) CreateStaff(ctx context.Context, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/merchants/me/staff", data)
}

// UpdateStaff updates a staff account.
func (c *Client) UpdateStaff(ctx context.Context, id string, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/merchants/me/staff/"+id, data)
}

// DeleteStaff removes a staff account.
func (c *Client) DeleteStaff(ctx context.Context, id string) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, "/merchants/me/staff/"+id, nil)
}

// LookupCustomer finds a customer by their Bariq ID for use at checkout.
func (c *Client) LookupCustomer(ctx context.Context, bariqID string) (*Result, error) {
	return c.Get(ctx, "/merchants/customers/lookup/"+bariqID)
}

// CheckCustomerCredit asks whether a customer can cover an amount.
func (c *Client) CheckCustomerCredit(ctx context.Context, bariqID string, amount float64) (*Result, error) {
	body := map[string]any{"bariq_id": bariqID, "amount": amount}
	return c.Do(ctx, http.MethodPost, "/merchants/customers/check-credit", body)
}

// MerchantTransactions lists the merchant's transactions.
func (c *Client) MerchantTransactions(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/merchants/me/transactions", WithQuery(params))
}

// MerchantTransaction fetches one transaction by id.
func (c *Client) MerchantTransaction(ctx context.Context, id string) (*Result, error) {
	return c.Get(ctx, "/merchants/me/transactions/"+id)
}

// CreateTransaction creates a deferred-payment transaction at checkout.
func (c *Client) CreateTransaction(ctx context.Context, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/merchants/me/transactions", data)
}

// CancelTransaction cancels a transaction with a reason.
func (c *Client) CancelTransaction(ctx context.Context, id, reason string) (*Result, error) {
	body := map[string]string{"reason": reason}
	return c.Do(ctx, http.MethodPost, "/merchants/me/transactions/"+id+"/cancel", body)
}

// MerchantReturns lists processed returns.
func (c *Client) MerchantReturns(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/merchants/me/returns", WithQuery(params))
}

// ProcessReturn records a product return against a transaction.
func (c *Client) ProcessReturn(ctx context.Context, transactionID string, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/merchants/me/transactions/"+transactionID+"/return", data)
}

// MerchantSettlements lists the merchant's settlements.
func (c *Client) MerchantSettlements(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/merchants/me/settlements", WithQuery(params))
}

// MerchantSettlement fetches one settlement by id.
func (c *Client) MerchantSettlement(ctx context.Context, id string) (*Result, error) {
	return c.Get(ctx, "/merchants/me/settlements/"+id)
}

// MerchantSettlementStats fetches aggregate settlement statistics.
func (c *Client) MerchantSettlementStats(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/merchants/me/settlements/stats")
}
