package client

import (
	"context"
	"net/http"
	"net/url"
)

// Customer-facing resources under /customers/me. Thin wrappers over Do;
// all session handling lives in the dispatcher.

// CustomerProfile fetches the logged-in customer's profile.
func (c *Client) CustomerProfile(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/customers/me")
}

// UpdateCustomerProfile updates profile fields; data is sent verbatim.
func (c *Client) UpdateCustomerProfile(ctx context.Context, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/customers/me", data)
}

// CustomerCredit fetches the customer's credit details.
func (c *Client) CustomerCredit(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/customers/me/credit")
}

// RequestCreditIncrease files a credit limit increase request.
func (c *Client) RequestCreditIncrease(ctx context.Context, amount float64, reason string) (*Result, error) {
	body := map[string]any{"requested_amount": amount, "reason": reason}
	return c.Do(ctx, http.MethodPost, "/customers/me/credit/request-increase", body)
}

// CustomerTransactions lists the customer's transactions; params may
// carry pagination and status filters.
func (c *Client) CustomerTransactions(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/customers/me/transactions", WithQuery(params))
}

// CustomerTransaction fetches one transaction by id.
func (c *Client) CustomerTransaction(ctx context.Context, id string) (*Result, error) {
	return c.Get(ctx, "/customers/me/transactions/"+id)
}

// ConfirmTransaction confirms a pending transaction.
func (c *Client) ConfirmTransaction(ctx context.Context, id string) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/customers/me/transactions/"+id+"/confirm", nil)
}

// CustomerDebt fetches the customer's outstanding debt summary.
func (c *Client) CustomerDebt(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/customers/me/debt")
}

// CustomerPayments lists the customer's payments.
func (c *Client) CustomerPayments(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/customers/me/payments", WithQuery(params))
}

// MakePayment submits a payment against a transaction. The dispatcher
// guarantees the request body is never duplicated beyond the single
// controlled replay after a token refresh.
func (c *Client) MakePayment(ctx context.Context, transactionID string, amount float64, method string) (*Result, error) {
	body := map[string]any{
		"transaction_id": transactionID,
		"amount":         amount,
		"payment_method": method,
	}
	return c.Do(ctx, http.MethodPost, "/customers/me/payments", body)
}

// CustomerNotifications lists the customer's notifications.
func (c *Client) CustomerNotifications(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/customers/me/notifications", WithQuery(params))
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/customers/me/notifications/"+id+"/read", nil)
}
