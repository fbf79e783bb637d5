package client

import (
	"context"
	"net/http"
	"net/url"
)

// Back-office resources under /admin.

// AdminDashboard fetches the platform dashboard.
func (c *Client) AdminDashboard(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/admin/dashboard")
}

// AdminCustomers lists customers.
func (c *Client) AdminCustomers(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/admin/customers", WithQuery(params))
}

// AdminCustomer fetches one customer by id.
func (c *Client) AdminCustomer(ctx context.Context, id string) (*Result, error) {
	return c.Get(ctx, "/admin/customers/"+id)
}

// AdminUpdateCustomer updates a customer record.
func (c *Client) AdminUpdateCustomer(ctx context.Context, id string, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/admin/customers/"+id, data)
}

// AdminUpdateCustomerCredit sets a customer's credit limit.
func (c *Client) AdminUpdateCustomerCredit(ctx context.Context, id string, limit float64) (*Result, error) {
	body := map[string]any{"credit_limit": limit}
	return c.Do(ctx, http.MethodPut, "/admin/customers/"+id+"/credit-limit", body)
}

// AdminCreditRequests lists pending credit increase requests.
func (c *Client) AdminCreditRequests(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/admin/credit-requests", WithQuery(params))
}

// AdminApproveCreditRequest approves a credit increase request.
func (c *Client) AdminApproveCreditRequest(ctx context.Context, id string, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/admin/credit-requests/"+id+"/approve", data)
}

// AdminRejectCreditRequest rejects a credit increase request.
func (c *Client) AdminRejectCreditRequest(ctx context.Context, id, reason string) (*Result, error) {
	body := map[string]string{"reason": reason}
	return c.Do(ctx, http.MethodPut, "/admin/credit-requests/"+id+"/reject", body)
}

// AdminMerchants lists merchants.
func (c *Client) AdminMerchants(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/admin/merchants", WithQuery(params))
}

// AdminMerchant fetches one merchant by id.
func (c *Client) AdminMerchant(ctx context.Context, id string) (*Result, error) {
	return c.Get(ctx, "/admin/merchants/"+id)
}

// AdminUpdateMerchant updates a merchant record.
func (c *Client) AdminUpdateMerchant(ctx context.Context, id string, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/admin/merchants/"+id, data)
}

// AdminApproveMerchant approves a merchant application.
func (c *Client) AdminApproveMerchant(ctx context.Context, id string) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/admin/merchants/"+id+"/approve", nil)
}

// AdminSuspendMerchant suspends a merchant.
func (c *Client) AdminSuspendMerchant(ctx context.Context, id, reason string) (*Result, error) {
	body := map[string]string{"reason": reason}
	return c.Do(ctx, http.MethodPut, "/admin/merchants/"+id+"/suspend", body)
}

// AdminTransactions lists all transactions on the platform.
func (c *Client) AdminTransactions(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/admin/transactions", WithQuery(params))
}

// AdminOverdueTransactions lists transactions past their due date.
func (c *Client) AdminOverdueTransactions(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/admin/transactions/overdue")
}

// AdminSettlements lists settlements.
func (c *Client) AdminSettlements(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/admin/settlements", WithQuery(params))
}

// AdminSettlement fetches one settlement by id.
func (c *Client) AdminSettlement(ctx context.Context, id string) (*Result, error) {
	return c.Get(ctx, "/admin/settlements/"+id)
}

// AdminApproveSettlement approves a settlement for payout.
func (c *Client) AdminApproveSettlement(ctx context.Context, id string) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/admin/settlements/"+id+"/approve", nil)
}

// AdminTransferSettlement marks a settlement as transferred.
func (c *Client) AdminTransferSettlement(ctx context.Context, id string, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/admin/settlements/"+id+"/transfer", data)
}

// AdminStaff lists back-office staff accounts.
func (c *Client) AdminStaff(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/admin/staff")
}

// AdminCreateStaff creates a back-office staff account.
func (c *Client) AdminCreateStaff(ctx context.Context, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, "/admin/staff", data)
}

// AdminUpdateStaff updates a back-office staff account.
func (c *Client) AdminUpdateStaff(ctx context.Context, id string, data any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, "/admin/staff/"+id, data)
}

// AdminReportsOverview fetches the platform overview report.
func (c *Client) AdminReportsOverview(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/admin/reports/overview")
}

// AdminReportsFinancial fetches the financial report.
func (c *Client) AdminReportsFinancial(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/admin/reports/financial", WithQuery(params))
}

// AdminAuditLogs lists audit log entries.
func (c *Client) AdminAuditLogs(ctx context.Context, params url.Values) (*Result, error) {
	return c.Get(ctx, "/admin/audit-logs", WithQuery(params))
}

// AdminSettings fetches the system settings.
func (c *Client) AdminSettings(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/admin/settings")
}

// AdminUpdateSetting updates one system setting by key.
func (c *Client) AdminUpdateSetting(ctx context.Context, key string, value any) (*Result, error) {
	body := map[string]any{"value": value}
	return c.Do(ctx, http.MethodPut, "/admin/settings/"+key, body)
}
