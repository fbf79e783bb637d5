package client

import "context"

// Public reference data; no authentication required, though a stored
// credential is still attached when present.

// Cities lists the supported cities.
func (c *Client) Cities(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/public/cities")
}

// BusinessTypes lists the merchant business types.
func (c *Client) BusinessTypes(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/public/business-types")
}

// ReturnReasons lists the accepted product return reasons.
func (c *Client) ReturnReasons(ctx context.Context) (*Result, error) {
	return c.Get(ctx, "/public/return-reasons")
}
