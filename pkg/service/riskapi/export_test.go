package riskapi

import "net/http"

// HTTPClient returns the HTTP client requests are sent with
func (c *Client) HTTPClient() *http.Client {
	return c.http
}
