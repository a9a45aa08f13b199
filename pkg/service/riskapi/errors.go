package riskapi

import "github.com/m-mizutani/goerr/v2"

var (
	ErrUnexpectedStatus = goerr.New("unexpected status from risk API")
	ErrDecodeResponse   = goerr.New("failed to decode risk API response")
)

// Context keys for error values
const (
	EndpointKey = "endpoint"
	StatusKey   = "status"
)
