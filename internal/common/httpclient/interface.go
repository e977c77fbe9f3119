// Package httpclient provides a configurable HTTP client for talking to the
// booking service REST API. It handles bearer-token authentication, request
// building, and error normalization. The package requires a Configurator
// implementation for the server URL and credentials.
package httpclient

import "context"

// Interface defines the operations booking and auth code needs from an HTTP
// client. Both the network client and the in-process test client satisfy it.
type Interface interface {
	// DoRequest makes an HTTP request with the given options.
	// Returns the response body and any error that occurred.
	DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error)

	// CreateResource POSTs the given JSON data to the endpoint path.
	// Returns the response body and any error that occurred.
	CreateResource(ctx context.Context, path string, data []byte) ([]byte, error)

	// GetResource GETs the resource at the endpoint path.
	// Returns the response body and any error that occurred.
	GetResource(ctx context.Context, path string) ([]byte, error)

	// UpdateResource PUTs the given JSON data to the endpoint path.
	// Returns the response body and any error that occurred.
	UpdateResource(ctx context.Context, path string, data []byte) ([]byte, error)

	// DeleteResource issues a DELETE for the endpoint path.
	// Returns any error that occurred.
	DeleteResource(ctx context.Context, path string) error
}

// Verify that HTTPClient and TestHTTPClient implement the Interface.
var _ Interface = &HTTPClient{}
var _ Interface = &TestHTTPClient{}
