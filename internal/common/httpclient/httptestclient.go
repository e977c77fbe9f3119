package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"

	"github.com/studiokit/studiokit/internal/studiotest"
)

// TestHTTPClient makes HTTP requests directly against the in-process booking
// backend. It uses httptest.NewRecorder to capture responses without network
// calls, so tests run against the full routing and status-code surface.
type TestHTTPClient struct {
	config Configurator
	server *studiotest.Server
}

// NewTestClient creates a test client bound to the given in-process server.
// The server must already have its handlers mounted.
func NewTestClient(config Configurator, server *studiotest.Server) *TestHTTPClient {
	return &TestHTTPClient{
		config: config,
		server: server,
	}
}

// DoRequest makes an HTTP request with the given options directly against the
// in-process server. Returns the response body and any error that occurred,
// with the same error normalization as the network client.
func (c *TestHTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	u, err := url.Parse(c.config.GetServerURL())
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %v", err)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.Path = path.Join(u.Path, opts.Path)

	q := u.Query()
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), bytes.NewBuffer(opts.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	setAuthHeader(req, c.config)

	rr := httptest.NewRecorder()
	c.server.Router.ServeHTTP(rr, req)
	body := rr.Body.Bytes()

	if rr.Code >= 400 {
		return nil, &HTTPError{
			StatusCode: rr.Code,
			Message:    errorMessage(rr.Code, body),
		}
	}

	return body, nil
}

// CreateResource POSTs the given JSON data to the endpoint path.
func (c *TestHTTPClient) CreateResource(ctx context.Context, p string, data []byte) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   p,
		Body:   data,
	})
}

// GetResource GETs the resource at the endpoint path.
func (c *TestHTTPClient) GetResource(ctx context.Context, p string) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   p,
	})
}

// UpdateResource PUTs the given JSON data to the endpoint path.
func (c *TestHTTPClient) UpdateResource(ctx context.Context, p string, data []byte) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPut,
		Path:   p,
		Body:   data,
	})
}

// DeleteResource issues a DELETE for the endpoint path.
func (c *TestHTTPClient) DeleteResource(ctx context.Context, p string) error {
	_, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodDelete,
		Path:   p,
	})
	return err
}
