package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Configurator defines the interface for providing server configuration and
// credentials. The token is whatever the login endpoint issued; implementations
// must return the current token at call time so in-flight identity changes are
// picked up on the next request, not mid-request.
type Configurator interface {
	GetServerURL() string
	GetToken() string
	GetTokenType() string
}

// HTTPError represents an error response from the server with HTTP status
// code and message. A StatusCode of 0 means the request never reached the
// server (transport failure).
type HTTPError struct {
	StatusCode int    // HTTP status code of the error
	Message    string // Error message or response body
}

// Error implements the error interface for HTTPError.
func (e *HTTPError) Error() string {
	return e.Message
}

// HTTPClient represents a client for making HTTP requests to the booking
// service. It handles authentication, request building, and response
// processing.
type HTTPClient struct {
	config     Configurator
	httpClient *http.Client
}

// ClientOptions contains options for configuring the HTTP client.
type ClientOptions struct {
	DisableCertValidation bool // If true, skips SSL certificate validation
}

// NewClient creates a new HTTP client using the provided configuration.
// The config parameter must implement the Configurator interface.
func NewClient(config Configurator, opts ...ClientOptions) *HTTPClient {
	clientOpts := ClientOptions{}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}
	return NewClientWithOptions(config, clientOpts)
}

// NewClientWithOptions creates a new HTTP client using the provided
// configuration and options.
func NewClientWithOptions(config Configurator, opts ClientOptions) *HTTPClient {
	httpClient := &http.Client{}

	if opts.DisableCertValidation {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return &HTTPClient{
		config:     config,
		httpClient: httpClient,
	}
}

// RequestOptions contains options for making HTTP requests.
// All fields are required except QueryParams and Body.
type RequestOptions struct {
	Method      string            // HTTP method (GET, POST, PUT, DELETE)
	Path        string            // API endpoint path
	QueryParams map[string]string // Optional query parameters
	Body        []byte            // Optional request body
}

// DoRequest makes an HTTP request with the given options. Exactly one request
// is issued per call; there is no retry. Returns the response body and any
// error that occurred. Status codes >= 400 are returned as *HTTPError with
// the server's error message extracted from the body when present.
func (c *HTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	u, err := url.Parse(c.config.GetServerURL())
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %v", err)
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

	log.Debug().Str("method", opts.Method).Str("path", opts.Path).Msg("dispatching request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &HTTPError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &HTTPError{Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	if resp.StatusCode >= 400 {
		log.Debug().Int("status", resp.StatusCode).Str("path", opts.Path).Msg("server returned error")
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
		}
	}

	return body, nil
}

// CreateResource POSTs the given JSON data to the endpoint path.
func (c *HTTPClient) CreateResource(ctx context.Context, p string, data []byte) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   p,
		Body:   data,
	})
}

// GetResource GETs the resource at the endpoint path.
func (c *HTTPClient) GetResource(ctx context.Context, p string) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   p,
	})
}

// UpdateResource PUTs the given JSON data to the endpoint path.
func (c *HTTPClient) UpdateResource(ctx context.Context, p string, data []byte) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPut,
		Path:   p,
		Body:   data,
	})
}

// DeleteResource issues a DELETE for the endpoint path.
func (c *HTTPClient) DeleteResource(ctx context.Context, p string) error {
	_, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodDelete,
		Path:   p,
	})
	return err
}

// setAuthHeader attaches the bearer token from the configurator, if any.
func setAuthHeader(req *http.Request, config Configurator) {
	token := config.GetToken()
	if token == "" {
		return
	}
	tokenType := config.GetTokenType()
	if tokenType == "" {
		tokenType = "Bearer"
	}
	req.Header.Set("Authorization", tokenType+" "+token)
}

// errorMessage extracts a human-readable message from an error response body.
// The booking service reports errors as {"message": ...}; some deployments
// use {"error": ...}. Falls back to the raw body, then to the status text.
func errorMessage(status int, body []byte) string {
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return msg
	}
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		return msg
	}
	if len(body) > 0 {
		return string(body)
	}
	return http.StatusText(status)
}
