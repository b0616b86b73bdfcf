package patronus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	userAgent      = "patronus-go-sdk/0.1.0"
	defaultTimeout = 30 * time.Second
)

var validate = validator.New()

// Client talks to a Patronus control-plane API. All methods are safe for
// concurrent use; the client holds no state across calls beyond its
// configuration.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client

	Sites         *SitesService
	Tunnels       *TunnelsService
	Policies      *PoliciesService
	Organizations *OrganizationsService
	Metrics       *MetricsService
	MLModels      *MLModelsService
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.HTTPClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// NewClient creates a client for the API at baseURL. A trailing slash on
// baseURL is stripped.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Sites = &SitesService{client: c}
	c.Tunnels = &TunnelsService{client: c}
	c.Policies = &PoliciesService{client: c}
	c.Organizations = &OrganizationsService{client: c}
	c.Metrics = &MetricsService{client: c}
	c.MLModels = &MLModelsService{client: c}

	return c
}

// do performs one request and decodes the response into out (skipped when
// out is nil). Any status other than want is classified into an *Error;
// failures below the HTTP layer are returned as plain wrapped errors.
func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != want {
		return classify(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}

// requestBody folds open extension fields into the serialized payload.
// Extension keys win over struct fields, matching the server's
// last-write semantics for duplicate keys.
func requestBody(v any, extra map[string]any) (any, error) {
	if len(extra) == 0 {
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	merged := map[string]any{}
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, fmt.Errorf("merge extra fields: %w", err)
	}
	for k, val := range extra {
		merged[k] = val
	}
	return merged, nil
}
