package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/netscore/pkg/observability"
)

// Client provides shared HTTP functionality for the registry and source
// platform clients. It applies common request headers and maps HTTP
// status codes onto the package's sentinel errors. Every call hits the
// network; there is no response cache and no retry.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client that sends requests through hc with the given
// default headers. Pass nil for hc to use [NewHTTPClient] with no timeout,
// and nil for headers if no default headers are needed.
func NewClient(hc *http.Client, headers map[string]string) *Client {
	if hc == nil {
		hc = NewHTTPClient(0)
	}
	return &Client{
		http:    hc,
		headers: headers,
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.do(req, headers, v)
}

// PostJSON JSON-encodes body, POSTs it to url and JSON-decodes the response into v.
func (c *Client) PostJSON(ctx context.Context, url string, body, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	return c.do(req, map[string]string{"Content-Type": "application/json"}, v)
}

func (c *Client) do(req *http.Request, headers map[string]string, v any) error {
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	hooks := observability.HTTP()
	ctx, host, path := req.Context(), req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if len(body) > 0 {
			return fmt.Errorf("%w: status %d: %s", ErrNetwork, code, bytes.TrimSpace(body))
		}
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
