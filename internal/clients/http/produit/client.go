package produit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrNotFound is returned when the Produit service answers 404.
var ErrNotFound = errors.New("produit not found")

// Product is the catalog entry as served by the Produit API.
type Product struct {
	ID            int64           `json:"id"`
	Nom           string          `json:"nom"`
	Description   string          `json:"description"`
	Prix          decimal.Decimal `json:"prix"`
	QuantiteStock int32           `json:"quantiteStock"`
}

// StatusError reports a non-2xx answer other than 404.
type StatusError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("produit service returned %s: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("produit service returned %s", e.Status)
}

type problemBody struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// TokenSource yields the bearer token to present for a call. An empty
// string sends the request without credentials.
type TokenSource func(ctx context.Context) string

// Option configures the client.
type Option func(*Client)

// WithTimeout bounds a single HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets how many times transport errors and 5xx answers are retried.
func WithRetries(count int, wait, maxWait time.Duration) Option {
	return func(c *Client) {
		if count >= 0 {
			c.retries = count
		}
		if wait > 0 {
			c.retryWait = wait
		}
		if maxWait > 0 {
			c.retryMaxWait = maxWait
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithTransport replaces the traced default transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.transport = rt
		}
	}
}

// Client calls the Produit service.
type Client struct {
	http         *resty.Client
	tokens       TokenSource
	transport    http.RoundTripper
	timeout      time.Duration
	retries      int
	retryWait    time.Duration
	retryMaxWait time.Duration
}

// NewClient builds a client for the Produit service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("produit base URL is required")
	}
	c := &Client{
		transport:    otelhttp.NewTransport(http.DefaultTransport),
		timeout:      5 * time.Second,
		retries:      2,
		retryWait:    100 * time.Millisecond,
		retryMaxWait: time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTransport(c.transport).
		SetTimeout(c.timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(c.retries).
		SetRetryWaitTime(c.retryWait).
		SetRetryMaxWaitTime(c.retryMaxWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() >= http.StatusInternalServerError
		})
	return c, nil
}

// GetProduct fetches GET /api/produits/{id}.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	if c == nil || c.http == nil {
		return nil, errors.New("produit client not configured")
	}
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return nil, err
	}
	req := c.http.R().
		SetContext(ctx).
		SetResult(&Product{}).
		SetError(&problemBody{})
	if c.tokens != nil {
		if token := c.tokens(ctx); token != "" {
			req.SetAuthToken(token)
		}
	}
	resp, err := req.Get("/api/produits/" + pathParam)
	if err != nil {
		return nil, fmt.Errorf("call produit service: %w", err)
	}
	switch status := resp.StatusCode(); {
	case status == http.StatusOK:
		product, ok := resp.Result().(*Product)
		if !ok || product == nil {
			return nil, errors.New("produit service returned an empty body")
		}
		return product, nil
	case status == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		statusErr := &StatusError{StatusCode: status, Status: resp.Status()}
		if body, ok := resp.Error().(*problemBody); ok && body != nil {
			statusErr.Detail = strings.TrimSpace(body.Detail)
		}
		return nil, statusErr
	}
}
