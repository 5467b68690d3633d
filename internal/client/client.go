// Package client talks to the Global Terrorism REST API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"global-terrorism-dashboard/internal/metrics"
	"global-terrorism-dashboard/internal/model"
)

// UnknownError is reported when a failure carries no messages.
const UnknownError = "Unknown error."

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status int
	Errors []string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("api responded %d", e.Status)
	}
	return fmt.Sprintf("api responded %d: %s", e.Status, strings.Join(e.Errors, "; "))
}

// Messages returns the human readable messages of err, or UnknownError.
func Messages(err error) []string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		out := make([]string, len(apiErr.Errors))
		copy(out, apiErr.Errors)
		return out
	}
	return []string{UnknownError}
}

// TokenSource supplies the bearer token of the current session.
type TokenSource interface {
	Token() string
}

// Doer is satisfied by *fasthttp.Client.
type Doer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	Metrics *metrics.Metrics
}

// Client is a JSON client bound to the API base URL.
type Client struct {
	doer    Doer
	baseURL string
	timeout time.Duration
	tokens  TokenSource
	metrics *metrics.Metrics
}

// New creates a Client using doer for transport.
func New(doer Doer, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: timeout,
		tokens:  opts.Tokens,
		metrics: opts.Metrics,
	}
}

// NewFastHTTP creates a Client with a default fasthttp transport.
func NewFastHTTP(opts Options) *Client {
	return New(&fasthttp.Client{
		Name:                "global-terrorism-dashboard",
		MaxConnsPerHost:     64,
		ReadTimeout:         opts.Timeout,
		WriteTimeout:        opts.Timeout,
		MaxIdleConnDuration: time.Minute,
	}, opts)
}

// do sends a request and decodes a 2xx JSON body into out when out is non nil.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	start := time.Now()
	status := 0
	defer func() {
		if c.metrics != nil {
			c.metrics.APIRequestSeconds.
				WithLabelValues(operation, fmt.Sprint(status)).
				Observe(time.Since(start).Seconds())
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
		}
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", operation, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.doer.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	status = resp.StatusCode()
	if status < 200 || status >= 300 {
		return decodeError(status, resp.Body())
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{Status: status}
	var payload model.ErrorResponse
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		apiErr.Errors = payload.Errors
	}
	return apiErr
}
