// Package graph is the Microsoft Graph transport layer: a retrying,
// rate-limit-aware HTTP client plus pagination over @odata.nextLink.
//
// Every outbound call goes through Client.Do, which owns bearer attachment,
// per-attempt deadlines, exponential backoff with jitter, Retry-After
// handling and the optional per-run request budget. Callers above this
// package never see a transient upstream failure that retries could absorb.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/teamsctl/internal/core/ports/driven"
	"github.com/custodia-labs/teamsctl/internal/logger"
)

// BaseURL is the Microsoft Graph API base URL.
const BaseURL = "https://graph.microsoft.com/v1.0"

// Request describes one logical upstream request.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is a fully-read upstream response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client performs Graph requests with retries, rate limiting and an optional
// request budget. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	tokens     driven.TokenProvider
	limiter    *RateLimiter
	policy     RetryPolicy
	budget     *Budget
	log        zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.policy = p }
}

// WithRateLimiter replaces the default rate limiter. Nil disables upstream
// rate limiting entirely.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) { c.limiter = rl }
}

// WithBudget attaches a request budget to every call made by the client.
func WithBudget(b *Budget) Option {
	return func(c *Client) { c.budget = b }
}

// NewClient creates a Graph client. Tokens are fetched from the provider on
// every attempt so refreshed credentials are picked up mid-run.
func NewClient(tokens driven.TokenProvider, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		tokens:     tokens,
		limiter:    NewRateLimiter(),
		policy:     DefaultRetryPolicy(),
		log:        logger.Component("graph"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Budgeted returns a copy of the client whose calls draw from b. The copy
// shares the rate limiter and transport with the receiver.
func (c *Client) Budgeted(b *Budget) *Client {
	cp := *c
	cp.budget = b
	return &cp
}

// Do performs one logical request with retries per the client's policy.
//
// Success (2xx) returns immediately. A status outside the retryable set
// fails immediately with a *StatusError. Retryable statuses and transport
// errors consume retry budget; once it is exhausted the last cause is
// returned inside a *RetriesExhaustedError. Credential and budget errors
// are returned as-is without retrying.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if err := c.policy.Validate(); err != nil {
		return nil, err
	}

	attempts := c.policy.MaxRetries + 1
	delay := c.policy.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.budget.Spend(); err != nil {
			return nil, err
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		token, err := c.tokens.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTokenUnavailable, err)
		}

		resp, err := c.attempt(ctx, req, token)
		switch {
		case err != nil:
			// Transport failure or per-attempt timeout: retryable, unless
			// the caller's own context is gone.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		case !c.policy.retryable(resp.StatusCode):
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
		default:
			lastErr = &StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
		}

		if attempt == attempts {
			break
		}

		wait := delay
		if resp != nil {
			if secs, ok := retryAfterSeconds(resp.Header); ok {
				wait = time.Duration(secs) * time.Second
				if resp.StatusCode == http.StatusTooManyRequests && c.limiter != nil {
					c.limiter.RecordRateLimitError(secs)
				}
			}
		}
		wait += c.jitter()

		c.log.Debug().
			Str("url", req.URL).
			Int("attempt", attempt).
			Dur("wait", wait).
			Err(lastErr).
			Msg("transient upstream failure, retrying")

		if err := sleepCtx(ctx, wait); err != nil {
			return nil, err
		}
		delay = c.policy.nextDelay(delay)
	}

	return nil, &RetriesExhaustedError{Attempts: attempts, Err: lastErr}
}

// attempt issues a single HTTP request under the per-attempt deadline and
// reads the full response body.
func (c *Client) attempt(ctx context.Context, req Request, token string) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.policy.Timeout)
	defer cancel()

	var body io.Reader = http.NoBody
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: url})
}

// GetJSON performs a GET request and decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// PostJSON performs a POST request with a JSON body.
func (c *Client) PostJSON(ctx context.Context, url string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.Do(ctx, Request{Method: http.MethodPost, URL: url, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, URL: url})
}

// retryAfterSeconds parses a Retry-After header as whole seconds. Malformed
// or non-positive values are treated as absent so the caller falls back to
// its computed backoff, never to a zero wait.
func retryAfterSeconds(h http.Header) (int, bool) {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 1 {
		return 0, false
	}
	return secs, true
}

func (c *Client) jitter() time.Duration {
	if c.policy.MaxJitter <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(c.policy.MaxJitter)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
