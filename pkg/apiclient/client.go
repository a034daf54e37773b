// Package apiclient wraps JSON endpoints behind GET/POST/DELETE helpers that
// share one busy flag and one last-error slot per client.
//
// Operations never return errors. A failed call yields nil and records the
// failure text in LastError: the transport error for network failures, the
// raw response body for non-2xx statuses, the decoder message for bad JSON.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Adda-Baaj/reservation-desk/pkg/httpclient"
)

// Logger defines the logging surface the client relies on.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, interface{}) {}

// Client issues JSON requests and tracks their busy/error state.
type Client struct {
	http  httpclient.Client
	state State
	log   Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger enables debug logging of settled operations.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New returns a Client issuing requests through transport.
func New(transport httpclient.Client, opts ...Option) *Client {
	c := &Client{http: transport, log: noopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether an operation is in flight.
func (c *Client) Busy() bool { return c.state.Busy() }

// LastError returns the failure of the most recently settled operation, or nil.
func (c *Client) LastError() error { return c.state.LastError() }

// Watch registers fn for every state change. See State.Watch.
func (c *Client) Watch(fn Listener) (unwatch func()) { return c.state.Watch(fn) }

// FetchJSON issues a GET to endpoint with q appended and decodes the response
// into T.
func FetchJSON[T any](ctx context.Context, c *Client, endpoint string, q Query) *T {
	url := BuildURL(endpoint, q)
	return roundTrip[T](ctx, c, http.MethodGet, url, func(ctx context.Context) (httpclient.Response, error) {
		return c.http.Get(ctx, url, nil)
	})
}

// PostJSON issues a POST with payload encoded as JSON and decodes the response
// into T.
func PostJSON[T any](ctx context.Context, c *Client, endpoint string, payload any) *T {
	return roundTrip[T](ctx, c, http.MethodPost, endpoint, func(ctx context.Context) (httpclient.Response, error) {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return c.http.Post(ctx, endpoint, jsonHeaders(), body)
	})
}

// DeleteJSON issues a DELETE to endpoint and decodes the response into T.
func DeleteJSON[T any](ctx context.Context, c *Client, endpoint string) *T {
	return roundTrip[T](ctx, c, http.MethodDelete, endpoint, func(ctx context.Context) (httpclient.Response, error) {
		return c.http.Delete(ctx, endpoint, nil)
	})
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

// roundTrip runs send between begin and settle and decodes a 2xx body.
func roundTrip[T any](ctx context.Context, c *Client, method, endpoint string, send func(context.Context) (httpclient.Response, error)) (out *T) {
	start := time.Now()
	c.state.begin(method, endpoint)

	var err error
	defer func() {
		if err != nil {
			out = nil
		}
		elapsed := time.Since(start)
		c.state.settle(method, endpoint, err, elapsed)
		c.log.DebugObj("api request settled", "api_request", map[string]any{
			"method":     method,
			"endpoint":   endpoint,
			"ok":         err == nil,
			"error":      errorText(err),
			"elapsed_ms": elapsed.Milliseconds(),
		})
	}()

	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := send(ctx)
	if err != nil {
		return nil
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		err = errors.New(string(resp.Body()))
		return nil
	}
	err = json.Unmarshal(resp.Body(), &out)
	return out
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
