package httpclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// Option customizes the underlying resty.Client.
type Option func(*resty.Client)

// WithBaseURL resolves relative request URLs against base.
func WithBaseURL(base string) Option {
	return func(c *resty.Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.SetBaseURL(strings.TrimRight(base, "/"))
		}
	}
}

// WithLogger routes resty's own warnings and debug output to log.
func WithLogger(log resty.Logger) Option {
	return func(c *resty.Client) {
		if log != nil {
			c.SetLogger(log)
		}
	}
}

// NewRestyClient creates a new RestyClient. A zero timeout leaves requests unbounded.
func NewRestyClient(timeout time.Duration, opts ...Option) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout, opts...)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration, opts ...Option) *resty.Client {
	return newRestyBaseClient(timeout, opts...)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration, opts ...Option) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.execute(ctx, http.MethodGet, url, headers, nil)
}

// Post performs an HTTP POST carrying body as-is.
func (r *RestyClient) Post(ctx context.Context, url string, headers map[string]string, body []byte) (Response, error) {
	return r.execute(ctx, http.MethodPost, url, headers, body)
}

// Delete performs an HTTP DELETE without a body.
func (r *RestyClient) Delete(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.execute(ctx, http.MethodDelete, url, headers, nil)
}

// execute issues the request; transport errors are returned unwrapped.
func (r *RestyClient) execute(ctx context.Context, method, url string, headers map[string]string, body []byte) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
