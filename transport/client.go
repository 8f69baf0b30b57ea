// Package transport provides the shared HTTP client every API group calls
// through. It owns bearer-token injection, request/response logging, the
// 401 session teardown, and response envelope decoding, so call sites
// never repeat any of it.
package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/pkg/logging"
)

const defaultTimeout = 30 * time.Second

// Options configures the transport client.
type Options struct {
	// BaseURL is the backend base address. Required.
	BaseURL string
	// Timeout applies to every request. Defaults to 30 seconds.
	Timeout time.Duration
	// Storage is the durable store the bearer token is read from on every
	// request. Required.
	Storage core.KeyValueStore
	// Sessions is torn down when any request comes back 401. Required.
	Sessions *core.SessionStore
	// Logger receives request/response/error lines. Defaults to the
	// standard logger.
	Logger *logrus.Logger
	// Retry enables retries when non-nil. Nil means every failure reaches
	// the caller on the first attempt.
	Retry *RetryPolicy
}

// Client is the one shared HTTP client used by every resource API group.
type Client struct {
	http     *resty.Client
	storage  core.KeyValueStore
	sessions *core.SessionStore
	log      *logrus.Logger
}

func New(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		storage:  opts.Storage,
		sessions: opts.Sessions,
		log:      log,
	}

	c.http = resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	c.http.OnBeforeRequest(c.beforeRequest)
	c.http.OnAfterResponse(c.afterResponse)
	c.http.OnError(c.onError)

	if opts.Retry != nil {
		opts.Retry.apply(c.http)
	}

	return c
}

// beforeRequest attaches the bearer token and logs the outgoing call. The
// token is read from durable storage on every request rather than from a
// cached field, so a login between two requests is always picked up.
func (c *Client) beforeRequest(_ *resty.Client, req *resty.Request) error {
	requestID := uuid.NewString()
	req.SetHeader("X-Request-ID", requestID)

	// This hook runs before resty resolves the base URL, so build the full
	// URL here to keep request and response log lines comparable.
	fullURL := c.http.BaseURL + req.URL

	token, err := c.storage.Get(req.Context(), core.KeyToken)
	switch {
	case err == nil && token != "":
		req.SetAuthToken(token)
	case err != nil && !errors.Is(err, core.ErrKeyNotFound):
		logging.Failure(c.log, requestID, fullURL, err)
		return err
	}

	logging.Request(c.log, requestID, req.Method, fullURL, req.Body)
	return nil
}

// afterResponse logs the response and converts error statuses into
// *core.APIError. A 401 additionally tears the session down through the
// session store's own logout, the single code path that clears session
// keys.
func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	requestID := resp.Request.Header.Get("X-Request-ID")
	logging.Response(c.log, requestID, resp.Request.URL, resp.StatusCode(), resp.Body())

	if !resp.IsError() {
		return nil
	}

	apiErr := core.NewAPIError(resp.StatusCode(), resp.Body())
	logging.Failure(c.log, requestID, resp.Request.URL, apiErr)

	if resp.StatusCode() == http.StatusUnauthorized {
		if err := c.sessions.Logout(resp.Request.Context()); err != nil {
			c.log.WithError(err).Warn("session teardown after 401 failed")
		}
	}

	return apiErr
}

// onError logs transport-level failures (no response at all). The error
// itself propagates unchanged to the caller.
func (c *Client) onError(req *resty.Request, err error) {
	logging.Failure(c.log, req.Header.Get("X-Request-ID"), req.URL, err)
}

// Get issues a GET and decodes the enveloped response into out. Pass nil
// when the body is not needed.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.execute(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.execute(ctx, http.MethodPost, path, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.execute(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.execute(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) execute(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	return core.DecodeEnvelope(resp.Body(), out)
}

// Upload posts a multipart form with a single file field and decodes the
// enveloped response into out.
func (c *Client) Upload(ctx context.Context, path, field, fileName string, file io.Reader, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader(field, fileName, file).
		Post(path)
	if err != nil {
		return err
	}
	return core.DecodeEnvelope(resp.Body(), out)
}
