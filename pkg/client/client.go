package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/app-sre/ramp/pkg/env/upstream"
	"github.com/app-sre/ramp/pkg/normalize"
	"github.com/app-sre/ramp/pkg/version"
)

const connectTimeout = 5 * time.Second

// ErrTransport covers every way the upstream call can fail before a
// response body is read. A body that is not JSON is not a transport
// failure and wraps normalize.ErrUnrecognizedShape instead.
var ErrTransport = errors.New("failed to fetch data")

type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s from %s: unexpected status %d", ErrTransport, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s from %s: %s", ErrTransport, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

type Client struct {
	UpstreamEnv *upstream.Env

	client *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.SetHTTPClient(client)
	}
}

func New(u *upstream.Env, options ...Option) *Client {
	c := &Client{UpstreamEnv: u}

	c.client = &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *Client) SetHTTPClient(client *http.Client) {
	c.client = client
}

func (c *Client) URL(endpoint string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(c.UpstreamEnv.Endpoint, "/"), endpoint)
}

// Query posts payload to the endpoint and returns the decoded response.
// Numbers in the response are kept as json.Number.
func (c *Client) Query(ctx context.Context, endpoint string, payload any) (any, error) {
	content, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal request to %s: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(endpoint), bytes.NewBuffer(content))
	if err != nil {
		return nil, fmt.Errorf("unable to create request to %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", fmt.Sprintf("RAMP/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("unable to read response body: %w", err)}
	}

	raw, err := normalize.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s response: %w", endpoint, err)
	}

	return raw, nil
}

// Ping reports whether the upstream answers HTTP at all; the status code
// is not checked.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.UpstreamEnv.Endpoint, nil)
	if err != nil {
		return fmt.Errorf("unable to create request to RaMP: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("RAMP/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to reach RaMP: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return nil
}
