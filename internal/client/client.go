// Package client wraps the hire-ai REST API. Calls are stateless; the
// bearer token comes from the caller's session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hireai/portal/internal/utils"
)

const (
	DefaultBaseURL = "http://localhost:8000/api/v1"
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 4 << 20
)

type Client struct {
	baseURL string
	token   string
	httpDo  *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpDo = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpDo = &http.Client{Timeout: d}
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		httpDo:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithToken returns a copy of c that sends tok as a bearer token. An empty
// tok sends no Authorization header.
func (c *Client) WithToken(tok string) *Client {
	cp := *c
	cp.token = tok
	return &cp
}

// Error is every failure the client returns once a request was attempted.
// Status is 0 when no response arrived.
type Error struct {
	Status  int
	Message string
	Details map[string]any

	err error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.err }

// Code maps the backend status onto the portal's error codes.
func (e *Error) Code() utils.Code { return utils.CodeForStatus(e.Status) }

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Message: fallback, err: err}
		}
		body = bytes.NewReader(b)
	}

	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &Error{Message: fallback, err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return &Error{Message: fallback, err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: fallback, err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalize(resp.StatusCode, raw, fallback)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: fallback, err: err}
	}
	return nil
}

// normalize picks the most specific message the backend offered:
// the first validation message, a detail string, a message field, and
// finally fallback.
func normalize(status int, raw []byte, fallback string) *Error {
	e := &Error{Status: status, Message: fallback}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return e
	}
	e.Details = m

	switch d := m["detail"].(type) {
	case []any:
		if len(d) > 0 {
			if first, ok := d[0].(map[string]any); ok {
				if msg, ok := first["msg"].(string); ok && msg != "" {
					e.Message = msg
					return e
				}
			}
		}
	case string:
		if d != "" {
			e.Message = d
			return e
		}
	}
	if msg, ok := m["message"].(string); ok && msg != "" {
		e.Message = msg
	}
	return e
}

func pathID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

func page(skip, limit int) url.Values {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
