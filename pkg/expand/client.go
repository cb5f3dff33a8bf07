// Package expand calls an external suggestion service to generate child
// topics for a node. The engine itself is provider-agnostic: it posts the
// node's label and ancestry path and receives suggested child labels.
package expand

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mindgrove/mindgrove/pkg/errors"
	"github.com/mindgrove/mindgrove/pkg/httputil"
	"github.com/mindgrove/mindgrove/pkg/tree"
)

// Client talks to the expansion endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	retry    httputil.RetryConfig
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets a bearer token sent on each request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg httputil.RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "expand endpoint is empty")
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		retry:    httputil.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request is the wire format posted to the endpoint.
type request struct {
	Label string   `json:"label"`
	Path  []string `json:"path"`
	Limit int      `json:"limit,omitempty"`
}

// response is the wire format returned by the endpoint.
type response struct {
	Children []string `json:"children"`
}

// Expand requests child suggestions for the node with the given label.
// path holds the labels from the root down to the node's parent, giving the
// service context for relevant suggestions. Returns new unattached nodes.
func (c *Client) Expand(ctx context.Context, label string, path []string, limit int) ([]*tree.Node, error) {
	if label == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "node label is empty")
	}

	body, err := json.Marshal(request{Label: label, Path: path, Limit: limit})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode expand request")
	}

	var labels []string
	err = httputil.Retry(ctx, c.retry, func() error {
		got, err := c.post(ctx, body)
		if err != nil {
			return err
		}
		labels = got
		return nil
	})
	if err != nil {
		return nil, err
	}

	children := make([]*tree.Node, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		children = append(children, tree.New(l))
	}
	return children, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build expand request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "expand request failed")}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("expand service returned %d", resp.StatusCode)
		if httputil.RetryableStatus(resp.StatusCode) {
			return nil, &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "%s", msg)}
		}
		return nil, errors.New(errors.ErrCodeNetwork, "%s", msg)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read expand response")}
	}

	var parsed response
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse expand response")
	}
	return parsed.Children, nil
}
