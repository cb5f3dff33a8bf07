package expand

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mindgrove/mindgrove/pkg/httputil"
)

func TestExpandReturnsChildren(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Label != "Marketing" {
			t.Errorf("label = %q, want Marketing", req.Label)
		}
		if len(req.Path) != 1 || req.Path[0] != "Business Plan" {
			t.Errorf("path = %v, want [Business Plan]", req.Path)
		}
		json.NewEncoder(w).Encode(response{Children: []string{"Social Media", "SEO", ""}})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	children, err := c.Expand(context.Background(), "Marketing", []string{"Business Plan"}, 5)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	// Empty labels are dropped.
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if children[0].Label != "Social Media" || children[1].Label != "SEO" {
		t.Errorf("labels = %q, %q", children[0].Label, children[1].Label)
	}
	if children[0].ID == "" || children[0].ID == children[1].ID {
		t.Error("children must get fresh unique IDs")
	}
}

func TestExpandRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(response{Children: []string{"A"}})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithRetryConfig(httputil.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    10 * time.Millisecond,
	}))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	children, err := c.Expand(context.Background(), "X", nil, 0)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(children) != 1 {
		t.Errorf("got %d children, want 1", len(children))
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestExpandDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithRetryConfig(httputil.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    10 * time.Millisecond,
	}))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := c.Expand(context.Background(), "X", nil, 0); err == nil {
		t.Fatal("Expand = nil, want error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestExpandSendsAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(response{})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithAPIKey("secret"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Expand(context.Background(), "X", nil, 0); err != nil {
		t.Fatalf("Expand: %v", err)
	}
}

func TestNewClientValidatesEndpoint(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("NewClient(\"\") = nil, want error")
	}
}

func TestExpandValidatesLabel(t *testing.T) {
	c, err := NewClient("http://localhost:1")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Expand(context.Background(), "", nil, 0); err == nil {
		t.Error("Expand with empty label = nil, want error")
	}
}
