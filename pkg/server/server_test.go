package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gaugegrid/pkg/cache"
	"github.com/matzehuels/gaugegrid/pkg/httputil"
	"github.com/matzehuels/gaugegrid/pkg/observability"
	"github.com/matzehuels/gaugegrid/pkg/pipeline"
)

const body = `{
  "config": {"layout": {"columns": 2}},
  "series": [{"label": "CPU", "data": [[0, 63]]}, {"label": "Disk", "data": 91}],
  "width": 600,
  "height": 240
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(fc, nil, logger)
	ts := httptest.NewServer(New(runner, WithLogger(logger)).Handler())
	t.Cleanup(func() {
		ts.Close()
		runner.Close()
	})
	return ts
}

func post(t *testing.T, url, payload string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		format string
		ctype  string
		prefix string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"png", "image/png", "\x89PNG"},
		{"json", "application/json", "{"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts.URL+"/render/"+tt.format, body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.ctype {
				t.Errorf("Content-Type = %q, want %q", got, tt.ctype)
			}
			if resp.Header.Get(httputil.HeaderRequestID) == "" {
				t.Error("missing request id header")
			}
			data, _ := io.ReadAll(resp.Body)
			if !bytes.HasPrefix(data, []byte(tt.prefix)) {
				t.Errorf("body starts %.20q, want %q", data, tt.prefix)
			}
		})
	}
}

func TestRenderCached(t *testing.T) {
	ts := newTestServer(t)

	first := post(t, ts.URL+"/render/svg", body)
	if got := first.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	second := post(t, ts.URL+"/render/svg", body)
	if got := second.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if first.Header.Get("ETag") != second.Header.Get("ETag") {
		t.Error("ETag differs for identical requests")
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown format", "/render/gif", body, http.StatusBadRequest, "INVALID_FORMAT"},
		{"malformed body", "/render/svg", `{"series": [`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad config", "/render/svg", `{"config": {"layout": {"columns": 0}}, "series": []}`, http.StatusBadRequest, "INVALID_CONFIG"},
		{"unknown config key", "/render/svg", `{"config": {"colour": "red"}, "series": []}`, http.StatusBadRequest, "INVALID_CONFIG"},
		{"degenerate canvas", "/render/svg", `{"series": [{"label": "a", "data": 1}], "width": 10, "height": 10, "config": {"layout": {"margin": 20}}}`, http.StatusUnprocessableEntity, "DEGENERATE_LAYOUT"},
		{"oversized canvas", "/render/png", `{"series": [], "width": 100000}`, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var eb httputil.ErrorBody
			if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if eb.Error.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", eb.Error.Code, tt.code, eb.Error.Message)
			}
			if eb.Error.RequestID == "" {
				t.Error("error body has no request id")
			}
		})
	}
}

func TestHealthAndVersion(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/version"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu        sync.Mutex
	requests  int
	responses []int
	errors    int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, status)
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)
	ts := newTestServer(t)

	// Draining the body waits for the handler chain to return.
	for _, path := range []string{"/render/svg", "/render/gif"} {
		resp := post(t, ts.URL+path, body)
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.requests != 2 || hooks.errors != 1 {
		t.Errorf("requests=%d errors=%d, want 2 and 1", hooks.requests, hooks.errors)
	}
	if len(hooks.responses) != 2 || hooks.responses[0] != http.StatusOK || hooks.responses[1] != http.StatusBadRequest {
		t.Errorf("responses = %v, want [200 400]", hooks.responses)
	}
}
