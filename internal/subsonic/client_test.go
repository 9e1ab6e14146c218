// ABOUTME: Tests for the Subsonic HTTP client against a fake upstream.
// ABOUTME: Covers auth parameter merging, error mapping, and stream URLs.

package subsonic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/2389/sonic-gateway/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.SubsonicConfig{
		ServerURL:  srv.URL,
		Username:   "admin",
		Password:   "sesame",
		APIVersion: "1.15.0",
		ClientID:   "sonic-mcp",
	}
	return NewClient(cfg, nil), srv
}

func TestCall_SendsAuthAndParams(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`<subsonic-response status="ok"/>`))
	})

	_, err := client.Call(context.Background(), "search3", map[string]string{
		"query":     "cat stevens",
		"songCount": "20",
	})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	if gotPath != "/rest/search3.view" {
		t.Errorf("expected path /rest/search3.view, got %s", gotPath)
	}
	if gotQuery.Get("query") != "cat stevens" {
		t.Errorf("expected query param, got %q", gotQuery.Get("query"))
	}
	if gotQuery.Get("u") != "admin" {
		t.Errorf("expected auth username, got %q", gotQuery.Get("u"))
	}
	if gotQuery.Get("t") == "" || gotQuery.Get("s") == "" {
		t.Error("expected token auth parameters on the request")
	}
}

func TestCall_Non2xxIsUnreachable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Call(context.Background(), "getPlaylists", nil)
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if _, ok := err.(*UnreachableError); !ok {
		t.Fatalf("expected *UnreachableError, got %T", err)
	}
	if !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestCall_ConnectionRefusedIsUnreachable(t *testing.T) {
	cfg := &config.SubsonicConfig{
		ServerURL:  "http://127.0.0.1:1", // nothing listens here
		Username:   "admin",
		Password:   "sesame",
		APIVersion: "1.15.0",
		ClientID:   "sonic-mcp",
	}
	client := NewClient(cfg, nil)

	_, err := client.Call(context.Background(), "ping", nil)
	if err == nil {
		t.Fatal("expected error for refused connection")
	}
	if _, ok := err.(*UnreachableError); !ok {
		t.Fatalf("expected *UnreachableError, got %T", err)
	}
}

func TestCall_APIErrorSurfaces(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<subsonic-response status="failed"><error code="70" message="Song not found"/></subsonic-response>`))
	})

	_, err := client.Call(context.Background(), "getSong", map[string]string{"id": "999"})
	if err == nil {
		t.Fatal("expected APIError")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "Song not found" {
		t.Errorf("expected upstream message, got %q", apiErr.Message)
	}
}

func TestStream_ReturnsOpenResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/stream.view" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("id") != "42" {
			t.Errorf("expected id=42, got %q", r.URL.Query().Get("id"))
		}
		w.Header().Set("Content-Type", "audio/ogg")
		w.Write([]byte("oggdata"))
	})

	resp, err := client.Stream(context.Background(), "42")
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "audio/ogg" {
		t.Errorf("expected audio/ogg, got %s", got)
	}
}

func TestStream_Non2xxClosesBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Stream(context.Background(), "42")
	if err == nil {
		t.Fatal("expected error for 404 stream")
	}
	if _, ok := err.(*UnreachableError); !ok {
		t.Fatalf("expected *UnreachableError, got %T", err)
	}
}

func TestStreamURL_EmbedsFreshAuth(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	raw := client.StreamURL("42")
	if !strings.HasPrefix(raw, srv.URL+"/rest/stream.view?") {
		t.Fatalf("unexpected stream URL: %s", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("stream URL does not parse: %v", err)
	}
	q := u.Query()
	if q.Get("id") != "42" {
		t.Errorf("expected id=42, got %q", q.Get("id"))
	}
	if q.Get("u") != "admin" || q.Get("t") == "" || q.Get("s") == "" {
		t.Error("expected embedded auth parameters")
	}

	// Each URL carries its own salt.
	u2, _ := url.Parse(client.StreamURL("42"))
	if q.Get("s") == u2.Query().Get("s") && q.Get("t") == u2.Query().Get("t") {
		t.Error("expected fresh salt per generated URL")
	}
}
