// ABOUTME: Tests for the gateway HTTP surfaces: player API, stream proxy, health.
// ABOUTME: Runs the full wired mux against a fake Subsonic upstream.

package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/sonic-gateway/internal/config"
)

func newTestGateway(t *testing.T, upstream http.HandlerFunc) (*Gateway, *httptest.Server) {
	t.Helper()

	if upstream == nil {
		upstream = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}
	}
	upstreamSrv := httptest.NewServer(upstream)
	t.Cleanup(upstreamSrv.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{HTTPAddr: "localhost:0"},
		Subsonic: config.SubsonicConfig{
			ServerURL:  upstreamSrv.URL,
			Username:   "admin",
			Password:   "sesame",
			APIVersion: "1.15.0",
			ClientID:   "sonic-mcp",
		},
	}

	g, err := New(cfg, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(g.routes())
	t.Cleanup(srv.Close)
	return g, srv
}

func postControl(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/playback/control", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return resp, m
}

func TestHealth(t *testing.T) {
	_, srv := newTestGateway(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestPlaybackState_Empty(t *testing.T) {
	_, srv := newTestGateway(t, nil)

	resp, err := http.Get(srv.URL + "/api/playback/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))

	assert.Nil(t, m["current_song"])
	assert.Equal(t, false, m["is_playing"])
	assert.Equal(t, false, m["is_paused"])
	assert.Nil(t, m["current_stream_url"])
	assert.Nil(t, m["seek_position"])
	assert.Equal(t, float64(100), m["volume"])
	assert.Equal(t, false, m["is_muted"])
}

func TestPlaybackState_ReflectsPlaying(t *testing.T) {
	g, srv := newTestGateway(t, nil)
	g.state.Play("42", "http://upstream/rest/stream.view?id=42")

	resp, err := http.Get(srv.URL + "/api/playback/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "42", m["current_song"])
	assert.Equal(t, true, m["is_playing"])
	assert.Equal(t, "http://upstream/rest/stream.view?id=42", m["current_stream_url"])
}

func TestControl_PauseResumeStop(t *testing.T) {
	g, srv := newTestGateway(t, nil)
	g.state.Play("42", "url")

	resp, m := postControl(t, srv, `{"action":"pause"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", m["status"])
	assert.Equal(t, "Playback paused.", m["message"])

	_, m = postControl(t, srv, `{"action":"resume"}`)
	assert.Equal(t, "Playback resumed.", m["message"])

	_, m = postControl(t, srv, `{"action":"stop"}`)
	assert.Equal(t, "Playback stopped.", m["message"])

	_, ok := g.state.CurrentSong()
	assert.False(t, ok)
}

func TestControl_VolumeAndMute(t *testing.T) {
	g, srv := newTestGateway(t, nil)

	_, m := postControl(t, srv, `{"action":"set_volume","volume":40}`)
	assert.Equal(t, "Volume set to 40%.", m["message"])
	assert.Equal(t, 40, g.state.SnapshotState().Volume)

	_, m = postControl(t, srv, `{"action":"mute"}`)
	assert.Equal(t, "Audio muted.", m["message"])
	assert.True(t, g.state.SnapshotState().IsMuted)

	_, m = postControl(t, srv, `{"action":"unmute"}`)
	assert.Equal(t, "Audio unmuted. Volume is at 40%.", m["message"])
	assert.False(t, g.state.SnapshotState().IsMuted)
}

func TestControl_SeekStoresPosition(t *testing.T) {
	g, srv := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/getSong.view" {
			w.Write([]byte(`<subsonic-response status="ok"><song id="42" duration="300"/></subsonic-response>`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	g.state.Play("42", "url")

	resp, m := postControl(t, srv, `{"action":"seek","time_seconds":90}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Seeking to 1:30 in the current song.", m["message"])

	snap := g.state.SnapshotState()
	require.NotNil(t, snap.SeekPosition)
	assert.Equal(t, 90, *snap.SeekPosition)
}

func TestControl_NegativeSeekClears(t *testing.T) {
	g, srv := newTestGateway(t, nil)
	g.state.Play("42", "url")
	g.state.Seek(30)

	_, m := postControl(t, srv, `{"action":"seek","time_seconds":-1}`)
	assert.Equal(t, "Seek position cleared", m["message"])
	assert.Nil(t, g.state.SnapshotState().SeekPosition)
}

func TestControl_InvalidAction(t *testing.T) {
	_, srv := newTestGateway(t, nil)

	resp, m := postControl(t, srv, `{"action":"explode"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid action", m["error"])
}

func TestControl_InvalidJSON(t *testing.T) {
	_, srv := newTestGateway(t, nil)

	resp, m := postControl(t, srv, `{broken`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid JSON", m["error"])
}

func TestStreamProxy(t *testing.T) {
	_, srv := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/stream.view" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "42", r.URL.Query().Get("id"))
		assert.NotEmpty(t, r.URL.Query().Get("t"), "stream request carries auth")
		w.Header().Set("Content-Type", "audio/ogg")
		w.Write([]byte("audio-bytes"))
	})

	resp, err := http.Get(srv.URL + "/stream/42")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/ogg", resp.Header.Get("Content-Type"))
	assert.Equal(t, `inline; filename="song_42.mp3"`, resp.Header.Get("Content-Disposition"))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "audio-bytes", string(body))
}

func TestStreamProxy_DefaultContentType(t *testing.T) {
	_, srv := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		// Header written directly so the library does not sniff a type.
		w.Header()["Content-Type"] = nil
		w.Write([]byte("x"))
	})

	resp, err := http.Get(srv.URL + "/stream/42")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
}

func TestStreamProxy_UpstreamDown(t *testing.T) {
	_, srv := newTestGateway(t, nil) // 404 upstream

	resp, err := http.Get(srv.URL + "/stream/42")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Error streaming song")
}

func TestPlayerPageServed(t *testing.T) {
	_, srv := newTestGateway(t, nil)

	resp, err := http.Get(srv.URL + "/player")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<audio")
}

func TestMCPEndpointsMounted(t *testing.T) {
	_, srv := newTestGateway(t, nil)

	resp, err := http.Post(srv.URL+"/tools/list", "application/json", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rpc struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpc))
	assert.Len(t, rpc.Result.Tools, 15)
	assert.Equal(t, "search_songs", rpc.Result.Tools[0].Name)
}
