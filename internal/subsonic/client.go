// ABOUTME: HTTP client for Subsonic REST operations with per-request auth.
// ABOUTME: Metadata calls get a bounded timeout; stream requests bound only connection setup.

package subsonic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/2389/sonic-gateway/internal/config"
)

const (
	// metadataTimeout bounds catalog calls (search, getSong, playlists).
	metadataTimeout = 10 * time.Second

	// streamHeaderTimeout bounds connection setup for audio streams.
	// The body transfer itself is unbounded; playback can run for hours.
	streamHeaderTimeout = 30 * time.Second
)

// Client issues authenticated requests against a Subsonic-compatible server.
type Client struct {
	cfg    *config.SubsonicConfig
	logger *slog.Logger

	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a client for the configured upstream server.
func NewClient(cfg *config.SubsonicConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: metadataTimeout},
		streamClient: &http.Client{
			Transport: &http.Transport{ResponseHeaderTimeout: streamHeaderTimeout},
		},
	}
}

// Call performs a GET against /rest/<op>.view with auth plus the given
// parameters and returns the normalized response tree. Caller-supplied
// parameters override auth parameters on key collision.
func (c *Client) Call(ctx context.Context, op string, params map[string]string) (*Element, error) {
	endpoint := c.endpointURL(op, params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UnreachableError{Err: fmt.Errorf("%s returned status %d", op, resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}

	c.logger.Debug("subsonic call", "op", op, "bytes", len(body))

	return Normalize(body)
}

// Stream opens the audio stream for a song. The caller owns the returned
// response and must close its body; cancellation of ctx aborts the transfer.
func (c *Client) Stream(ctx context.Context, songID string) (*http.Response, error) {
	endpoint := c.endpointURL("stream", map[string]string{"id": songID})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &UnreachableError{Err: fmt.Errorf("stream returned status %d", resp.StatusCode)}
	}

	return resp, nil
}

// StreamURL returns the fully-qualified stream URL for a song, with fresh
// auth parameters embedded. Recomputed every time a song starts playing.
func (c *Client) StreamURL(songID string) string {
	return c.endpointURL("stream", map[string]string{"id": songID})
}

// endpointURL builds /rest/<op>.view with merged auth and caller parameters.
func (c *Client) endpointURL(op string, params map[string]string) string {
	values := AuthParams(c.cfg)
	for k, v := range params {
		values.Set(k, v)
	}
	return fmt.Sprintf("%s/rest/%s.view?%s", c.cfg.ServerURL, url.PathEscape(op), values.Encode())
}
