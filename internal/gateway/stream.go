// ABOUTME: Audio stream proxy relaying upstream bytes to the browser player.
// ABOUTME: Forwards content type, sets an inline disposition, honors client disconnect.

package gateway

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// streamChunkSize is the copy buffer size for relaying audio bytes.
const streamChunkSize = 8192

// handleStream proxies GET /stream/{song_id} from the upstream server with
// fresh auth parameters. The transfer runs for as long as the client keeps
// the connection open; closing it cancels the request context and aborts
// the upstream read.
func (g *Gateway) handleStream(w http.ResponseWriter, r *http.Request) {
	songID := r.PathValue("song_id")

	resp, err := g.client.Stream(r.Context(), songID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error streaming song: %v", err), http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="song_%s.mp3"`, songID))

	buf := make([]byte, streamChunkSize)
	if _, err := io.CopyBuffer(w, resp.Body, buf); err != nil {
		// Client disconnects are routine; anything else is worth a log line.
		if !errors.Is(err, r.Context().Err()) {
			g.logger.Warn("stream copy interrupted", "song_id", songID, "error", err)
		}
	}
}
