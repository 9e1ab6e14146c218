// ABOUTME: HTTP API handlers backing the browser player: state and control.
// ABOUTME: Control actions reuse the same tool handlers the MCP path invokes.

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
)

// ControlRequest is the JSON request body for POST /api/playback/control.
type ControlRequest struct {
	Action      string   `json:"action"`
	TimeSeconds *float64 `json:"time_seconds,omitempty"`
	Volume      *float64 `json:"volume,omitempty"`
}

// ControlResponse is the JSON response for successful control actions.
type ControlResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handlePlaybackState returns the playback record verbatim as JSON.
func (g *Gateway) handlePlaybackState(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(g.state.SnapshotState()); err != nil {
		g.logger.Warn("failed to encode playback state", "error", err)
	}
}

// handlePlaybackControl applies one player action to the shared state.
// Unlike the tool path, a negative seek here clears the stored position
// rather than being rejected; the player sends -1 once it has applied a
// pending seek.
func (g *Gateway) handlePlaybackControl(w http.ResponseWriter, r *http.Request) {
	var req ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeControlError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var message string
	switch req.Action {
	case "pause":
		message = g.state.Pause()
	case "resume":
		message = g.state.Resume()
	case "stop":
		message = g.state.Stop()
	case "seek":
		timeSeconds := 0
		if req.TimeSeconds != nil {
			timeSeconds = int(*req.TimeSeconds)
		}
		if timeSeconds < 0 {
			message = g.state.ClearSeek()
		} else {
			var err error
			message, err = g.invokeControlTool(r.Context(), "seek_to", map[string]any{
				"time_seconds": float64(timeSeconds),
			})
			if err != nil {
				writeControlError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}
	case "set_volume":
		volume := 100
		if req.Volume != nil {
			volume = int(*req.Volume)
		}
		message = g.state.SetVolume(volume)
	case "mute":
		message = g.state.Mute()
	case "unmute":
		message = g.state.Unmute()
	default:
		writeControlError(w, http.StatusBadRequest, "Invalid action")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ControlResponse{Status: "success", Message: message}); err != nil {
		g.logger.Warn("failed to encode control response", "error", err)
	}
}

// invokeControlTool runs a catalog tool on behalf of the player so the
// control path and the MCP path share one implementation.
func (g *Gateway) invokeControlTool(ctx context.Context, name string, args map[string]any) (string, error) {
	tool, ok := g.catalog.Resolve(name)
	if !ok {
		// Catalog is fixed at startup; a miss here is a programming error.
		return "", &missingToolError{name: name}
	}
	return tool.Handler(ctx, tool.FilterArgs(args))
}

type missingToolError struct {
	name string
}

func (e *missingToolError) Error() string {
	return "tool not in catalog: " + e.name
}

func writeControlError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
