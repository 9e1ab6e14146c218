// ABOUTME: Wires the fifteen music tools to the Subsonic client and playback state.
// ABOUTME: Catalog order matters; it is what tools/list advertises to clients.

package tools

import (
	"log/slog"

	"github.com/2389/sonic-gateway/internal/playback"
	"github.com/2389/sonic-gateway/internal/subsonic"
)

// Service owns the dependencies shared by all tool handlers: the upstream
// client and the single playback record.
type Service struct {
	client *subsonic.Client
	state  *playback.State
	logger *slog.Logger
}

// NewService creates the tool service.
func NewService(client *subsonic.Client, state *playback.State, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		state:  state,
		logger: logger,
	}
}

// Catalog builds the fixed tool registry.
func (s *Service) Catalog() *Registry {
	return NewRegistry(
		&Tool{
			Name:        "search_songs",
			Description: "Search for songs in the music library",
			Params:      []Param{{Name: "query", Type: "string"}},
			Handler:     s.searchSongs,
		},
		&Tool{
			Name:        "list_songs",
			Description: "List songs from the music library (returns first N songs)",
			Params:      []Param{{Name: "count", Type: "number"}},
			Handler:     s.listSongs,
		},
		&Tool{
			Name:        "list_albums",
			Description: "List albums from the music library",
			Params:      []Param{{Name: "size", Type: "number"}},
			Handler:     s.listAlbums,
		},
		&Tool{
			Name:        "get_random_songs",
			Description: "Get random songs from the music library",
			Params:      []Param{{Name: "count", Type: "number"}},
			Handler:     s.getRandomSongs,
		},
		&Tool{
			Name:        "play_song",
			Description: "Start playing a song by its ID (use search_songs to find song IDs)",
			Params:      []Param{{Name: "song_id", Type: "string"}},
			Handler:     s.playSong,
		},
		&Tool{
			Name:        "pause_playback",
			Description: "Pause the currently playing song",
			Handler:     s.pausePlayback,
		},
		&Tool{
			Name:        "resume_playback",
			Description: "Resume paused playback",
			Handler:     s.resumePlayback,
		},
		&Tool{
			Name:        "stop_playback",
			Description: "Stop the currently playing song",
			Handler:     s.stopPlayback,
		},
		&Tool{
			Name:        "seek_to",
			Description: "Seek to a specific time position in the currently playing song (time in seconds). Example: 60 for 1 minute, 120 for 2 minutes",
			Params:      []Param{{Name: "time_seconds", Type: "number"}},
			Handler:     s.seekTo,
		},
		&Tool{
			Name:        "set_volume",
			Description: "Set the volume level (0-100 percentage). Example: 50 for 50%, 0 for mute, 100 for maximum",
			Params:      []Param{{Name: "volume", Type: "number"}},
			Handler:     s.setVolume,
		},
		&Tool{
			Name:        "mute",
			Description: "Mute the audio playback",
			Handler:     s.mute,
		},
		&Tool{
			Name:        "unmute",
			Description: "Unmute the audio playback",
			Handler:     s.unmute,
		},
		&Tool{
			Name:        "get_current_song",
			Description: "Get information about the currently playing song",
			Handler:     s.getCurrentSong,
		},
		&Tool{
			Name:        "get_playlists",
			Description: "List all available playlists on the music server",
			Handler:     s.getPlaylists,
		},
		&Tool{
			Name:        "play_playlist",
			Description: "Play a playlist by its ID (starts with first song)",
			Params:      []Param{{Name: "playlist_id", Type: "string"}},
			Handler:     s.playPlaylist,
		},
	)
}
