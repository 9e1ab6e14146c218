// ABOUTME: Playback control tools: play, pause, resume, stop, seek, volume, mute.
// ABOUTME: Upstream metadata fetches are best-effort; control never fails on enrichment.

package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/2389/sonic-gateway/internal/subsonic"
)

// fetchSong returns the song element for an ID, or nil when the upstream
// call fails or the song is absent. Used only for message enrichment.
func (s *Service) fetchSong(ctx context.Context, songID string) (*subsonic.Element, error) {
	root, err := s.client.Call(ctx, "getSong", map[string]string{"id": songID})
	if err != nil {
		return nil, err
	}
	return root.Find("song"), nil
}

func (s *Service) playSong(ctx context.Context, args map[string]any) (string, error) {
	songID := stringArg(args, "song_id", "")

	// State mutation comes first; enrichment must not block playback.
	streamURL := s.client.StreamURL(songID)
	s.state.Play(songID, streamURL)

	song, err := s.fetchSong(ctx, songID)
	if err != nil || song == nil {
		if err != nil {
			s.logger.Warn("song info lookup failed", "song_id", songID, "error", err)
		}
		return fmt.Sprintf("Playing song ID: %s. Stream URL: %s", songID, streamURL), nil
	}

	return fmt.Sprintf("Now playing: %s by %s. Stream URL: %s",
		song.Attr("title", "Unknown"),
		song.Attr("artist", "Unknown"),
		streamURL,
	), nil
}

func (s *Service) pausePlayback(_ context.Context, _ map[string]any) (string, error) {
	return s.state.Pause(), nil
}

func (s *Service) resumePlayback(_ context.Context, _ map[string]any) (string, error) {
	return s.state.Resume(), nil
}

func (s *Service) stopPlayback(_ context.Context, _ map[string]any) (string, error) {
	return s.state.Stop(), nil
}

func (s *Service) seekTo(ctx context.Context, args map[string]any) (string, error) {
	timeSeconds, err := intArg(args, "time_seconds", 0)
	if err != nil {
		return "", err
	}

	msg, applied := s.state.Seek(timeSeconds)
	if !applied {
		return msg, nil
	}

	// The position is stored regardless of what duration validation says;
	// the duration check only shapes the reply.
	songID, _ := s.state.CurrentSong()
	song, fetchErr := s.fetchSong(ctx, songID)
	if fetchErr != nil {
		return fmt.Sprintf("Seeking to %ds. Note: %v", timeSeconds, fetchErr), nil
	}
	if song == nil {
		return fmt.Sprintf("Seeking to %ds in the current song.", timeSeconds), nil
	}

	duration, _ := strconv.Atoi(song.Attr("duration", "0"))
	if timeSeconds > duration {
		return fmt.Sprintf("Time position %ds exceeds song duration of %ds.", timeSeconds, duration), nil
	}

	return fmt.Sprintf("Seeking to %d:%02d in the current song.", timeSeconds/60, timeSeconds%60), nil
}

func (s *Service) setVolume(_ context.Context, args map[string]any) (string, error) {
	volume, err := intArg(args, "volume", 100)
	if err != nil {
		return "", err
	}
	return s.state.SetVolume(volume), nil
}

func (s *Service) mute(_ context.Context, _ map[string]any) (string, error) {
	return s.state.Mute(), nil
}

func (s *Service) unmute(_ context.Context, _ map[string]any) (string, error) {
	return s.state.Unmute(), nil
}

func (s *Service) getCurrentSong(ctx context.Context, _ map[string]any) (string, error) {
	songID, ok := s.state.CurrentSong()
	if !ok {
		return "No song is currently playing.", nil
	}

	song, err := s.fetchSong(ctx, songID)
	if err != nil {
		return fmt.Sprintf("Error getting current song: %v", err), nil
	}
	if song == nil {
		return fmt.Sprintf("Playing song ID: %s - Status: %s", songID, s.state.StatusWord()), nil
	}

	return fmt.Sprintf("Current song: %s by %s from album %s (%ss) - Status: %s",
		song.Attr("title", "Unknown"),
		song.Attr("artist", "Unknown"),
		song.Attr("album", "Unknown"),
		song.Attr("duration", "0"),
		s.state.StatusWord(),
	), nil
}

func (s *Service) playPlaylist(ctx context.Context, args map[string]any) (string, error) {
	playlistID := stringArg(args, "playlist_id", "")

	root, err := s.client.Call(ctx, "getPlaylist", map[string]string{"id": playlistID})
	if err != nil {
		return fmt.Sprintf("Error playing playlist: %v", err), nil
	}

	playlistName := "Unknown Playlist"
	if p := root.Find("playlist"); p != nil {
		playlistName = p.Attr("name", "Unknown Playlist")
	}

	songs := root.FindAll("song")
	if len(songs) == 0 {
		return fmt.Sprintf("Playlist '%s' is empty.", playlistName), nil
	}

	first := songs[0]
	songID := first.Attr("id", "")
	streamURL := s.client.StreamURL(songID)
	s.state.Play(songID, streamURL)

	return fmt.Sprintf("Playing playlist '%s': %s by %s (first of %d songs). Stream URL: %s",
		playlistName,
		first.Attr("title", "Unknown"),
		first.Attr("artist", "Unknown"),
		len(songs),
		streamURL,
	), nil
}
