// ABOUTME: Shared mutable playback record with guarded transition operations.
// ABOUTME: Tracks current song, play/pause flags, stream URL, seek position, volume, mute.

package playback

import (
	"fmt"
	"sync"
)

// Snapshot is the JSON representation of the playback record, served
// verbatim to the browser player.
type Snapshot struct {
	CurrentSong      *string `json:"current_song"`
	IsPlaying        bool    `json:"is_playing"`
	IsPaused         bool    `json:"is_paused"`
	CurrentStreamURL *string `json:"current_stream_url"`
	SeekPosition     *int    `json:"seek_position"`
	Volume           int     `json:"volume"`
	IsMuted          bool    `json:"is_muted"`
}

// State is the process-wide playback record. All access goes through the
// mutex; transitions are single short critical sections.
//
// Invariants: isPlaying and isPaused are never both true, and an unset
// currentSong implies both flags false and no stream URL.
type State struct {
	mu sync.Mutex

	currentSong      string // empty means nothing loaded
	isPlaying        bool
	isPaused         bool
	currentStreamURL string
	seekPosition     *int
	volume           int
	isMuted          bool
}

// NewState creates the playback record with default volume 100.
func NewState() *State {
	return &State{volume: 100}
}

// Play unconditionally loads the given song and marks it playing.
// The stream URL is recomputed by the caller for every new song.
func (s *State) Play(songID, streamURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentSong = songID
	s.isPlaying = true
	s.isPaused = false
	s.currentStreamURL = streamURL
}

// Pause marks the current song paused. No-op when nothing is loaded.
func (s *State) Pause() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentSong == "" {
		return "No song is currently playing."
	}

	s.isPaused = true
	s.isPlaying = false
	return "Playback paused."
}

// Resume returns a paused song to playing. Distinct messages for nothing
// loaded and not paused; neither case mutates.
func (s *State) Resume() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentSong == "" {
		return "No song to resume."
	}
	if !s.isPaused {
		return "Playback is not paused."
	}

	s.isPaused = false
	s.isPlaying = true
	return "Playback resumed."
}

// Stop clears the loaded song, both flags, the stream URL, and the seek
// position. No-op when nothing is loaded.
func (s *State) Stop() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentSong == "" {
		return "No song is currently playing."
	}

	s.currentSong = ""
	s.isPlaying = false
	s.isPaused = false
	s.currentStreamURL = ""
	s.seekPosition = nil
	return "Playback stopped."
}

// Seek stores a seek position in seconds. Negative positions are rejected
// with a validation message and no mutation; duration validation against
// the actual song is the caller's concern and is advisory only.
func (s *State) Seek(timeSeconds int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentSong == "" {
		return "No song is currently playing.", false
	}
	if timeSeconds < 0 {
		return "Time position must be positive.", false
	}

	pos := timeSeconds
	s.seekPosition = &pos
	return fmt.Sprintf("Seeking to %ds in the current song.", timeSeconds), true
}

// ClearSeek unsets the seek position. Used by the player control path when
// it sends a negative time; the tool path rejects negatives instead.
func (s *State) ClearSeek() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seekPosition = nil
	return "Seek position cleared"
}

// SetVolume sets the volume percentage and always unmutes. Values outside
// [0,100] are rejected with a validation message and no mutation.
func (s *State) SetVolume(volume int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if volume < 0 || volume > 100 {
		return "Volume must be between 0 and 100."
	}

	s.volume = volume
	s.isMuted = false
	return fmt.Sprintf("Volume set to %d%%.", volume)
}

// Mute silences playback unconditionally.
func (s *State) Mute() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isMuted = true
	return "Audio muted."
}

// Unmute restores playback audio and reports the current volume.
func (s *State) Unmute() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isMuted = false
	return fmt.Sprintf("Audio unmuted. Volume is at %d%%.", s.volume)
}

// CurrentSong returns the loaded song ID and whether one is loaded.
func (s *State) CurrentSong() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSong, s.currentSong != ""
}

// StreamURL returns the current stream URL, empty when nothing is loaded.
func (s *State) StreamURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentStreamURL
}

// StatusWord describes the current state for human-readable output:
// "playing" when playing, otherwise "paused".
func (s *State) StatusWord() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isPlaying {
		return "playing"
	}
	return "paused"
}

// SnapshotState returns a copy of the record for JSON serialization.
func (s *State) SnapshotState() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		IsPlaying: s.isPlaying,
		IsPaused:  s.isPaused,
		Volume:    s.volume,
		IsMuted:   s.isMuted,
	}
	if s.currentSong != "" {
		song := s.currentSong
		snap.CurrentSong = &song
	}
	if s.currentStreamURL != "" {
		u := s.currentStreamURL
		snap.CurrentStreamURL = &u
	}
	if s.seekPosition != nil {
		pos := *s.seekPosition
		snap.SeekPosition = &pos
	}
	return snap
}
