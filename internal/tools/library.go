// ABOUTME: Library browsing tools: search, listings, random songs, playlists.
// ABOUTME: Results are rendered as numbered text lists for LLM consumption.

package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/2389/sonic-gateway/internal/subsonic"
)

// songInfo is the subset of song attributes the text renderings use.
type songInfo struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	Duration string
}

// collectSongs extracts all song elements under root, defaulting missing
// attributes the way the Subsonic browsers do.
func collectSongs(root *subsonic.Element) []songInfo {
	elements := root.FindAll("song")
	songs := make([]songInfo, 0, len(elements))
	for _, e := range elements {
		songs = append(songs, songInfo{
			ID:       e.Attr("id", ""),
			Title:    e.Attr("title", "Unknown"),
			Artist:   e.Attr("artist", "Unknown"),
			Album:    e.Attr("album", "Unknown"),
			Duration: e.Attr("duration", "0"),
		})
	}
	return songs
}

// renderSongList renders a numbered song list, truncated to limit when
// limit is positive.
func renderSongList(header string, songs []songInfo, limit int) string {
	var b strings.Builder
	b.WriteString(header)
	for i, song := range songs {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintf(&b, "%d. %s by %s (ID: %s)\n", i+1, song.Title, song.Artist, song.ID)
	}
	return b.String()
}

func (s *Service) searchSongs(ctx context.Context, args map[string]any) (string, error) {
	query := stringArg(args, "query", "")

	root, err := s.client.Call(ctx, "search3", map[string]string{
		"query":     query,
		"songCount": "20",
	})
	if err != nil {
		return fmt.Sprintf("Error searching songs: %v", err), nil
	}

	songs := collectSongs(root)
	if len(songs) == 0 {
		return fmt.Sprintf("No songs found for query: '%s'", query), nil
	}

	return renderSongList(fmt.Sprintf("Found %d songs:\n", len(songs)), songs, 10), nil
}

func (s *Service) listSongs(ctx context.Context, args map[string]any) (string, error) {
	count, err := intArg(args, "count", 10)
	if err != nil {
		return "", err
	}

	// Prefer getNewestSongs; not every server implements it, so fall back
	// to an empty search silently.
	root, callErr := s.client.Call(ctx, "getNewestSongs", map[string]string{
		"size": strconv.Itoa(count),
	})
	if callErr != nil {
		root, callErr = s.client.Call(ctx, "search3", map[string]string{
			"query":     "",
			"songCount": strconv.Itoa(count),
		})
	}
	if callErr != nil {
		return fmt.Sprintf("Error listing songs: %v", callErr), nil
	}

	songs := collectSongs(root)
	if len(songs) == 0 {
		return "No songs found in library.", nil
	}

	return renderSongList(fmt.Sprintf("Found %d songs from library:\n", len(songs)), songs, 0), nil
}

func (s *Service) listAlbums(ctx context.Context, args map[string]any) (string, error) {
	size, err := intArg(args, "size", 50)
	if err != nil {
		return "", err
	}

	root, callErr := s.client.Call(ctx, "getAlbumList", map[string]string{
		"type": "random",
		"size": strconv.Itoa(size),
	})
	if callErr != nil {
		return fmt.Sprintf("Error listing albums: %v", callErr), nil
	}

	albums := root.FindAll("album")
	if len(albums) == 0 {
		return "No albums found in library.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d albums:\n", len(albums))
	for i, album := range albums {
		if i >= 20 {
			break
		}
		fmt.Fprintf(&b, "%d. %s by %s (%s songs, ID: %s)\n",
			i+1,
			album.Attr("name", "Unknown"),
			album.Attr("artist", "Unknown"),
			album.Attr("songCount", "0"),
			album.Attr("id", ""),
		)
	}
	return b.String(), nil
}

func (s *Service) getRandomSongs(ctx context.Context, args map[string]any) (string, error) {
	count, err := intArg(args, "count", 20)
	if err != nil {
		return "", err
	}

	root, callErr := s.client.Call(ctx, "getRandomSongs", map[string]string{
		"size": strconv.Itoa(count),
	})
	if callErr != nil {
		return fmt.Sprintf("Error getting random songs: %v", callErr), nil
	}

	songs := collectSongs(root)
	if len(songs) == 0 {
		return "No songs found in library.", nil
	}

	return renderSongList(fmt.Sprintf("Random %d songs from library:\n", len(songs)), songs, 0), nil
}

func (s *Service) getPlaylists(ctx context.Context, _ map[string]any) (string, error) {
	root, err := s.client.Call(ctx, "getPlaylists", nil)
	if err != nil {
		return fmt.Sprintf("Error getting playlists: %v", err), nil
	}

	playlists := root.FindAll("playlist")
	if len(playlists) == 0 {
		return "No playlists found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d playlists:\n", len(playlists))
	for _, p := range playlists {
		fmt.Fprintf(&b, "- %s (ID: %s, %s songs)\n",
			p.Attr("name", "Unknown"),
			p.Attr("id", ""),
			p.Attr("songCount", "0"),
		)
	}
	return b.String(), nil
}
