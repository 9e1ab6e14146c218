// ABOUTME: Embedded browser player page and theme assets served by the gateway.
// ABOUTME: Everything ships inside the binary via go:embed; no filesystem layout required.

package assets

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed player.html theme
var content embed.FS

// Player serves the embedded web player page.
func Player() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := content.ReadFile("player.html")
		if err != nil {
			http.Error(w, "player page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	})
}

// ThemeServer returns a handler for the theme assets. The handler expects
// paths relative to the theme root (strip /theme/ before calling).
func ThemeServer() http.Handler {
	sub, err := fs.Sub(content, "theme")
	if err != nil {
		panic("assets: failed to create sub filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ext := strings.ToLower(path.Ext(r.URL.Path))
		if ct := mimeFromExt(ext); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}

// mimeFromExt returns the MIME type for a file extension, falling back to
// the standard library's database.
func mimeFromExt(ext string) string {
	switch ext {
	case ".js", ".mjs":
		return "application/javascript"
	case ".css":
		return "text/css; charset=utf-8"
	default:
		return mime.TypeByExtension(ext)
	}
}
