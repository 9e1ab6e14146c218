// ABOUTME: Gateway orchestrator that builds components and runs the HTTP server.
// ABOUTME: Manages startup wiring and graceful shutdown on context cancellation.

package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/2389/sonic-gateway/internal/assets"
	"github.com/2389/sonic-gateway/internal/config"
	"github.com/2389/sonic-gateway/internal/mcp"
	"github.com/2389/sonic-gateway/internal/playback"
	"github.com/2389/sonic-gateway/internal/subsonic"
	"github.com/2389/sonic-gateway/internal/tools"
)

// shutdownTimeout bounds graceful HTTP shutdown once the context is done.
const shutdownTimeout = 5 * time.Second

// Gateway orchestrates the sonic-gateway server components: the shared
// playback state, the Subsonic client, the tool catalog, the MCP server,
// and the HTTP listener.
type Gateway struct {
	config     *config.Config
	logger     *slog.Logger
	state      *playback.State
	client     *subsonic.Client
	catalog    *tools.Registry
	mcpServer  *mcp.Server
	httpServer *http.Server
}

// New creates a gateway from the given configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}

	state := playback.NewState()
	client := subsonic.NewClient(&cfg.Subsonic, logger)
	catalog := tools.NewService(client, state, logger).Catalog()

	mcpServer, err := mcp.NewServer(catalog, logger)
	if err != nil {
		return nil, fmt.Errorf("creating MCP server: %w", err)
	}

	g := &Gateway{
		config:    cfg,
		logger:    logger,
		state:     state,
		client:    client,
		catalog:   catalog,
		mcpServer: mcpServer,
	}

	g.httpServer = &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: g.routes(),
	}

	return g, nil
}

// routes builds the full HTTP mux: MCP endpoints plus the player surfaces.
func (g *Gateway) routes() *http.ServeMux {
	mux := http.NewServeMux()

	g.mcpServer.RegisterRoutes(mux)

	mux.Handle("GET /player", assets.Player())
	mux.Handle("GET /theme/", http.StripPrefix("/theme/", assets.ThemeServer()))
	mux.HandleFunc("GET /stream/{song_id}", g.handleStream)
	mux.HandleFunc("GET /api/playback/state", g.handlePlaybackState)
	mux.HandleFunc("POST /api/playback/control", g.handlePlaybackControl)
	mux.HandleFunc("GET /health", g.handleHealth)

	return mux
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails, then shuts down gracefully.
func (g *Gateway) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		g.logger.Info("HTTP server listening", "addr", g.config.Server.HTTPAddr)
		if err := g.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		g.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := g.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return eg.Wait()
}

func (g *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
