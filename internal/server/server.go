// Package server implements the HTTP surface: the Microsoft 365 proxy
// endpoints under /api, the Steam proxy endpoints under /steam, and the
// static front-end fallback. Every domain outcome is reported through the
// uniform {code, msg, data} envelope with HTTP 200; transport-level status
// codes are reserved for unmatched routes and panics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xybrad/o365panel/internal/config"
	"github.com/xybrad/o365panel/internal/steam"
)

// shutdownTimeout bounds the graceful drain on shutdown.
const shutdownTimeout = 10 * time.Second

// Server wires configuration, clients, and routes into a gin engine.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	httpClient *http.Client
	steam      *steam.Client
	version    string
	started    time.Time
}

// New builds the server. The upstream HTTP client deliberately has no
// timeout: a hung upstream call stalls only the operation that issued it.
func New(cfg *config.Config, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{}

	steamBase := cfg.Steam.BaseURL
	if steamBase == "" {
		steamBase = steam.DefaultBaseURL
	}

	steamCDN := cfg.Steam.CDNURL
	if steamCDN == "" {
		steamCDN = steam.DefaultCDNURL
	}

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		httpClient: httpClient,
		steam:      steam.NewClient(steamBase, steamCDN, cfg.Steam.APIKey, httpClient, logger),
		version:    version,
		started:    time.Now(),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(s.requestID(), s.requestLogger(), s.recovery())

	api := r.Group("/api")
	{
		api.GET("/account/info/:email", s.validateEmail(), s.handleAccountInfo)
		api.POST("/subscriptions/skus", s.adminAuth(), s.handleSubscribedSkus)
		api.POST("/onedrive/all", s.adminAuth(), s.handleOneDriveAll)
		api.GET("/health", s.handleHealth)
	}

	st := r.Group("/steam")
	{
		st.GET("/profile/:steamid", s.handleSteamProfile)
		st.GET("/games/:steamid", s.handleSteamGames)
		st.GET("/recentlyplayed/:steamid", s.handleSteamRecentlyPlayed)
		st.GET("/recentlyplayed/:steamid/:count", s.handleSteamRecentlyPlayed)
		st.GET("/achievements/:steamid/:appid", s.handleSteamAchievements)
		st.GET("/imageurl2base64/:id", s.handleSteamHeaderImage)
	}

	r.NoRoute(s.handleNoRoute)

	s.engine = r

	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then drains gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.engine,
		ReadHeaderTimeout: shutdownTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", slog.String("addr", s.cfg.Listen))

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}

		<-errCh

		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("server: %w", err)
	}
}
