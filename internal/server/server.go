package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"keypub/internal/config"
	"keypub/internal/store"
)

const allowRemoteEnvKey = "KEYPUB_ALLOW_REMOTE"

const shutdownGrace = 10 * time.Second

// Server serves the publishing pages and the JSON API over one KeyStore.
type Server struct {
	addr     string
	store    store.KeyStore
	siteHost string
	service  *KeyService
	logger   *slog.Logger
}

// New builds a server. The caller owns keyStore and closes it after the
// server returns.
func New(addr string, keyStore store.KeyStore, siteHost string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	siteHost = config.NormalizeSiteHost(siteHost)
	return &Server{
		addr:     addr,
		store:    keyStore,
		siteHost: siteHost,
		service:  NewKeyService(keyStore, siteHost),
		logger:   logger,
	}
}

// ListenAndServe binds s.addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on ln until ctx is cancelled, then drains in-flight
// requests for up to shutdownGrace.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.log().Handler(), slog.LevelWarn),
	}

	served := make(chan error, 1)
	go func() { served <- hs.Serve(ln) }()
	s.log().Info("serving", "addr", ln.Addr().String(), "site_host", s.siteHost)

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log().Info("shutting down")
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := hs.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ListenAddr turns the configured API URL, either "http://host:port" or a
// bare "host:port", into a listen address. Hosts other than loopback need
// KEYPUB_ALLOW_REMOTE=true.
func ListenAddr(apiURL string) (string, error) {
	addr := strings.TrimSpace(apiURL)
	if addr == "" {
		return "", errors.New("api url is required")
	}
	if u, err := url.Parse(addr); err == nil && u.Host != "" {
		addr = u.Host
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("listen address %q: %w", addr, err)
	}
	if !isLocalHost(host) && !strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}
	return addr, nil
}

// isLocalHost accepts loopback IPs, "localhost" and the empty host.
func isLocalHost(host string) bool {
	if host == "" || strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
