package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/claude/liftlog/internal/auth"
	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/server"
	"github.com/claude/liftlog/internal/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("LiftLog starting", "version", Version)

	if err := run(*configPath, *migrateOnly, log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, migrateOnly bool, log *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		return err
	}
	log.Info("migrations applied")
	if migrateOnly {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureModerators(ctx, cfg.Moderation.Moderators); err != nil {
		return fmt.Errorf("granting moderators: %w", err)
	}
	log.Info("database ready", "moderators", len(cfg.Moderation.Moderators))

	reg := prometheus.NewRegistry()
	reg.MustRegister(pgxpoolprometheus.NewCollector(db.Pool, map[string]string{"db_name": cfg.Database.Name}))

	opts := server.Options{
		AuthMode:         cfg.Auth.Mode,
		FeedDefaultLimit: cfg.Feed.DefaultLimit,
		FeedMaxLimit:     cfg.Feed.MaxLimit,
		Registry:         reg,
		MCP:              mcpHandler(db, cfg, log),
	}
	switch cfg.Auth.Mode {
	case config.AuthModeToken:
		opts.Tokens = auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	case config.AuthModeDev:
		if opts.DevUserID, err = server.ProvisionDevUser(ctx, db); err != nil {
			return err
		}
		log.Warn("dev auth mode: every request acts as the local user", "user_id", opts.DevUserID)
	}

	listener, whois, closeTS, err := listen(cfg, log)
	if err != nil {
		return err
	}
	defer closeTS()
	opts.WhoIs = whois

	httpSrv := &http.Server{
		Handler:           server.New(db, opts, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- httpSrv.Serve(listener) }()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
	return nil
}

// mcpHandler serves the MCP tools over streamable HTTP. The server's identity
// middleware runs first, so the resolved user is carried into each tool call.
func mcpHandler(db *storage.DB, cfg *config.Config, log *slog.Logger) http.Handler {
	s := mcp.New(mcp.NewLocalSource(db, cfg.Feed.DefaultLimit, cfg.Feed.MaxLimit), Version, log)
	return mcpserver.NewStreamableHTTPServer(s,
		mcpserver.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			if id, ok := server.UserIDFromContext(r.Context()); ok {
				return mcp.WithUserID(ctx, id)
			}
			return ctx
		}),
	)
}

// listen opens the tailnet listener when Tailscale is enabled, or a plain TCP
// listener otherwise. whois is nil without Tailscale.
func listen(cfg *config.Config, log *slog.Logger) (net.Listener, server.WhoIsClient, func(), error) {
	if !cfg.Tailscale.Enabled {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("listening on %s: %w", addr, err)
		}
		log.Info("server starting", "addr", addr, "auth", cfg.Auth.Mode)
		return ln, nil, func() {}, nil
	}

	ts := &tsnet.Server{
		Hostname: cfg.Tailscale.Hostname,
		Dir:      cfg.Tailscale.StateDir,
	}
	if err := ts.Start(); err != nil {
		return nil, nil, nil, fmt.Errorf("starting tsnet: %w", err)
	}
	lc, err := ts.LocalClient()
	if err != nil {
		ts.Close()
		return nil, nil, nil, fmt.Errorf("tsnet local client: %w", err)
	}
	ln, err := ts.Listen("tcp", ":80")
	if err != nil {
		ts.Close()
		return nil, nil, nil, fmt.Errorf("tsnet listen: %w", err)
	}
	log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname, "auth", cfg.Auth.Mode)
	return ln, lc, func() { ts.Close() }, nil
}
