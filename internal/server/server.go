package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/auth"
	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/feed"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures a Server. Tokens is required in token mode, WhoIs in
// tailscale mode and DevUserID in dev mode. MCP, when set, is mounted at /mcp
// behind identity.
type Options struct {
	AuthMode         string
	Tokens           *auth.Tokens
	WhoIs            WhoIsClient
	DevUserID        int
	FeedDefaultLimit int
	FeedMaxLimit     int
	Registry         *prometheus.Registry
	MCP              http.Handler
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	feed     *feed.Builder
	tokens   *auth.Tokens
	opts     Options
	metrics  *Metrics
	log      *slog.Logger
	router   chi.Router
	identity func(http.Handler) http.Handler
}

// New creates a new Server with all routes configured.
func New(store Store, opts Options, log *slog.Logger) *Server {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	s := &Server{
		store:   store,
		feed:    feed.NewBuilder(store, opts.FeedDefaultLimit, opts.FeedMaxLimit),
		tokens:  opts.Tokens,
		opts:    opts,
		metrics: NewMetrics(opts.Registry),
		log:     log,
		router:  chi.NewRouter(),
	}

	switch opts.AuthMode {
	case config.AuthModeTailscale:
		s.identity = TailscaleIdentity(opts.WhoIs, store, log)
	case config.AuthModeDev:
		s.identity = DevIdentity(opts.DevUserID)
	default:
		s.identity = TokenIdentity(opts.Tokens)
	}

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(s.metrics.Middleware)
	s.router.Use(CORS)

	s.router.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))

	s.router.Route("/api/v1", func(r chi.Router) {
		// Password accounts only exist in token mode.
		if s.opts.AuthMode == config.AuthModeToken || s.opts.AuthMode == "" {
			r.Post("/auth/register", s.handleRegister)
			r.Post("/auth/login", s.handleLogin)
		}

		r.Group(func(r chi.Router) {
			r.Use(s.identity)

			r.Get("/me", s.handleMe)

			r.Post("/profiles", s.handleCreateProfile)
			r.Patch("/profiles/me", s.handleUpdateProfile)
			r.Get("/profiles/{handle}", s.handleGetProfile)

			r.Get("/lifts", s.handleListLifts)
			r.Post("/lifts", s.handleCreateLift)
			r.Get("/lifts/defaults", s.handleLiftDefaults)
			r.Get("/lifts/{id}", s.handleGetLift)
			r.Put("/lifts/{id}", s.handleUpdateLift)
			r.Delete("/lifts/{id}", s.handleDeleteLift)
			r.Get("/lifts/{id}/preview", s.handlePreviewLift)

			r.Get("/templates", s.handleListTemplates)
			r.Post("/templates", s.handleCreateTemplate)
			r.Get("/templates/{id}", s.handleGetTemplate)
			r.Put("/templates/{id}", s.handleUpdateTemplate)
			r.Delete("/templates/{id}", s.handleDeleteTemplate)
			r.Get("/templates/{id}/prefill", s.handlePrefillTemplate)

			r.Post("/logs", s.handleCreateLog)
			r.Get("/logs/{id}", s.handleGetLog)
			r.Get("/feed", s.handleFeed)

			r.Post("/reports", s.handleCreateReport)
			r.Post("/blocks", s.handleCreateBlock)

			r.Route("/moderation", func(r chi.Router) {
				r.Use(s.requireModerator)
				r.Get("/reports", s.handleListReports)
				r.Patch("/reports/{id}", s.handleUpdateReport)
			})
		})
	})

	if s.opts.MCP != nil {
		s.router.With(s.identity).Handle("/mcp", s.opts.MCP)
	}
}
