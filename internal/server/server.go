package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/swaggo/swag"

	"github.com/AidosNurbergen/Dos/internal/apperrors"
	"github.com/AidosNurbergen/Dos/internal/config"
	_ "github.com/AidosNurbergen/Dos/internal/docs"
	"github.com/AidosNurbergen/Dos/internal/greenapi"
	"github.com/AidosNurbergen/Dos/internal/logger"
	"github.com/AidosNurbergen/Dos/internal/proxy"
	"github.com/AidosNurbergen/Dos/internal/server/middleware"
	"github.com/AidosNurbergen/Dos/internal/server/responses"
	"github.com/AidosNurbergen/Dos/internal/sessions"
	"github.com/AidosNurbergen/Dos/internal/ui/handlers"
	"github.com/AidosNurbergen/Dos/internal/version"
)

// MaxUIFormSize caps the console form posts (credentials, phone number, message text and a file URL)
const MaxUIFormSize = 64 * 1024

type Server struct {
	router      *chi.Mux
	config      *config.Config
	corsConfigs *config.CORSConfigs
	logger      *slog.Logger
	client      *greenapi.Client
	sessions    *sessions.Store
}

// NewServer creates the router for the configured service mode (all, ui or api)
func NewServer(cfg *config.Config, corsConfigs *config.CORSConfigs, serverLogger *slog.Logger) (*Server, error) {
	s := &Server{
		router:      chi.NewRouter(),
		config:      cfg,
		corsConfigs: corsConfigs,
		logger:      serverLogger,
		client:      greenapi.NewClient(cfg.GreenAPIURL, cfg.RequestTimeout),
		sessions:    sessions.NewStore(config.SessionCookieName, cfg.SessionTTL, cfg.Environment == "prod" || cfg.Environment == "staging"),
	}

	s.setupMiddleware()
	s.registerCommonRoutes()

	switch cfg.ServiceMode {
	case "all":
		s.registerUIRoutes()
		if err := s.registerAPIRoutes(); err != nil {
			return nil, err
		}
	case "ui":
		s.registerUIRoutes()
	case "api":
		if err := s.registerAPIRoutes(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown service mode %q", cfg.ServiceMode)
	}

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.RespondWithError(w, r, http.StatusNotFound, apperrors.ErrCodeResourceNotFound, "not found")
	})

	return s, nil
}

// Router is exposed for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// setupMiddleware sets up the middleware that applies to all server requests
// note that the payload size limit is set on a per-route basis
func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
}

// registerCommonRoutes registers routes that are always available (health check and version)
func (s *Server) registerCommonRoutes() {
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.CORS(s.corsConfigs.Public))

		r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Get("/version", handleVersion)
	})
}

// handleVersion godoc
//
//	@Summary	Version of the running service
//	@Tags		Service
//	@Produce	json
//	@Success	200	{object}	version.Info
//	@Router		/version [get]
func handleVersion(w http.ResponseWriter, r *http.Request) {
	responses.RespondWithJSON(w, http.StatusOK, version.Get())
}

// registerUIRoutes registers the web console. Console actions are rate limited per browser session.
func (s *Server) registerUIRoutes() {
	h := &handlers.HandlerService{
		ApiClient: s.client,
		Sessions:  s.sessions,
	}

	s.router.Get("/static/app.css", h.HandleAppCSS)
	s.router.Get("/static/highlight.css", h.HandleHighlightCSS)
	s.router.Get("/", h.HandleConsole)

	s.router.Route("/ui-api", func(r chi.Router) {
		r.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst, middleware.BySessionCookie(config.SessionCookieName)))
		r.Use(middleware.RequestSizeLimit(MaxUIFormSize))
		r.Use(chimiddleware.Timeout(s.config.WriteTimeout))

		r.Post("/get-settings", h.HandleGetSettings)
		r.Post("/get-state-instance", h.HandleGetStateInstance)
		r.Post("/send-message", h.HandleSendMessage)
		r.Post("/send-file-by-url", h.HandleSendFileByURL)
	})
}

// registerAPIRoutes registers the JSON pass-through API and its documentation
func (s *Server) registerAPIRoutes() error {
	p, err := proxy.NewHandler(s.client)
	if err != nil {
		return fmt.Errorf("could not create proxy handler: %w", err)
	}

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.CORS(s.corsConfigs.Public))
		r.Get("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
			doc, err := swag.ReadDoc()
			if err != nil {
				responses.RespondWithError(w, r, http.StatusInternalServerError, apperrors.ErrCodeInternalError, "could not read API documentation")
				return
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(doc))
		})
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(s.corsConfigs.API))
		r.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst, middleware.ByInstance))
		r.Use(middleware.RequestSizeLimit(s.config.MaxAPIRequestSize))
		r.Use(chimiddleware.Timeout(s.config.WriteTimeout))

		r.Get("/getSettings", p.GetSettingsHandler)
		r.Get("/getStateInstance", p.GetStateInstanceHandler)
		r.Post("/sendMessage", p.SendMessageHandler)
		r.Post("/sendFileByUrl", p.SendFileByURLHandler)
	})

	return nil
}

// Start runs the server until ctx is cancelled, then shuts it down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			slog.String("address", addr),
			slog.String("mode", s.config.ServiceMode),
			slog.String("green_api_url", s.config.GreenAPIURL),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
