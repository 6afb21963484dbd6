package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

const (
	defaultListen  = ":8080"
	defaultTimeout = 15 * time.Second
)

type Config struct {
	Listen       string        `mapstructure:"listen"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
}

// Server is the HTTP transport of the matcher.
type Server struct {
	app    *fiber.App
	cfg    Config
	logger *zap.Logger
}

// New wires routes for matcher. metrics is served on /metrics; nil uses the default gatherer.
func New(matcher Matcher, cfg Config, metrics prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = prometheus.DefaultGatherer
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultTimeout
	}

	app := fiber.New(fiber.Config{
		AppName:      "hire-matcher",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	app.Use(accessLog(logger))
	app.Use(errorMiddleware(logger))

	h := &handler{matcher: matcher}

	app.Get("/health", h.health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics, promhttp.HandlerOpts{})))

	api := app.Group("/ai", identify())

	seekerOnly := requireRole(marketplace.RoleJobSeeker)
	api.Post("/job-seeker-preferences", seekerOnly, h.saveSeekerPreferences)
	api.Get("/job-seeker-preferences", seekerOnly, h.seekerPreferences)
	api.Get("/job-matches", seekerOnly, h.jobMatches)

	startupOnly := requireRole(marketplace.RoleStartup)
	api.Post("/startup-job-preferences/:job_id", startupOnly, h.saveJobPreferences)
	api.Get("/startup-job-preferences/:job_id", startupOnly, h.jobPreferences)
	api.Get("/candidate-matches/:job_id", startupOnly, h.candidateMatches)

	api.Post("/generate-insights", h.generateInsights)

	return &Server{app: app, cfg: cfg, logger: logger}
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("listen", s.cfg.Listen))
		errCh <- s.app.Listen(s.cfg.Listen, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}
