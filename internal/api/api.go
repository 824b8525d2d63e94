// Package api provides the HTTP server for NeuroSoma.
//
// It exposes JSON endpoints for creating and retrieving breathwork plans,
// answering health-education questions through the configured model, and
// looking up the three safety-tiered protocols. The server wires together the
// plan generator, the plan store, the education service and the optional
// WhatsApp plan delivery.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BTreeMap/NeuroSoma/internal/education"
	"github.com/BTreeMap/NeuroSoma/internal/genai"
	"github.com/BTreeMap/NeuroSoma/internal/messaging"
	"github.com/BTreeMap/NeuroSoma/internal/plan"
	"github.com/BTreeMap/NeuroSoma/internal/store"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"
	// DefaultEducateRatePerMin is the per-client request budget for POST /api/educate.
	DefaultEducateRatePerMin = 10

	maxBodyBytes    = 64 << 10
	shutdownTimeout = 10 * time.Second
)

// Opts holds configuration for the API server.
type Opts struct {
	Addr              string
	EducateRatePerMin int    // zero or less disables the limiter
	PlanLinkBase      string // public base URL used in delivered plan summaries
	ModelName         string // reported by GET /api/educate
	Notifier          *messaging.PlanNotifier
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithEducateRateLimit sets how many education requests a client may make per minute.
func WithEducateRateLimit(perMin int) Option {
	return func(o *Opts) { o.EducateRatePerMin = perMin }
}

// WithPlanLinkBase sets the base URL linked from delivered plan summaries.
func WithPlanLinkBase(base string) Option {
	return func(o *Opts) { o.PlanLinkBase = base }
}

// WithModelName sets the model name reported by the education status endpoint.
func WithModelName(name string) Option {
	return func(o *Opts) { o.ModelName = name }
}

// WithNotifier enables WhatsApp delivery of newly created plans.
func WithNotifier(n *messaging.PlanNotifier) Option {
	return func(o *Opts) { o.Notifier = n }
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	addr      string
	store     store.PlanStore
	generator *plan.Generator
	education *education.Service
	notifier  *messaging.PlanNotifier
	modelName string
	limiter   *ipRateLimiter
}

// NewServer creates a Server over the given store, generator and education service.
func NewServer(st store.PlanStore, gen *plan.Generator, edu *education.Service, opts ...Option) *Server {
	cfg := Opts{
		Addr:              DefaultAddr,
		EducateRatePerMin: DefaultEducateRatePerMin,
		ModelName:         genai.DefaultModel,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		addr:      cfg.Addr,
		store:     st,
		generator: gen,
		education: edu,
		notifier:  cfg.Notifier,
		modelName: cfg.ModelName,
		limiter:   newIPRateLimiter(cfg.EducateRatePerMin),
	}
}

// Routes builds the router serving every endpoint.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthzHandler)
	r.Route("/api", func(r chi.Router) {
		r.Post("/create-plan", s.createPlanHandler)
		r.Get("/plan/{id}", s.getPlanHandler)
		r.With(s.limiter.middleware).Post("/educate", s.educateHandler)
		r.Get("/educate", s.educateStatusHandler)
		r.Get("/protocols/{type}", s.protocolHandler)
	})
	return r
}

// Run opens the store, model client and optional Twilio sender, then serves
// HTTP until SIGINT or SIGTERM.
func Run(storeOpts []store.Option, genaiOpts []genai.Option, twilioOpts []messaging.TwilioOption, apiOpts []Option) error {
	var cfg Opts
	for _, opt := range apiOpts {
		opt(&cfg)
	}

	st, err := store.New(storeOpts...)
	if err != nil {
		return fmt.Errorf("failed to open plan store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			slog.Error("api.Run: failed to close store", "error", cerr)
		}
	}()

	// A nil *genai.Client must not reach the service as a non-nil interface.
	var completer education.Completer
	modelName := genai.DefaultModel
	client, err := genai.NewClient(genaiOpts...)
	switch {
	case errors.Is(err, genai.ErrAPIKeyRequired):
		slog.Warn("api.Run: no model API key configured, /api/educate will report the model as sleeping")
	case err != nil:
		return fmt.Errorf("failed to create model client: %w", err)
	default:
		completer = client
		modelName = client.Model()
	}

	opts := append([]Option{WithModelName(modelName)}, apiOpts...)
	if len(twilioOpts) > 0 {
		sender, err := messaging.NewTwilioSender(twilioOpts...)
		if err != nil {
			slog.Warn("api.Run: plan delivery disabled", "error", err)
		} else {
			opts = append(opts, WithNotifier(messaging.NewPlanNotifier(sender, cfg.PlanLinkBase)))
		}
	}

	srv := NewServer(st, plan.NewGenerator(), education.NewService(completer), opts...)
	httpServer := &http.Server{
		Addr:              srv.addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("NeuroSoma API listening", "addr", srv.addr, "model", modelName, "delivery", srv.notifier != nil)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("api.Run: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// requestLogger logs one line per request at Debug, or Warn for server errors.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		level := slog.LevelDebug
		if ww.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "Server.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr)
	})
}
