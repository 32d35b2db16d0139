// Package web serves the landing page, the staging demo API and the chat
// assistant API.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"twins-digital-web/internal/assistant"
	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/metrics"
	"twins-digital-web/internal/staging"
	"twins-digital-web/internal/web/pages"
)

//go:embed static/*
var staticFS embed.FS

const (
	defaultKeepAlive = 20 * time.Second
	maxChatBodyBytes = 16 << 10
)

// SampleFetcher downloads the fixed demo image.
type SampleFetcher interface {
	FetchSample(ctx context.Context, url string) (staging.Input, error)
}

type Options struct {
	Logger     *slog.Logger
	Catalog    *catalog.Catalog
	Workspaces *staging.Store
	Chats      *assistant.Store
	// Metrics is optional; when nil no /metrics route is mounted.
	Metrics *metrics.Metrics
	Sample  SampleFetcher

	SampleURL         string
	AllowedOrigins    []string
	MaxUploadBytes    int64
	UploadConcurrency int
	SecureCookies     bool

	// BaseContext outlives requests; generation runs are bound to it so a
	// closed tab does not cancel a run.
	BaseContext context.Context
	KeepAlive   time.Duration
}

type Server struct {
	logger     *slog.Logger
	catalog    *catalog.Catalog
	workspaces *staging.Store
	chats      *assistant.Store
	metrics    *metrics.Metrics
	sample     SampleFetcher

	sampleURL         string
	allowedOrigins    []string
	maxUploadBytes    int64
	uploadConcurrency int
	secureCookies     bool
	baseCtx           context.Context
	keepAlive         time.Duration
}

func New(opts Options) *Server {
	s := &Server{
		logger:            opts.Logger,
		catalog:           opts.Catalog,
		workspaces:        opts.Workspaces,
		chats:             opts.Chats,
		metrics:           opts.Metrics,
		sample:            opts.Sample,
		sampleURL:         opts.SampleURL,
		allowedOrigins:    opts.AllowedOrigins,
		maxUploadBytes:    opts.MaxUploadBytes,
		uploadConcurrency: opts.UploadConcurrency,
		secureCookies:     opts.SecureCookies,
		baseCtx:           opts.BaseContext,
		keepAlive:         opts.KeepAlive,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.workspaces == nil {
		s.workspaces = staging.NewStore(staging.Options{Catalog: s.catalog, Logger: s.logger})
	}
	if s.chats == nil {
		s.chats = assistant.NewStore(assistant.Options{Logger: s.logger})
	}
	if s.baseCtx == nil {
		s.baseCtx = context.Background()
	}
	if s.keepAlive <= 0 {
		s.keepAlive = defaultKeepAlive
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = 25 << 20
	}
	if len(s.allowedOrigins) == 0 {
		s.allowedOrigins = []string{"*"}
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withLogging(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	r.Use(middleware.Recoverer)

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	r.Get("/healthz", handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(s.withVisitor)
		r.Get("/", s.handleHome)

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   s.allowedOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
				AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
				AllowCredentials: !allowsAnyOrigin(s.allowedOrigins),
				MaxAge:           300,
			}))

			r.Route("/demo", func(r chi.Router) {
				r.Get("/", s.handleDemoState)
				r.Post("/images", s.handleUpload)
				r.Post("/sample", s.handleSample)
				r.Get("/images/{id}/{variant}", s.handleImage)
				r.Put("/images/{id}/action", s.handleSetAction)
				r.Delete("/images/{id}", s.handleRemove)
				r.Post("/generate", s.handleGenerate)
				r.Get("/events", s.handleEvents)
				r.Post("/viewer/next", s.handleViewer(true))
				r.Post("/viewer/prev", s.handleViewer(false))
				r.Get("/download", s.handleDownload)
				r.Post("/error/dismiss", s.handleDismissError)
			})

			r.Post("/caption", s.handleCaption)

			r.Get("/chat", s.handleChatTranscript)
			r.Post("/chat", s.handleChatSend)
			r.Delete("/chat", s.handleChatReset)
		})
	})

	return r
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	key := visitorFrom(r.Context())
	page := pages.Home(s.catalog, s.workspaces.Get(key).Snapshot(), s.chats.Get(key).Transcript())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		s.logger.Error("render page", "err", err)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

func withLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"dur_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
