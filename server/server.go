// Package server exposes the thin HTTP surface over the pipeline: a trigger
// endpoint for external schedulers and a couple of read endpoints. Mapping
// RunResult to a transport response happens here, the pipeline itself knows
// nothing about HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/radar/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	store   Store
	runner  Runner
	version string
	debug   bool

	runLock sync.Mutex // one aggregation run at a time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Store interface for server read operations
type Store interface {
	GetItems(ctx context.Context, limit, offset int) ([]domain.FeedItem, error)
}

// Runner triggers an aggregation run on demand
type Runner interface {
	Run(ctx context.Context) domain.RunResult
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, store Store, runner Runner, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		store:   store,
		runner:  runner,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("radar", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /aggregate", s.aggregateHandler)
		r.HandleFunc("GET /items", s.itemsHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// aggregateHandler triggers a synchronous aggregation run and renders its
// result. The run itself never fails; callers distinguish full success,
// partial success and no-op from the counts and error list.
func (s *Server) aggregateHandler(w http.ResponseWriter, r *http.Request) {
	if !s.runLock.TryLock() {
		RenderError(w, r, errors.New("aggregation already in progress"), http.StatusConflict)
		return
	}
	defer s.runLock.Unlock()

	result := s.runner.Run(r.Context())
	RenderJSON(w, r, http.StatusOK, result)
}

// itemsHandler returns recent non-archived feed items
func (s *Server) itemsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	items, err := s.store.GetItems(r.Context(), limit, offset)
	if err != nil {
		log.Printf("[ERROR] failed to get items: %v", err)
		RenderError(w, r, errors.New("failed to get items"), http.StatusInternalServerError)
		return
	}

	RenderJSON(w, r, http.StatusOK, itemsResponse(items))
}

// itemJSON is the wire shape of one feed item
type itemJSON struct {
	ID             int64             `json:"id"`
	SourceType     domain.SourceType `json:"source_type"`
	SourceName     string            `json:"source_name"`
	SourceURL      string            `json:"source_url"`
	Title          string            `json:"title"`
	SummaryShort   string            `json:"summary_short,omitempty"`
	SummaryPlain   *string           `json:"summary_plain,omitempty"`
	PublishedAt    time.Time         `json:"published_at"`
	RelevanceScore float64           `json:"relevance_score"`
	Language       string            `json:"language"`
}

func itemsResponse(items []domain.FeedItem) []itemJSON {
	out := make([]itemJSON, len(items))
	for i, item := range items {
		out[i] = itemJSON{
			ID:             item.ID,
			SourceType:     item.SourceType,
			SourceName:     item.SourceName,
			SourceURL:      item.SourceURL,
			Title:          item.Title,
			SummaryShort:   item.SummaryShort,
			SummaryPlain:   item.SummaryPlain,
			PublishedAt:    item.PublishedAt,
			RelevanceScore: item.RelevanceScore,
			Language:       item.Language,
		}
	}
	return out
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
