// Package api provides the HTTP REST API for ticker sentiment analysis.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ternarybob/arbor"

	"github.com/seenimoa/tickersense/internal/analyzer"
	"github.com/seenimoa/tickersense/internal/common"
	"github.com/seenimoa/tickersense/internal/config"
	"github.com/seenimoa/tickersense/internal/datasource"
	"github.com/seenimoa/tickersense/internal/llm"
	"github.com/seenimoa/tickersense/internal/orchestrator"
	"github.com/seenimoa/tickersense/internal/sentiment"
	"github.com/seenimoa/tickersense/internal/ticker"
	"github.com/seenimoa/tickersense/pkg/models"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	resolver *ticker.Resolver
	orch     *orchestrator.Orchestrator
	analyzer *analyzer.Analyzer
	logger   arbor.ILogger
}

// NewServer wires the full pipeline behind the REST routes. A missing
// scorer API key is not an error; sentiment falls back to the lexicon pass.
func NewServer(cfg *config.Config) (*Server, error) {
	logger := common.GetLogger()

	yahoo := datasource.NewYahoo()
	sources := []datasource.ArticleSource{yahoo}
	if len(cfg.News.RSSFeeds) > 0 {
		feeds := make([]datasource.RSSFeed, len(cfg.News.RSSFeeds))
		for i, f := range cfg.News.RSSFeeds {
			feeds[i] = datasource.RSSFeed{Name: f.Name, URL: f.URL}
		}
		sources = append(sources, datasource.NewRSSWithFeeds(feeds))
	} else {
		sources = append(sources, datasource.NewRSS())
	}

	resolver := ticker.NewResolver(yahoo)
	orch := orchestrator.New(resolver, datasource.NewMultiSource(sources...))

	var scorer sentiment.SemanticScorer
	if cfg.Scorer.APIKey != "" || cfg.Scorer.Provider == llm.ProviderOllama {
		provider, err := llm.New(llm.Config{
			Provider:    cfg.Scorer.Provider,
			APIKey:      cfg.Scorer.APIKey,
			BaseURL:     cfg.Scorer.BaseURL,
			Model:       cfg.Scorer.Model,
			Temperature: cfg.Scorer.Temperature,
			Timeout:     time.Duration(cfg.Scorer.TimeoutSec) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("scorer setup failed: %w", err)
		}
		scorer = sentiment.NewLLMScorer(provider, time.Duration(cfg.Scorer.TimeoutSec)*time.Second)
	} else {
		logger.Warn().Msg("no scorer API key configured, using lexicon fallback only")
	}

	srv := &Server{
		cfg:      cfg,
		resolver: resolver,
		orch:     orch,
		analyzer: analyzer.New(resolver, orch, sentiment.NewEngine(scorer), cfg.Analysis.MinRelevance, cfg.Analysis.RelevanceSchedule),
		logger:   logger,
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/sentiment/{ticker}", s.handleSentiment)
		r.Get("/articles/{ticker}", s.handleArticles)
		r.Get("/resolve/{ticker}", s.handleResolve)
		r.Post("/analyze", s.handleAnalyze)
	})

	return r
}

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AnalyzeRequest is the body for POST /api/v1/analyze. Articles are
// optional; when present the fetch loop is skipped and the supplied set is
// analyzed directly.
type AnalyzeRequest struct {
	Ticker   string           `json:"ticker"`
	Articles []articlePayload `json:"articles,omitempty"`
}

type articlePayload struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	Symbols     []string  `json:"symbols,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": "dev",
			"time":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "ticker")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	result, err := s.analyzer.FetchAndAnalyze(ctx, symbol, s.fetchOptions(r))
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "ticker")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	result, err := s.orch.FetchWithEscalation(ctx, symbol, s.fetchOptions(r), s.cfg.Analysis.RelevanceSchedule)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "ticker")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	rec, err := s.resolver.Resolve(ctx, symbol)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: rec})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	articles := articlesFromPayload(req.Articles)
	result, err := s.analyzer.AnalyzeTicker(ctx, req.Ticker, articles)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// fetchOptions reads optional min/target query parameters, falling back to
// the configured analysis defaults.
func (s *Server) fetchOptions(r *http.Request) orchestrator.Options {
	opts := orchestrator.Options{
		MinArticles:    s.cfg.Analysis.MinArticles,
		TargetArticles: s.cfg.Analysis.TargetArticles,
		MinRelevance:   s.cfg.Analysis.MinRelevance,
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("min")); err == nil && v > 0 {
		opts.MinArticles = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("target")); err == nil && v > 0 {
		opts.TargetArticles = v
	}
	return opts
}

func articlesFromPayload(payload []articlePayload) []models.Article {
	if payload == nil {
		return nil
	}
	articles := make([]models.Article, len(payload))
	for i, p := range payload {
		articles[i] = models.Article{
			Title:       p.Title,
			Description: p.Description,
			Content:     p.Content,
			PublishedAt: p.PublishedAt,
			Source:      p.Source,
			URL:         p.URL,
			Symbols:     p.Symbols,
		}
	}
	return articles
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		common.GetLogger().Warn().Err(err).Msg("failed to write JSON response")
	}
}

// statusForError maps pipeline errors to HTTP status codes. Only a rejected
// symbol is the caller's fault; anything else is a server-side failure.
func statusForError(err error) int {
	if errors.Is(err, ticker.ErrInvalidSymbol) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Success: false, Error: msg})
}
