// Package server implements the HTTP API for the resume builder: versioned
// section storage, job-description matching, resume generation, and the
// application and outreach trackers.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/matching"
	"github.com/jonathan/resume-forge/internal/sections"
	"github.com/jonathan/resume-forge/internal/server/middleware"
	"github.com/jonathan/resume-forge/internal/server/ratelimit"
)

// Server wires the storage layer, model clients, and HTTP handlers together.
type Server struct {
	cfg        *config.ServerConfig
	store      *db.DB
	httpServer *http.Server
	limiter    *ratelimit.Limiter

	llmClient llm.Client
	extractor *llm.JDExtractor
	drafter   *llm.Drafter

	sections *sections.Service
	matcher  *matching.Matcher

	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	validator   *validator.Validate
}

// New connects to the database, initializes the model client, and builds a
// Server ready to Start.
func New(ctx context.Context, cfg *config.ServerConfig) (*Server, error) {
	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.GeminiAPIKey)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load jwt config: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load password config: %w", err)
	}

	extractor := llm.NewJDExtractor(llmClient)
	tagger := llm.NewSectionTagger(llmClient)
	jwtService := NewJWTService(jwtConfig)

	s := &Server{
		cfg:         cfg,
		store:       store,
		limiter:     ratelimit.NewLimiter(ratelimit.LoadConfig()),
		llmClient:   llmClient,
		extractor:   extractor,
		drafter:     llm.NewDrafter(llmClient),
		sections:    sections.NewService(store, tagger),
		matcher:     matching.NewMatcher(extractor),
		jwtService:  jwtService,
		userService: NewUserService(store, passwordConfig),
		validator:   validator.New(),
	}
	s.authHandler = NewAuthHandler(s.userService, jwtService)
	return s, nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	mux := s.routes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.withRateLimit(withLogging(withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // PDF compilation can be slow
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	s.limiter.Stop()
	s.llmClient.Close()
	s.store.Close()
	log.Printf("server stopped")
	return nil
}

// authedHandler is an HTTP handler that requires an authenticated user.
type authedHandler func(w http.ResponseWriter, r *http.Request, userID uuid.UUID)

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	authMw := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	// authed wraps a handler with JWT validation and user-ID extraction.
	authed := func(h authedHandler) http.Handler {
		return authMw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := middleware.GetUserID(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			h(w, r, userID)
		}))
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /users/me", authed(s.authHandler.Me))
	mux.Handle("PUT /users/me/password", authed(s.authHandler.UpdatePassword))

	mux.Handle("POST /sections", authed(s.handleCreateSection))
	mux.Handle("GET /sections", authed(s.handleListSections))
	mux.Handle("GET /sections/{type}", authed(s.handleListSectionsByType))
	mux.Handle("GET /sections/{type}/{key}/{flavor}", authed(s.handleGetCurrentSection))
	mux.Handle("PUT /sections/{type}/{key}/{flavor}", authed(s.handleUpdateSection))
	mux.Handle("GET /sections/{type}/{key}/{flavor}/versions", authed(s.handleListSectionVersions))
	mux.Handle("GET /sections/{type}/{key}/{flavor}/versions/{version}", authed(s.handleGetSectionVersion))
	mux.Handle("DELETE /sections/{type}/{key}/{flavor}/versions/{version}", authed(s.handleDeleteSectionVersion))

	mux.Handle("GET /section-configs", authed(s.handleListSectionConfigs))
	mux.Handle("GET /section-configs/{type}/{key}", authed(s.handleGetSectionConfig))
	mux.Handle("PUT /section-configs/{type}/{key}", authed(s.handleUpsertSectionConfig))
	mux.Handle("DELETE /section-configs/{type}/{key}", authed(s.handleDeleteSectionConfig))

	mux.Handle("POST /match/analyze", authed(s.handleAnalyze))
	mux.Handle("POST /match/insights", authed(s.handleInsights))
	mux.Handle("POST /match/recalculate-keywords", authed(s.handleRecalculateKeywords))

	mux.Handle("POST /generate", authed(s.handleGenerate))
	mux.Handle("POST /generate/preview", authed(s.handleGeneratePreview))

	mux.Handle("POST /applications", authed(s.handleCreateApplication))
	mux.Handle("GET /applications", authed(s.handleListApplications))
	mux.Handle("GET /applications/{id}", authed(s.handleGetApplication))
	mux.Handle("PATCH /applications/{id}", authed(s.handleUpdateApplication))
	mux.Handle("DELETE /applications/{id}", authed(s.handleDeleteApplication))

	mux.Handle("POST /presets", authed(s.handleCreatePreset))
	mux.Handle("GET /presets", authed(s.handleListPresets))
	mux.Handle("GET /presets/{id}", authed(s.handleGetPreset))
	mux.Handle("PATCH /presets/{id}", authed(s.handleUpdatePreset))
	mux.Handle("DELETE /presets/{id}", authed(s.handleDeletePreset))

	mux.Handle("POST /outreach/templates", authed(s.handleCreateOutreachTemplate))
	mux.Handle("GET /outreach/templates", authed(s.handleListOutreachTemplates))
	mux.Handle("GET /outreach/templates/{id}", authed(s.handleGetOutreachTemplate))
	mux.Handle("PATCH /outreach/templates/{id}", authed(s.handleUpdateOutreachTemplate))
	mux.Handle("DELETE /outreach/templates/{id}", authed(s.handleDeleteOutreachTemplate))

	mux.Handle("POST /outreach/threads", authed(s.handleCreateOutreachThread))
	mux.Handle("GET /outreach/threads", authed(s.handleListOutreachThreads))
	mux.Handle("GET /outreach/threads/{id}", authed(s.handleGetOutreachThread))
	mux.Handle("DELETE /outreach/threads/{id}", authed(s.handleDeleteOutreachThread))
	mux.Handle("POST /outreach/threads/{id}/messages", authed(s.handleCreateOutreachMessage))
	mux.Handle("GET /outreach/threads/{id}/messages", authed(s.handleListOutreachMessages))
	mux.Handle("POST /outreach/threads/{id}/draft", authed(s.handleDraftReply))
	mux.Handle("POST /outreach/threads/{id}/import", authed(s.handleImportConversation))
	mux.Handle("POST /outreach/draft", authed(s.handleDraftOutreach))
	mux.Handle("POST /outreach/refine", authed(s.handleRefineOutreach))

	mux.Handle("POST /contacts", authed(s.handleCreateContact))
	mux.Handle("GET /contacts", authed(s.handleListContacts))
	mux.Handle("PUT /contacts/{id}", authed(s.handleUpdateContact))
	mux.Handle("DELETE /contacts/{id}", authed(s.handleDeleteContact))

	mux.Handle("POST /todos", authed(s.handleCreateTodo))
	mux.Handle("GET /todos", authed(s.handleListTodos))
	mux.Handle("PATCH /todos/{id}", authed(s.handleUpdateTodo))
	mux.Handle("DELETE /todos/{id}", authed(s.handleDeleteTodo))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. It writes the error response itself and reports success.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return false
	}
	return true
}

// pathUUID parses the {id} path segment and writes a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid %s", name), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), HTTPStatus(err))
}

// withCORS adds permissive CORS headers and answers preflight requests.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with method, path, status, and duration.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// withRateLimit enforces per-client token-bucket limits.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := extractClientID(r)
		allowed, info := s.limiter.Allow(clientID, r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate limit exceeded",
				"retry_after": int(info.RetryAfter.Seconds()),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID identifies the caller by forwarded IP or remote address.
func extractClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit <= 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
}
