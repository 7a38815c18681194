package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"dira-chat-backend/internal/bot"
	"dira-chat-backend/internal/config"
	"dira-chat-backend/internal/listings"
	"dira-chat-backend/internal/llm"
	"dira-chat-backend/internal/store"
	"dira-chat-backend/internal/types"
)

type Server struct {
	router *chi.Mux
	cfg    config.Config
	store  *store.MemoryStore
	bot    *bot.Router
	repo   *listings.Repository
	log    *slog.Logger
}

func NewServer(cfg config.Config) (*Server, error) {
	log := slog.Default()

	lex := bot.DefaultLexicon()
	if cfg.LexiconFile != "" {
		var err error
		lex, err = bot.LoadLexicon(cfg.LexiconFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load lexicon: %w", err)
		}
	}

	client := openai.NewClient(cfg.OpenAIAPIKey)
	responder, err := llm.Load(cfg.PromptFile, client, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to load responder prompt: %w", err)
	}

	var repo *listings.Repository
	var searcher bot.Searcher
	if cfg.DatabaseURL != "" {
		repo, err = listings.NewRepository(cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMaxIdleConns, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize listings database: %w", err)
		}
		searcher = repo
		log.Info("listings database connection established")
	} else {
		log.Warn("DB_URL not provided; apartment search will answer with an apology")
	}

	s := newServer(cfg, lex, searcher, responder, log)
	s.repo = repo
	return s, nil
}

// newServer wires the HTTP surface around the given collaborators.
func newServer(cfg config.Config, lex bot.Lexicon, searcher bot.Searcher, responder bot.Responder, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	ms := store.NewMemoryStore(cfg.MaxSessions, cfg.SessionTTL, log)
	router := bot.NewRouter(ms, bot.NewExtractor(lex), searcher, responder, cfg.SearchLimit, log)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{router: r, cfg: cfg, store: ms, bot: router, log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/chat", s.handleChat)
	s.router.Post("/reset", s.handleReset)
	s.router.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))
}

func (s *Server) Router() http.Handler { return s.router }

// Close releases the listings database, if one was configured.
func (s *Server) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Missing message")
		return
	}
	// Validate before touching the session: an empty message must not
	// create or mutate anything.
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "Missing message")
		return
	}
	token := s.getOrCreateToken(r, w)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	items := s.bot.Route(ctx, token, req.Message)

	s.writeResults(w, items)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	token := s.getOrCreateToken(r, w)
	s.store.Reset(token)
	if s.cfg.ResetClearsIntro {
		s.store.ClearIntro(token)
	}
	s.writeResults(w, []types.ResponseItem{types.TextMessage{Text: bot.MsgResetAck}})
}

func (s *Server) writeResults(w http.ResponseWriter, items []types.ResponseItem) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(types.ChatResponse{Results: items}); err != nil {
		s.log.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

func newSessionToken() string {
	return uuid.NewString()
}

// getOrCreateToken reads the session token from the cookie or issues a
// fresh one. The token, not the caller's address, is the session identity;
// clients behind a shared NAT get distinct sessions.
func (s *Server) getOrCreateToken(r *http.Request, w http.ResponseWriter) string {
	if token, err := GetSessionCookie(r); err == nil && token != "" {
		return token
	}
	token := newSessionToken()
	s.log.Debug("issuing new session token", "token", token, "path", r.URL.Path)
	SetSessionCookie(w, token)
	return token
}
