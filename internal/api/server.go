// Package api exposes the REST surface: auth, chat, goals, paths,
// footprints, and image generation.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/ficachi/omeyo-goal-app/internal/chat"
	"github.com/ficachi/omeyo-goal-app/internal/footprint"
	"github.com/ficachi/omeyo-goal-app/internal/store"
)

// ChatService runs the chat pipeline for a user turn.
type ChatService interface {
	Chat(ctx context.Context, userID uuid.UUID, message string) (*chat.Result, error)
	Confirm(ctx context.Context, userID uuid.UUID, action, dueTime string) (*chat.CreatedFootprint, error)
}

// ImageGenerator produces an image data URL for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Store is the persistence surface the handlers use. *store.Store
// satisfies it.
type Store interface {
	CreateUser(ctx context.Context, u store.User) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*store.User, error)
	ListUsers(ctx context.Context) ([]store.User, error)
	CreateGoal(ctx context.Context, userID uuid.UUID, description, status string) (uuid.UUID, error)
	ListGoalsByUser(ctx context.Context, userID uuid.UUID) ([]store.Goal, error)
	ListFootprintsByUser(ctx context.Context, userID uuid.UUID) ([]store.Footprint, error)
	CreateFootprint(ctx context.Context, userID uuid.UUID, pathID *uuid.UUID, item footprint.ActionItem) (uuid.UUID, error)
	SetFootprintCompleted(ctx context.Context, id, userID uuid.UUID, completed bool) error
	CreatePath(ctx context.Context, userID uuid.UUID, name, color string) (uuid.UUID, error)
	ListPathsByUser(ctx context.Context, userID uuid.UUID) ([]store.Path, error)
	ListConversationByUser(ctx context.Context, userID uuid.UUID, limit int) ([]store.ConversationTurn, error)
}

// TokenVerifier checks bearer tokens and is also used to mint them on
// signup and login.
type TokenVerifier interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(token string) (uuid.UUID, error)
}

type Server struct {
	router *chi.Mux
	port   int
	store  Store
	chat   ChatService
	images ImageGenerator // nil when image generation is not configured
	tokens TokenVerifier
	logger *slog.Logger
}

func NewServer(port int, st Store, chatSvc ChatService, images ImageGenerator, tokens TokenVerifier, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	s := &Server{
		router: router,
		port:   port,
		store:  st,
		chat:   chatSvc,
		images: images,
		tokens: tokens,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/status", s.status)
	router.Post("/api/v1/auth/signup", s.signup)
	router.Post("/api/v1/auth/login", s.login)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/chat", s.handleChat)
		r.Post("/chat/confirm", s.handleConfirm)
		r.Get("/goals", s.listGoals)
		r.Post("/goals", s.createGoal)
		r.Get("/footprints", s.listFootprints)
		r.Patch("/footprints/{id}/complete", s.completeFootprint)
		r.Get("/users", s.listUsers)
		r.Get("/conversations", s.listConversations)
		r.Get("/paths", s.listPaths)
		r.Post("/paths", s.createPath)
		r.Post("/images", s.generateImage)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "omeyo",
		"status":  "running",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
