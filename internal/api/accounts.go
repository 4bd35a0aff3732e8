package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/ficachi/omeyo-goal-app/internal/auth"
	"github.com/ficachi/omeyo-goal-app/internal/store"
)

type signupRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Personality string          `json:"personality"`
	TotemAnimal string          `json:"totem_animal"`
	TotemEmoji  string          `json:"totem_emoji"`
	TotemTitle  string          `json:"totem_title"`
	OceanScores json.RawMessage `json:"ocean_scores"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type userView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Personality string `json:"personality"`
	TotemAnimal string `json:"totem_animal,omitempty"`
	TotemEmoji  string `json:"totem_emoji,omitempty"`
	TotemTitle  string `json:"totem_title,omitempty"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if _, err := s.store.GetUserByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusBadRequest, "email already registered")
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error("signup lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("password hash failed", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	user := store.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Personality:  req.Personality,
		TotemAnimal:  req.TotemAnimal,
		TotemEmoji:   req.TotemEmoji,
		TotemTitle:   req.TotemTitle,
		OceanScores:  string(req.OceanScores),
	}
	id, err := s.store.CreateUser(r.Context(), user)
	if err != nil {
		s.logger.Error("create user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	token, err := s.tokens.Issue(id)
	if err != nil {
		s.logger.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	user.ID = id
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: viewOf(user)})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: viewOf(*user)})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.logger.Error("list users failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list users")
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, viewOf(u))
	}
	writeJSON(w, http.StatusOK, views)
}

func viewOf(u store.User) userView {
	return userView{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Personality: u.Personality,
		TotemAnimal: u.TotemAnimal,
		TotemEmoji:  u.TotemEmoji,
		TotemTitle:  u.TotemTitle,
	}
}
