package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type goalRequest struct {
	Description string `json:"description"`
	Status      string `json:"status"`
}

type pathRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type completeRequest struct {
	Completed *bool `json:"completed"`
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.Status == "" {
		req.Status = "active"
	}

	id, err := s.store.CreateGoal(r.Context(), userIDFrom(r.Context()), req.Description, req.Status)
	if err != nil {
		s.logger.Error("create goal failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create goal")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.ListGoalsByUser(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.logger.Error("list goals failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list goals")
		return
	}

	type goalView struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView{ID: g.ID.String(), Description: g.Description, Status: g.Status})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) listFootprints(w http.ResponseWriter, r *http.Request) {
	fps, err := s.store.ListFootprintsByUser(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.logger.Error("list footprints failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list footprints")
		return
	}

	type footprintView struct {
		ID          string `json:"id"`
		PathID      string `json:"path_id,omitempty"`
		Action      string `json:"action"`
		DueTime     string `json:"due_time"`
		DueDate     string `json:"due_date"`
		IsCompleted bool   `json:"is_completed"`
		Priority    int    `json:"priority"`
	}
	views := make([]footprintView, 0, len(fps))
	for _, f := range fps {
		v := footprintView{
			ID:          f.ID.String(),
			Action:      f.Action,
			DueTime:     f.DueTime,
			DueDate:     f.DueDate.Format("2006-01-02"),
			IsCompleted: f.IsCompleted,
			Priority:    f.Priority,
		}
		if f.PathID != nil {
			v.PathID = f.PathID.String()
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) completeFootprint(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid footprint id")
		return
	}

	completed := true
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Completed != nil {
		completed = *req.Completed
	}

	if err := s.store.SetFootprintCompleted(r.Context(), id, userIDFrom(r.Context()), completed); err != nil {
		writeError(w, http.StatusNotFound, "footprint not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"is_completed": completed})
}

func (s *Server) listConversations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	turns, err := s.store.ListConversationByUser(r.Context(), userIDFrom(r.Context()), limit)
	if err != nil {
		s.logger.Error("list conversations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list conversations")
		return
	}

	type turnView struct {
		ID        string `json:"id"`
		Role      string `json:"role"`
		Content   string `json:"content"`
		CreatedAt string `json:"created_at"`
	}
	views := make([]turnView, 0, len(turns))
	for _, t := range turns {
		views = append(views, turnView{
			ID:        t.ID.String(),
			Role:      t.Role,
			Content:   t.Content,
			CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) createPath(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := s.store.CreatePath(r.Context(), userIDFrom(r.Context()), req.Name, req.Color)
	if err != nil {
		s.logger.Error("create path failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create path")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) listPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := s.store.ListPathsByUser(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.logger.Error("list paths failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list paths")
		return
	}

	type pathView struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	views := make([]pathView, 0, len(paths))
	for _, p := range paths {
		views = append(views, pathView{ID: p.ID.String(), Name: p.Name, Color: p.Color})
	}
	writeJSON(w, http.StatusOK, views)
}
