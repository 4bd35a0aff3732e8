package api

import (
	"encoding/json"
	"net/http"

	"github.com/ficachi/omeyo-goal-app/internal/imagen"
)

type chatRequest struct {
	Message string `json:"message"`
}

type confirmRequest struct {
	Action  string `json:"action"`
	DueTime string `json:"due_time"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := s.chat.Chat(r.Context(), userIDFrom(r.Context()), req.Message)
	if err != nil {
		s.logger.Error("chat turn failed", "error", err)
		writeError(w, http.StatusBadGateway, "AI service is unavailable")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Action == "" {
		writeError(w, http.StatusBadRequest, "action is required")
		return
	}

	created, err := s.chat.Confirm(r.Context(), userIDFrom(r.Context()), req.Action, req.DueTime)
	if err != nil {
		s.logger.Error("confirm failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not record footprint")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// generateImage never fails the request: when the generator is absent or
// errors, the placeholder image is returned instead.
func (s *Server) generateImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	url := imagen.PlaceholderDataURL
	if s.images != nil {
		generated, err := s.images.Generate(r.Context(), req.Prompt)
		if err != nil {
			s.logger.Warn("image generation failed, serving placeholder", "error", err)
		} else {
			url = generated
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}
