package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akashsingh062/Smart-Ai-Todo/logging"
	"github.com/akashsingh062/Smart-Ai-Todo/middleware"
	"github.com/akashsingh062/Smart-Ai-Todo/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AIHandler struct {
	service *services.AIService
}

func NewAIHandler(service *services.AIService) *AIHandler {
	return &AIHandler{service: service}
}

type SubtasksRequest struct {
	TodoID   string `json:"todoId"`
	TaskText string `json:"taskText"`
}

func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	summary, err := h.service.Summarize(r.Context(), userID)
	if err != nil {
		logging.Logger.Errorf("Event ID: AI_SUMMARIZE_FAILED, Description: Summarize failed: %v", err)
		writeError(w, http.StatusInternalServerError, "AI service error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *AIHandler) Prioritize(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	suggestions, err := h.service.Prioritize(r.Context(), userID)
	if err != nil {
		logging.Logger.Errorf("Event ID: AI_PRIORITIZE_FAILED, Description: Prioritize failed: %v", err)
		writeError(w, http.StatusInternalServerError, "AI service error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"suggestions": suggestions})
}

// GenerateSubtasks validates todoId before any generation work so a missing
// id is always a 400, never a wasted model call.
func (h *AIHandler) GenerateSubtasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	var req SubtasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	if req.TodoID == "" {
		writeError(w, http.StatusBadRequest, "todoId is required", nil)
		return
	}
	todoID, err := primitive.ObjectIDFromHex(req.TodoID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid todo id", nil)
		return
	}

	todo, err := h.service.GenerateSubtasks(r.Context(), userID, todoID, req.TaskText)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTodoNotFound):
			writeError(w, http.StatusNotFound, "Todo not found", nil)
		case errors.Is(err, services.ErrNoSubtasks):
			writeError(w, http.StatusInternalServerError, "AI failed to generate subtasks.", nil)
		default:
			logging.Logger.Errorf("Event ID: AI_SUBTASKS_FAILED, Description: Subtask generation failed: %v", err)
			writeError(w, http.StatusInternalServerError, "AI service error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"todo": todo})
}
