package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/akashsingh062/Smart-Ai-Todo/logging"
	"github.com/akashsingh062/Smart-Ai-Todo/middleware"
	"github.com/akashsingh062/Smart-Ai-Todo/models"
	"github.com/akashsingh062/Smart-Ai-Todo/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TodoHandler struct {
	service *services.TodoService
}

func NewTodoHandler(service *services.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

type CreateTodoRequest struct {
	Text     string          `json:"text"`
	Priority models.Priority `json:"priority"`
	Category string          `json:"category"`
	DueDate  *time.Time      `json:"dueDate"`
}

func (h *TodoHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	todos, err := h.service.GetTodos(r.Context(), userID)
	if err != nil {
		logging.Logger.Errorf("Event ID: TODOS_FETCH_FAILED, Description: Failed to fetch todos: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Todo text is required", nil)
		return
	}
	if req.Priority != "" && !req.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid priority", nil)
		return
	}

	todo, err := h.service.CreateTodo(r.Context(), userID, req.Text, req.Priority, req.Category, req.DueDate)
	if err != nil {
		logging.Logger.Errorf("Event ID: TODO_CREATE_FAILED, Description: Failed to create todo: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	todoID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid todo id", nil)
		return
	}

	var update services.TodoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}
	if update.Priority != nil && !update.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid priority", nil)
		return
	}

	todo, err := h.service.UpdateTodo(r.Context(), userID, todoID, update)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found", nil)
			return
		}
		logging.Logger.Errorf("Event ID: TODO_UPDATE_FAILED, Description: Failed to update todo %s: %v", todoID.Hex(), err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	todoID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid todo id", nil)
		return
	}

	if err := h.service.DeleteTodo(r.Context(), userID, todoID); err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found", nil)
			return
		}
		logging.Logger.Errorf("Event ID: TODO_DELETE_FAILED, Description: Failed to delete todo %s: %v", todoID.Hex(), err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted successfully"})
}

func (h *TodoHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	deleted, err := h.service.ClearCompleted(r.Context(), userID)
	if err != nil {
		logging.Logger.Errorf("Event ID: TODO_CLEAR_FAILED, Description: Failed to clear completed todos: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	logging.Logger.Infof("Event ID: TODOS_CLEARED, Description: Cleared %d completed todos", deleted)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Completed todos cleared successfully"})
}
