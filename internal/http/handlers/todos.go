package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/landy-dev/organizer-be/internal/http/respond"
	"github.com/landy-dev/organizer-be/internal/models"
	"github.com/landy-dev/organizer-be/internal/models/dto"
	"github.com/landy-dev/organizer-be/internal/storage"
	"github.com/landy-dev/organizer-be/internal/validate"
)

// TodosHandler owns the /api/todos/ routes.
type TodosHandler struct {
	store storage.TodoStore
	// now is swappable so tests can pin the clock.
	now func() time.Time
}

// NewTodosHandler constructs the handler.
func NewTodosHandler(store storage.TodoStore) *TodosHandler {
	return &TodosHandler{store: store, now: time.Now}
}

// Register attaches the todo routes, each behind the auth middleware.
func (h *TodosHandler) Register(mux *http.ServeMux, authed func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /api/todos/{$}", authed(h.handleList))
	mux.HandleFunc("POST /api/todos/{$}", authed(h.handleCreate))
	mux.HandleFunc("GET /api/todos/{id}/{$}", authed(h.handleRetrieve))
	mux.HandleFunc("PUT /api/todos/{id}/{$}", authed(h.handleUpdate))
	mux.HandleFunc("PATCH /api/todos/{id}/{$}", authed(h.handleUpdate))
	mux.HandleFunc("DELETE /api/todos/{id}/{$}", authed(h.handleDelete))
	mux.HandleFunc("POST /api/todos/{id}/toggle_complete/{$}", authed(h.handleToggleComplete))
}

func (h *TodosHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	filter := storage.TodoFilter{Search: query.Get("search")}
	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			respond.FieldErrors(w, validate.FieldErrors{"completed": "completed must be a boolean"})
			return
		}
		filter.Completed = &completed
	}
	if raw := query.Get("date_for"); raw != "" {
		if _, err := time.Parse(models.DateLayout, raw); err != nil {
			respond.FieldErrors(w, validate.FieldErrors{"date_for": "date_for must use the YYYY-MM-DD format"})
			return
		}
		filter.DateFor = &raw
	}

	todos, err := h.store.ListTodos(r.Context(), userID, filter)
	if err != nil {
		log.Printf("list todos: %v", err)
		respond.Err(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	respond.JSON(w, http.StatusOK, dto.NewTodoListItems(todos, h.now()))
}

func (h *TodosHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	req, err := decodePayload[dto.TodoRequest](r)
	if err != nil {
		respond.Err(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	title := derefOr(req.Title, "")
	timeFor := normalizedClock(req.TimeFor)
	if errs := validate.Todo(title, req.DateFor, timeFor, true, h.now()); len(errs) > 0 {
		respond.FieldErrors(w, errs)
		return
	}

	now := h.now().UTC()
	todo := models.Todo{
		UserID:      userID,
		Title:       title,
		Description: derefOr(req.Description, ""),
		DateFor:     req.DateFor,
		TimeFor:     timeFor,
		Completed:   req.Completed != nil && *req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := h.store.CreateTodo(r.Context(), todo)
	if err != nil {
		log.Printf("create todo: %v", err)
		respond.Err(w, http.StatusInternalServerError, "failed to create todo")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.NewTodoResponse(created))
}

func (h *TodosHandler) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	todo, err := h.store.GetTodo(r.Context(), userID, id)
	if err != nil {
		respondTodoErr(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.NewTodoResponse(todo))
}

func (h *TodosHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	todo, err := h.store.GetTodo(r.Context(), userID, id)
	if err != nil {
		respondTodoErr(w, err)
		return
	}
	req, err := decodePayload[dto.TodoRequest](r)
	if err != nil {
		respond.Err(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.DateFor != nil {
		todo.DateFor = req.DateFor
	}
	if req.TimeFor != nil {
		todo.TimeFor = normalizedClock(req.TimeFor)
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	// Past due moments are accepted on update; an existing todo may lapse.
	if errs := validate.Todo(todo.Title, todo.DateFor, todo.TimeFor, false, h.now()); len(errs) > 0 {
		respond.FieldErrors(w, errs)
		return
	}

	todo.UpdatedAt = h.now().UTC()
	updated, err := h.store.UpdateTodo(r.Context(), todo)
	if err != nil {
		respondTodoErr(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.NewTodoResponse(updated))
}

func (h *TodosHandler) handleToggleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	completed, err := h.store.ToggleTodoCompleted(r.Context(), userID, id)
	if err != nil {
		respondTodoErr(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"status":    "modifié",
		"completed": completed,
	})
}

func (h *TodosHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteTodo(r.Context(), userID, id); err != nil {
		respondTodoErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func normalizedClock(clock *string) *string {
	if clock == nil {
		return nil
	}
	normalized := validate.NormalizeClock(*clock)
	return &normalized
}

func respondTodoErr(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Err(w, http.StatusNotFound, "Not found.")
		return
	}
	log.Printf("todo storage error: %v", err)
	respond.Err(w, http.StatusInternalServerError, "storage error")
}
