package dto

import (
	"time"

	"github.com/landy-dev/organizer-be/internal/models"
)

// TodoRequest is the create/update payload for a todo. DateFor and
// TimeFor must be given together or not at all.
type TodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DateFor     *string `json:"date_for"`
	TimeFor     *string `json:"time_for"`
	Completed   *bool   `json:"completed"`
}

// TodoResponse is the detail wire shape of a todo.
type TodoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DateFor     *string   `json:"date_for"`
	TimeFor     *string   `json:"time_for"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoListItem is the reduced shape used by list views, carrying the
// derived countdown string.
type TodoListItem struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Completed     bool    `json:"completed"`
	DateFor       *string `json:"date_for"`
	TimeFor       *string `json:"time_for"`
	TimeRemaining string  `json:"time_remaining"`
}

// NewTodoResponse maps a stored todo onto its detail wire shape.
func NewTodoResponse(t models.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DateFor:     t.DateFor,
		TimeFor:     t.TimeFor,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTodoListItems maps a listing, computing time_remaining against now.
func NewTodoListItems(todos []models.Todo, now time.Time) []TodoListItem {
	out := make([]TodoListItem, 0, len(todos))
	for _, t := range todos {
		out = append(out, TodoListItem{
			ID:            t.ID,
			Title:         t.Title,
			Completed:     t.Completed,
			DateFor:       t.DateFor,
			TimeFor:       t.TimeFor,
			TimeRemaining: t.TimeRemaining(now),
		})
	}
	return out
}
