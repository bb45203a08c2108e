package dto

import (
	"time"

	"github.com/landy-dev/organizer-be/internal/models"
)

// NoteRequest is the create/update payload for a note.
type NoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// NoteResponse is the wire shape of a note.
type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNoteResponse maps a stored note onto its wire shape.
func NewNoteResponse(n models.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NewNoteResponses maps a listing, yielding [] rather than null when empty.
func NewNoteResponses(notes []models.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return out
}
