package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/landy-dev/organizer-be/internal/http/respond"
	"github.com/landy-dev/organizer-be/internal/models"
	"github.com/landy-dev/organizer-be/internal/models/dto"
	"github.com/landy-dev/organizer-be/internal/storage"
	"github.com/landy-dev/organizer-be/internal/validate"
)

// NotesHandler owns the /api/notes/ routes.
type NotesHandler struct {
	store storage.NoteStore
}

// NewNotesHandler constructs the handler.
func NewNotesHandler(store storage.NoteStore) *NotesHandler {
	return &NotesHandler{store: store}
}

// Register attaches the note routes, each behind the auth middleware.
func (h *NotesHandler) Register(mux *http.ServeMux, authed func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /api/notes/{$}", authed(h.handleList))
	mux.HandleFunc("POST /api/notes/{$}", authed(h.handleCreate))
	mux.HandleFunc("GET /api/notes/{id}/{$}", authed(h.handleRetrieve))
	mux.HandleFunc("PUT /api/notes/{id}/{$}", authed(h.handleUpdate))
	mux.HandleFunc("PATCH /api/notes/{id}/{$}", authed(h.handleUpdate))
	mux.HandleFunc("DELETE /api/notes/{id}/{$}", authed(h.handleDelete))
}

func (h *NotesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	filter := storage.NoteFilter{Search: r.URL.Query().Get("search")}
	notes, err := h.store.ListNotes(r.Context(), userID, filter)
	if err != nil {
		log.Printf("list notes: %v", err)
		respond.Err(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	respond.JSON(w, http.StatusOK, dto.NewNoteResponses(notes))
}

func (h *NotesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	req, err := decodePayload[dto.NoteRequest](r)
	if err != nil {
		respond.Err(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	title := derefOr(req.Title, "")
	if errs := validate.Note(title); len(errs) > 0 {
		respond.FieldErrors(w, errs)
		return
	}

	now := time.Now().UTC()
	note := models.Note{
		UserID:    userID,
		Title:     title,
		Content:   derefOr(req.Content, ""),
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := h.store.CreateNote(r.Context(), note)
	if err != nil {
		log.Printf("create note: %v", err)
		respond.Err(w, http.StatusInternalServerError, "failed to create note")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.NewNoteResponse(created))
}

func (h *NotesHandler) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	note, err := h.store.GetNote(r.Context(), userID, id)
	if err != nil {
		respondNoteErr(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.NewNoteResponse(note))
}

func (h *NotesHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	note, err := h.store.GetNote(r.Context(), userID, id)
	if err != nil {
		respondNoteErr(w, err)
		return
	}
	req, err := decodePayload[dto.NoteRequest](r)
	if err != nil {
		respond.Err(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if errs := validate.Note(note.Title); len(errs) > 0 {
		respond.FieldErrors(w, errs)
		return
	}

	// updated_at moves on every successful mutation, changed fields or not.
	note.UpdatedAt = time.Now().UTC()
	updated, err := h.store.UpdateNote(r.Context(), note)
	if err != nil {
		respondNoteErr(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.NewNoteResponse(updated))
}

func (h *NotesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteNote(r.Context(), userID, id); err != nil {
		respondNoteErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondNoteErr(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Err(w, http.StatusNotFound, "Not found.")
		return
	}
	log.Printf("note storage error: %v", err)
	respond.Err(w, http.StatusInternalServerError, "storage error")
}
