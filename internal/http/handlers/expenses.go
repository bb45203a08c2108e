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

// ExpensesHandler owns the /api/depenses/ routes.
type ExpensesHandler struct {
	store storage.ExpenseStore
}

// NewExpensesHandler constructs the handler.
func NewExpensesHandler(store storage.ExpenseStore) *ExpensesHandler {
	return &ExpensesHandler{store: store}
}

// Register attaches the expense routes, each behind the auth middleware.
func (h *ExpensesHandler) Register(mux *http.ServeMux, authed func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /api/depenses/{$}", authed(h.handleList))
	mux.HandleFunc("POST /api/depenses/{$}", authed(h.handleCreate))
	mux.HandleFunc("GET /api/depenses/{id}/{$}", authed(h.handleRetrieve))
	mux.HandleFunc("PUT /api/depenses/{id}/{$}", authed(h.handleUpdate))
	mux.HandleFunc("PATCH /api/depenses/{id}/{$}", authed(h.handleUpdate))
	mux.HandleFunc("DELETE /api/depenses/{id}/{$}", authed(h.handleDelete))
}

func (h *ExpensesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	filter := storage.ExpenseFilter{
		Search:   r.URL.Query().Get("search"),
		Ordering: r.URL.Query().Get("ordering"),
	}
	expenses, err := h.store.ListExpenses(r.Context(), userID, filter)
	if err != nil {
		log.Printf("list expenses: %v", err)
		respond.Err(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	respond.JSON(w, http.StatusOK, dto.NewExpenseResponses(expenses))
}

func (h *ExpensesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	req, err := decodePayload[dto.ExpenseRequest](r)
	if err != nil {
		respond.Err(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	title := derefOr(req.Title, "")
	category := derefOr(req.Category, "")
	if errs := validate.Expense(title, req.Montant, category); len(errs) > 0 {
		respond.FieldErrors(w, errs)
		return
	}

	// Creation date is server-set and immutable.
	expense := models.Expense{
		UserID:      userID,
		Title:       title,
		Montant:     *req.Montant,
		Category:    category,
		Description: derefOr(req.Description, ""),
		Date:        time.Now().Format(models.DateLayout),
	}
	created, err := h.store.CreateExpense(r.Context(), expense)
	if err != nil {
		log.Printf("create expense: %v", err)
		respond.Err(w, http.StatusInternalServerError, "failed to create expense")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.NewExpenseResponse(created))
}

func (h *ExpensesHandler) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	expense, err := h.store.GetExpense(r.Context(), userID, id)
	if err != nil {
		respondExpenseErr(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.NewExpenseResponse(expense))
}

func (h *ExpensesHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	expense, err := h.store.GetExpense(r.Context(), userID, id)
	if err != nil {
		respondExpenseErr(w, err)
		return
	}
	req, err := decodePayload[dto.ExpenseRequest](r)
	if err != nil {
		respond.Err(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if req.Title != nil {
		expense.Title = *req.Title
	}
	if req.Montant != nil {
		expense.Montant = *req.Montant
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	montant := expense.Montant
	if errs := validate.Expense(expense.Title, &montant, expense.Category); len(errs) > 0 {
		respond.FieldErrors(w, errs)
		return
	}

	updated, err := h.store.UpdateExpense(r.Context(), expense)
	if err != nil {
		respondExpenseErr(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.NewExpenseResponse(updated))
}

func (h *ExpensesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteExpense(r.Context(), userID, id); err != nil {
		respondExpenseErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondExpenseErr(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Err(w, http.StatusNotFound, "Not found.")
		return
	}
	log.Printf("expense storage error: %v", err)
	respond.Err(w, http.StatusInternalServerError, "storage error")
}
