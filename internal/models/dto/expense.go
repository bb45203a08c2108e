package dto

import (
	"github.com/shopspring/decimal"

	"github.com/landy-dev/organizer-be/internal/models"
)

// ExpenseRequest is the create/update payload. Pointer fields distinguish
// absent fields from zero values on partial updates.
type ExpenseRequest struct {
	Title       *string          `json:"title"`
	Montant     *decimal.Decimal `json:"montant"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
}

// ExpenseResponse is the wire shape of an expense. Montant is rendered
// with exactly two decimal places.
type ExpenseResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Montant     string `json:"montant"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// NewExpenseResponse maps a stored expense onto its wire shape.
func NewExpenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Montant:     e.Montant.StringFixed(2),
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
	}
}

// NewExpenseResponses maps a listing, yielding [] rather than null when empty.
func NewExpenseResponses(expenses []models.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, NewExpenseResponse(e))
	}
	return out
}
