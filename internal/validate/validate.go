// Package validate holds the field-level input checks shared by the HTTP
// handlers. Each function is pure: it takes the candidate values and
// returns a field-keyed error map, empty meaning the input is acceptable.
package validate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/landy-dev/organizer-be/internal/models"
)

// FieldErrors maps an input field name to a human-readable problem.
type FieldErrors map[string]string

// Error joins the field messages into a single deterministic string.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

const (
	maxTitleLen     = 255
	maxTodoTitleLen = 200
)

// Expense checks a candidate expense. A nil montant means the field was
// absent from the payload.
func Expense(title string, montant *decimal.Decimal, category string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(title) == "" {
		errs["title"] = "title is required"
	} else if len(title) > maxTitleLen {
		errs["title"] = "title must be at most 255 characters"
	}
	if montant == nil {
		errs["montant"] = "montant is required"
	} else if montant.Exponent() < -2 {
		errs["montant"] = "montant must have at most 2 decimal places"
	} else if montant.Abs().GreaterThanOrEqual(decimal.New(1, 8)) {
		errs["montant"] = "montant must have at most 10 digits"
	}
	if !models.ValidCategory(category) {
		errs["category"] = "category must be one of: " + strings.Join(models.Categories, ", ")
	}
	return errs
}

// Note checks a candidate note.
func Note(title string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(title) == "" {
		errs["title"] = "title is required"
	} else if len(title) > maxTitleLen {
		errs["title"] = "title must be at most 255 characters"
	}
	return errs
}
