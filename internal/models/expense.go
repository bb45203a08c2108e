package models

import "github.com/shopspring/decimal"

// Expense categories accepted by the ledger.
const (
	CategoryFood      = "food"
	CategoryTransport = "transport"
	CategoryHealth    = "health"
	CategoryOther     = "other"
)

// Categories lists every valid expense category.
var Categories = []string{CategoryFood, CategoryTransport, CategoryHealth, CategoryOther}

// ValidCategory reports whether category belongs to the fixed enumeration.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Expense represents a financial expense record owned by a user.
// Date is the creation date (YYYY-MM-DD), set once by the server.
type Expense struct {
	ID          int64
	UserID      int64
	Title       string
	Montant     decimal.Decimal
	Category    string
	Description string
	Date        string
}
