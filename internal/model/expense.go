package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the text layout expense timestamps are stored with.
const DateLayout = "2006-01-02 15:04:05"

// Expense represents a single recorded expense. Expenses are never updated
// or deleted once written.
type Expense struct {
	Date        time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
	ID          int64
}

// CategoryTotal is the sum of expense amounts recorded against one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// SumAmounts returns the total of all expense amounts.
func SumAmounts(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
