// Package summary aggregates normalized transactions into statement totals.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/rumor-ml/bankparse/internal/domain"
)

// Compute derives statement totals from the transaction list. The summary is
// always recomputed from the transactions, never accumulated during parsing,
// so the aggregate can never drift from the list it describes.
func Compute(txns []domain.Transaction) domain.Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for i := range txns {
		switch txns[i].Kind {
		case domain.KindIncome:
			income = income.Add(txns[i].Amount)
		case domain.KindExpense:
			expenses = expenses.Add(txns[i].Amount)
		}
	}

	return domain.Summary{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}
