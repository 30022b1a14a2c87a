// Package validate checks parse results against the engine's structural
// invariants before they cross a process boundary.
package validate

import (
	"github.com/shopspring/decimal"

	"github.com/rumor-ml/bankparse/internal/domain"
)

// ValidationResult contains all validation errors found in a parse result
type ValidationResult struct {
	Errors []ValidationError
}

// ValidationError represents one invariant violation
type ValidationError struct {
	Entity  string // "result", "transaction", "summary"
	Field   string
	Value   string
	Message string
}

// Valid reports whether no invariant was violated
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateResult checks a ParseResult against the engine invariants:
// positive amounts, valid enum values, and a summary that matches the
// transaction list it describes.
func ValidateResult(result *domain.ParseResult) *ValidationResult {
	vr := &ValidationResult{Errors: []ValidationError{}}

	if !domain.ValidateVariant(result.Variant) {
		vr.Errors = append(vr.Errors, ValidationError{
			Entity:  "result",
			Field:   "Variant",
			Value:   string(result.Variant),
			Message: "unknown bank variant",
		})
	}

	if !result.Success && len(result.Transactions) > 0 {
		vr.Errors = append(vr.Errors, ValidationError{
			Entity:  "result",
			Field:   "Transactions",
			Value:   "",
			Message: "failed result must not carry transactions",
		})
	}

	for i := range result.Transactions {
		txn := &result.Transactions[i]
		if !txn.Amount.IsPositive() {
			vr.Errors = append(vr.Errors, ValidationError{
				Entity:  "transaction",
				Field:   "Amount",
				Value:   txn.Amount.String(),
				Message: "amount must be a positive magnitude",
			})
		}
		if !domain.ValidateKind(txn.Kind) {
			vr.Errors = append(vr.Errors, ValidationError{
				Entity:  "transaction",
				Field:   "Kind",
				Value:   string(txn.Kind),
				Message: "unknown transaction kind",
			})
		}
		if txn.Date.IsZero() {
			vr.Errors = append(vr.Errors, ValidationError{
				Entity:  "transaction",
				Field:   "Date",
				Value:   "",
				Message: "date cannot be zero",
			})
		}
		if txn.Description == "" {
			vr.Errors = append(vr.Errors, ValidationError{
				Entity:  "transaction",
				Field:   "Description",
				Value:   "",
				Message: "description cannot be empty",
			})
		}
	}

	validateSummary(result, vr)

	return vr
}

// validateSummary recomputes the totals and compares them with the stored
// summary. A drifting summary means an aggregation bug, never bad input.
func validateSummary(result *domain.ParseResult, vr *ValidationResult) {
	income := decimal.Zero
	expenses := decimal.Zero
	for i := range result.Transactions {
		switch result.Transactions[i].Kind {
		case domain.KindIncome:
			income = income.Add(result.Transactions[i].Amount)
		case domain.KindExpense:
			expenses = expenses.Add(result.Transactions[i].Amount)
		}
	}

	if !result.Summary.Income.Equal(income) {
		vr.Errors = append(vr.Errors, ValidationError{
			Entity:  "summary",
			Field:   "Income",
			Value:   result.Summary.Income.String(),
			Message: "income does not match the transaction list",
		})
	}
	if !result.Summary.Expenses.Equal(expenses) {
		vr.Errors = append(vr.Errors, ValidationError{
			Entity:  "summary",
			Field:   "Expenses",
			Value:   result.Summary.Expenses.String(),
			Message: "expenses do not match the transaction list",
		})
	}
	if !result.Summary.Balance.Equal(income.Sub(expenses)) {
		vr.Errors = append(vr.Errors, ValidationError{
			Entity:  "summary",
			Field:   "Balance",
			Value:   result.Summary.Balance.String(),
			Message: "balance is not income minus expenses",
		})
	}
}
