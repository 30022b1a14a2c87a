// Package domain defines the canonical transaction shape produced by the
// normalization engine and the result envelope returned to callers.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money in or money out.
// Use ValidateKind to ensure validity before use.
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

var validKinds = map[Kind]struct{}{
	KindIncome:  {},
	KindExpense: {},
}

// ValidateKind checks if kind is valid
func ValidateKind(k Kind) bool {
	_, ok := validKinds[k]
	return ok
}

// Variant identifies which institution format produced a statement.
// The set is closed: one tag per supported institution layout, plus OFX for
// format-detected OFX uploads and Generic as the best-effort fallback.
type Variant string

const (
	VariantNubank        Variant = "Nubank"
	VariantBancoDoBrasil Variant = "Banco do Brasil"
	VariantBradesco      Variant = "Bradesco"
	VariantItau          Variant = "Itau"
	VariantSantander     Variant = "Santander"
	VariantCaixa         Variant = "Caixa"
	VariantInter         Variant = "Banco Inter"
	VariantC6Bank        Variant = "C6 Bank"
	VariantMercadoPago   Variant = "Mercado Pago"
	VariantPicPay        Variant = "PicPay"
	VariantOFX           Variant = "OFX"
	VariantGeneric       Variant = "Generic"
)

var validVariants = map[Variant]struct{}{
	VariantNubank: {}, VariantBancoDoBrasil: {}, VariantBradesco: {},
	VariantItau: {}, VariantSantander: {}, VariantCaixa: {},
	VariantInter: {}, VariantC6Bank: {}, VariantMercadoPago: {},
	VariantPicPay: {}, VariantOFX: {}, VariantGeneric: {},
}

// ValidateVariant checks if variant is valid
func ValidateVariant(v Variant) bool {
	_, ok := validVariants[v]
	return ok
}

// Transaction is the engine's canonical output unit. Amount is always a
// positive magnitude; the sign lives in Kind. Never mutated after creation.
type Transaction struct {
	Date         time.Time
	Description  string
	Amount       decimal.Decimal
	Kind         Kind
	categoryHint string
	balanceAfter *decimal.Decimal
}

// NewTransaction creates a validated transaction
func NewTransaction(date time.Time, description string, amount decimal.Decimal, kind Kind) (*Transaction, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("transaction date cannot be zero")
	}
	if description == "" {
		return nil, fmt.Errorf("description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", amount)
	}
	if !ValidateKind(kind) {
		return nil, fmt.Errorf("invalid kind: %s", kind)
	}

	return &Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Kind:        kind,
	}, nil
}

// SetCategoryHint sets the optional category carried by the source format
func (t *Transaction) SetCategoryHint(hint string) {
	t.categoryHint = hint
}

// CategoryHint returns the category hint, or "" when the source had none
func (t *Transaction) CategoryHint() string { return t.categoryHint }

// SetBalanceAfter sets the optional running balance exposed by the source
func (t *Transaction) SetBalanceAfter(balance decimal.Decimal) {
	t.balanceAfter = &balance
}

// BalanceAfter returns the running balance and whether the source exposed one
func (t *Transaction) BalanceAfter() (decimal.Decimal, bool) {
	if t.balanceAfter == nil {
		return decimal.Zero, false
	}
	return *t.balanceAfter, true
}

// Signed returns the amount with the sign implied by Kind.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// MarshalJSON implements the serialized shape crossing process boundaries.
// Amounts serialize as numbers with exactly two decimal places.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	aux := struct {
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Amount      json.RawMessage `json:"amount"`
		Type        Kind            `json:"type"`
		Category    string          `json:"category,omitempty"`
		Balance     json.RawMessage `json:"balance,omitempty"`
	}{
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		Amount:      json.RawMessage(t.Amount.StringFixed(2)),
		Type:        t.Kind,
		Category:    t.categoryHint,
	}
	if t.balanceAfter != nil {
		aux.Balance = json.RawMessage(t.balanceAfter.StringFixed(2))
	}
	return json.Marshal(&aux)
}

// Summary totals a transaction list. Balance is always Income - Expenses,
// recomputed from the list and never independently settable.
type Summary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// MarshalJSON serializes totals as numbers with exactly two decimal places
func (s Summary) MarshalJSON() ([]byte, error) {
	aux := struct {
		Income   json.RawMessage `json:"income"`
		Expenses json.RawMessage `json:"expenses"`
		Balance  json.RawMessage `json:"balance"`
	}{
		Income:   json.RawMessage(s.Income.StringFixed(2)),
		Expenses: json.RawMessage(s.Expenses.StringFixed(2)),
		Balance:  json.RawMessage(s.Balance.StringFixed(2)),
	}
	return json.Marshal(&aux)
}

// ParseResult is the engine's output for a single statement file.
// Transactions keep file encounter order, which is not necessarily
// chronological. Errors hold one human-readable entry per line that could
// not be normalized. Warnings surface non-fatal structural findings such as
// a non-empty file yielding zero transactions.
type ParseResult struct {
	Success      bool
	Variant      Variant
	Transactions []Transaction
	Errors       []string
	Warnings     []string
	Summary      Summary
}

// NewFailedResult packages a fatal error as a failed result with no
// partial transaction list.
func NewFailedResult(variant Variant, err error) *ParseResult {
	return &ParseResult{
		Success:      false,
		Variant:      variant,
		Transactions: []Transaction{},
		Errors:       []string{err.Error()},
		Warnings:     []string{},
	}
}

// MarshalJSON implements the API-facing record shape
func (r *ParseResult) MarshalJSON() ([]byte, error) {
	txns := r.Transactions
	if txns == nil {
		txns = []Transaction{}
	}
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	warns := r.Warnings
	if warns == nil {
		warns = []string{}
	}
	return json.Marshal(&struct {
		Success           bool          `json:"success"`
		BankDetected      Variant       `json:"bankDetected"`
		TotalTransactions int           `json:"totalTransactions"`
		Transactions      []Transaction `json:"transactions"`
		Errors            []string      `json:"errors"`
		Warnings          []string      `json:"warnings"`
		Summary           Summary       `json:"summary"`
	}{
		Success:           r.Success,
		BankDetected:      r.Variant,
		TotalTransactions: len(txns),
		Transactions:      txns,
		Errors:            errs,
		Warnings:          warns,
		Summary:           r.Summary,
	})
}
