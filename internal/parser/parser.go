// Package parser defines the line-parsing strategy interface and the raw
// transaction candidates strategies produce. Raw tokens are normalized
// downstream; nothing in this package interprets amounts or dates.
package parser

import (
	"fmt"

	"github.com/rumor-ml/bankparse/internal/domain"
)

// DebitHint is the weak structural signal carried by formats with separate
// debit and credit columns. Formats that encode sign inside the amount
// token leave it at HintNone.
type DebitHint int

const (
	HintNone DebitHint = iota
	HintDebit
	HintCredit
)

// RawTransaction is a candidate extracted by a per-bank strategy, before
// normalization. Created and discarded within a single parse call.
type RawTransaction struct {
	dateToken        string
	descriptionToken string
	amountToken      string
	hint             DebitHint
	categoryToken    string
	balanceToken     string
	sourceLine       string
}

// NewRawTransaction creates a validated raw transaction candidate
func NewRawTransaction(dateToken, descriptionToken, amountToken, sourceLine string) (*RawTransaction, error) {
	if dateToken == "" {
		return nil, fmt.Errorf("date token cannot be empty")
	}
	if amountToken == "" {
		return nil, fmt.Errorf("amount token cannot be empty")
	}

	return &RawTransaction{
		dateToken:        dateToken,
		descriptionToken: descriptionToken,
		amountToken:      amountToken,
		sourceLine:       sourceLine,
	}, nil
}

// DateToken returns the raw date text
func (r *RawTransaction) DateToken() string { return r.dateToken }

// DescriptionToken returns the raw description text
func (r *RawTransaction) DescriptionToken() string { return r.descriptionToken }

// AmountToken returns the raw monetary text
func (r *RawTransaction) AmountToken() string { return r.amountToken }

// Hint returns the debit/credit column signal
func (r *RawTransaction) Hint() DebitHint { return r.hint }

// CategoryToken returns the raw category text, "" when the format has none
func (r *RawTransaction) CategoryToken() string { return r.categoryToken }

// BalanceToken returns the raw running-balance text, "" when absent
func (r *RawTransaction) BalanceToken() string { return r.balanceToken }

// SourceLine returns the original line, retained for diagnostics
func (r *RawTransaction) SourceLine() string { return r.sourceLine }

// SetHint records which structural column carried the amount
func (r *RawTransaction) SetHint(hint DebitHint) { r.hint = hint }

// SetCategoryToken records an explicit category column value
func (r *RawTransaction) SetCategoryToken(token string) { r.categoryToken = token }

// SetBalanceToken records a running-balance column value
func (r *RawTransaction) SetBalanceToken(token string) { r.balanceToken = token }

// LineError describes a single line that could not be turned into a
// transaction. The parse continues past it.
type LineError struct {
	Line   string
	Reason string
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %q: %s", e.Line, e.Reason)
}

// LineParser is the per-bank parsing strategy. Implementations skip
// non-transaction lines (headers, footers, blanks) silently and report
// ambiguous transaction-looking lines as LineErrors.
type LineParser interface {
	// Variant returns the institution format this strategy handles
	Variant() domain.Variant

	// ParseLines extracts raw transaction candidates from the uniform line
	// sequence. Returned errors are line-scoped, never fatal.
	ParseLines(lines []string) ([]RawTransaction, []LineError)
}
