// Package column implements the column-delimited parsing family: statement
// lines split on a fixed delimiter into positional date, description,
// debit, credit and balance fields.
package column

import (
	"regexp"
	"strings"

	"github.com/rumor-ml/bankparse/internal/domain"
	"github.com/rumor-ml/bankparse/internal/parser"
)

// Layout describes one institution's column arrangement.
type Layout struct {
	Delimiter    string
	DateField    int
	DescField    int
	DebitField   int
	CreditField  int
	BalanceField int // -1 when the format has no balance column
	MinFields    int
}

// Parser is a column-family strategy bound to one institution layout.
// Stateless apart from configuration, so safe for concurrent use.
type Parser struct {
	variant domain.Variant
	layout  Layout
}

// New creates a column-family strategy for the given variant and layout
func New(variant domain.Variant, layout Layout) *Parser {
	return &Parser{variant: variant, layout: layout}
}

// Bradesco returns the strategy for Bradesco's semicolon export:
// Data;Histórico;Débito;Crédito;Saldo.
func Bradesco() *Parser {
	return New(domain.VariantBradesco, Layout{
		Delimiter:    ";",
		DateField:    0,
		DescField:    1,
		DebitField:   2,
		CreditField:  3,
		BalanceField: 4,
		MinFields:    4,
	})
}

// Santander returns the strategy for Santander's semicolon export, which
// shares the Bradesco column arrangement.
func Santander() *Parser {
	return New(domain.VariantSantander, Layout{
		Delimiter:    ";",
		DateField:    0,
		DescField:    1,
		DebitField:   2,
		CreditField:  3,
		BalanceField: 4,
		MinFields:    4,
	})
}

// Caixa returns the strategy for Caixa's comma export with no balance
// column.
func Caixa() *Parser {
	return New(domain.VariantCaixa, Layout{
		Delimiter:    ",",
		DateField:    0,
		DescField:    1,
		DebitField:   2,
		CreditField:  3,
		BalanceField: -1,
		MinFields:    4,
	})
}

// Variant returns the institution format this strategy handles
func (p *Parser) Variant() domain.Variant {
	return p.variant
}

// ParseLines extracts raw transactions from column-delimited lines. Lines
// that are not transaction shaped (headers, footers, blanks) are skipped
// silently; date-bearing lines with ambiguous debit/credit columns are
// reported as line errors.
func (p *Parser) ParseLines(lines []string) ([]parser.RawTransaction, []parser.LineError) {
	var txns []parser.RawTransaction
	var errs []parser.LineError

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !strings.Contains(trimmed, p.layout.Delimiter) {
			continue
		}

		fields := strings.Split(trimmed, p.layout.Delimiter)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) < p.layout.MinFields {
			continue
		}

		dateTok := fields[p.layout.DateField]
		if !looksLikeDate(dateTok) {
			// Header or footer row, not a parse failure.
			continue
		}

		debitTok := fields[p.layout.DebitField]
		creditTok := fields[p.layout.CreditField]
		hasDebit := looksLikeAmount(debitTok)
		hasCredit := looksLikeAmount(creditTok)

		switch {
		case hasDebit && hasCredit:
			errs = append(errs, parser.LineError{Line: trimmed, Reason: "both debit and credit columns populated"})
			continue
		case !hasDebit && !hasCredit:
			errs = append(errs, parser.LineError{Line: trimmed, Reason: "neither debit nor credit column populated"})
			continue
		}

		amountTok := debitTok
		hint := parser.HintDebit
		if hasCredit {
			amountTok = creditTok
			hint = parser.HintCredit
		}

		raw, err := parser.NewRawTransaction(dateTok, fields[p.layout.DescField], amountTok, trimmed)
		if err != nil {
			errs = append(errs, parser.LineError{Line: trimmed, Reason: err.Error()})
			continue
		}
		raw.SetHint(hint)
		if p.layout.BalanceField >= 0 && p.layout.BalanceField < len(fields) {
			if bal := fields[p.layout.BalanceField]; looksLikeAmount(bal) {
				raw.SetBalanceToken(bal)
			}
		}

		txns = append(txns, *raw)
	}

	return txns, errs
}

var datePattern = regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}[/-]\d{4}|\d{4}-\d{2}-\d{2})$`)

// looksLikeDate is a cheap shape check used to separate transaction rows
// from headers; real validation happens during normalization.
func looksLikeDate(tok string) bool {
	return datePattern.MatchString(tok)
}

// looksLikeAmount reports whether tok holds a non-zero-looking monetary
// value. Empty columns and explicit zeros both count as unpopulated.
func looksLikeAmount(tok string) bool {
	hasDigit := false
	allZero := true
	for _, r := range tok {
		if r >= '0' && r <= '9' {
			hasDigit = true
			if r != '0' {
				allZero = false
			}
		}
	}
	return hasDigit && !allZero
}
