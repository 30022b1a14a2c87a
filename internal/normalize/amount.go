// Package normalize provides the primitive normalizers that convert raw,
// locale-ambiguous tokens into canonical scalar values. All coercion from
// source text happens here, once, at the normalization boundary.
package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Sign is the explicit sign observed on an amount token, if any.
type Sign int

const (
	SignNone Sign = iota
	SignPositive
	SignNegative
)

// AmountParseError reports a monetary token that could not be normalized
type AmountParseError struct {
	Token  string
	Reason string
}

func (e *AmountParseError) Error() string {
	return fmt.Sprintf("cannot parse amount %q: %s", e.Token, e.Reason)
}

// maxMagnitude is the overflow guard: 10^9 minor units. Statements with
// larger single amounts are corrupt input, not plausible transactions.
var maxMagnitude = decimal.New(1_000_000_000, -2)

// currencyReplacer strips currency markers that appear in Brazilian and
// international statement exports.
var currencyReplacer = strings.NewReplacer("R$", "", "US$", "", "$", "", "€", "", "£", "")

// Amount converts a raw monetary token into a non-negative magnitude with
// exactly two decimal places, rounded half-to-even. The returned Sign is the
// explicit leading sign seen on the token; callers combine it with column
// semantics to classify the transaction (column semantics win on conflict).
//
// Separator handling: when both "," and "." appear, the rightmost one is the
// decimal separator and the other is a discarded thousands separator. A lone
// "," followed by exactly two trailing digits is a decimal separator.
func Amount(token string) (decimal.Decimal, Sign, error) {
	cleaned := strings.TrimSpace(currencyReplacer.Replace(token))
	cleaned = strings.Join(strings.Fields(cleaned), "")

	sign := SignNone
	switch {
	case strings.HasPrefix(cleaned, "-"):
		sign = SignNegative
		cleaned = cleaned[1:]
	case strings.HasPrefix(cleaned, "+"):
		sign = SignPositive
		cleaned = cleaned[1:]
	}

	if !strings.ContainsAny(cleaned, "0123456789") {
		return decimal.Zero, SignNone, &AmountParseError{Token: token, Reason: "no digits"}
	}

	cleaned = resolveSeparators(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, SignNone, &AmountParseError{Token: token, Reason: err.Error()}
	}

	d = d.Abs()
	if d.GreaterThan(maxMagnitude) {
		return decimal.Zero, SignNone, &AmountParseError{Token: token, Reason: fmt.Sprintf("magnitude exceeds %s", maxMagnitude)}
	}

	return d.RoundBank(2), sign, nil
}

// resolveSeparators rewrites a digit string with ambiguous "."/"," usage
// into canonical dot-decimal form.
func resolveSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Both present: the rightmost is the decimal separator, the other is
		// a thousands separator to discard.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = commaToDecimal(s)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Comma only: decimal separator when followed by exactly two trailing
		// digits, thousands separator otherwise.
		if len(s)-lastComma-1 == 2 {
			s = commaToDecimal(s)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}

// commaToDecimal turns the last comma into the decimal point and drops any
// earlier commas.
func commaToDecimal(s string) string {
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return s
	}
	return strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
}
