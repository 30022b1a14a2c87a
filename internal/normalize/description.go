package normalize

import "strings"

// descriptionFallback is the documented placeholder for transactions whose
// source line carries no usable description text. It is never synthesized
// from unrelated fields.
const descriptionFallback = "Transaction"

// Description trims the token and collapses internal whitespace runs to
// single spaces. A result that is empty after cleaning becomes the explicit
// "Transaction" placeholder.
func Description(token string) string {
	cleaned := strings.Join(strings.Fields(token), " ")
	if cleaned == "" {
		return descriptionFallback
	}
	return cleaned
}
