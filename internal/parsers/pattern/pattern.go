// Package pattern implements the pattern-scan parsing family: each line is
// tested against an ordered list of textual patterns of the shape
// <date> <description> <signed amount>, first match wins. Used for
// document-extracted text, digital-bank exports and the Generic fallback.
// Inherently best-effort: unmatched lines are not transactions, so they are
// skipped without being recorded.
package pattern

import (
	"regexp"
	"strings"

	"github.com/rumor-ml/bankparse/internal/domain"
	"github.com/rumor-ml/bankparse/internal/parser"
)

// Capture group fragments shared by the tier patterns.
const (
	dateGroup   = `(?P<date>\d{2}/\d{2}/\d{4}|\d{2}-\d{2}-\d{4}|\d{4}-\d{2}-\d{2})`
	amountGroup = `(?P<amount>[-+]?(?:R\$\s?)?\d[\d.,]*)`
)

// Parser is a pattern-family strategy bound to one institution's pattern
// tiers. Stateless apart from configuration, so safe for concurrent use.
type Parser struct {
	variant domain.Variant
	tiers   []*regexp.Regexp
}

// New creates a pattern-family strategy with the given ordered tiers
func New(variant domain.Variant, tiers []*regexp.Regexp) *Parser {
	return &Parser{variant: variant, tiers: tiers}
}

// categorized matches the four-column digital export carrying an explicit
// category: date,category,title,amount (the Nubank layout).
var categorized = regexp.MustCompile(`^` + dateGroup + `\s*,\s*(?P<category>[^,]*?)\s*,\s*(?P<desc>[^,]+?)\s*,\s*` + amountGroup + `\s*$`)

// delimited matches three-column comma or semicolon exports.
var delimited = regexp.MustCompile(`^` + dateGroup + `\s*[;,]\s*(?P<desc>[^;,]+?)\s*[;,]\s*` + amountGroup + `\s*$`)

// statement matches the whitespace-separated layout PDF extraction
// produces for traditional bank statements.
var statement = regexp.MustCompile(`^` + dateGroup + `\s+(?P<desc>.+?)\s+` + amountGroup + `\s*$`)

// skipped matches the date,id,description,amount shape used by payment
// processors, where the second column is a transaction id to ignore.
var skipped = regexp.MustCompile(`^` + dateGroup + `\s*,\s*[^,]*,\s*(?P<desc>[^,]+?)\s*,\s*` + amountGroup + `\s*$`)

// Nubank returns the strategy for Nubank card exports
func Nubank() *Parser {
	return New(domain.VariantNubank, []*regexp.Regexp{categorized, delimited})
}

// BancoDoBrasil returns the strategy for Banco do Brasil statements
func BancoDoBrasil() *Parser {
	return New(domain.VariantBancoDoBrasil, []*regexp.Regexp{delimited, statement})
}

// Itau returns the strategy for Itaú statements, typically PDF-extracted
func Itau() *Parser {
	return New(domain.VariantItau, []*regexp.Regexp{statement, delimited})
}

// Inter returns the strategy for Banco Inter exports
func Inter() *Parser {
	return New(domain.VariantInter, []*regexp.Regexp{delimited, statement})
}

// C6Bank returns the strategy for C6 Bank exports
func C6Bank() *Parser {
	return New(domain.VariantC6Bank, []*regexp.Regexp{delimited, statement})
}

// MercadoPago returns the strategy for Mercado Pago exports, whose second
// column is an operation id.
func MercadoPago() *Parser {
	return New(domain.VariantMercadoPago, []*regexp.Regexp{skipped, delimited})
}

// PicPay returns the strategy for PicPay exports
func PicPay() *Parser {
	return New(domain.VariantPicPay, []*regexp.Regexp{delimited, statement})
}

// Generic returns the fallback strategy used when no fingerprint matched.
// Tiers cover every shape the engine knows, categorized layouts first so
// category hints survive.
func Generic() *Parser {
	return New(domain.VariantGeneric, []*regexp.Regexp{categorized, delimited, statement})
}

// Variant returns the institution format this strategy handles
func (p *Parser) Variant() domain.Variant {
	return p.variant
}

// ParseLines tests each line against the tiers in order; the first
// matching tier wins. Lines matching no tier are not transactions and are
// skipped silently.
func (p *Parser) ParseLines(lines []string) ([]parser.RawTransaction, []parser.LineError) {
	var txns []parser.RawTransaction
	var errs []parser.LineError

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		for _, tier := range p.tiers {
			match := tier.FindStringSubmatch(trimmed)
			if match == nil {
				continue
			}

			raw, err := parser.NewRawTransaction(
				groupValue(tier, match, "date"),
				groupValue(tier, match, "desc"),
				groupValue(tier, match, "amount"),
				trimmed,
			)
			if err != nil {
				errs = append(errs, parser.LineError{Line: trimmed, Reason: err.Error()})
				break
			}
			if category := groupValue(tier, match, "category"); category != "" {
				raw.SetCategoryToken(category)
			}

			txns = append(txns, *raw)
			break
		}
	}

	return txns, errs
}

func groupValue(re *regexp.Regexp, match []string, name string) string {
	i := re.SubexpIndex(name)
	if i < 0 || i >= len(match) {
		return ""
	}
	return match[i]
}
