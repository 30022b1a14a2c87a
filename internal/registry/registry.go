// Package registry maps detected bank variants to their line parsers.
package registry

import (
	"fmt"

	"github.com/rumor-ml/bankparse/internal/domain"
	"github.com/rumor-ml/bankparse/internal/parser"
	"github.com/rumor-ml/bankparse/internal/parsers/column"
	"github.com/rumor-ml/bankparse/internal/parsers/pattern"
)

// Registry holds one line parser per bank variant.
type Registry struct {
	parsers map[domain.Variant]parser.LineParser
}

// New creates a registry with all built-in parsers.
func New() *Registry {
	builtin := []parser.LineParser{
		pattern.Nubank(),
		pattern.BancoDoBrasil(),
		column.Bradesco(),
		pattern.Itau(),
		column.Santander(),
		column.Caixa(),
		pattern.Inter(),
		pattern.C6Bank(),
		pattern.MercadoPago(),
		pattern.PicPay(),
		pattern.Generic(),
	}

	r := &Registry{parsers: make(map[domain.Variant]parser.LineParser, len(builtin))}
	for _, p := range builtin {
		r.parsers[p.Variant()] = p
	}
	return r
}

// Register adds or replaces the parser for a variant.
func (r *Registry) Register(p parser.LineParser) error {
	if !domain.ValidateVariant(p.Variant()) {
		return fmt.Errorf("cannot register parser for invalid variant: %s", p.Variant())
	}
	r.parsers[p.Variant()] = p
	return nil
}

// ForVariant returns the parser for a variant. Variants without a dedicated
// parser fall back to the generic one, so dispatch never fails.
func (r *Registry) ForVariant(v domain.Variant) parser.LineParser {
	if p, ok := r.parsers[v]; ok {
		return p
	}
	return r.parsers[domain.VariantGeneric]
}

// Variants returns the variants with a registered parser.
func (r *Registry) Variants() []domain.Variant {
	variants := make([]domain.Variant, 0, len(r.parsers))
	for v := range r.parsers {
		variants = append(variants, v)
	}
	return variants
}
