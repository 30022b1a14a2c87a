// Package bank detects which financial institution produced a statement by
// matching fingerprint tokens against file content and filename.
package bank

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/rumor-ml/bankparse/internal/domain"
)

//go:embed banks.yaml
var embeddedConfig []byte

// fingerprintSet ties one institution variant to the substrings that
// identify it.
type fingerprintSet struct {
	Variant      domain.Variant `yaml:"variant"`
	Fingerprints []string       `yaml:"fingerprints"`
}

type config struct {
	Banks []fingerprintSet `yaml:"banks"`
}

// Detector matches statements against the configured fingerprint list.
// The list order is the tie-break priority, so detection is deterministic:
// it silently selects which per-bank parser runs.
type Detector struct {
	sets []fingerprintSet
}

// NewDetector loads the embedded fingerprint configuration
func NewDetector() (*Detector, error) {
	return newDetectorFromBytes(embeddedConfig)
}

func newDetectorFromBytes(data []byte) (*Detector, error) {
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bank fingerprint config: %w", err)
	}
	if len(cfg.Banks) == 0 {
		return nil, fmt.Errorf("bank fingerprint config contains no banks")
	}

	for i, set := range cfg.Banks {
		if !domain.ValidateVariant(set.Variant) {
			return nil, fmt.Errorf("bank %d: unknown variant %q", i, set.Variant)
		}
		if set.Variant == domain.VariantGeneric || set.Variant == domain.VariantOFX {
			return nil, fmt.Errorf("bank %d: variant %q is not fingerprint-detected", i, set.Variant)
		}
		if len(set.Fingerprints) == 0 {
			return nil, fmt.Errorf("bank %d (%s): no fingerprints", i, set.Variant)
		}
		for j, fp := range set.Fingerprints {
			folded := Fold(fp)
			if folded == "" {
				return nil, fmt.Errorf("bank %d (%s): fingerprint %d is empty after folding", i, set.Variant, j)
			}
			cfg.Banks[i].Fingerprints[j] = folded
		}
	}

	return &Detector{sets: cfg.Banks}, nil
}

// Detect returns the variant whose fingerprint matches content or filename,
// or Generic when nothing matches. Generic routes to the best-effort
// pattern-scan parser, so callers should treat its output as
// lower-confidence.
func (d *Detector) Detect(content, filename string) domain.Variant {
	foldedContent := Fold(content)
	foldedName := Fold(filename)

	for _, set := range d.sets {
		for _, fp := range set.Fingerprints {
			if strings.Contains(foldedContent, fp) || strings.Contains(foldedName, fp) {
				return set.Variant
			}
		}
	}
	return domain.VariantGeneric
}

// Variants returns the fingerprint-detected variants in priority order
func (d *Detector) Variants() []domain.Variant {
	out := make([]domain.Variant, len(d.sets))
	for i, set := range d.sets {
		out[i] = set.Variant
	}
	return out
}

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and strips combining marks so that "Itaú" and "itau"
// compare equal.
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		// Undecodable bytes fall back to plain lowercasing.
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
