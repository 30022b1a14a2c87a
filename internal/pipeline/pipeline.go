// Package pipeline orchestrates a statement parse end to end: decode the
// upload into lines, detect the institution, dispatch the line parser,
// normalize the candidates and aggregate the totals.
package pipeline

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rumor-ml/bankparse/internal/bank"
	"github.com/rumor-ml/bankparse/internal/domain"
	"github.com/rumor-ml/bankparse/internal/logger"
	"github.com/rumor-ml/bankparse/internal/normalize"
	"github.com/rumor-ml/bankparse/internal/parser"
	"github.com/rumor-ml/bankparse/internal/parsers/ofx"
	"github.com/rumor-ml/bankparse/internal/reader"
	"github.com/rumor-ml/bankparse/internal/registry"
	"github.com/rumor-ml/bankparse/internal/summary"
)

// stage names the pipeline phases, in order. Used for diagnostics only.
type stage string

const (
	stageReading     stage = "reading"
	stageDetecting   stage = "detecting"
	stageParsing     stage = "parsing"
	stageNormalizing stage = "normalizing"
	stageAggregating stage = "aggregating"
)

// Pipeline wires the parse collaborators together. Construct once, reuse
// across files; all state is per-call.
type Pipeline struct {
	reader   *reader.Reader
	detector *bank.Detector
	registry *registry.Registry
}

// Option overrides a default collaborator
type Option func(*Pipeline)

// WithReader replaces the upload decoder
func WithReader(r *reader.Reader) Option {
	return func(p *Pipeline) { p.reader = r }
}

// WithDetector replaces the institution detector
func WithDetector(d *bank.Detector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithRegistry replaces the parser registry
func WithRegistry(r *registry.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// New creates a pipeline with the built-in collaborators
func New(opts ...Option) (*Pipeline, error) {
	detector, err := bank.NewDetector()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		reader:   reader.New(reader.NewPDFExtractor(), reader.NewExcelReader()),
		detector: detector,
		registry: registry.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ParseStatement parses one uploaded statement file. Malformed input never
// returns an error: fatal problems come back as a failed ParseResult and
// line-scoped problems as recorded errors on a successful one. The error
// return is reserved for context cancellation.
func (p *Pipeline) ParseStatement(ctx context.Context, data []byte, filename string) (*domain.ParseResult, error) {
	log := logger.FromContext(ctx).With().
		Str("run_id", uuid.NewString()).
		Str("filename", filename).
		Logger()
	log.Debug().Int("bytes", len(data)).Msg("parse started")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// OFX is selected by format, not fingerprint, and skips the line stages.
	if ofx.CanParse(filename, data) {
		return p.parseOFX(ctx, log, data)
	}

	log.Debug().Str("stage", string(stageReading)).Msg("decoding upload")
	lines, err := p.reader.Lines(data, filename)
	if err != nil {
		log.Warn().Err(err).Msg("unreadable upload")
		return domain.NewFailedResult(domain.VariantGeneric, err), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug().Str("stage", string(stageDetecting)).Msg("detecting institution")
	variant := p.detector.Detect(strings.Join(lines, "\n"), filename)
	log.Debug().Str("bank", string(variant)).Msg("institution detected")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug().Str("stage", string(stageParsing)).Msg("extracting candidates")
	raws, lineErrs := p.registry.ForVariant(variant).ParseLines(lines)

	return p.finishParse(ctx, log, variant, raws, lineErrs, len(strings.TrimSpace(string(data))) > 0)
}

func (p *Pipeline) parseOFX(ctx context.Context, log zerolog.Logger, data []byte) (*domain.ParseResult, error) {
	log.Debug().Str("stage", string(stageParsing)).Msg("parsing OFX document")
	raws, lineErrs, err := ofx.Parse(ctx, data)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn().Err(err).Msg("malformed OFX document")
		return domain.NewFailedResult(domain.VariantOFX, err), nil
	}
	return p.finishParse(ctx, log, domain.VariantOFX, raws, lineErrs, len(strings.TrimSpace(string(data))) > 0)
}

// finishParse runs the normalization and aggregation stages shared by the
// line-oriented and OFX paths.
func (p *Pipeline) finishParse(ctx context.Context, log zerolog.Logger, variant domain.Variant, raws []parser.RawTransaction, lineErrs []parser.LineError, nonEmpty bool) (*domain.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug().Str("stage", string(stageNormalizing)).Int("candidates", len(raws)).Msg("normalizing candidates")

	txns := make([]domain.Transaction, 0, len(raws))
	errs := make([]string, 0, len(lineErrs))
	for _, le := range lineErrs {
		errs = append(errs, le.Error())
	}

	for i := range raws {
		txn, lineErr := normalizeCandidate(&raws[i])
		if lineErr != nil {
			errs = append(errs, lineErr.Error())
			continue
		}
		txns = append(txns, *txn)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug().Str("stage", string(stageAggregating)).Int("transactions", len(txns)).Msg("aggregating totals")

	result := &domain.ParseResult{
		Success:      true,
		Variant:      variant,
		Transactions: txns,
		Errors:       errs,
		Warnings:     []string{},
		Summary:      summary.Compute(txns),
	}
	if len(txns) == 0 && nonEmpty {
		result.Warnings = append(result.Warnings, "no transactions recognized in non-empty file")
	}

	log.Debug().
		Int("transactions", len(txns)).
		Int("errors", len(errs)).
		Msg("parse finished")
	return result, nil
}

// normalizeCandidate turns one raw candidate into a transaction, or a
// line-scoped error that drops the candidate without failing the parse.
func normalizeCandidate(raw *parser.RawTransaction) (*domain.Transaction, *parser.LineError) {
	amount, sign, err := normalize.Amount(raw.AmountToken())
	if err != nil {
		return nil, &parser.LineError{Line: raw.SourceLine(), Reason: err.Error()}
	}
	if amount.IsZero() {
		return nil, &parser.LineError{Line: raw.SourceLine(), Reason: "amount is zero"}
	}

	date, err := normalize.Date(raw.DateToken())
	if err != nil {
		return nil, &parser.LineError{Line: raw.SourceLine(), Reason: err.Error()}
	}

	txn, err := domain.NewTransaction(date, normalize.Description(raw.DescriptionToken()), amount, classify(raw.Hint(), sign))
	if err != nil {
		return nil, &parser.LineError{Line: raw.SourceLine(), Reason: err.Error()}
	}

	if category := strings.TrimSpace(raw.CategoryToken()); category != "" {
		txn.SetCategoryHint(category)
	}
	if raw.BalanceToken() != "" {
		// Balance is optional enrichment; an unparseable token is dropped,
		// not an error.
		if balance, balSign, err := normalize.Amount(raw.BalanceToken()); err == nil {
			if balSign == normalize.SignNegative {
				balance = balance.Neg()
			}
			txn.SetBalanceAfter(balance)
		}
	}

	return txn, nil
}

// classify decides income vs expense. A structural debit/credit column beats
// the sign embedded in the amount token; without a column, a negative sign
// means expense and everything else income.
func classify(hint parser.DebitHint, sign normalize.Sign) domain.Kind {
	switch hint {
	case parser.HintDebit:
		return domain.KindExpense
	case parser.HintCredit:
		return domain.KindIncome
	}
	if sign == normalize.SignNegative {
		return domain.KindExpense
	}
	return domain.KindIncome
}
