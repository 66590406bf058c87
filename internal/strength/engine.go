package strength

import (
	"log/slog"

	"github.com/nao1215/pwcheck/internal/model"
)

// Membership answers whether a password is a known breached password.
// *corpus.Index satisfies it.
type Membership interface {
	Contains(password string) bool
}

// Engine evaluates passwords against one corpus.
// An Engine holds no mutable state and may be shared between goroutines.
type Engine struct {
	corpus Membership
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger that receives one debug record per evaluation.
// Records carry the password length and the classification, never the
// password itself.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an Engine backed by corpus. A nil corpus behaves as an
// empty one.
func NewEngine(corpus Membership, opts ...EngineOption) *Engine {
	e := &Engine{
		corpus: corpus,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the full evaluation of password.
func (e *Engine) Evaluate(password string) *model.EvaluationResult {
	inCorpus := e.corpus != nil && e.corpus.Contains(password)

	comp := Analyze(password)
	scored := scoreComposition(comp)

	result := &model.EvaluationResult{
		Password:       password,
		InCorpus:       inCorpus,
		Classification: Classify(scored.Score, inCorpus),
		Score:          scored.Score,
		Reasons:        scored.Reasons,
		CrackTime:      estimateComposition(comp),
	}

	e.logger.Debug("password evaluated",
		"length", comp.Length,
		"inCorpus", inCorpus,
		"score", scored.Score,
		"classification", result.Classification.String(),
	)

	return result
}

// Evaluate evaluates password against corpus without building an Engine.
func Evaluate(password string, corpus Membership) *model.EvaluationResult {
	return NewEngine(corpus).Evaluate(password)
}
