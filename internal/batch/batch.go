package batch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/pwcheck/internal/model"
)

// DefaultConcurrency is the number of evaluations run at once when
// WithConcurrency is not given.
const DefaultConcurrency = 8

// PasswordEvaluator evaluates a single password. *strength.Engine satisfies it.
type PasswordEvaluator interface {
	Evaluate(password string) *model.EvaluationResult
}

// Evaluator evaluates password lists with bounded concurrency.
type Evaluator struct {
	engine PasswordEvaluator

	// concurrency is the maximum number of concurrent evaluations.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithConcurrency sets the maximum number of concurrent evaluations.
// Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for batch processing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEvaluator creates an Evaluator that delegates to engine.
func NewEvaluator(engine PasswordEvaluator, opts ...Option) *Evaluator {
	e := &Evaluator{
		engine:      engine,
		concurrency: DefaultConcurrency,
		logger:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Concurrency returns the configured concurrency limit.
func (e *Evaluator) Concurrency() int {
	return e.concurrency
}

// Evaluate evaluates every password and returns the results in input order.
//
// If ctx is cancelled the error is returned together with a slice holding
// nil for every password that was not evaluated.
func (e *Evaluator) Evaluate(ctx context.Context, passwords []string) ([]*model.EvaluationResult, error) {
	// Each goroutine writes only its own index, so no lock is needed.
	results := make([]*model.EvaluationResult, len(passwords))

	err := e.EvaluateWithCallback(ctx, passwords, func(result *model.EvaluationResult, index int) {
		results[index] = result
	})

	return results, err
}

// EvaluateWithCallback evaluates every password and calls callback for each
// result with the index of the password in the input. The callback is called
// from worker goroutines in completion order, so it must be safe for
// concurrent use.
func (e *Evaluator) EvaluateWithCallback(
	ctx context.Context,
	passwords []string,
	callback func(result *model.EvaluationResult, index int),
) error {
	e.logger.Debug("starting batch evaluation",
		"total", len(passwords),
		"concurrency", e.concurrency,
	)

	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, password := range passwords {
		// Stop queueing once cancelled; Go blocks while the limit is reached.
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			callback(e.engine.Evaluate(password), i)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		// gctx is always done after Wait, so check the parent instead.
		err = ctx.Err()
	}

	e.logger.Debug("batch evaluation complete",
		"total", len(passwords),
		"elapsed", time.Since(startTime),
	)

	return err
}
