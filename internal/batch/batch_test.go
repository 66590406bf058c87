package batch

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/pwcheck/internal/corpus"
	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/strength"
)

// countingEngine records the peak number of concurrent evaluations.
type countingEngine struct {
	inner   PasswordEvaluator
	active  atomic.Int32
	peak    atomic.Int32
	delay   time.Duration
	evalled atomic.Int32
}

func (c *countingEngine) Evaluate(password string) *model.EvaluationResult {
	n := c.active.Add(1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(c.delay)
	c.active.Add(-1)
	c.evalled.Add(1)
	return c.inner.Evaluate(password)
}

func TestNewEvaluator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want int
	}{
		{name: "default", want: DefaultConcurrency},
		{name: "custom", opts: []Option{WithConcurrency(3)}, want: 3},
		{name: "non-positive ignored", opts: []Option{WithConcurrency(0), WithConcurrency(-2)}, want: DefaultConcurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewEvaluator(strength.NewEngine(nil), tt.opts...)
			if e.Concurrency() != tt.want {
				t.Errorf("expected concurrency %d, got %d", tt.want, e.Concurrency())
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("preserves input order", func(t *testing.T) {
		t.Parallel()

		engine := strength.NewEngine(corpus.NewIndex("123456"))
		passwords := make([]string, 100)
		for i := range passwords {
			passwords[i] = "pw" + strconv.Itoa(i)
		}
		passwords[42] = "123456"

		results, err := NewEvaluator(engine, WithConcurrency(4)).Evaluate(context.Background(), passwords)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(passwords) {
			t.Fatalf("expected %d results, got %d", len(passwords), len(results))
		}
		for i, r := range results {
			if r == nil || r.Password != passwords[i] {
				t.Fatalf("result %d out of order: %+v", i, r)
			}
		}
		if !results[42].InCorpus || results[42].Classification != model.VeryWeak {
			t.Errorf("expected corpus hit at index 42, got %+v", results[42])
		}
	})

	t.Run("matches sequential evaluation", func(t *testing.T) {
		t.Parallel()

		engine := strength.NewEngine(corpus.NewIndex("password"))
		passwords := []string{"", "password", "abcdefgh", "Tr0ub4dor&3xyz", "aA1!"}

		results, err := NewEvaluator(engine).Evaluate(context.Background(), passwords)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, pw := range passwords {
			want := engine.Evaluate(pw)
			got := results[i]
			if got.Classification != want.Classification || got.Score != want.Score ||
				got.CrackTime.Formatted != want.CrackTime.Formatted {
				t.Errorf("%q: got %+v, want %+v", pw, got, want)
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		engine := &countingEngine{inner: strength.NewEngine(nil), delay: 5 * time.Millisecond}
		passwords := make([]string, 20)

		if _, err := NewEvaluator(engine, WithConcurrency(2)).Evaluate(context.Background(), passwords); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak := engine.peak.Load(); peak > 2 {
			t.Errorf("expected at most 2 concurrent evaluations, got %d", peak)
		}
		if n := engine.evalled.Load(); n != 20 {
			t.Errorf("expected 20 evaluations, got %d", n)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		results, err := NewEvaluator(strength.NewEngine(nil)).Evaluate(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := NewEvaluator(strength.NewEngine(nil)).Evaluate(ctx, []string{"a", "b", "c"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(results) != 3 {
			t.Errorf("expected result slice of input length, got %d", len(results))
		}
	})
}

func TestEvaluateWithCallback(t *testing.T) {
	t.Parallel()

	passwords := []string{"one", "two", "three"}
	seen := make(map[int]string)
	var mu sync.Mutex

	err := NewEvaluator(strength.NewEngine(nil)).EvaluateWithCallback(context.Background(), passwords,
		func(result *model.EvaluationResult, index int) {
			mu.Lock()
			defer mu.Unlock()
			seen[index] = result.Password
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, pw := range passwords {
		if seen[i] != pw {
			t.Errorf("index %d: expected %q, got %q", i, pw, seen[i])
		}
	}
}
