// Package fallback tries an ordered list of interchangeable providers and
// returns the first successful answer.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

// Source is one provider able to answer a single data need.
type Source[T any] interface {
	Name() string
	Fetch(ctx context.Context) (T, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] struct {
	Label string
	Fn    func(ctx context.Context) (T, error)
}

func (s SourceFunc[T]) Name() string { return s.Label }

func (s SourceFunc[T]) Fetch(ctx context.Context) (T, error) { return s.Fn(ctx) }

// Observer is notified about every attempt; used for metrics.
type Observer interface {
	ObserveAttempt(chain, source string, kind Kind, elapsed time.Duration)
}

// Result is the value returned by the first source that succeeded
type Result[T any] struct {
	Value  T
	Source string
}

// Chain is an ordered fallback chain for one data need.
type Chain[T any] struct {
	name     string
	sources  []Source[T]
	validate func(T) error
	observer Observer
}

// NewChain creates a chain. validate may be nil.
func NewChain[T any](name string, sources []Source[T], validate func(T) error) *Chain[T] {
	return &Chain[T]{name: name, sources: sources, validate: validate}
}

// WithObserver attaches an attempt observer.
func (c *Chain[T]) WithObserver(o Observer) *Chain[T] {
	c.observer = o
	return c
}

// Name returns the chain label.
func (c *Chain[T]) Name() string { return c.name }

// Sources returns the provider names in trial order.
func (c *Chain[T]) Sources() []string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name()
	}
	return names
}

// Fetch tries every source strictly in order and returns the first success.
// Sources after the winner are never called.
func (c *Chain[T]) Fetch(ctx context.Context) (Result[T], error) {
	logger := log.With().Str("component", "fallback").Str("chain", c.name).Logger()

	var failures []*SourceError
	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			failures = append(failures, &SourceError{Source: src.Name(), Kind: KindUnavailable, Err: err})
			continue
		}

		start := time.Now()
		value, err := src.Fetch(ctx)
		if err == nil && c.validate != nil {
			if vErr := c.validate(value); vErr != nil {
				err = &SourceError{Source: src.Name(), Kind: KindMalformed, Err: vErr}
			}
		}
		elapsed := time.Since(start)

		if err == nil {
			c.observe(src.Name(), KindOK, elapsed)
			logger.Debug().Str("source", src.Name()).Dur("elapsed", elapsed).Msg("source succeeded")
			return Result[T]{Value: value, Source: src.Name()}, nil
		}

		srcErr := classify(src.Name(), err)
		c.observe(src.Name(), srcErr.Kind, elapsed)
		logger.Warn().Err(srcErr.Err).Str("source", src.Name()).Str("kind", string(srcErr.Kind)).Msg("source failed, trying next")
		failures = append(failures, srcErr)
	}

	exhausted := &ExhaustedError{Chain: c.name, Failures: failures}
	logger.Error().Err(exhausted).Msg("all sources failed")
	var zero Result[T]
	return zero, exhausted
}

func (c *Chain[T]) observe(source string, kind Kind, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveAttempt(c.name, source, kind, elapsed)
	}
}

// FirstSuccess is a one-shot helper over NewChain(...).Fetch.
func FirstSuccess[T any](ctx context.Context, name string, sources []Source[T], validate func(T) error) (Result[T], error) {
	return NewChain(name, sources, validate).Fetch(ctx)
}

// ValidatePositivePrice rejects zero, negative and NaN prices.
func ValidatePositivePrice(price float64) error {
	if !(price > 0) {
		return fmt.Errorf("non-positive price %v", price)
	}
	return nil
}

// Kind classifies a single source failure
type Kind string

const (
	KindOK          Kind = "ok"
	KindUnavailable Kind = "unavailable"
	KindMalformed   Kind = "malformed"
)

// ErrAllSourcesExhausted is matched by errors.Is for every ExhaustedError.
var ErrAllSourcesExhausted = errors.New("all sources exhausted")

// SourceError is a single provider failure. It is recovered locally.
type SourceError struct {
	Source string
	Kind   Kind
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ExhaustedError aggregates the failures of every source in a chain.
type ExhaustedError struct {
	Chain    string
	Failures []*SourceError
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("%s: %s: [%s]", e.Chain, ErrAllSourcesExhausted, strings.Join(parts, "; "))
}

func (e *ExhaustedError) Is(target error) bool { return target == ErrAllSourcesExhausted }

func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// ErrMalformed can be wrapped by adapters to flag a payload they could not use.
var ErrMalformed = errors.New("malformed response")

func classify(source string, err error) *SourceError {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr
	}

	kind := KindUnavailable
	var decodeErr *httpClient.DecodeError
	if errors.As(err, &decodeErr) || errors.Is(err, ErrMalformed) {
		kind = KindMalformed
	}
	return &SourceError{Source: source, Kind: kind, Err: err}
}
