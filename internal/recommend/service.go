package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Meet-08/SIH2025-Prototype/internal/logging"
	"github.com/Meet-08/SIH2025-Prototype/internal/metrics"
)

// Explainer produces a natural-language explanation for a rendered prompt.
type Explainer interface {
	Explain(ctx context.Context, prompt string) (string, error)
}

// ExplainerFunc adapts a plain function to Explainer.
type ExplainerFunc func(ctx context.Context, prompt string) (string, error)

// Explain calls f.
func (f ExplainerFunc) Explain(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Result is a scored recommendation with its explanation.
type Result struct {
	Stream      Stream         `json:"recommended_stream"`
	Explanation string         `json:"ai_reasoning"`
	Scores      map[Stream]int `json:"-"`
}

// BreakerConfig controls the circuit breaker around the explainer.
type BreakerConfig struct {
	Name             string        `koanf:"name"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// DefaultBreakerConfig trips after five consecutive failures and probes
// again after thirty seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "explainer",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Option configures a Service.
type Option func(*Service)

// WithBreakerConfig replaces the default breaker configuration.
func WithBreakerConfig(cfg BreakerConfig) Option {
	return func(s *Service) {
		s.breakerCfg = cfg
	}
}

// Service scores answer sets and asks an Explainer to justify the result.
type Service struct {
	explainer  Explainer
	breakerCfg BreakerConfig
	breaker    *gobreaker.CircuitBreaker[string]
}

// NewService creates a Service around explainer.
func NewService(explainer Explainer, opts ...Option) *Service {
	s := &Service{
		explainer:  explainer,
		breakerCfg: DefaultBreakerConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cfg := s.breakerCfg
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 1
	}
	s.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(int(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("explainer circuit breaker state changed")
		},
		// A caller that went away says nothing about the explainer's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return s
}

// BreakerState reports the current breaker state.
func (s *Service) BreakerState() gobreaker.State {
	return s.breaker.State()
}

// Recommend scores answers, then requests an explanation for the winning
// stream. Scoring never fails; any error comes from the explainer and is an
// *ExplanationError.
func (s *Service) Recommend(ctx context.Context, answers AnswerSet) (*Result, error) {
	tally := Score(answers)
	stream := tally.Winner()
	metrics.RecordRecommendation(string(stream))

	prompt := BuildExplanationPrompt(answers, stream)

	start := time.Now()
	text, err := s.breaker.Execute(func() (string, error) {
		out, err := s.explainer.Explain(ctx, prompt)
		if err != nil {
			return "", err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return "", ErrEmptyExplanation
		}
		return out, nil
	})
	elapsed := time.Since(start)

	if err != nil {
		reason := "error"
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			reason = "breaker_open"
			err = ErrExplainerUnavailable
		case errors.Is(err, ErrEmptyExplanation):
			reason = "empty"
		}
		metrics.RecordExplanation(elapsed, reason)
		logging.Ctx(ctx).Error().
			Err(err).
			Str("stream", string(stream)).
			Dur("elapsed", elapsed).
			Msg("explanation generation failed")
		return nil, &ExplanationError{Stream: stream, Err: err}
	}

	metrics.RecordExplanation(elapsed, "")
	logging.Ctx(ctx).Info().
		Str("stream", string(stream)).
		Int("answers", len(answers)).
		Dur("elapsed", elapsed).
		Msg("recommendation generated")

	return &Result{
		Stream:      stream,
		Explanation: text,
		Scores:      tally.Scores(),
	}, nil
}
