package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/hire-matcher/internal/ai"
	"github.com/spigell/hire-matcher/internal/store"
)

const (
	defaultWorkers            = 4
	defaultJobsLimit          = 50
	defaultCandidatePoolLimit = 1000
	defaultNarrativeTimeout   = 10 * time.Second
)

// Config tunes the service. Zero values fall back to defaults.
type Config struct {
	Workers            int           `mapstructure:"workers"`
	JobsLimit          int           `mapstructure:"jobs-limit"`
	CandidatePoolLimit int           `mapstructure:"candidate-pool-limit"`
	ExcludeCandidates  []string      `mapstructure:"exclude-candidates"`
	NarrativeTimeout   time.Duration `mapstructure:"-"`
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.JobsLimit <= 0 {
		c.JobsLimit = defaultJobsLimit
	}
	if c.CandidatePoolLimit <= 0 {
		c.CandidatePoolLimit = defaultCandidatePoolLimit
	}
	if c.NarrativeTimeout <= 0 {
		c.NarrativeTimeout = defaultNarrativeTimeout
	}
	return c
}

// Service answers match queries on top of a Store.
type Service struct {
	store    Store
	narrator ai.Narrator
	cfg      Config
	logger   *zap.Logger
	metrics  *Metrics
	now      func() time.Time
}

// New builds a service. A nil narrator disables narratives and a nil metrics
// value uses unregistered collectors.
func New(st Store, narrator ai.Narrator, cfg Config, logger *zap.Logger, metrics *Metrics) *Service {
	if narrator == nil {
		narrator = ai.Disabled{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &Service{
		store:    st,
		narrator: narrator,
		cfg:      cfg.withDefaults(),
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// narrate produces the recommendation narrative. It never fails; the outcome
// is reduced to a fallback string.
func (s *Service) narrate(ctx context.Context, req ai.InsightRequest) string {
	text, err := s.generate(ctx, req)
	switch {
	case errors.Is(err, ai.ErrDisabled):
		s.metrics.narratives.WithLabelValues(outcomeDisabled).Inc()
	case err != nil || strings.TrimSpace(text) == "":
		s.metrics.narratives.WithLabelValues(outcomeFallback).Inc()
		s.logger.Warn("narrative unavailable, using fallback",
			zap.String("audience", string(req.Audience)),
			zap.Error(err),
		)
	default:
		s.metrics.narratives.WithLabelValues(outcomeOK).Inc()
	}

	return ai.Fallback(text, err)
}

type narration struct {
	text string
	err  error
}

// generate calls the narrator bounded by the narrative timeout. The call runs
// on its own goroutine so a narrator that ignores ctx cannot stall the caller.
func (s *Service) generate(ctx context.Context, req ai.InsightRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.NarrativeTimeout)
	defer cancel()

	done := make(chan narration, 1)
	go func() {
		text, err := s.narrator.Narrate(ctx, req)
		done <- narration{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// scoreAll scores items on at most workers goroutines. Results keep the input order.
func scoreAll[In, Out any](ctx context.Context, workers int, items []In, score func(In) Out) ([]Out, error) {
	out := make([]Out, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = score(item)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}

	return out, nil
}

func (s *Service) observe(pipeline string, started time.Time, items int) {
	s.metrics.scoringDuration.WithLabelValues(pipeline).Observe(time.Since(started).Seconds())
	s.metrics.scoredItems.WithLabelValues(pipeline).Add(float64(items))
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, store.ErrNotFound) {
		return sentinel
	}
	return err
}
