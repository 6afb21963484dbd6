package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/ai"
	"github.com/spigell/hire-matcher/internal/ai/cache"
	"github.com/spigell/hire-matcher/internal/ai/gemini"
	"github.com/spigell/hire-matcher/internal/logger"
	"github.com/spigell/hire-matcher/internal/matching"
	"github.com/spigell/hire-matcher/internal/secrets"
	"github.com/spigell/hire-matcher/internal/store"
	"github.com/spigell/hire-matcher/internal/store/memory"
	"github.com/spigell/hire-matcher/internal/store/mongo"
)

// closer releases whatever a builder opened.
type closer func(context.Context) error

func noopCloser(context.Context) error { return nil }

func openStore(ctx context.Context, cfg *Config, log *zap.Logger) (matching.Store, closer, error) {
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Store.Driver)); driver {
	case store.DriverMemory, "":
		if cfg.Store.SeedFile == "" {
			log.Warn("memory store without seed file, starting empty")
			return memory.New(), noopCloser, nil
		}

		st, err := memory.Load(cfg.Store.SeedFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading seed file: %w", err)
		}
		log.Info("memory store seeded", zap.String("seed_file", cfg.Store.SeedFile))
		return st, noopCloser, nil

	case store.DriverMongo:
		st, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger.Named(log, "mongo"))
		if err != nil {
			return nil, nil, err
		}
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = st.Close(ctx)
			return nil, nil, err
		}
		return st, st.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// newNarrator builds the configured narrator. A disabled AI section yields ai.Disabled.
func newNarrator(ctx context.Context, cfg *Config, log *zap.Logger) (ai.Narrator, closer, error) {
	if !cfg.AI.Enabled {
		log.Info("ai narration disabled")
		return ai.Disabled{}, noopCloser, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", cfg.AI.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.AI.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w (or set ai.gemini.api-key-file)", err)
	}

	genLogger := logger.Named(log, "gemini").With(zap.Int("ai_retry_attempts", cfg.AI.Gemini.MaxRetries))
	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.AI.Gemini.Model, cfg.AI.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, nil, err
	}

	var narrator ai.Narrator = gemini.NewNarrator(generator, cfg.AI.Gemini.MaxLogLength, logger.Named(log, "narrator"))

	if !cfg.Redis.Enabled {
		return narrator, noopCloser, nil
	}

	client, err := cache.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting narrative cache: %w", err)
	}
	log.Info("narrative cache enabled", zap.Duration("ttl", cfg.Redis.TTL))

	cached := cache.New(narrator, client, cfg.Redis.TTL, logger.Named(log, "cache"))
	return cached, func(context.Context) error { return client.Close() }, nil
}

// newService opens the store and narrator and returns the service with a combined closer.
func newService(ctx context.Context, cfg *Config, log *zap.Logger, metrics *matching.Metrics) (*matching.Service, closer, error) {
	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	narrator, closeNarrator, err := newNarrator(ctx, cfg, log)
	if err != nil {
		_ = closeStore(ctx)
		return nil, nil, err
	}

	svc := matching.New(st, narrator, cfg.Matching, logger.Named(log, "matching"), metrics)

	return svc, func(ctx context.Context) error {
		narrErr := closeNarrator(ctx)
		if err := closeStore(ctx); err != nil {
			return err
		}
		return narrErr
	}, nil
}
