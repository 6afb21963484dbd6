package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/ai"
)

const (
	keyPrefix   = "hire-matcher:narrative"
	defaultTTL  = 6 * time.Hour
	pingTimeout = 5 * time.Second
)

type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Connect parses a redis:// URL and verifies the server is reachable.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return client, nil
}

// Narrator remembers narratives of an underlying narrator in Redis.
// Cache failures are logged and never fail a call.
type Narrator struct {
	next   ai.Narrator
	client store
	ttl    time.Duration
	logger *zap.Logger
}

func New(next ai.Narrator, client store, ttl time.Duration, logger *zap.Logger) *Narrator {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Narrator{next: next, client: client, ttl: ttl, logger: logger}
}

func (n *Narrator) Narrate(ctx context.Context, req ai.InsightRequest) (string, error) {
	key, err := buildKey(req)
	if err != nil {
		n.logger.Warn("narrative cache key failed", zap.Error(err))
		return n.next.Narrate(ctx, req)
	}

	cached, err := n.client.Get(ctx, key).Result()
	switch {
	case err == nil && cached != "":
		n.logger.Debug("narrative cache hit", zap.String("key", key))
		return cached, nil
	case err != nil && !errors.Is(err, redis.Nil):
		n.logger.Warn("narrative cache read failed", zap.String("key", key), zap.Error(err))
	}

	text, err := n.next.Narrate(ctx, req)
	if err != nil {
		return "", err
	}

	if err := n.client.Set(ctx, key, text, n.ttl).Err(); err != nil {
		n.logger.Warn("narrative cache write failed", zap.String("key", key), zap.Error(err))
	}

	return text, nil
}

func buildKey(req ai.InsightRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal insight request: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s:%x", keyPrefix, req.Audience, hash[:12]), nil
}
