package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/spigell/hire-matcher/internal/store"
)

func TestConfigDefaultsAndOverrides(t *testing.T) {
	t.Setenv("HIRE_MATCHER_MATCHING_WORKERS", "8")
	t.Setenv("HIRE_MATCHER_AI_TIMEOUT", "3s")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader("store:\n  driver: mongo\nredis:\n  ttl: 1h\n")); err != nil {
		t.Fatalf("read config: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if cfg.Store.Driver != store.DriverMongo {
		t.Fatalf("expected file value for store.driver, got %q", cfg.Store.Driver)
	}
	if cfg.Matching.Workers != 8 {
		t.Fatalf("expected env override for workers, got %d", cfg.Matching.Workers)
	}
	if cfg.AI.Timeout != 3*time.Second || cfg.Redis.TTL != time.Hour {
		t.Fatalf("unexpected durations: ai=%s redis=%s", cfg.AI.Timeout, cfg.Redis.TTL)
	}
	if cfg.Server.Listen != ":8080" || cfg.Matching.CandidatePoolLimit != 1000 || cfg.AI.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("expected defaults to apply: %+v", cfg)
	}
}
