package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/hire-matcher/internal/matching"
	"github.com/spigell/hire-matcher/internal/server"
	"github.com/spigell/hire-matcher/internal/store"
)

const (
	app       = "hire-matcher"
	envPrefix = "HIRE_MATCHER"
)

type Config struct {
	Server   server.Config   `mapstructure:"server"`
	Store    StoreConfig     `mapstructure:"store"`
	Mongo    MongoConfig     `mapstructure:"mongo"`
	Redis    RedisConfig     `mapstructure:"redis"`
	AI       AIConfig        `mapstructure:"ai"`
	Matching matching.Config `mapstructure:"matching"`
}

type StoreConfig struct {
	Driver   string `mapstructure:"driver"`
	SeedFile string `mapstructure:"seed-file"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Gemini   GeminiConfig  `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hire-matcher scores job seekers against startup jobs in both directions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hire-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

// setDefaults registers every key so environment overrides apply without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.read-timeout", 15*time.Second)
	v.SetDefault("server.write-timeout", 15*time.Second)

	v.SetDefault("store.driver", store.DriverMemory)
	v.SetDefault("store.seed-file", "")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "hire_matcher")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.ttl", 6*time.Hour)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.timeout", 10*time.Second)
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.max-log-length", 500)

	v.SetDefault("matching.workers", 4)
	v.SetDefault("matching.jobs-limit", 50)
	v.SetDefault("matching.candidate-pool-limit", 1000)
	v.SetDefault("matching.exclude-candidates", []string{})
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without a config file the defaults and environment still apply.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Matching.NarrativeTimeout = config.AI.Timeout
	return &config, nil
}
