package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Calendar CalendarConfig `yaml:"calendar"`
	Lunar    LunarConfig    `yaml:"lunar"`
	Cache    CacheConfig    `yaml:"cache"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type CalendarConfig struct {
	BoundaryFile string `yaml:"boundary_file" validate:"required"`
}

type LunarConfig struct {
	Mode          string        `yaml:"mode" validate:"oneof=remote offline"`
	BaseURL       string        `yaml:"base_url" validate:"omitempty,url"`
	APIKey        string        `yaml:"api_key"`
	TimeoutMS     int           `yaml:"timeout_ms" validate:"gte=0"`
	RatePerSecond float64       `yaml:"rate_per_second" validate:"gte=0"`
	Retry         RetryConfig   `yaml:"retry"`
	Breaker       BreakerConfig `yaml:"breaker"`
}

type RetryConfig struct {
	MaxAttempts   int     `yaml:"max_attempts"`
	BackoffMS     int     `yaml:"backoff_ms"`
	Multiplier    float64 `yaml:"multiplier"`
	JitterMS      int     `yaml:"jitter_ms"`
	RetryOnStatus []int   `yaml:"retry_on_status"`
}

type BreakerConfig struct {
	FailureThreshold uint32 `yaml:"failure_threshold"`
	OpenSeconds      int    `yaml:"open_seconds"`
}

type CacheConfig struct {
	Backend    string      `yaml:"backend" validate:"oneof=file redis sqlite"`
	Dir        string      `yaml:"dir"`
	SQLitePath string      `yaml:"sqlite_path"`
	Redis      RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type ScoringConfig struct {
	ModelFile string `yaml:"model_file"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default is used when no config file exists.
func Default() Config {
	return Config{
		Calendar: CalendarConfig{BoundaryFile: "data/boundaries.csv"},
		Lunar: LunarConfig{
			Mode:          "remote",
			BaseURL:       "http://apis.data.go.kr/B090041/openapi/service/LrsrCldInfoService/getLunCalInfo",
			APIKey:        os.Getenv("LUNAR_API_KEY"),
			TimeoutMS:     5000,
			RatePerSecond: 5,
			Retry:         RetryConfig{MaxAttempts: 1, BackoffMS: 200, Multiplier: 2, JitterMS: 50},
			Breaker:       BreakerConfig{FailureThreshold: 5, OpenSeconds: 30},
		},
		Cache: CacheConfig{
			Backend:    "file",
			Dir:        ".cache/pillars",
			SQLitePath: ".cache/saju.db",
			Redis:      RedisConfig{Addr: "localhost:6379", KeyPrefix: "saju:"},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path on top of Default. ${VAR} references are expanded from the
// environment before parsing.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	expanded := os.ExpandEnv(string(raw))
	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when path does
// not exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return Load(path)
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Lunar.Mode == "remote" {
		if strings.TrimSpace(c.Lunar.BaseURL) == "" {
			return errors.New("lunar.base_url required for remote mode")
		}
		if c.Lunar.Retry.MaxAttempts <= 0 {
			return errors.New("lunar.retry.max_attempts must be > 0")
		}
	}
	switch c.Cache.Backend {
	case "file":
		if strings.TrimSpace(c.Cache.Dir) == "" {
			return errors.New("cache.dir required for file backend")
		}
	case "sqlite":
		if strings.TrimSpace(c.Cache.SQLitePath) == "" {
			return errors.New("cache.sqlite_path required for sqlite backend")
		}
	case "redis":
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			return errors.New("cache.redis.addr required for redis backend")
		}
	}
	return nil
}
