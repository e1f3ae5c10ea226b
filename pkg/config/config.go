package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Market struct {
		BaseURL        string              `yaml:"base_url"`
		Lookback       time.Duration       `yaml:"lookback"`
		Timeout        time.Duration       `yaml:"timeout"`
		TrackedSymbols []string            `yaml:"tracked_symbols"`
		Categories     map[string][]string `yaml:"categories"`
		OverviewWorkers int                `yaml:"overview_workers"`
	} `yaml:"market"`
	News struct {
		APIKey   string        `yaml:"api_key"`
		BaseURL  string        `yaml:"base_url"`
		Language string        `yaml:"language"`
		MaxItems int           `yaml:"max_items"`
		Window   time.Duration `yaml:"window"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"news"`
	Forecast struct {
		P int `yaml:"p"`
		// D is a pointer so an explicit 0 (no differencing) survives
		// defaulting.
		D                *int          `yaml:"d"`
		Q                int           `yaml:"q"`
		Horizon          int           `yaml:"horizon"`
		SentimentTimeout time.Duration `yaml:"sentiment_timeout"`
	} `yaml:"forecast"`
	Cache struct {
		PredictionTTL time.Duration `yaml:"prediction_ttl"`
		QuoteTTL      time.Duration `yaml:"quote_ttl"`
		NewsTTL       time.Duration `yaml:"news_ttl"`
		OverviewTTL   time.Duration `yaml:"overview_ttl"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		Linger       time.Duration `yaml:"linger"`
		BatchSize    int           `yaml:"batch_size"`
		BatchBytes   int           `yaml:"batch_bytes"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	Realtime struct {
		UpdateInterval time.Duration `yaml:"update_interval"`
		MaxSymbols     int           `yaml:"max_symbols"`
	} `yaml:"realtime"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.News.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Market.TrackedSymbols = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Enabled = true
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Market.BaseURL == "" {
		c.Market.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Market.Lookback == 0 {
		c.Market.Lookback = 365 * 24 * time.Hour
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = 10 * time.Second
	}
	if c.Market.OverviewWorkers == 0 {
		c.Market.OverviewWorkers = 10
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsapi.org/v2"
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.News.MaxItems == 0 {
		c.News.MaxItems = 10
	}
	if c.News.Window == 0 {
		c.News.Window = 7 * 24 * time.Hour
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.Forecast.P == 0 {
		c.Forecast.P = 5
	}
	if c.Forecast.D == nil {
		d := 1
		c.Forecast.D = &d
	}
	if c.Forecast.Horizon == 0 {
		c.Forecast.Horizon = 10
	}
	if c.Forecast.SentimentTimeout == 0 {
		c.Forecast.SentimentTimeout = 2 * time.Second
	}
	if c.Cache.PredictionTTL == 0 {
		c.Cache.PredictionTTL = time.Hour
	}
	if c.Cache.QuoteTTL == 0 {
		c.Cache.QuoteTTL = 5 * time.Minute
	}
	if c.Cache.NewsTTL == 0 {
		c.Cache.NewsTTL = 30 * time.Minute
	}
	if c.Cache.OverviewTTL == 0 {
		c.Cache.OverviewTTL = time.Minute
	}
	if c.Realtime.UpdateInterval == 0 {
		c.Realtime.UpdateInterval = 30 * time.Second
	}
	if c.Realtime.MaxSymbols == 0 {
		c.Realtime.MaxSymbols = 20
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Market.TrackedSymbols) == 0 {
		return fmt.Errorf("market.tracked_symbols cannot be empty")
	}
	if c.Forecast.P < 1 {
		return fmt.Errorf("forecast.p must be >= 1, got %d", c.Forecast.P)
	}
	if c.Forecast.D != nil && *c.Forecast.D < 0 {
		return fmt.Errorf("forecast.d must be >= 0, got %d", *c.Forecast.D)
	}
	if c.Forecast.Horizon < 1 {
		return fmt.Errorf("forecast.horizon must be >= 1, got %d", c.Forecast.Horizon)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	return nil
}
