package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Harvest HarvestConfig `yaml:"harvest" mapstructure:"harvest"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the RPP provider API client.
type APIConfig struct {
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit    float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst    int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	MaxRetries   int     `yaml:"max_retries" mapstructure:"max_retries"`
	Province     string  `yaml:"province" mapstructure:"province"`
	CustomerType string  `yaml:"customer_type" mapstructure:"customer_type"`
	CustomerLine string  `yaml:"customer_line" mapstructure:"customer_line"`
}

// HarvestConfig configures the harvesting pipeline batch sizes and output.
type HarvestConfig struct {
	SearchBatchSize int    `yaml:"search_batch_size" mapstructure:"search_batch_size"`
	EnrichBatchSize int    `yaml:"enrich_batch_size" mapstructure:"enrich_batch_size"`
	GroupBatchSize  int    `yaml:"group_batch_size" mapstructure:"group_batch_size"`
	DataDir         string `yaml:"data_dir" mapstructure:"data_dir"`
}

// StoreConfig configures the harvest-run tracking database.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "https://api.redwireless.ca/rpp")
	v.SetDefault("api.user_agent", "redwireless-scraper/1.0")
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.rate_limit", 20)
	v.SetDefault("api.rate_burst", 20)
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.province", "ON")
	v.SetDefault("api.customer_type", "AAL")
	v.SetDefault("api.customer_line", "Primary")
	v.SetDefault("harvest.search_batch_size", 50)
	v.SetDefault("harvest.enrich_batch_size", 50)
	v.SetDefault("harvest.group_batch_size", 10)
	v.SetDefault("harvest.data_dir", "data")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "data/runs.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
