package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/deidaraiorek/termrank/internal/pipeline"
	"github.com/deidaraiorek/termrank/internal/stopwords"
)

var ErrInvalidConfig = errors.New("invalid config")

const EnvPrefix = "TERMRANK"

type StopWords struct {
	Extra   []string `mapstructure:"extra" yaml:"extra"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

type Server struct {
	Addr         string        `mapstructure:"addr" yaml:"addr"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	MaxDocuments int           `mapstructure:"max_documents" yaml:"max_documents"`
}

type Config struct {
	Language        string    `mapstructure:"language" yaml:"language"`
	StopWords       StopWords `mapstructure:"stopwords" yaml:"stopwords"`
	SparseThreshold float64   `mapstructure:"sparse_threshold" yaml:"sparse_threshold"`
	Workers         int       `mapstructure:"workers" yaml:"workers"`
	TopK            int       `mapstructure:"top_k" yaml:"top_k"`
	Log             Log       `mapstructure:"log" yaml:"log"`
	Server          Server    `mapstructure:"server" yaml:"server"`
}

// SetDefaults registers every key so environment variables resolve even
// without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("language", "english")
	v.SetDefault("stopwords.extra", []string{})
	v.SetDefault("stopwords.exclude", []string{})
	v.SetDefault("sparse_threshold", pipeline.DefaultSparseThreshold)
	v.SetDefault("workers", 0)
	v.SetDefault("top_k", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cache_ttl", 10*time.Minute)
	v.SetDefault("server.max_documents", 100000)
}

// Load reads configuration from path, or from termrank.yaml in the working
// directory and ~/.termrank when path is empty. A .env file in the working
// directory is applied to the environment first. Precedence, highest first:
// flags bound to v, TERMRANK_* variables, the config file, defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("termrank")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".termrank"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !(c.SparseThreshold > 0 && c.SparseThreshold < 1) {
		return fmt.Errorf("%w: sparse_threshold must be in (0, 1), got %v", ErrInvalidConfig, c.SparseThreshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if c.TopK < 0 {
		return fmt.Errorf("%w: top_k must not be negative", ErrInvalidConfig)
	}
	if c.Server.MaxDocuments < 0 {
		return fmt.Errorf("%w: server.max_documents must not be negative", ErrInvalidConfig)
	}
	if _, err := stopwords.ForLanguage(c.Language); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// StopWordSet is the language list adjusted by the extra and exclude keys.
func (c *Config) StopWordSet() (stopwords.Set, error) {
	base, err := stopwords.ForLanguage(c.Language)
	if err != nil {
		return nil, err
	}
	return base.With(c.StopWords.Extra, c.StopWords.Exclude), nil
}

func (c *Config) PipelineOptions() (pipeline.Options, error) {
	set, err := c.StopWordSet()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Language:        c.Language,
		StopWords:       set,
		SparseThreshold: c.SparseThreshold,
		Workers:         c.Workers,
	}, nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
