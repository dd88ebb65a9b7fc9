package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"

	"orq/pkg/confkit"
	"orq/pkg/openrouter"
)

// Config is the application-level configuration for the orq CLI.
type Config struct {
	// Env indicates the running environment: test | dev | prod.
	Env      string `json:",default=dev"`
	LogLevel string `json:",default=info"`

	// LLM points at the OpenRouter client configuration file.
	LLM confkit.Section[openrouter.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

// MustLoad loads the config at path or panics.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the application config, hydrates section files, and validates.
func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.LLM.Hydrate(cfg.baseDir, openrouter.LoadConfig); err != nil {
		return nil, fmt.Errorf("load llm config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the application-level fields.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "dev"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	return nil
}

// BaseDir returns the directory the main config file was loaded from.
func (c *Config) BaseDir() string {
	return c.baseDir
}
