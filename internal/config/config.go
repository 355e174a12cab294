package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "WEBSUM_CONFIG"
	addrEnv        = "WEBSUM_ADDR"
	logLevelEnv    = "WEBSUM_LOG_LEVEL"
	secretsFileEnv = "WEBSUM_SECRETS_FILE"
	ollamaURLEnv   = "OLLAMA_ENDPOINT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	LLM     LLMConfig     `yaml:"llm"`
	Secrets SecretsConfig `yaml:"secrets"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ScrapeConfig bounds the page-fetch phase.
type ScrapeConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"`
}

// Timeout resolves the scrape timeout with its default.
func (s ScrapeConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LLMConfig bounds the completion call and the model-catalog cache.
type LLMConfig struct {
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	CatalogTTLSecs int    `yaml:"catalogTtlSeconds"`
	OllamaEndpoint string `yaml:"ollamaEndpoint"`
}

// Timeout resolves the completion timeout with its default.
func (l LLMConfig) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 45 * time.Second
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// CatalogTTL resolves the model-list cache window with its default.
func (l LLMConfig) CatalogTTL() time.Duration {
	if l.CatalogTTLSecs <= 0 {
		return time.Hour
	}
	return time.Duration(l.CatalogTTLSecs) * time.Second
}

// SecretsConfig locates the managed secret store file.
type SecretsConfig struct {
	File string `yaml:"file"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. A .env file in the working directory is honored first.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(addrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(secretsFileEnv); v != "" {
		c.Secrets.File = v
	}
	if v := os.Getenv(ollamaURLEnv); v != "" {
		c.LLM.OllamaEndpoint = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Scrape.TimeoutSeconds > 0 {
		base.Scrape.TimeoutSeconds = override.Scrape.TimeoutSeconds
	}
	if override.LLM.TimeoutSeconds > 0 {
		base.LLM.TimeoutSeconds = override.LLM.TimeoutSeconds
	}
	if override.LLM.CatalogTTLSecs > 0 {
		base.LLM.CatalogTTLSecs = override.LLM.CatalogTTLSecs
	}
	if override.LLM.OllamaEndpoint != "" {
		base.LLM.OllamaEndpoint = override.LLM.OllamaEndpoint
	}
	if override.Secrets.File != "" {
		base.Secrets.File = override.Secrets.File
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Scrape:  ScrapeConfig{TimeoutSeconds: 10},
		LLM:     LLMConfig{TimeoutSeconds: 45, CatalogTTLSecs: 3600},
		Secrets: SecretsConfig{File: "secrets.yaml"},
		Logging: LoggingConfig{Level: "info"},
	}
}
