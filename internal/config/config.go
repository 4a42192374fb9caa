// Package config loads gateway configuration from environment variables.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
)

// Config aggregates every configurable parameter of the gateway.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Redis  RedisConfig
	Chat   ChatConfig
}

// Load populates Config from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	if err := cfg.Server.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	Addr string `ignored:"true"`
}

func (c *ServerConfig) normalize() error {
	port := strings.TrimSpace(c.Port)
	if strings.Contains(port, " ") {
		return fmt.Errorf("invalid PORT value: %q", port)
	}
	if strings.Contains(port, ":") {
		// Allow ":8080" or "127.0.0.1:8080" verbatim.
		c.Addr = port
		return nil
	}
	c.Addr = ":" + port
	return nil
}

// ChatConfig tunes the assistant protocol surface.
type ChatConfig struct {
	// HistoryWindow is how many prior turns a request may carry.
	HistoryWindow int `envconfig:"CHAT_HISTORY_WINDOW" default:"8"`
	// TranscriptTTL bounds how long a stored transcript outlives its last
	// write when the Redis store is in use.
	TranscriptTTL time.Duration `envconfig:"CHAT_TRANSCRIPT_TTL" default:"24h"`
}

// RedisConfig describes the optional transcript store backend.
type RedisConfig struct {
	URL          string `envconfig:"REDIS_URL"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// Enabled reports whether a Redis backend was configured.
func (c RedisConfig) Enabled() bool { return strings.TrimSpace(c.URL) != "" }

// New connects and pings the configured Redis instance.
func (c RedisConfig) New(ctx context.Context) (*redis.Client, error) {
	opts, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opts.DialTimeout = time.Duration(c.DialTimeout) * time.Second
	opts.ReadTimeout = time.Duration(c.ReadTimeout) * time.Second
	opts.WriteTimeout = time.Duration(c.WriteTimeout) * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// AIConfig describes the optional LLM responder backend.
type AIConfig struct {
	APIKey      string   `envconfig:"ARK_API_KEY"`
	Model       string   `envconfig:"ARK_MODEL"`
	BaseURL     string   `envconfig:"ARK_BASE_URL" default:"https://ark.cn-beijing.volces.com/api/v3"`
	Region      string   `envconfig:"ARK_REGION"`
	Temperature *float64 `envconfig:"ARK_TEMPERATURE"`
	TopP        *float64 `envconfig:"ARK_TOP_P"`
	MaxTokens   *int     `envconfig:"ARK_MAX_TOKENS"`
}

// Enabled reports whether the credentials needed for the LLM path are set.
// When disabled, the gateway serves the deterministic responder instead.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && c.APIKey != ""
}

// NewChatModel constructs the Ark-backed chat model from this configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ARK_API_KEY and ARK_MODEL are required for the LLM responder")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}
	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		APIKey:      c.APIKey,
		Model:       c.Model,
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   c.MaxTokens,
	}
	return ark.NewChatModel(ctx, cfg)
}
