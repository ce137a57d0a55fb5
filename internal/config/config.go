package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"carbonlens/reporting-backend/internal/render"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Renderer render.Config  `json:"renderer"`
	Upstream UpstreamConfig `json:"upstream"`
	Logging  LoggingConfig  `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// UpstreamConfig points at the analytics service reports can be generated
// from server-side. An empty BaseURL disables the fetch endpoint.
type UpstreamConfig struct {
	BaseURL    string        `json:"base_url"`
	Timeout    time.Duration `json:"timeout"`
	MaxRetries int           `json:"max_retries"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Renderer: render.DefaultConfig(),
		Upstream: UpstreamConfig{
			Timeout:    10 * time.Second,
			MaxRetries: 2,
		},
		Logging: LoggingConfig{Level: "info"},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if path := os.Getenv("RENDERER_EXEC_PATH"); path != "" {
		config.Renderer.ExecPath = path
	}
	if v := os.Getenv("RENDERER_CONTENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Renderer.ContentTimeout = d
		}
	}
	if v := os.Getenv("RENDERER_RENDER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Renderer.RenderTimeout = d
		}
	}
	if v := os.Getenv("RENDERER_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Renderer.MaxConcurrent = n
		}
	}
	if url := os.Getenv("UPSTREAM_BASE_URL"); url != "" {
		config.Upstream.BaseURL = url
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
