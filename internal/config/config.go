package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"antunys/clientDesk/internal/api"
)

type Config struct {
	APIBaseURL     string        `json:"api_base_url"`
	Timeout        time.Duration `json:"timeout"`
	CacheTTL       time.Duration `json:"cache_ttl"`
	PageSize       int           `json:"page_size"`
	SearchDebounce time.Duration `json:"search_debounce"`
}

func Load() (*Config, error) {
	config := &Config{
		APIBaseURL:     getEnvOrDefault("CLIENTDESK_API_URL", "http://localhost:3000"),
		Timeout:        parseDurationOrDefault("CLIENTDESK_TIMEOUT", 10*time.Second),
		CacheTTL:       parseDurationOrDefault("CLIENTDESK_CACHE_TTL", 30*time.Second),
		PageSize:       parseIntOrDefault("CLIENTDESK_PAGE_SIZE", 8),
		SearchDebounce: parseDurationOrDefault("CLIENTDESK_SEARCH_DEBOUNCE", 300*time.Millisecond),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL must not be empty")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %v", c.CacheTTL)
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.PageSize)
	}

	if c.SearchDebounce < 0 {
		return fmt.Errorf("search debounce must be non-negative, got: %v", c.SearchDebounce)
	}

	return nil
}

func (c *Config) ToAPIConfig() api.Config {
	return api.Config{
		BaseURL:  c.APIBaseURL,
		Timeout:  c.Timeout,
		CacheTTL: c.CacheTTL,
	}
}

func GetDefaultConfig() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:3000",
		Timeout:        10 * time.Second,
		CacheTTL:       30 * time.Second,
		PageSize:       8,
		SearchDebounce: 300 * time.Millisecond,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
