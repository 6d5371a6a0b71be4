package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load()
	if err != nil {
		t.Fatalf("Expected defaults to load, got error: %v", err)
	}

	if config.APIBaseURL != "http://localhost:3000" {
		t.Errorf("Expected default API URL, got %s", config.APIBaseURL)
	}
	if config.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout 10s, got %v", config.Timeout)
	}
	if config.CacheTTL != 30*time.Second {
		t.Errorf("Expected default cache TTL 30s, got %v", config.CacheTTL)
	}
	if config.PageSize != 8 {
		t.Errorf("Expected default page size 8, got %d", config.PageSize)
	}
	if config.SearchDebounce != 300*time.Millisecond {
		t.Errorf("Expected default debounce 300ms, got %v", config.SearchDebounce)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CLIENTDESK_API_URL", "https://api.example.com")
	t.Setenv("CLIENTDESK_TIMEOUT", "5s")
	t.Setenv("CLIENTDESK_CACHE_TTL", "1m")
	t.Setenv("CLIENTDESK_PAGE_SIZE", "20")
	t.Setenv("CLIENTDESK_SEARCH_DEBOUNCE", "150ms")

	config, err := Load()
	if err != nil {
		t.Fatalf("Expected config to load, got error: %v", err)
	}

	if config.APIBaseURL != "https://api.example.com" {
		t.Errorf("Expected overridden API URL, got %s", config.APIBaseURL)
	}
	if config.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", config.Timeout)
	}
	if config.CacheTTL != time.Minute {
		t.Errorf("Expected cache TTL 1m, got %v", config.CacheTTL)
	}
	if config.PageSize != 20 {
		t.Errorf("Expected page size 20, got %d", config.PageSize)
	}
	if config.SearchDebounce != 150*time.Millisecond {
		t.Errorf("Expected debounce 150ms, got %v", config.SearchDebounce)
	}
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("CLIENTDESK_TIMEOUT", "not-a-duration")
	t.Setenv("CLIENTDESK_PAGE_SIZE", "not-a-number")

	config, err := Load()
	if err != nil {
		t.Fatalf("Expected config to load, got error: %v", err)
	}

	if config.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout for bad value, got %v", config.Timeout)
	}
	if config.PageSize != 8 {
		t.Errorf("Expected default page size for bad value, got %d", config.PageSize)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty URL", func(c *Config) { c.APIBaseURL = "" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative cache TTL", func(c *Config) { c.CacheTTL = -time.Second }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"negative debounce", func(c *Config) { c.SearchDebounce = -time.Millisecond }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := GetDefaultConfig()
			tt.modify(config)
			if err := config.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestToAPIConfig(t *testing.T) {
	config := GetDefaultConfig()
	apiConfig := config.ToAPIConfig()

	if apiConfig.BaseURL != config.APIBaseURL {
		t.Errorf("Expected base URL carried over, got %s", apiConfig.BaseURL)
	}
	if apiConfig.Timeout != config.Timeout {
		t.Errorf("Expected timeout carried over, got %v", apiConfig.Timeout)
	}
	if apiConfig.CacheTTL != config.CacheTTL {
		t.Errorf("Expected cache TTL carried over, got %v", apiConfig.CacheTTL)
	}
}
