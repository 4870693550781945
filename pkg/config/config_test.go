package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Save original env
	originalEndpoint := os.Getenv("FEED_CATALOG_ENDPOINT")
	originalToken := os.Getenv("FEED_CATALOG_BEARER_TOKEN")
	defer func() {
		restore := func(key, val string) {
			if val != "" {
				os.Setenv(key, val)
			} else {
				os.Unsetenv(key)
			}
		}
		restore("FEED_CATALOG_ENDPOINT", originalEndpoint)
		restore("FEED_CATALOG_BEARER_TOKEN", originalToken)
	}()

	// Test with environment variables
	os.Setenv("FEED_CATALOG_ENDPOINT", "https://api.test.example/v1/workouts")
	os.Setenv("FEED_CATALOG_BEARER_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Catalog.Endpoint != "https://api.test.example/v1/workouts" {
		t.Errorf("Expected catalog endpoint from env, got: %s", cfg.Catalog.Endpoint)
	}
	if cfg.Catalog.MaxPages != 4 {
		t.Errorf("Expected default max pages 4, got: %d", cfg.Catalog.MaxPages)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Catalog: CatalogConfig{
			Endpoint:    "https://api.test.example/v1/workouts",
			BearerToken: "token",
			MaxPages:    4,
			HTTPTimeout: 15000000000,
		},
		Avatar: AvatarConfig{
			MaxEntries: 256,
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Valid config should not error: %v", err)
	}

	// Test missing endpoint
	cfg.Catalog.Endpoint = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing catalog_endpoint")
	}
	cfg.Catalog.Endpoint = "https://api.test.example/v1/workouts"

	// Test invalid max_pages
	cfg.Catalog.MaxPages = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid catalog_max_pages")
	}
}
