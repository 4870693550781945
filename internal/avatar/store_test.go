package avatar

import (
	"context"
	"testing"

	"github.com/fitreel/feedcore/pkg/config"
)

func TestNamespaceKey(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{"simple id", "w-1", "feedcore:avatar:w-1"},
		{"uuid id", "0b9e2b6e-8f2a-4c1e-9a0a-1c2d3e4f5a6b", "feedcore:avatar:0b9e2b6e-8f2a-4c1e-9a0a-1c2d3e4f5a6b"},
		{"empty id", "", "feedcore:avatar:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := namespaceKey(tt.id); got != tt.expected {
				t.Errorf("namespaceKey(%q) = %q, want %q", tt.id, got, tt.expected)
			}
		})
	}
}

func TestStore_DisabledNilSafe(t *testing.T) {
	var store *Store

	if _, err := store.Get(context.Background(), "w-1"); err != ErrStoreDisabled {
		t.Errorf("Get() on nil store = %v, want ErrStoreDisabled", err)
	}
	if err := store.Set(context.Background(), "w-1", "data"); err != ErrStoreDisabled {
		t.Errorf("Set() on nil store = %v, want ErrStoreDisabled", err)
	}
	if err := store.Health(context.Background()); err != ErrStoreDisabled {
		t.Errorf("Health() on nil store = %v, want ErrStoreDisabled", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() on nil store = %v, want nil", err)
	}
}

func TestNewStore_Disabled(t *testing.T) {
	store, err := NewStore(&config.RedisConfig{Enabled: false}, 0)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	if store != nil {
		t.Error("NewStore() with disabled config should return nil store")
	}
}
