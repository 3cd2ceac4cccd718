package store

import (
	"fmt"

	"coursecal/internal/config"
)

// NewBackendFromConfig creates a Backend implementation based on the
// store config type.
func NewBackendFromConfig(cfg config.StoreConfig) (Backend, error) {
	switch cfg.Type {
	case "json":
		if cfg.Path == "" {
			return nil, fmt.Errorf("json store requires path to be set")
		}
		return NewFileBackend(cfg.Path), nil
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
