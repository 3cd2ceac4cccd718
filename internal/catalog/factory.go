package catalog

import (
	"fmt"

	"coursecal/internal/config"
)

// NewCatalogFromConfig creates a Catalog implementation based on the
// catalog config type.
func NewCatalogFromConfig(cfg config.CatalogConfig) (Catalog, error) {
	switch cfg.Type {
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file catalog requires path to be set")
		}
		return NewFileCatalog(cfg.Path), nil
	case "memory":
		return NewMemoryCatalog(nil), nil
	default:
		return nil, fmt.Errorf("unknown catalog type: %s", cfg.Type)
	}
}
