package ports

import "go.trai.ch/burrow/internal/core/domain"

// ConfigLoader defines the interface for loading the global configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads <home>/config.yaml, falling back to defaults when it does not exist.
	Load(layout domain.Layout) (*domain.Config, error)
}
