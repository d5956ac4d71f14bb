package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// LayoutNodeID is the unique identifier for the home layout Graft node.
	LayoutNodeID graft.ID = "adapter.config.layout"
	// SettingsNodeID is the unique identifier for the loaded configuration Graft node.
	SettingsNodeID graft.ID = "adapter.config.settings"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[domain.Layout]{
		ID:        LayoutNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (domain.Layout, error) {
			return ResolveLayout()
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, LayoutNodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			layout, err := graft.Dep[domain.Layout](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load(layout)
		},
	})
}
