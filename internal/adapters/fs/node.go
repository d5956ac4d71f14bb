package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/burrow/internal/adapters/config" //nolint:depguard // layout comes from the config node
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// DirectoriesNodeID is the unique identifier for the install directories Graft node.
	DirectoriesNodeID graft.ID = "adapter.fs.directories"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.InstallDirectories]{
		ID:        DirectoriesNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.LayoutNodeID},
		Run: func(ctx context.Context) (ports.InstallDirectories, error) {
			layout, err := graft.Dep[domain.Layout](ctx)
			if err != nil {
				return nil, err
			}
			return NewDirectories(layout), nil
		},
	})
}
