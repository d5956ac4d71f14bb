package locator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/burrow/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/burrow/internal/adapters/prefix" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/burrow/internal/core/ports"
)

// NodeID is the unique identifier for the package locator Graft node.
const NodeID graft.ID = "engine.locator"

func init() {
	graft.Register(graft.Node[ports.PackageLocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.DirectoriesNodeID, prefix.ReaderNodeID},
		Run: func(ctx context.Context) (ports.PackageLocator, error) {
			dirs, err := graft.Dep[ports.InstallDirectories](ctx)
			if err != nil {
				return nil, err
			}

			reader, err := graft.Dep[ports.PrefixReader](ctx)
			if err != nil {
				return nil, err
			}

			return New(dirs, reader), nil
		},
	})
}
