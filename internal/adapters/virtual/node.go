package virtual

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/burrow/internal/core/ports"
)

// NodeID is the unique identifier for the virtual package detector Graft node.
const NodeID graft.ID = "adapter.virtual"

func init() {
	graft.Register(graft.Node[ports.VirtualPackageDetector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VirtualPackageDetector, error) {
			return NewDetector(), nil
		},
	})
}
