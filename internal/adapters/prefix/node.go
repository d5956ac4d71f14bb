package prefix

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/burrow/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the prefix store Graft node.
	NodeID graft.ID = "adapter.prefix"
	// ReaderNodeID is the unique identifier for the prefix reader Graft node.
	ReaderNodeID graft.ID = "adapter.prefix.reader"
)

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Store, error) {
			return NewStore(), nil
		},
	})

	graft.Register(graft.Node[ports.PrefixReader]{
		ID:        ReaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.PrefixReader, error) {
			store, err := graft.Dep[*Store](ctx)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
