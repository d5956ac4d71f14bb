package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/burrow/internal/adapters/solver"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/burrow/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/burrow/internal/adapters/virtual"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/burrow/internal/core/ports"
)

// NodeID is the unique identifier for the dependency resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[ports.DependencyResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			solver.NodeID,
			virtual.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (ports.DependencyResolver, error) {
			s, err := graft.Dep[ports.Solver](ctx)
			if err != nil {
				return nil, err
			}

			detector, err := graft.Dep[ports.VirtualPackageDetector](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(s, detector, tracer), nil
		},
	})
}
