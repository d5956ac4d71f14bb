package installer

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/burrow/internal/adapters/config"    //nolint:depguard // settings come from the config node
	"go.trai.ch/burrow/internal/adapters/fs"        //nolint:depguard // walker node
	"go.trai.ch/burrow/internal/adapters/logger"    //nolint:depguard // logger node
	"go.trai.ch/burrow/internal/adapters/prefix"    //nolint:depguard // prefix store node
	"go.trai.ch/burrow/internal/adapters/telemetry" //nolint:depguard // tracer node
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the installer Graft node.
	NodeID graft.ID = "adapter.installer"
	// ShimsNodeID is the unique identifier for the shim writer Graft node.
	ShimsNodeID graft.ID = "adapter.installer.shims"
)

func init() {
	graft.Register(graft.Node[ports.Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			prefix.NodeID,
			fs.WalkerNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (ports.Installer, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[*prefix.Store](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(
				filepath.Join(cfg.CacheDir, domain.PkgsCacheDirName),
				store,
				walker,
				cfg.DownloadConcurrency,
				log,
				tracer,
			), nil
		},
	})

	graft.Register(graft.Node[ports.ShimWriter]{
		ID:        ShimsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ShimWriter, error) {
			return NewShimWriter(), nil
		},
	})
}
