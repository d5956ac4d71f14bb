package repodata

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/burrow/internal/adapters/config"    //nolint:depguard // settings come from the config node
	"go.trai.ch/burrow/internal/adapters/logger"    //nolint:depguard // logger node
	"go.trai.ch/burrow/internal/adapters/telemetry" //nolint:depguard // tracer node
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
)

// NodeID is the unique identifier for the repository fetcher Graft node.
const NodeID graft.ID = "adapter.repodata"

func init() {
	graft.Register(graft.Node[ports.RepositoryFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (ports.RepositoryFetcher, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
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

			store, err := LoadAuthStore(cfg.AuthFile)
			if err != nil {
				return nil, err
			}

			return NewFetcher(
				NewHTTPClient(store),
				filepath.Join(cfg.CacheDir, domain.RepoDataCacheDirName),
				cfg.FetchConcurrency,
				log,
				tracer,
			), nil
		},
	})
}
