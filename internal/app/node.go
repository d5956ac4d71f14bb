package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/burrow/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/burrow/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/burrow/internal/adapters/installer" //nolint:depguard // Wired in app layer
	"go.trai.ch/burrow/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/burrow/internal/adapters/repodata"  //nolint:depguard // Wired in app layer
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/burrow/internal/engine/locator"
	"go.trai.ch/burrow/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.LayoutNodeID,
			config.SettingsNodeID,
			fs.DirectoriesNodeID,
			repodata.NodeID,
			resolver.NodeID,
			installer.NodeID,
			installer.ShimsNodeID,
			locator.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	layout, err := graft.Dep[domain.Layout](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	dirs, err := graft.Dep[ports.InstallDirectories](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.RepositoryFetcher](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[ports.DependencyResolver](ctx)
	if err != nil {
		return nil, err
	}

	inst, err := graft.Dep[ports.Installer](ctx)
	if err != nil {
		return nil, err
	}

	shims, err := graft.Dep[ports.ShimWriter](ctx)
	if err != nil {
		return nil, err
	}

	loc, err := graft.Dep[ports.PackageLocator](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(layout, cfg, dirs, fetcher, res, inst, shims, loc, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
