// Package app implements the application layer for burrow.
package app

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
)

// App represents the main application logic.
type App struct {
	layout    domain.Layout
	config    *domain.Config
	dirs      ports.InstallDirectories
	fetcher   ports.RepositoryFetcher
	resolver  ports.DependencyResolver
	installer ports.Installer
	shims     ports.ShimWriter
	locator   ports.PackageLocator
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	layout domain.Layout,
	cfg *domain.Config,
	dirs ports.InstallDirectories,
	fetcher ports.RepositoryFetcher,
	resolver ports.DependencyResolver,
	installer ports.Installer,
	shims ports.ShimWriter,
	locator ports.PackageLocator,
	log ports.Logger,
) *App {
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}
	return &App{
		layout:    layout,
		config:    cfg,
		dirs:      dirs,
		fetcher:   fetcher,
		resolver:  resolver,
		installer: installer,
		shims:     shims,
		locator:   locator,
		logger:    log,
	}
}

// Home prints the burrow home directory.
func (a *App) Home(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, a.layout.Root)
	return err
}
