// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/burrow/internal/core/domain"
)

// InstallDirectories manages the shim directory and the per-package environment directories.
//
//go:generate go run go.uber.org/mock/mockgen -source=directories.go -destination=mocks/mock_directories.go -package=mocks
type InstallDirectories interface {
	// Ensure creates the directory if needed and returns its path. It is idempotent.
	Ensure(ctx context.Context, dir domain.InstallDir) (string, error)

	// RequireExisting returns the path of an existing directory and never creates anything.
	// A missing ShimDir yields domain.ErrShimDirNotFound, a missing EnvDir domain.ErrNotInstalled.
	RequireExisting(ctx context.Context, dir domain.InstallDir) (string, error)

	// ListEnvironments returns the names of all existing environment directories, sorted.
	ListEnvironments(ctx context.Context) ([]domain.PackageName, error)
}
