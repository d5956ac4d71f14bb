package ports

import (
	"context"

	"go.trai.ch/burrow/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=prefix.go -destination=mocks/mock_prefix.go -package=mocks

// PrefixReader reads the installed-package records of an environment.
type PrefixReader interface {
	// InstalledPackages returns every record in <prefix>/conda-meta.
	InstalledPackages(ctx context.Context, prefix string) ([]domain.PrefixRecord, error)
}

// PackageLocator finds the record of a globally installed package.
type PackageLocator interface {
	// Locate returns the record of name from its own environment.
	// It fails with domain.ErrNotInstalled or domain.ErrNotFoundInPrefix.
	Locate(ctx context.Context, name domain.PackageName) (*domain.PrefixRecord, error)
}
