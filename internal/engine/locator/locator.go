// Package locator finds the installed record of a globally installed package.
package locator

import (
	"context"
	"errors"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/burrow/internal/engine/suggest"
	"go.trai.ch/zerr"
)

var _ ports.PackageLocator = (*Locator)(nil)

// Locator implements ports.PackageLocator. A package is looked up only in its own
// environment, so other installed packages never influence the result.
type Locator struct {
	dirs   ports.InstallDirectories
	prefix ports.PrefixReader
}

// New creates a Locator.
func New(dirs ports.InstallDirectories, prefix ports.PrefixReader) *Locator {
	return &Locator{dirs: dirs, prefix: prefix}
}

// Locate returns the record of name from <envs>/<name>.
func (l *Locator) Locate(ctx context.Context, name domain.PackageName) (*domain.PrefixRecord, error) {
	envDir, err := l.dirs.RequireExisting(ctx, domain.EnvDir{Package: name})
	if err != nil {
		if errors.Is(err, domain.ErrNotInstalled) {
			return nil, l.notInstalled(ctx, name)
		}
		return nil, err
	}

	records, err := l.prefix.InstalledPackages(ctx, envDir)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].Name.Equal(name) {
			return &records[i], nil
		}
	}

	return nil, zerr.With(
		zerr.With(zerr.Wrap(domain.ErrNotFoundInPrefix, "could not find "+name.Source()+" in prefix"), "package", name.Source()),
		"prefix", envDir,
	)
}

func (l *Locator) notInstalled(ctx context.Context, name domain.PackageName) error {
	err := zerr.With(
		zerr.Wrap(domain.ErrNotInstalled, "package "+name.Source()+" is not globally installed"),
		"package", name.Source(),
	)

	installed, listErr := l.dirs.ListEnvironments(ctx)
	if listErr != nil {
		return err
	}
	names := make([]string, 0, len(installed))
	for _, n := range installed {
		names = append(names, n.Normalized())
	}
	if s := suggest.Names(name.Normalized(), names, suggest.DefaultLimit); len(s) > 0 {
		err = zerr.With(err, "did_you_mean", suggest.Join(s))
	}
	return err
}
