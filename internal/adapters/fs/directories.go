// Package fs provides file system adapters for install directories and prefix walking.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InstallDirectories = (*Directories)(nil)

// Directories implements ports.InstallDirectories below a burrow home layout.
type Directories struct {
	layout domain.Layout
}

// NewDirectories creates Directories rooted at layout.
func NewDirectories(layout domain.Layout) *Directories {
	return &Directories{layout: layout}
}

// Ensure creates the directory and any missing parents. It is idempotent.
func (d *Directories) Ensure(_ context.Context, dir domain.InstallDir) (string, error) {
	path, err := d.path(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return "", zerr.With(
			zerr.Wrap(errors.Join(domain.ErrDirectoryCreateFailed, err), "could not create "+dir.Subject()),
			"path", path,
		)
	}
	return path, nil
}

// RequireExisting returns the path of an existing directory without creating anything.
func (d *Directories) RequireExisting(_ context.Context, dir domain.InstallDir) (string, error) {
	path, err := d.path(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return path, nil
	case err == nil, errors.Is(err, iofs.ErrNotExist):
		return "", missing(dir, path)
	default:
		return "", zerr.With(
			zerr.Wrap(errors.Join(domain.ErrDirectoryStatFailed, err), "could not inspect "+dir.Subject()),
			"path", path,
		)
	}
}

// path resolves dir, refusing environment paths that are not direct children of envs/.
func (d *Directories) path(dir domain.InstallDir) (string, error) {
	path := d.layout.Path(dir)
	if env, ok := dir.(domain.EnvDir); ok && filepath.Dir(path) != d.layout.EnvsDir() {
		return "", zerr.With(
			zerr.Wrap(domain.ErrInvalidPackageName, "environment of "+env.Package.Source()+" would be outside the envs directory"),
			"path", path,
		)
	}
	return path, nil
}

func missing(dir domain.InstallDir, path string) error {
	switch d := dir.(type) {
	case domain.EnvDir:
		return zerr.With(
			zerr.Wrap(domain.ErrNotInstalled, "could not find environment for package "+d.Package.Normalized()),
			"path", path,
		)
	default:
		return zerr.With(zerr.Wrap(domain.ErrShimDirNotFound, "binary executable directory does not exist"), "path", path)
	}
}

// ListEnvironments returns the names of all environment directories, sorted.
// Entries that are not valid package names are skipped.
func (d *Directories) ListEnvironments(_ context.Context) ([]domain.PackageName, error) {
	entries, err := os.ReadDir(d.layout.EnvsDir())
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(
			zerr.Wrap(errors.Join(domain.ErrDirectoryStatFailed, err), "could not list environments"),
			"path", d.layout.EnvsDir(),
		)
	}

	names := make([]domain.PackageName, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name, err := domain.NewPackageName(e.Name())
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].Normalized() < names[j].Normalized()
	})
	return names, nil
}
