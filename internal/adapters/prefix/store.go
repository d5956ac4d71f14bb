// Package prefix reads and writes the installed-package records of an environment.
package prefix

import (
	"context"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/zerr"
)

const recordExt = ".json"

var _ ports.PrefixReader = (*Store)(nil)

// Store reads and writes <prefix>/conda-meta/<dist>.json files.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{}
}

// InstalledPackages returns every record in the prefix, sorted by name.
// A prefix without conda-meta holds no packages.
func (s *Store) InstalledPackages(ctx context.Context, prefix string) ([]domain.PrefixRecord, error) {
	dir := domain.CondaMetaDir(prefix)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, readError(dir, err)
	}

	records := make([]domain.PrefixRecord, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		//nolint:gosec // Path is built from the prefix and a directory listing
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, readError(path, err)
		}

		var rec domain.PrefixRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, readError(path, err)
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name.Normalized() < records[j].Name.Normalized()
	})
	return records, nil
}

// WriteRecord stores rec as <prefix>/conda-meta/<dist>.json.
func (s *Store) WriteRecord(prefix string, rec *domain.PrefixRecord) error {
	dir := domain.CondaMetaDir(prefix)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return linkError(dir, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return linkError(dir, err)
	}

	path := filepath.Join(dir, rec.DistName()+recordExt)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return linkError(path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return linkError(path, err)
	}
	return nil
}

// RemoveRecords deletes every record in the prefix. It is used before reinstalling.
func (s *Store) RemoveRecords(prefix string) error {
	dir := domain.CondaMetaDir(prefix)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return linkError(dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return linkError(dir, err)
		}
	}
	return nil
}

func readError(path string, err error) error {
	return zerr.With(
		zerr.Wrap(errors.Join(domain.ErrPrefixReadFailed, err), "could not read installed packages"),
		"path", path,
	)
}

func linkError(path string, err error) error {
	return zerr.With(
		zerr.Wrap(errors.Join(domain.ErrLinkFailed, err), "could not write package record"),
		"path", path,
	)
}
