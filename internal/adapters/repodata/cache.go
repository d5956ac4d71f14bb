package repodata

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/burrow/internal/core/domain"
)

// diskCache stores repodata bodies keyed by URL, with the ETag in a sidecar file.
type diskCache struct {
	dir string
}

func newDiskCache(dir string) *diskCache {
	return &diskCache{dir: filepath.Clean(dir)}
}

func (c *diskCache) paths(url string) (body, etag string) {
	name := strconv.FormatUint(xxhash.Sum64String(url), 16)
	return filepath.Join(c.dir, name+".json"), filepath.Join(c.dir, name+".etag")
}

// load returns the cached body and its ETag. A missing entry yields nil data and no error.
func (c *diskCache) load(url string) (data []byte, etag string, err error) {
	bodyPath, etagPath := c.paths(url)

	//nolint:gosec // Path is constructed from the cache directory and a hashed file name
	data, err = os.ReadFile(bodyPath)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", err
	}

	//nolint:gosec // Path is constructed from the cache directory and a hashed file name
	raw, err := os.ReadFile(etagPath)
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return nil, "", err
	}
	return data, strings.TrimSpace(string(raw)), nil
}

func (c *diskCache) store(url string, data []byte, etag string) error {
	bodyPath, etagPath := c.paths(url)
	if err := atomicWriteFile(bodyPath, data); err != nil {
		return err
	}
	if etag == "" {
		if err := os.Remove(etagPath); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return err
		}
		return nil
	}
	return atomicWriteFile(etagPath, []byte(etag))
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "repodata-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
