package installer

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	infoDirName   = "info"
	pathsJSONName = "paths.json"

	fileModeText   = "text"
	fileModeBinary = "binary"

	pathTypeSoftlink  = "softlink"
	pathTypeDirectory = "directory"
)

// pathsEntry is one entry of info/paths.json.
type pathsEntry struct {
	Path              string `json:"_path"`
	PathType          string `json:"path_type"`
	FileMode          string `json:"file_mode,omitempty"`
	PrefixPlaceholder string `json:"prefix_placeholder,omitempty"`
}

type pathsJSON struct {
	Paths []pathsEntry `json:"paths"`
}

// packageEntries returns the entries to link for an extracted package. Packages without
// info/paths.json link every file outside info/ verbatim.
func (i *Installer) packageEntries(extracted string) ([]pathsEntry, error) {
	//nolint:gosec // Path is built from the package cache
	data, err := os.ReadFile(filepath.Join(extracted, infoDirName, pathsJSONName))
	if err == nil {
		var pj pathsJSON
		if err := json.Unmarshal(data, &pj); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid paths.json"), "path", extracted)
		}
		return pj.Paths, nil
	}
	if !errors.Is(err, iofs.ErrNotExist) {
		return nil, err
	}

	var entries []pathsEntry
	for rel, walkErr := range i.walker.WalkFiles(extracted, []string{infoDirName}) {
		if walkErr != nil {
			return nil, zerr.With(zerr.Wrap(walkErr, "could not list package files"), "path", extracted)
		}
		if rel == extractedMarker {
			continue
		}
		entries = append(entries, pathsEntry{Path: rel})
	}
	return entries, nil
}

// linkPackage places the files of an extracted package into prefix and returns the
// prefix-relative paths it created, sorted.
func (i *Installer) linkPackage(extracted, prefix string) ([]string, error) {
	entries, err := i.packageEntries(extracted)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if isInfoPath(e.Path) {
			continue
		}
		if e.PathType == pathTypeDirectory {
			if err := os.MkdirAll(filepath.Join(prefix, filepath.FromSlash(e.Path)), domain.DirPerm); err != nil {
				return nil, err
			}
			continue
		}

		src, err := safeJoin(extracted, e.Path)
		if err != nil {
			return nil, err
		}
		dst, err := safeJoin(prefix, e.Path)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
			return nil, err
		}
		_ = os.Remove(dst)

		if err := linkEntry(e, src, dst, prefix); err != nil {
			return nil, zerr.With(err, "file", e.Path)
		}
		files = append(files, e.Path)
	}

	slices.Sort(files)
	return files, nil
}

func linkEntry(e pathsEntry, src, dst, prefix string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	if info.Mode()&os.ModeSymlink != 0 || e.PathType == pathTypeSoftlink {
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(target, dst)
	}

	if e.PrefixPlaceholder == "" {
		if err := os.Link(src, dst); err == nil {
			return nil
		}
		return copyFile(src, dst, info.Mode().Perm())
	}

	//nolint:gosec // Source lies inside the extracted package
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	replaced, err := replacePrefix(data, e.PrefixPlaceholder, prefix, e.FileMode)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, replaced, info.Mode().Perm())
}

// replacePrefix rewrites the build-time placeholder to the install prefix. Binary files
// keep their length: each NUL-terminated string holding the placeholder is rewritten
// in place and padded with NULs.
func replacePrefix(data []byte, placeholder, prefix, mode string) ([]byte, error) {
	if mode != fileModeBinary {
		if mode != "" && mode != fileModeText {
			return nil, zerr.With(zerr.New("unknown file mode"), "file_mode", mode)
		}
		return bytes.ReplaceAll(data, []byte(placeholder), []byte(filepath.ToSlash(prefix))), nil
	}

	if len(prefix) > len(placeholder) {
		return nil, zerr.With(zerr.New("install prefix is longer than the build placeholder"), "prefix", prefix)
	}

	out := slices.Clone(data)
	old := []byte(placeholder)
	for start := 0; ; {
		idx := bytes.Index(out[start:], old)
		if idx < 0 {
			return out, nil
		}
		idx += start
		end := bytes.IndexByte(out[idx:], 0)
		if end < 0 {
			end = len(out)
		} else {
			end += idx
		}

		segment := bytes.ReplaceAll(out[idx:end], old, []byte(prefix))
		n := copy(out[idx:end], segment)
		for k := idx + n; k < end; k++ {
			out[k] = 0
		}
		start = end
	}
}

func copyFile(src, dst string, perm os.FileMode) error {
	//nolint:gosec // Source lies inside the extracted package
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	//nolint:gosec // Destination is checked by safeJoin
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// unlinkFiles removes files recorded for a previous installation. Missing files are ignored.
func unlinkFiles(prefix string, files []string) error {
	for _, f := range files {
		path, err := safeJoin(prefix, f)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func isInfoPath(p string) bool {
	return p == infoDirName || strings.HasPrefix(p, infoDirName+"/")
}
