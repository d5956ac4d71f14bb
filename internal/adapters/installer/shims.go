package installer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/zerr"
)

// shimMarker tags shims with the prefix they point into.
const shimMarker = "burrow-prefix: "

var _ ports.ShimWriter = (*ShimWriter)(nil)

// ShimWriter writes launcher scripts for the executables of an environment.
type ShimWriter struct {
	platform domain.Platform
}

// NewShimWriter creates a ShimWriter for the host platform.
func NewShimWriter() *ShimWriter {
	return NewShimWriterFor(domain.CurrentPlatform())
}

// NewShimWriterFor creates a ShimWriter producing shims for platform.
func NewShimWriterFor(platform domain.Platform) *ShimWriter {
	return &ShimWriter{platform: platform}
}

// WriteShims replaces the shims of prefix in binDir with one shim per executable of record.
func (w *ShimWriter) WriteShims(ctx context.Context, binDir, prefixDir string, record *domain.PrefixRecord) ([]string, error) {
	if err := os.MkdirAll(binDir, domain.DirPerm); err != nil {
		return nil, shimError(binDir, err)
	}
	if err := w.removeStale(binDir, prefixDir); err != nil {
		return nil, shimError(binDir, err)
	}

	var names []string
	for _, file := range record.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !w.isExecutable(prefixDir, file) {
			continue
		}

		name, content := w.render(prefixDir, file)
		target := filepath.Join(binDir, name)
		if err := writeShim(target, content); err != nil {
			return nil, shimError(target, err)
		}
		names = append(names, name)
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

func (w *ShimWriter) isExecutable(prefixDir, file string) bool {
	dir, base := path.Split(file)
	if w.platform.IsWindows() {
		if dir != "Scripts/" && dir != "Library/bin/" {
			return false
		}
		ext := strings.ToLower(path.Ext(base))
		return ext == ".exe" || ext == ".bat" || ext == ".cmd"
	}

	if dir != "bin/" {
		return false
	}
	info, err := os.Stat(filepath.Join(prefixDir, filepath.FromSlash(file)))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func (w *ShimWriter) render(prefixDir, file string) (string, []byte) {
	exe := filepath.Join(prefixDir, filepath.FromSlash(file))
	base := path.Base(file)

	var b bytes.Buffer
	if w.platform.IsWindows() {
		name := strings.TrimSuffix(base, path.Ext(base)) + ".bat"
		pathDirs := strings.Join([]string{
			prefixDir,
			filepath.Join(prefixDir, "Library", "bin"),
			filepath.Join(prefixDir, "Scripts"),
		}, ";")
		fmt.Fprintf(&b, "@echo off\r\n")
		fmt.Fprintf(&b, "@rem %s%s\r\n", shimMarker, prefixDir)
		fmt.Fprintf(&b, "set \"CONDA_PREFIX=%s\"\r\n", prefixDir)
		fmt.Fprintf(&b, "set \"PATH=%s;%%PATH%%\"\r\n", pathDirs)
		fmt.Fprintf(&b, "\"%s\" %%*\r\n", exe)
		return name, b.Bytes()
	}

	fmt.Fprintf(&b, "#!/bin/sh\n")
	fmt.Fprintf(&b, "# %s%s\n", shimMarker, prefixDir)
	fmt.Fprintf(&b, "export CONDA_PREFIX=%s\n", shellQuote(prefixDir))
	fmt.Fprintf(&b, "export PATH=%s:\"$PATH\"\n", shellQuote(filepath.Join(prefixDir, "bin")))
	fmt.Fprintf(&b, "exec %s \"$@\"\n", shellQuote(exe))
	return base, b.Bytes()
}

// removeStale deletes shims in binDir that launch from prefixDir.
func (w *ShimWriter) removeStale(binDir, prefixDir string) error {
	entries, err := os.ReadDir(binDir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := filepath.Join(binDir, e.Name())
		if shimPrefix(p) != prefixDir {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// shimPrefix returns the prefix recorded in a shim, or "" for foreign files.
func shimPrefix(p string) string {
	//nolint:gosec // Path comes from a listing of the shim directory
	f, err := os.Open(p)
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	sc := bufio.NewScanner(f)
	for n := 0; n < 3 && sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if _, after, ok := strings.Cut(line, shimMarker); ok {
			return after
		}
	}
	return ""
}

func writeShim(target string, content []byte) error {
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, content, domain.ExecPerm); err != nil {
		return err
	}
	//nolint:gosec // Shims must be executable
	if err := os.Chmod(tmp, domain.ExecPerm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func shimError(path string, err error) error {
	return zerr.With(
		zerr.Wrap(errors.Join(domain.ErrLinkFailed, err), "could not write shims"),
		"path", path,
	)
}
