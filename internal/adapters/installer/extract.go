package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	extTarBz2 = ".tar.bz2"
	extConda  = ".conda"

	// extractedMarker is written once an archive has been fully unpacked.
	extractedMarker = ".burrow-extracted"
)

// archiveStem strips the archive extension from a package file name.
func archiveStem(fileName string) (string, bool) {
	switch {
	case strings.HasSuffix(fileName, extConda):
		return strings.TrimSuffix(fileName, extConda), true
	case strings.HasSuffix(fileName, extTarBz2):
		return strings.TrimSuffix(fileName, extTarBz2), true
	default:
		return "", false
	}
}

// extractArchive unpacks archive into dest. An already complete extraction is reused.
func extractArchive(archive, dest string) error {
	if _, err := os.Stat(filepath.Join(dest, extractedMarker)); err == nil {
		return nil
	}
	if err := os.RemoveAll(dest); err != nil {
		return extractError(archive, err)
	}
	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return extractError(archive, err)
	}

	var err error
	switch {
	case strings.HasSuffix(archive, extConda):
		err = extractConda(archive, dest)
	case strings.HasSuffix(archive, extTarBz2):
		err = extractTarBz2(archive, dest)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedArchive, "unsupported package archive"), "path", archive)
	}
	if err != nil {
		_ = os.RemoveAll(dest)
		return extractError(archive, err)
	}

	if err := os.WriteFile(filepath.Join(dest, extractedMarker), nil, domain.FilePerm); err != nil {
		return extractError(archive, err)
	}
	return nil
}

func extractTarBz2(archive, dest string) error {
	//nolint:gosec // Archive path comes from the package cache
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return untar(bzip2.NewReader(f), dest)
}

// extractConda unpacks the two zstd tarballs inside a .conda zip: pkg-* holds the payload,
// info-* the metadata.
func extractConda(archive, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer func() {
		_ = zr.Close()
	}()

	found := 0
	for _, entry := range zr.File {
		name := entry.Name
		if !strings.HasSuffix(name, ".tar.zst") {
			continue
		}
		if !strings.HasPrefix(name, "pkg-") && !strings.HasPrefix(name, "info-") {
			continue
		}
		if err := extractZstdTar(entry, dest); err != nil {
			return zerr.With(err, "entry", name)
		}
		found++
	}
	if found == 0 {
		return zerr.New("archive contains no package tarballs")
	}
	return nil
}

func extractZstdTar(entry *zip.File, dest string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = rc.Close()
	}()

	dec, err := zstd.NewReader(rc)
	if err != nil {
		return err
	}
	defer dec.Close()

	return untar(dec, dest)
}

func untar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, hdr.Linkname); err != nil {
				return err
			}
		case tar.TypeLink:
			source, err := safeJoin(dest, hdr.Linkname)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
				return err
			}
			_ = os.Remove(target)
			if err := os.Link(source, target); err != nil {
				return err
			}
		default:
			// Device nodes and fifos never appear in conda packages.
		}
	}
}

func writeEntry(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}
	if perm&0o200 == 0 {
		perm |= 0o200
	}
	//nolint:gosec // Target is checked by safeJoin
	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	//nolint:gosec // Package payloads are bounded by the verified archive size
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeSymlink creates a symlink whose target must stay inside dest.
func writeSymlink(dest, target, linkname string) error {
	resolved := linkname
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(target), linkname)
	}
	if !within(dest, resolved) {
		return zerr.With(zerr.New("symlink escapes package root"), "link", linkname)
	}
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}
	_ = os.Remove(target)
	return os.Symlink(linkname, target)
}

// safeJoin joins name below root and rejects paths that would leave it.
func safeJoin(root, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", zerr.With(zerr.New("absolute path in archive"), "entry", name)
	}
	target := filepath.Join(root, filepath.FromSlash(name))
	if !within(root, target) {
		return "", zerr.With(zerr.New("path escapes package root"), "entry", name)
	}
	return target, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func extractError(archive string, err error) error {
	return zerr.With(
		zerr.Wrap(errors.Join(domain.ErrExtractFailed, err), "could not extract package"),
		"path", archive,
	)
}
