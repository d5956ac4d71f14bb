package installer

import (
	"context"
	"crypto/md5" //nolint:gosec // md5 is only used to verify published digests
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"hash"
	"io"
	iofs "io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/zerr"
)

// fetchArchive returns the path of the verified archive for rec in the package cache,
// downloading it when missing or stale. The second result reports whether bytes were transferred.
func (i *Installer) fetchArchive(ctx context.Context, client *http.Client, rec *domain.RepoDataRecord) (string, bool, error) {
	path := filepath.Join(i.pkgsDir, rec.FileName)

	if ok, err := verifyFile(path, rec); err == nil && ok {
		return path, false, nil
	}

	if err := os.MkdirAll(i.pkgsDir, domain.DirPerm); err != nil {
		return "", false, downloadError(rec, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rec.URL, http.NoBody)
	if err != nil {
		return "", false, downloadError(rec, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", false, downloadError(rec, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", false, downloadError(rec, zerr.With(zerr.New("unexpected status "+resp.Status), "status_code", resp.StatusCode))
	}

	tmp, err := os.CreateTemp(i.pkgsDir, rec.FileName+".*.part")
	if err != nil {
		return "", false, downloadError(rec, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	digests := newDigests()
	if _, err := io.Copy(io.MultiWriter(tmp, digests.sha256, digests.md5), resp.Body); err != nil {
		_ = tmp.Close()
		return "", false, downloadError(rec, err)
	}
	if err := tmp.Close(); err != nil {
		return "", false, downloadError(rec, err)
	}

	if err := digests.verify(rec); err != nil {
		return "", false, err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return "", false, downloadError(rec, err)
	}
	return path, true, nil
}

type digests struct {
	sha256 hash.Hash
	md5    hash.Hash
}

func newDigests() *digests {
	return &digests{
		sha256: sha256.New(),
		md5:    md5.New(), //nolint:gosec // md5 is only used to verify published digests
	}
}

// verify compares against the strongest digest the record publishes.
// Records without digests are accepted.
func (d *digests) verify(rec *domain.RepoDataRecord) error {
	switch {
	case rec.SHA256 != "":
		return compareDigest(rec, "sha256", rec.SHA256, d.sha256)
	case rec.MD5 != "":
		return compareDigest(rec, "md5", rec.MD5, d.md5)
	default:
		return nil
	}
}

func compareDigest(rec *domain.RepoDataRecord, algo, want string, h hash.Hash) error {
	got := hex.EncodeToString(h.Sum(nil))
	if strings.EqualFold(got, want) {
		return nil
	}
	err := zerr.Wrap(domain.ErrChecksumMismatch, algo+" of "+rec.FileName+" does not match repodata")
	err = zerr.With(err, "expected", want)
	return zerr.With(err, "actual", got)
}

// verifyFile reports whether a cached archive exists and matches the record.
func verifyFile(path string, rec *domain.RepoDataRecord) (bool, error) {
	//nolint:gosec // Path is built from the package cache and a repodata file name
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	if rec.SHA256 == "" && rec.MD5 == "" {
		return false, nil
	}

	d := newDigests()
	if _, err := io.Copy(io.MultiWriter(d.sha256, d.md5), f); err != nil {
		return false, err
	}
	return d.verify(rec) == nil, nil
}

func downloadError(rec *domain.RepoDataRecord, err error) error {
	return zerr.With(
		zerr.Wrap(errors.Join(domain.ErrDownloadFailed, err), "could not download "+rec.FileName),
		"url", rec.URL,
	)
}
