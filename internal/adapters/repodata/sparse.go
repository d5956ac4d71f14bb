package repodata

import (
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	tarBz2Ext = ".tar.bz2"
	condaExt  = ".conda"
)

var _ ports.RepoData = (*SparseRepoData)(nil)

type repoDataDocument struct {
	Info struct {
		Subdir  string `json:"subdir"`
		BaseURL string `json:"base_url"`
	} `json:"info"`
	Packages      map[string]json.RawMessage `json:"packages"`
	CondaPackages map[string]json.RawMessage `json:"packages.conda"`
}

type rawEntry struct {
	fileName string
	raw      json.RawMessage
}

// SparseRepoData holds the repodata of one channel and platform. Entries are grouped by
// package name and only decoded into records when requested.
type SparseRepoData struct {
	key      domain.MetadataKey
	baseURL  string
	packages map[string][]rawEntry
}

// NewSparseRepoData indexes a repodata.json document.
// When an artifact is published both as .tar.bz2 and .conda only the .conda entry is kept.
func NewSparseRepoData(key domain.MetadataKey, data []byte) (*SparseRepoData, error) {
	var doc repoDataDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(
			zerr.Wrap(errors.Join(domain.ErrRepoDataParseFailed, err), "could not parse repodata"),
			"url", key.String(),
		)
	}

	s := &SparseRepoData{
		key:      key,
		baseURL:  resolveBaseURL(key, doc.Info.BaseURL),
		packages: make(map[string][]rawEntry),
	}

	for fn, raw := range doc.CondaPackages {
		s.add(fn, raw)
	}
	for fn, raw := range doc.Packages {
		if _, dup := doc.CondaPackages[strings.TrimSuffix(fn, tarBz2Ext)+condaExt]; dup {
			continue
		}
		s.add(fn, raw)
	}

	for _, entries := range s.packages {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].fileName < entries[j].fileName
		})
	}
	return s, nil
}

func (s *SparseRepoData) add(fn string, raw json.RawMessage) {
	var head struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return
	}
	name, err := domain.NewPackageName(head.Name)
	if err != nil {
		return
	}
	key := name.Normalized()
	s.packages[key] = append(s.packages[key], rawEntry{fileName: fn, raw: raw})
}

func resolveBaseURL(key domain.MetadataKey, infoBaseURL string) string {
	platformURL := key.Channel.PlatformURL(key.Platform)
	if infoBaseURL == "" {
		return platformURL
	}
	base, err := url.Parse(platformURL + "/")
	if err != nil {
		return platformURL
	}
	ref, err := url.Parse(infoBaseURL)
	if err != nil {
		return platformURL
	}
	return strings.TrimSuffix(base.ResolveReference(ref).String(), "/")
}

// Key returns the channel and platform of this repodata.
func (s *SparseRepoData) Key() domain.MetadataKey {
	return s.key
}

// LoadRecords decodes every record published under name.
// Entries that cannot be decoded are skipped.
func (s *SparseRepoData) LoadRecords(name domain.PackageName) ([]domain.RepoDataRecord, error) {
	entries := s.packages[name.Normalized()]
	if len(entries) == 0 {
		return nil, nil
	}

	records := make([]domain.RepoDataRecord, 0, len(entries))
	for _, e := range entries {
		var pr domain.PackageRecord
		if err := json.Unmarshal(e.raw, &pr); err != nil {
			continue
		}
		if pr.Subdir == "" {
			pr.Subdir = s.key.Platform.String()
		}
		records = append(records, domain.RepoDataRecord{
			PackageRecord: pr,
			FileName:      e.fileName,
			URL:           s.baseURL + "/" + e.fileName,
			Channel:       s.key.Channel.String(),
		})
	}
	return records, nil
}

// PackageNames returns the normalized names of all packages, sorted.
func (s *SparseRepoData) PackageNames() []string {
	names := make([]string, 0, len(s.packages))
	for name := range s.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
