package domain

import (
	"encoding/json"
	"time"
)

// NoArchType is the noarch kind of a package: "", "generic" or "python".
// Legacy repodata encodes it as a boolean, which maps to "generic".
type NoArchType string

// UnmarshalJSON accepts both the string and the legacy boolean form.
func (n *NoArchType) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*n = "generic"
		} else {
			*n = ""
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = NoArchType(s)
	return nil
}

// PackageRecord is the metadata of one package build as published in repodata.json.
type PackageRecord struct {
	Name          PackageName `json:"name"`
	Version       Version     `json:"version"`
	Build         string      `json:"build"`
	BuildNumber   uint64      `json:"build_number"`
	Depends       []string    `json:"depends,omitempty"`
	Constrains    []string    `json:"constrains,omitempty"`
	Subdir        string      `json:"subdir,omitempty"`
	NoArch        NoArchType  `json:"noarch,omitempty"`
	MD5           string      `json:"md5,omitempty"`
	SHA256        string      `json:"sha256,omitempty"`
	Size          uint64      `json:"size,omitempty"`
	Timestamp     int64       `json:"timestamp,omitempty"`
	License       string      `json:"license,omitempty"`
	TrackFeatures string      `json:"track_features,omitempty"`
}

// Time returns the build timestamp. Repodata stores milliseconds, older entries seconds.
func (r *PackageRecord) Time() time.Time {
	if r.Timestamp == 0 {
		return time.Time{}
	}
	if r.Timestamp < 1e11 {
		return time.Unix(r.Timestamp, 0).UTC()
	}
	return time.UnixMilli(r.Timestamp).UTC()
}

// RepoDataRecord is a PackageRecord together with where it can be downloaded from.
type RepoDataRecord struct {
	PackageRecord

	FileName string `json:"fn"`
	URL      string `json:"url"`
	Channel  string `json:"channel"`
}

// PrefixRecord is an installed package as recorded in <prefix>/conda-meta/<dist>.json.
type PrefixRecord struct {
	RepoDataRecord

	Files                  []string `json:"files"`
	RequestedSpec          string   `json:"requested_spec,omitempty"`
	ExtractedPackageDir    string   `json:"extracted_package_dir,omitempty"`
	PackageTarballFullPath string   `json:"package_tarball_full_path,omitempty"`
	InstalledAt            int64    `json:"installed_at,omitempty"`
}

// DistName returns "<name>-<version>-<build>", the stem of archive and conda-meta file names.
func (r *PackageRecord) DistName() string {
	return r.Name.Source() + "-" + r.Version.String() + "-" + r.Build
}
