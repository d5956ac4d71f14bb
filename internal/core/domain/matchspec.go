package domain

import (
	"path"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// MatchSpec is a query for packages, such as "conda-forge::python >=3.11" or "ripgrep=14".
// Every field is optional; a spec without a name cannot be resolved.
type MatchSpec struct {
	Name        PackageName
	Version     VersionSpec
	Build       string
	BuildNumber *uint64
	Channel     string
	Subdir      string
	MD5         string
	SHA256      string

	source string
}

const versionOperatorChars = "<>=!~"

// ParseMatchSpec parses a match spec string.
//
//nolint:cyclop // grammar dispatch
func ParseMatchSpec(s string) (MatchSpec, error) {
	source := strings.TrimSpace(s)
	if source == "" {
		return MatchSpec{}, zerr.Wrap(ErrInvalidMatchSpec, "match spec is empty")
	}

	spec := MatchSpec{source: source}
	rest := source

	var brackets map[string]string
	if strings.HasSuffix(rest, "]") {
		open := strings.Index(rest, "[")
		if open < 0 {
			return MatchSpec{}, invalidSpec(source, "unbalanced brackets")
		}
		kv, err := parseBrackets(rest[open+1 : len(rest)-1])
		if err != nil {
			return MatchSpec{}, zerr.With(err, "spec", source)
		}
		brackets = kv
		rest = strings.TrimSpace(rest[:open])
	}

	if channel, remainder, ok := strings.Cut(rest, "::"); ok {
		spec.Channel, spec.Subdir = splitChannelSubdir(channel)
		rest = strings.TrimSpace(remainder)
	}

	nameEnd := strings.IndexAny(rest, " \t"+versionOperatorChars)
	namePart := rest
	remainder := ""
	if nameEnd >= 0 {
		namePart = rest[:nameEnd]
		remainder = strings.TrimSpace(rest[nameEnd:])
	}

	if namePart != "" && namePart != "*" {
		name, err := NewPackageName(namePart)
		if err != nil {
			return MatchSpec{}, zerr.With(zerr.Wrap(ErrInvalidMatchSpec, "invalid package name in match spec"), "spec", source)
		}
		spec.Name = name
	}

	versionText, build, err := splitVersionAndBuild(remainder)
	if err != nil {
		return MatchSpec{}, zerr.With(err, "spec", source)
	}
	spec.Build = build

	for key, value := range brackets {
		switch key {
		case "version":
			versionText = value
		case "build":
			spec.Build = value
		case "build_number":
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return MatchSpec{}, invalidSpec(source, "build_number must be an integer")
			}
			spec.BuildNumber = &n
		case "channel":
			spec.Channel, spec.Subdir = splitChannelSubdir(value)
		case "subdir":
			spec.Subdir = value
		case "md5":
			spec.MD5 = strings.ToLower(value)
		case "sha256":
			spec.SHA256 = strings.ToLower(value)
		default:
			return MatchSpec{}, zerr.With(invalidSpec(source, "unknown bracket key"), "key", key)
		}
	}

	if versionText != "" {
		vs, err := ParseVersionSpec(versionText)
		if err != nil {
			return MatchSpec{}, zerr.With(err, "spec", source)
		}
		spec.Version = vs
	}

	return spec, nil
}

func invalidSpec(source, reason string) error {
	return zerr.With(zerr.Wrap(ErrInvalidMatchSpec, reason), "spec", source)
}

// splitVersionAndBuild handles "1.2 py_0", ">=1.2", ">= 1.2", "=1.2" and "=1.2=py_0".
func splitVersionAndBuild(remainder string) (string, string, error) {
	if remainder == "" {
		return "", "", nil
	}

	if strings.HasPrefix(remainder, "=") && !strings.HasPrefix(remainder, "==") {
		version, build, hasBuild := strings.Cut(remainder[1:], "=")
		if hasBuild {
			return strings.TrimSpace(version), strings.TrimSpace(build), nil
		}
		return remainder, "", nil
	}

	fields := strings.Fields(remainder)
	if len(fields) >= 2 && strings.Trim(fields[0], versionOperatorChars) == "" {
		fields = append([]string{fields[0] + fields[1]}, fields[2:]...)
	}
	switch len(fields) {
	case 1:
		return fields[0], "", nil
	case 2:
		return fields[0], fields[1], nil
	default:
		return "", "", zerr.Wrap(ErrInvalidMatchSpec, "too many fields in match spec")
	}
}

func splitChannelSubdir(channel string) (string, string) {
	channel = strings.TrimSpace(channel)
	if idx := strings.LastIndex(channel, "/"); idx >= 0 {
		if _, ok := knownPlatforms[Platform(channel[idx+1:])]; ok {
			return channel[:idx], channel[idx+1:]
		}
	}
	return channel, ""
}

func parseBrackets(body string) (map[string]string, error) {
	out := make(map[string]string)
	var (
		current strings.Builder
		quote   rune
		entries []string
	)
	for _, r := range body {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
		case r == ',':
			entries = append(entries, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, zerr.Wrap(ErrInvalidMatchSpec, "unterminated quote in brackets")
	}
	entries = append(entries, current.String())

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, zerr.With(zerr.Wrap(ErrInvalidMatchSpec, "bracket entry must be key=value"), "entry", entry)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

// HasName reports whether the spec names a package.
func (m MatchSpec) HasName() bool {
	return !m.Name.IsZero()
}

// Matches reports whether a package record satisfies every constraint of the spec
// except the channel, which only repodata records carry.
func (m MatchSpec) Matches(r *PackageRecord) bool {
	if m.HasName() && !m.Name.Equal(r.Name) {
		return false
	}
	if !m.Version.Matches(r.Version) {
		return false
	}
	if m.Build != "" && m.Build != "*" {
		if ok, err := path.Match(m.Build, r.Build); err != nil || !ok {
			return false
		}
	}
	if m.BuildNumber != nil && *m.BuildNumber != r.BuildNumber {
		return false
	}
	if m.Subdir != "" && r.Subdir != "" && m.Subdir != r.Subdir {
		return false
	}
	if m.MD5 != "" && !strings.EqualFold(m.MD5, r.MD5) {
		return false
	}
	if m.SHA256 != "" && !strings.EqualFold(m.SHA256, r.SHA256) {
		return false
	}
	return true
}

// MatchesRepoData is Matches plus the channel constraint.
func (m MatchSpec) MatchesRepoData(r *RepoDataRecord) bool {
	if !m.Matches(&r.PackageRecord) {
		return false
	}
	if m.Channel == "" {
		return true
	}
	channel := strings.TrimRight(r.Channel, "/")
	want := strings.TrimRight(m.Channel, "/")
	return channel == want || strings.HasSuffix(channel, "/"+want)
}

// String returns the spec as written, or a canonical rendering when it was built in code.
func (m MatchSpec) String() string {
	if m.source != "" {
		return m.source
	}
	var b strings.Builder
	if m.Channel != "" {
		b.WriteString(m.Channel)
		if m.Subdir != "" {
			b.WriteString("/" + m.Subdir)
		}
		b.WriteString("::")
	}
	if m.HasName() {
		b.WriteString(m.Name.Source())
	} else {
		b.WriteString("*")
	}
	if !m.Version.IsAny() {
		b.WriteString(" " + m.Version.String())
	}
	if m.Build != "" {
		if m.Version.IsAny() {
			b.WriteString(" *")
		}
		b.WriteString(" " + m.Build)
	}
	return b.String()
}
