package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is a conda package version with conda ordering semantics.
//
// A version is [epoch!]main[+local]. Main and local split on '.', '_' and '-' into components,
// and each component splits further into runs of digits and letters. A component that starts
// with a letter gets an implicit leading 0. Missing trailing components compare as 0, so
// 1.1 == 1.1.0. Within a component "dev" sorts lowest, other strings sort below integers,
// and "post" sorts above everything.
type Version struct {
	source string
	epoch  uint64
	main   []versionComponent
	local  []versionComponent
}

type versionComponent []versionAtom

type atomKind uint8

const (
	atomDev atomKind = iota
	atomString
	atomNumber
	atomPost
)

type versionAtom struct {
	kind atomKind
	num  uint64
	str  string
}

// ParseVersion parses a conda version string.
func ParseVersion(s string) (Version, error) {
	source := strings.TrimSpace(s)
	if source == "" {
		return Version{}, zerr.Wrap(ErrInvalidVersion, "version is empty")
	}
	lower := strings.ToLower(source)

	v := Version{source: source}

	if before, after, ok := strings.Cut(lower, "!"); ok {
		epoch, err := strconv.ParseUint(before, 10, 64)
		if err != nil {
			return Version{}, zerr.With(zerr.Wrap(ErrInvalidVersion, "epoch must be an integer"), "version", source)
		}
		v.epoch = epoch
		lower = after
	}

	mainPart, localPart, hasLocal := strings.Cut(lower, "+")
	main, err := parseComponents(mainPart)
	if err != nil {
		return Version{}, zerr.With(err, "version", source)
	}
	v.main = main

	if hasLocal {
		local, err := parseComponents(localPart)
		if err != nil {
			return Version{}, zerr.With(err, "version", source)
		}
		v.local = local
	}

	return v, nil
}

// MustParseVersion is ParseVersion for literals. It panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseComponents(s string) ([]versionComponent, error) {
	if s == "" {
		return nil, zerr.Wrap(ErrInvalidVersion, "empty version segment")
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return nil, zerr.Wrap(ErrInvalidVersion, "version has no components")
	}

	components := make([]versionComponent, 0, len(parts))
	for _, part := range parts {
		c, err := parseComponent(part)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, nil
}

func parseComponent(part string) (versionComponent, error) {
	var c versionComponent
	for i := 0; i < len(part); {
		j := i
		if isDigit(part[i]) {
			for j < len(part) && isDigit(part[j]) {
				j++
			}
			n, err := strconv.ParseUint(part[i:j], 10, 64)
			if err != nil {
				return nil, zerr.Wrap(ErrInvalidVersion, "numeric component out of range")
			}
			c = append(c, versionAtom{kind: atomNumber, num: n})
		} else {
			for j < len(part) && !isDigit(part[j]) {
				if !isVersionLetter(part[j]) {
					return nil, zerr.With(zerr.Wrap(ErrInvalidVersion, "invalid character in version"), "character", string(part[j]))
				}
				j++
			}
			word := part[i:j]
			switch word {
			case "dev":
				c = append(c, versionAtom{kind: atomDev, str: word})
			case "post":
				c = append(c, versionAtom{kind: atomPost, str: word})
			default:
				c = append(c, versionAtom{kind: atomString, str: word})
			}
		}
		i = j
	}
	if len(c) > 0 && c[0].kind != atomNumber {
		c = append(versionComponent{{kind: atomNumber}}, c...)
	}
	return c, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isVersionLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// String returns the version as written.
func (v Version) String() string {
	return v.source
}

// IsZero reports whether the version is unset.
func (v Version) IsZero() bool {
	return v.source == ""
}

// Compare returns -1, 0 or +1 comparing v with o.
func (v Version) Compare(o Version) int {
	if v.epoch != o.epoch {
		if v.epoch < o.epoch {
			return -1
		}
		return 1
	}
	if c := compareComponents(v.main, o.main); c != 0 {
		return c
	}
	return compareComponents(v.local, o.local)
}

// Equal reports whether both versions order identically.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// StartsWith reports whether v falls under prefix, as in the "1.2.*" constraint.
func (v Version) StartsWith(prefix Version) bool {
	if v.epoch != prefix.epoch {
		return false
	}
	if len(prefix.main) == 0 {
		return true
	}
	last := len(prefix.main) - 1
	for i := range last {
		if compareComponent(componentAt(v.main, i), prefix.main[i]) != 0 {
			return false
		}
	}
	candidate := componentAt(v.main, last)
	want := prefix.main[last]
	for i, atom := range want {
		if compareAtom(atomAt(candidate, i), atom) != 0 {
			return false
		}
	}
	return true
}

// Truncated returns a version holding the first n main components, used by "~=".
func (v Version) Truncated(n int) Version {
	if n >= len(v.main) {
		return v
	}
	return Version{source: v.source, epoch: v.epoch, main: v.main[:n]}
}

// ComponentCount returns the number of main components.
func (v Version) ComponentCount() int {
	return len(v.main)
}

func componentAt(cs []versionComponent, i int) versionComponent {
	if i < len(cs) {
		return cs[i]
	}
	return versionComponent{{kind: atomNumber}}
}

func atomAt(c versionComponent, i int) versionAtom {
	if i < len(c) {
		return c[i]
	}
	return versionAtom{kind: atomNumber}
}

func compareComponents(a, b []versionComponent) int {
	n := max(len(a), len(b))
	for i := range n {
		if c := compareComponent(componentAt(a, i), componentAt(b, i)); c != 0 {
			return c
		}
	}
	return 0
}

func compareComponent(a, b versionComponent) int {
	n := max(len(a), len(b))
	for i := range n {
		if c := compareAtom(atomAt(a, i), atomAt(b, i)); c != 0 {
			return c
		}
	}
	return 0
}

func compareAtom(a, b versionAtom) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case atomNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case atomString:
		return strings.Compare(a.str, b.str)
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.source), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
