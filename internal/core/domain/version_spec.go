package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

type versionOp uint8

const (
	opEq versionOp = iota
	opNe
	opLt
	opLe
	opGt
	opGe
	opStartsWith
	opNotStartsWith
	opCompatible
)

type versionConstraint struct {
	op      versionOp
	version Version
}

// VersionSpec is a conda version constraint such as ">=1.2,<2|3.*".
// ',' binds tighter than '|'. The zero value matches every version.
type VersionSpec struct {
	source string
	anyOf  [][]versionConstraint
}

// AnyVersion matches every version.
var AnyVersion = VersionSpec{}

// ParseVersionSpec parses a version constraint expression.
func ParseVersionSpec(s string) (VersionSpec, error) {
	source := strings.TrimSpace(s)
	if source == "" || source == "*" {
		return VersionSpec{source: source}, nil
	}

	spec := VersionSpec{source: source}
	for alt := range strings.SplitSeq(source, "|") {
		var group []versionConstraint
		for term := range strings.SplitSeq(alt, ",") {
			c, matchAll, err := parseConstraint(strings.TrimSpace(term))
			if err != nil {
				return VersionSpec{}, zerr.With(err, "constraint", source)
			}
			if matchAll {
				continue
			}
			group = append(group, c)
		}
		if len(group) == 0 {
			return VersionSpec{source: source}, nil
		}
		spec.anyOf = append(spec.anyOf, group)
	}
	return spec, nil
}

// MustParseVersionSpec is ParseVersionSpec for literals. It panics on error.
func MustParseVersionSpec(s string) VersionSpec {
	v, err := ParseVersionSpec(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseConstraint(term string) (versionConstraint, bool, error) {
	if term == "" {
		return versionConstraint{}, false, zerr.Wrap(ErrInvalidVersionSpec, "empty constraint")
	}
	if term == "*" {
		return versionConstraint{}, true, nil
	}

	op, rest := splitOperator(term)
	rest = strings.TrimSpace(rest)

	glob := false
	switch {
	case strings.HasSuffix(rest, ".*"):
		rest, glob = strings.TrimSuffix(rest, ".*"), true
	case strings.HasSuffix(rest, "*"):
		rest, glob = strings.TrimSuffix(rest, "*"), true
	}
	if rest == "" {
		if glob {
			return versionConstraint{}, true, nil
		}
		return versionConstraint{}, false, zerr.With(zerr.Wrap(ErrInvalidVersionSpec, "operator without version"), "term", term)
	}

	v, err := ParseVersion(rest)
	if err != nil {
		return versionConstraint{}, false, zerr.Wrap(ErrInvalidVersionSpec, "invalid version in constraint "+term)
	}

	switch op {
	case "":
		if glob {
			return versionConstraint{op: opStartsWith, version: v}, false, nil
		}
		return versionConstraint{op: opEq, version: v}, false, nil
	case "==":
		if glob {
			return versionConstraint{op: opStartsWith, version: v}, false, nil
		}
		return versionConstraint{op: opEq, version: v}, false, nil
	case "=":
		return versionConstraint{op: opStartsWith, version: v}, false, nil
	case "!=":
		if glob {
			return versionConstraint{op: opNotStartsWith, version: v}, false, nil
		}
		return versionConstraint{op: opNe, version: v}, false, nil
	case "~=":
		if v.ComponentCount() < 2 {
			return versionConstraint{}, false, zerr.With(zerr.Wrap(ErrInvalidVersionSpec, "~= needs at least two components"), "term", term)
		}
		return versionConstraint{op: opCompatible, version: v}, false, nil
	case "<":
		return versionConstraint{op: opLt, version: v}, false, nil
	case "<=":
		return versionConstraint{op: opLe, version: v}, false, nil
	case ">":
		return versionConstraint{op: opGt, version: v}, false, nil
	case ">=":
		return versionConstraint{op: opGe, version: v}, false, nil
	default:
		return versionConstraint{}, false, zerr.With(zerr.Wrap(ErrInvalidVersionSpec, "unknown operator"), "term", term)
	}
}

func splitOperator(term string) (string, string) {
	for _, op := range []string{"==", "!=", "~=", ">=", "<=", ">", "<", "="} {
		if strings.HasPrefix(term, op) {
			return op, term[len(op):]
		}
	}
	return "", term
}

// Matches reports whether v satisfies the constraint.
func (s VersionSpec) Matches(v Version) bool {
	if len(s.anyOf) == 0 {
		return true
	}
	for _, group := range s.anyOf {
		if matchesAll(group, v) {
			return true
		}
	}
	return false
}

func matchesAll(group []versionConstraint, v Version) bool {
	for _, c := range group {
		if !c.matches(v) {
			return false
		}
	}
	return true
}

func (c versionConstraint) matches(v Version) bool {
	switch c.op {
	case opEq:
		return v.Compare(c.version) == 0
	case opNe:
		return v.Compare(c.version) != 0
	case opLt:
		return v.Compare(c.version) < 0
	case opLe:
		return v.Compare(c.version) <= 0
	case opGt:
		return v.Compare(c.version) > 0
	case opGe:
		return v.Compare(c.version) >= 0
	case opStartsWith:
		return v.StartsWith(c.version)
	case opNotStartsWith:
		return !v.StartsWith(c.version)
	case opCompatible:
		return v.Compare(c.version) >= 0 && v.StartsWith(c.version.Truncated(c.version.ComponentCount()-1))
	default:
		return false
	}
}

// IsAny reports whether the constraint matches every version.
func (s VersionSpec) IsAny() bool {
	return len(s.anyOf) == 0
}

// String returns the constraint as written.
func (s VersionSpec) String() string {
	return s.source
}
