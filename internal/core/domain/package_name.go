package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// PackageName is a conda package name. Comparison uses the normalized (lowercase) form.
type PackageName struct {
	source     string
	normalized InternedString
}

// NewPackageName validates and normalizes a package name.
func NewPackageName(s string) (PackageName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PackageName{}, zerr.With(zerr.Wrap(ErrInvalidPackageName, "package name is empty"), "name", s)
	}
	if strings.HasPrefix(s, ".") {
		return PackageName{}, zerr.With(
			zerr.Wrap(ErrInvalidPackageName, "package name cannot start with '.'"),
			"name", s,
		)
	}
	for _, r := range s {
		if !isNameRune(r) {
			return PackageName{}, zerr.With(
				zerr.Wrap(ErrInvalidPackageName, "invalid package name "+s),
				"name", s,
			)
		}
	}
	return PackageName{
		source:     s,
		normalized: NewInternedString(strings.ToLower(s)),
	}, nil
}

// MustPackageName is NewPackageName for names known to be valid. It panics otherwise.
func MustPackageName(s string) PackageName {
	n, err := NewPackageName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	default:
		return false
	}
}

// Source returns the name as the user spelled it.
func (n PackageName) Source() string {
	return n.source
}

// Normalized returns the lowercase form used for comparison and directory names.
func (n PackageName) Normalized() string {
	return n.normalized.String()
}

// IsZero reports whether the name is unset.
func (n PackageName) IsZero() bool {
	return n.source == ""
}

// Equal compares two names by their normalized form.
func (n PackageName) Equal(o PackageName) bool {
	return n.normalized == o.normalized
}

// String returns the normalized form.
func (n PackageName) String() string {
	return n.Normalized()
}

// IsVirtual reports whether the name refers to a virtual package (leading "__").
func (n PackageName) IsVirtual() bool {
	return strings.HasPrefix(n.Normalized(), "__")
}

// MarshalText implements encoding.TextMarshaler.
func (n PackageName) MarshalText() ([]byte, error) {
	return []byte(n.source), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *PackageName) UnmarshalText(text []byte) error {
	parsed, err := NewPackageName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
