package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/burrow/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	root := filepath.Join("home", "user", ".burrow")
	layout := domain.NewLayout(root)
	rg := domain.MustPackageName("RipGrep")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "BinDir",
			got:      layout.BinDir(),
			expected: filepath.Join(root, "bin"),
		},
		{
			name:     "EnvsDir",
			got:      layout.EnvsDir(),
			expected: filepath.Join(root, "envs"),
		},
		{
			name:     "EnvDir uses the normalized name",
			got:      layout.EnvDir(rg),
			expected: filepath.Join(root, "envs", "ripgrep"),
		},
		{
			name:     "Path of ShimDir",
			got:      layout.Path(domain.ShimDir{}),
			expected: filepath.Join(root, "bin"),
		},
		{
			name:     "Path of EnvDir",
			got:      layout.Path(domain.EnvDir{Package: rg}),
			expected: filepath.Join(root, "envs", "ripgrep"),
		},
		{
			name:     "ConfigFile",
			got:      layout.ConfigFile(),
			expected: filepath.Join(root, "config.yaml"),
		},
		{
			name:     "AuthFile",
			got:      layout.AuthFile(),
			expected: filepath.Join(root, "credentials.json"),
		},
		{
			name:     "CondaMetaDir",
			got:      domain.CondaMetaDir(layout.EnvDir(rg)),
			expected: filepath.Join(root, "envs", "ripgrep", "conda-meta"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestInstallDir_Subject(t *testing.T) {
	assert.Equal(t, "binary executable directory", domain.ShimDir{}.Subject())
	assert.Equal(t, "bat", domain.EnvDir{Package: domain.MustPackageName("Bat")}.Subject())
}

func TestNewPackageName(t *testing.T) {
	n, err := domain.NewPackageName("  PyYAML ")
	require.NoError(t, err)
	assert.Equal(t, "PyYAML", n.Source())
	assert.Equal(t, "pyyaml", n.Normalized())
	assert.True(t, n.Equal(domain.MustPackageName("pyyaml")))
	assert.False(t, n.IsVirtual())
	assert.True(t, domain.MustPackageName("__glibc").IsVirtual())

	for _, bad := range []string{"", "foo bar", "foo/bar", "foo=1", ".", "..", ".hidden"} {
		_, err := domain.NewPackageName(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, domain.ErrInvalidPackageName), bad)
	}
}
