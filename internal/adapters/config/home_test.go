package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/burrow/internal/adapters/config"
	"go.trai.ch/burrow/internal/core/domain"
)

func TestResolveHome_EnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom", "..", "burrow-root")
	t.Setenv(domain.HomeEnvVar, dir)

	got, err := config.ResolveHome()
	require.NoError(t, err)
	assert.Equal(t, dir, got, "BURROW_HOME must be returned verbatim")
}

func TestResolveHome_DefaultsToUserHome(t *testing.T) {
	t.Setenv(domain.HomeEnvVar, "")
	restore := config.SetUserHomeDir(func() (string, error) { return "/home/alice", nil })
	defer restore()

	got, err := config.ResolveHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/alice", ".burrow"), got)
}

func TestResolveHome_BlankOverrideIgnored(t *testing.T) {
	t.Setenv(domain.HomeEnvVar, "   ")
	restore := config.SetUserHomeDir(func() (string, error) { return "/home/bob", nil })
	defer restore()

	got, err := config.ResolveHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/bob", ".burrow"), got)
}

func TestResolveHome_NoHome(t *testing.T) {
	tests := []struct {
		name   string
		lookup func() (string, error)
	}{
		{
			name:   "lookup error",
			lookup: func() (string, error) { return "", errors.New("$HOME is not defined") },
		},
		{
			name:   "empty home",
			lookup: func() (string, error) { return "", nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(domain.HomeEnvVar, "")
			restore := config.SetUserHomeDir(tt.lookup)
			defer restore()

			_, err := config.ResolveHome()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrHomeNotFound))

			_, err = config.ResolveLayout()
			assert.True(t, errors.Is(err, domain.ErrHomeNotFound))
		})
	}
}
