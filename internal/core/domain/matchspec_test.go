package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/burrow/internal/core/domain"
)

func TestParseMatchSpec(t *testing.T) {
	tests := []struct {
		input       string
		wantName    string
		wantVersion string
		wantBuild   string
		wantChannel string
		wantSubdir  string
	}{
		{input: "ripgrep", wantName: "ripgrep"},
		{input: "Ripgrep", wantName: "ripgrep"},
		{input: "python >=3.11", wantName: "python", wantVersion: ">=3.11"},
		{input: "python>=3.11,<3.12", wantName: "python", wantVersion: ">=3.11,<3.12"},
		{input: "python >= 3.11", wantName: "python", wantVersion: ">=3.11"},
		{input: "python 3.11.* *_cpython", wantName: "python", wantVersion: "3.11.*", wantBuild: "*_cpython"},
		{input: "numpy=1.26", wantName: "numpy", wantVersion: "=1.26"},
		{input: "numpy=1.26.4=py312_0", wantName: "numpy", wantVersion: "1.26.4", wantBuild: "py312_0"},
		{input: "numpy==1.26.4", wantName: "numpy", wantVersion: "==1.26.4"},
		{input: "conda-forge::bat", wantName: "bat", wantChannel: "conda-forge"},
		{input: "conda-forge/linux-64::bat", wantName: "bat", wantChannel: "conda-forge", wantSubdir: "linux-64"},
		{
			input:       "https://repo.example.com/tools::jq 1.7",
			wantName:    "jq",
			wantVersion: "1.7",
			wantChannel: "https://repo.example.com/tools",
		},
		{input: "jq[version='>=1.6,<2', build=h*]", wantName: "jq", wantVersion: ">=1.6,<2", wantBuild: "h*"},
		{input: "jq[channel=conda-forge]", wantName: "jq", wantChannel: "conda-forge"},
		{input: ">=1.0", wantVersion: ">=1.0"},
		{input: "*[version=1.0]", wantVersion: "1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := domain.ParseMatchSpec(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, spec.Name.Normalized())
			assert.Equal(t, tt.wantName != "", spec.HasName())
			assert.Equal(t, tt.wantVersion, spec.Version.String())
			assert.Equal(t, tt.wantBuild, spec.Build)
			assert.Equal(t, tt.wantChannel, spec.Channel)
			assert.Equal(t, tt.wantSubdir, spec.Subdir)
			assert.Equal(t, tt.input, spec.String())
		})
	}
}

func TestParseMatchSpec_BuildNumberAndHashes(t *testing.T) {
	spec, err := domain.ParseMatchSpec(`zlib[build_number=3, sha256="ABCDEF", md5=0123]`)
	require.NoError(t, err)

	require.NotNil(t, spec.BuildNumber)
	assert.Equal(t, uint64(3), *spec.BuildNumber)
	assert.Equal(t, "abcdef", spec.SHA256)
	assert.Equal(t, "0123", spec.MD5)
}

func TestParseMatchSpec_Invalid(t *testing.T) {
	tests := []string{
		"",
		"foo$bar",
		"jq[version='>=1]",
		"jq[flavour=mild]",
		"jq[build_number=x]",
		"jq 1.0 h1 extra",
		"jq >=",
		"..",
		".",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseMatchSpec(input)
			require.Error(t, err)
			assert.True(t,
				errors.Is(err, domain.ErrInvalidMatchSpec) || errors.Is(err, domain.ErrInvalidVersionSpec),
				"unexpected error: %v", err,
			)
		})
	}
}

func TestMatchSpec_Matches(t *testing.T) {
	record := &domain.PackageRecord{
		Name:        domain.MustPackageName("python"),
		Version:     domain.MustParseVersion("3.11.7"),
		Build:       "hab00c5b_1_cpython",
		BuildNumber: 1,
		Subdir:      "linux-64",
		SHA256:      "deadbeef",
	}

	tests := []struct {
		spec string
		want bool
	}{
		{"python", true},
		{"PYTHON", true},
		{"ruby", false},
		{"python >=3.11", true},
		{"python 3.12.*", false},
		{"python 3.11.* *_cpython", true},
		{"python 3.11.* *_pypy", false},
		{"python[build_number=1]", true},
		{"python[build_number=2]", false},
		{"python[subdir=osx-64]", false},
		{"python[sha256=DEADBEEF]", true},
		{"python[md5=abc]", false},
		{">=3", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			spec, err := domain.ParseMatchSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Matches(record))
		})
	}
}

func TestMatchSpec_MatchesRepoData_Channel(t *testing.T) {
	record := &domain.RepoDataRecord{
		PackageRecord: domain.PackageRecord{
			Name:    domain.MustPackageName("bat"),
			Version: domain.MustParseVersion("0.24.0"),
			Build:   "h0",
		},
		Channel: "https://conda.anaconda.org/conda-forge",
	}

	assert.True(t, mustSpec(t, "bat").MatchesRepoData(record))
	assert.True(t, mustSpec(t, "conda-forge::bat").MatchesRepoData(record))
	assert.True(t, mustSpec(t, "https://conda.anaconda.org/conda-forge::bat").MatchesRepoData(record))
	assert.False(t, mustSpec(t, "bioconda::bat").MatchesRepoData(record))
}

func TestMatchSpec_StringBuiltInCode(t *testing.T) {
	spec := domain.MatchSpec{
		Name:    domain.MustPackageName("jq"),
		Version: domain.MustParseVersionSpec(">=1.7"),
		Channel: "conda-forge",
	}
	assert.Equal(t, "conda-forge::jq >=1.7", spec.String())
}

func mustSpec(t *testing.T, s string) domain.MatchSpec {
	t.Helper()
	spec, err := domain.ParseMatchSpec(s)
	require.NoError(t, err)
	return spec
}
