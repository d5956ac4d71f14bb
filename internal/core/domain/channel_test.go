package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/burrow/internal/core/domain"
)

func TestParseChannel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		alias    string
		wantName string
		wantURL  string
	}{
		{
			name:     "bare name",
			input:    "conda-forge",
			wantName: "conda-forge",
			wantURL:  "https://conda.anaconda.org/conda-forge",
		},
		{
			name:     "custom alias",
			input:    "tools",
			alias:    "https://mirror.example.com/",
			wantName: "tools",
			wantURL:  "https://mirror.example.com/tools",
		},
		{
			name:     "url under alias",
			input:    "https://conda.anaconda.org/bioconda/",
			wantName: "bioconda",
			wantURL:  "https://conda.anaconda.org/bioconda",
		},
		{
			name:     "foreign url",
			input:    "https://repo.example.com/channel",
			wantName: "https://repo.example.com/channel",
			wantURL:  "https://repo.example.com/channel",
		},
		{
			name:     "local path",
			input:    "/srv/channel",
			wantName: "file:///srv/channel",
			wantURL:  "file:///srv/channel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := domain.ParseChannel(tt.input, tt.alias)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name)
			assert.Equal(t, tt.wantURL, c.String())
		})
	}
}

func TestParseChannel_Empty(t *testing.T) {
	_, err := domain.ParseChannel("  ", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidChannel))
}

func TestChannel_PlatformURL(t *testing.T) {
	c, err := domain.ParseChannel("conda-forge", "")
	require.NoError(t, err)
	assert.Equal(t, "https://conda.anaconda.org/conda-forge/noarch", c.PlatformURL(domain.PlatformNoArch))

	key := domain.MetadataKey{Channel: c, Platform: domain.PlatformLinux64}
	assert.Equal(t, "https://conda.anaconda.org/conda-forge/linux-64", key.String())
}

func TestChannelSet_Dedup(t *testing.T) {
	forge, err := domain.ParseChannel("conda-forge", "")
	require.NoError(t, err)
	forgeURL, err := domain.ParseChannel("https://conda.anaconda.org/conda-forge", "")
	require.NoError(t, err)
	bio, err := domain.ParseChannel("bioconda", "")
	require.NoError(t, err)

	set := domain.NewChannelSet(forge, bio, forgeURL)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []domain.Channel{forge, bio}, set.Channels())
	assert.Equal(t, 0, set.Priority(forge.BaseURL))
	assert.Equal(t, 1, set.Priority(bio.BaseURL))
	assert.Equal(t, 2, set.Priority(domain.NewInternedString("https://elsewhere")))
}

func TestFriendlyChannelName(t *testing.T) {
	tests := []struct {
		url   string
		alias string
		want  string
	}{
		{"https://conda.anaconda.org/conda-forge", "", "conda-forge"},
		{"https://conda.anaconda.org/conda-forge/linux-64", "", "conda-forge"},
		{"https://conda.anaconda.org/conda-forge/noarch/", "", "conda-forge"},
		{"https://mirror.example.com/tools", "https://mirror.example.com", "tools"},
		{"https://repo.example.com/x", "", "https://repo.example.com/x"},
		{"conda-forge", "", "conda-forge"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.FriendlyChannelName(tt.url, tt.alias))
		})
	}
}

func TestParsePlatform(t *testing.T) {
	p, err := domain.ParsePlatform("osx-arm64")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformOSXArm64, p)
	assert.True(t, p.IsOSX())
	assert.True(t, p.IsUnix())
	assert.Equal(t, "arm64", p.Arch())

	_, err = domain.ParsePlatform("amiga-68k")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidPlatform))
}

func TestCurrentPlatform_IsKnown(t *testing.T) {
	_, err := domain.ParsePlatform(domain.CurrentPlatform().String())
	require.NoError(t, err)
	assert.NotEqual(t, domain.PlatformNoArch, domain.CurrentPlatform())
}

func TestChannel_IsLocal(t *testing.T) {
	local, err := domain.ParseChannel("/srv/channel", "")
	require.NoError(t, err)
	assert.True(t, local.IsLocal())

	remote, err := domain.ParseChannel("conda-forge", "")
	require.NoError(t, err)
	assert.False(t, remote.IsLocal())
}
