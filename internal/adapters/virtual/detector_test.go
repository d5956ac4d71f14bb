package virtual_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/burrow/internal/adapters/virtual"
	"go.trai.ch/burrow/internal/core/domain"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func static(v string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return v, nil }
}

func failing(context.Context) (string, error) {
	return "", errors.New("unavailable")
}

func names(pkgs []domain.VirtualPackage) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.String())
	}
	return out
}

func TestDetector_Linux(t *testing.T) {
	d := virtual.NewDetectorWith(domain.PlatformLinux64, virtual.Probes{
		LinuxVersion: static("6.1.0-13-amd64"),
		GlibcVersion: static("2.35"),
	}, env(nil))

	got, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"__unix=0=0",
		"__linux=6.1.0=0",
		"__glibc=2.35=0",
		"__archspec=1=x86_64",
	}, names(got))
}

func TestDetector_OSX(t *testing.T) {
	d := virtual.NewDetectorWith(domain.PlatformOSXArm64, virtual.Probes{
		OSXVersion: static("14.4.1"),
	}, env(nil))

	got, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"__unix=0=0", "__osx=14.4.1=0", "__archspec=1=arm64"}, names(got))
}

func TestDetector_Windows(t *testing.T) {
	d := virtual.NewDetectorWith(domain.PlatformWin64, virtual.Probes{}, env(nil))

	got, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"__win=0=0", "__archspec=1=x86_64"}, names(got))
}

func TestDetector_Overrides(t *testing.T) {
	d := virtual.NewDetectorWith(domain.PlatformLinux64, virtual.Probes{
		LinuxVersion: static("6.1.0"),
		GlibcVersion: static("2.35"),
	}, env(map[string]string{
		virtual.OverrideGlibc:    "2.17",
		virtual.OverrideLinux:    "",
		virtual.OverrideCUDA:     "12.2",
		virtual.OverrideArchspec: "zen4",
	}))

	got, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"__unix=0=0",
		"__glibc=2.17=0",
		"__cuda=12.2=0",
		"__archspec=1=zen4",
	}, names(got))
}

func TestDetector_ProbeFailureOmitsPackage(t *testing.T) {
	d := virtual.NewDetectorWith(domain.PlatformLinuxAarch64, virtual.Probes{
		LinuxVersion: failing,
		GlibcVersion: failing,
	}, env(nil))

	got, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"__unix=0=0", "__archspec=1=aarch64"}, names(got))
}

func TestDetector_InvalidOverride(t *testing.T) {
	d := virtual.NewDetectorWith(domain.PlatformLinux64, virtual.Probes{}, env(map[string]string{
		virtual.OverrideGlibc: "2.x!y",
	}))

	_, err := d.Detect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidVersion))
}

func TestNewDetector_RunsOnHost(t *testing.T) {
	got, err := virtual.NewDetector().Detect(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
