// Package virtual detects the virtual packages describing the host system.
package virtual

import (
	"context"
	"os"
	"regexp"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/zerr"
)

// Override variables understood by the detector. An empty value removes the package.
const (
	OverrideGlibc    = "CONDA_OVERRIDE_GLIBC"
	OverrideLinux    = "CONDA_OVERRIDE_LINUX"
	OverrideOSX      = "CONDA_OVERRIDE_OSX"
	OverrideCUDA     = "CONDA_OVERRIDE_CUDA"
	OverrideArchspec = "CONDA_OVERRIDE_ARCHSPEC"
)

var _ ports.VirtualPackageDetector = (*Detector)(nil)

var leadingVersion = regexp.MustCompile(`^\d+(\.\d+)*`)

// Probes query the running system. A probe error means the capability is absent.
type Probes struct {
	LinuxVersion func(ctx context.Context) (string, error)
	GlibcVersion func(ctx context.Context) (string, error)
	OSXVersion   func(ctx context.Context) (string, error)
}

// Detector implements ports.VirtualPackageDetector.
type Detector struct {
	platform domain.Platform
	probes   Probes
	lookup   func(string) (string, bool)
}

// NewDetector creates a Detector for the running platform.
func NewDetector() *Detector {
	return NewDetectorWith(domain.CurrentPlatform(), systemProbes(), os.LookupEnv)
}

// NewDetectorWith creates a Detector with explicit probes and environment lookup.
func NewDetectorWith(platform domain.Platform, probes Probes, lookup func(string) (string, bool)) *Detector {
	return &Detector{platform: platform, probes: probes, lookup: lookup}
}

// Detect returns the virtual packages of the host. The result is recomputed on every call.
func (d *Detector) Detect(ctx context.Context) ([]domain.VirtualPackage, error) {
	var out []domain.VirtualPackage

	if d.platform.IsUnix() {
		out = append(out, fixed("__unix", "0"))
	}
	if d.platform.IsWindows() {
		out = append(out, fixed("__win", "0"))
	}

	if d.platform.IsLinux() {
		vp, err := d.versioned(ctx, "__linux", OverrideLinux, d.probes.LinuxVersion)
		if err != nil {
			return nil, err
		}
		out = append(out, vp...)

		vp, err = d.versioned(ctx, "__glibc", OverrideGlibc, d.probes.GlibcVersion)
		if err != nil {
			return nil, err
		}
		out = append(out, vp...)
	}

	if d.platform.IsOSX() {
		vp, err := d.versioned(ctx, "__osx", OverrideOSX, d.probes.OSXVersion)
		if err != nil {
			return nil, err
		}
		out = append(out, vp...)
	}

	vp, err := d.versioned(ctx, "__cuda", OverrideCUDA, nil)
	if err != nil {
		return nil, err
	}
	out = append(out, vp...)

	return append(out, d.archspec()...), nil
}

// versioned resolves a package from its override, falling back to probe.
func (d *Detector) versioned(
	ctx context.Context,
	name, override string,
	probe func(context.Context) (string, error),
) ([]domain.VirtualPackage, error) {
	raw, ok := d.lookup(override)
	if !ok {
		if probe == nil {
			return nil, nil
		}
		detected, err := probe(ctx)
		if err != nil {
			return nil, nil
		}
		raw = leadingVersion.FindString(detected)
	}
	if raw == "" {
		return nil, nil
	}

	v, err := domain.ParseVersion(raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid version for virtual package "+name), "variable", override)
	}
	return []domain.VirtualPackage{{
		Name:        domain.MustPackageName(name),
		Version:     v,
		BuildString: "0",
	}}, nil
}

func (d *Detector) archspec() []domain.VirtualPackage {
	arch, ok := d.lookup(OverrideArchspec)
	if !ok {
		arch = d.platform.Arch()
	}
	if arch == "" {
		return nil
	}
	vp := fixed("__archspec", "1")
	vp.BuildString = arch
	return []domain.VirtualPackage{vp}
}

func fixed(name, version string) domain.VirtualPackage {
	return domain.VirtualPackage{
		Name:        domain.MustPackageName(name),
		Version:     domain.MustParseVersion(version),
		BuildString: "0",
	}
}
