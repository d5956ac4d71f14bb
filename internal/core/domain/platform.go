package domain

import (
	"runtime"

	"go.trai.ch/zerr"
)

// Platform is a conda subdir such as "linux-64" or "noarch".
type Platform string

// Known platforms.
const (
	PlatformNoArch       Platform = "noarch"
	PlatformLinux64      Platform = "linux-64"
	PlatformLinuxAarch64 Platform = "linux-aarch64"
	PlatformLinuxPPC64LE Platform = "linux-ppc64le"
	PlatformOSX64        Platform = "osx-64"
	PlatformOSXArm64     Platform = "osx-arm64"
	PlatformWin64        Platform = "win-64"
	PlatformWinArm64     Platform = "win-arm64"
)

var knownPlatforms = map[Platform]struct{}{
	PlatformNoArch:       {},
	PlatformLinux64:      {},
	PlatformLinuxAarch64: {},
	PlatformLinuxPPC64LE: {},
	PlatformOSX64:        {},
	PlatformOSXArm64:     {},
	PlatformWin64:        {},
	PlatformWinArm64:     {},
}

// ParsePlatform validates a platform string.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if _, ok := knownPlatforms[p]; !ok {
		return "", zerr.With(zerr.Wrap(ErrInvalidPlatform, "unknown platform "+s), "platform", s)
	}
	return p, nil
}

// CurrentPlatform returns the platform burrow is running on.
func CurrentPlatform() Platform {
	return platformFor(runtime.GOOS, runtime.GOARCH)
}

func platformFor(goos, goarch string) Platform {
	switch {
	case goos == "darwin" && goarch == "amd64":
		return PlatformOSX64
	case goos == "darwin" && goarch == "arm64":
		return PlatformOSXArm64
	case goos == "linux" && goarch == "arm64":
		return PlatformLinuxAarch64
	case goos == "linux" && goarch == "ppc64le":
		return PlatformLinuxPPC64LE
	case goos == "windows" && goarch == "amd64":
		return PlatformWin64
	case goos == "windows" && goarch == "arm64":
		return PlatformWinArm64
	default:
		// Fallback to linux-64 for unknown systems
		return PlatformLinux64
	}
}

// IsUnix reports whether the platform is a unix flavour.
func (p Platform) IsUnix() bool {
	return p.IsLinux() || p.IsOSX()
}

// IsLinux reports whether the platform is linux.
func (p Platform) IsLinux() bool {
	switch p {
	case PlatformLinux64, PlatformLinuxAarch64, PlatformLinuxPPC64LE:
		return true
	default:
		return false
	}
}

// IsOSX reports whether the platform is macOS.
func (p Platform) IsOSX() bool {
	return p == PlatformOSX64 || p == PlatformOSXArm64
}

// IsWindows reports whether the platform is windows.
func (p Platform) IsWindows() bool {
	return p == PlatformWin64 || p == PlatformWinArm64
}

// Arch returns the archspec-style machine name of the platform.
func (p Platform) Arch() string {
	switch p {
	case PlatformLinux64, PlatformOSX64, PlatformWin64:
		return "x86_64"
	case PlatformLinuxAarch64, PlatformWinArm64:
		return "aarch64"
	case PlatformOSXArm64:
		return "arm64"
	case PlatformLinuxPPC64LE:
		return "ppc64le"
	default:
		return ""
	}
}

// String returns the subdir name.
func (p Platform) String() string {
	return string(p)
}
