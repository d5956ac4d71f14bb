package domain

// InstallDir is one of the two kinds of directory burrow manages under its home.
// Implementations are ShimDir and EnvDir only.
type InstallDir interface {
	// Subject names the directory in error messages.
	Subject() string
	installDir()
}

// ShimDir is the single directory that holds executable shims.
type ShimDir struct{}

// Subject names the directory in error messages.
func (ShimDir) Subject() string { return "binary executable directory" }

func (ShimDir) installDir() {}

// EnvDir is the isolated environment of one package.
type EnvDir struct {
	Package PackageName
}

// Subject names the directory in error messages.
func (d EnvDir) Subject() string { return d.Package.Normalized() }

func (EnvDir) installDir() {}
