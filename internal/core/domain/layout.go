package domain

import "path/filepath"

const (
	// HomeDirName is the name of the default state directory inside the user's home.
	HomeDirName = ".burrow"

	// HomeEnvVar overrides the state directory when set.
	HomeEnvVar = "BURROW_HOME"

	// AuthFileEnvVar overrides the credentials file location when set.
	AuthFileEnvVar = "BURROW_AUTH_FILE"

	// BinDirName is the name of the shim directory.
	BinDirName = "bin"

	// EnvsDirName is the name of the directory holding one environment per package.
	EnvsDirName = "envs"

	// CondaMetaDirName is the name of the installed-record directory inside a prefix.
	CondaMetaDirName = "conda-meta"

	// ConfigFileName is the name of the global configuration file.
	ConfigFileName = "config.yaml"

	// AuthFileName is the name of the default credentials file.
	AuthFileName = "credentials.json"

	// CacheDirName is the name of the application directory under the user cache directory.
	CacheDirName = "burrow"

	// RepoDataCacheDirName is the name of the repodata cache directory.
	RepoDataCacheDirName = "repodata"

	// PkgsCacheDirName is the name of the downloaded archive cache directory.
	PkgsCacheDirName = "pkgs"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for shim scripts (rwxr-xr-x).
	ExecPerm = 0o755

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Layout is the on-disk layout rooted at the burrow home directory.
type Layout struct {
	Root string
}

// NewLayout creates a Layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// BinDir returns the shim directory.
func (l Layout) BinDir() string {
	return filepath.Join(l.Root, BinDirName)
}

// EnvsDir returns the directory holding all package environments.
func (l Layout) EnvsDir() string {
	return filepath.Join(l.Root, EnvsDirName)
}

// EnvDir returns the environment directory for a package.
func (l Layout) EnvDir(name PackageName) string {
	return filepath.Join(l.EnvsDir(), name.Normalized())
}

// ConfigFile returns the path of the global configuration file.
func (l Layout) ConfigFile() string {
	return filepath.Join(l.Root, ConfigFileName)
}

// AuthFile returns the default path of the credentials file.
func (l Layout) AuthFile() string {
	return filepath.Join(l.Root, AuthFileName)
}

// Path returns the absolute location of an install directory.
func (l Layout) Path(dir InstallDir) string {
	switch d := dir.(type) {
	case ShimDir:
		return l.BinDir()
	case EnvDir:
		return l.EnvDir(d.Package)
	default:
		return l.Root
	}
}

// CondaMetaDir returns the installed-record directory of a prefix.
func CondaMetaDir(prefix string) string {
	return filepath.Join(prefix, CondaMetaDirName)
}
