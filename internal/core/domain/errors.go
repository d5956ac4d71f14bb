package domain

import "go.trai.ch/zerr"

var (
	// ErrHomeNotFound is returned when neither BURROW_HOME nor a user home directory is available.
	ErrHomeNotFound = zerr.New("could not find home directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrAuthReadFailed is returned when the credentials file exists but cannot be read or decoded.
	ErrAuthReadFailed = zerr.New("failed to read credentials file")

	// ErrShimDirNotFound is returned when the shim directory is required but absent.
	ErrShimDirNotFound = zerr.New("binary executable directory does not exist")

	// ErrNotInstalled is returned when a package has no environment directory.
	ErrNotInstalled = zerr.New("package is not globally installed")

	// ErrNotFoundInPrefix is returned when an environment exists but holds no record of the package.
	ErrNotFoundInPrefix = zerr.New("package not found in prefix")

	// ErrMissingName is returned when a match spec carries no package name.
	ErrMissingName = zerr.New("could not find package name in match spec")

	// ErrNetwork is returned when channel metadata cannot be fetched.
	ErrNetwork = zerr.New("failed to fetch repodata")

	// ErrRepoDataParseFailed is returned when fetched metadata cannot be decoded.
	ErrRepoDataParseFailed = zerr.New("failed to parse repodata")

	// ErrUnsatisfiable is returned when no package selection satisfies the request.
	ErrUnsatisfiable = zerr.New("cannot solve the request")

	// ErrSolverFailed is returned when the solver fails for a reason other than unsatisfiability.
	ErrSolverFailed = zerr.New("solver failed")

	// ErrDirectoryCreateFailed is returned when an install directory cannot be created.
	ErrDirectoryCreateFailed = zerr.New("failed to create directory")

	// ErrDirectoryStatFailed is returned when an install directory cannot be inspected.
	ErrDirectoryStatFailed = zerr.New("failed to inspect directory")

	// ErrPrefixReadFailed is returned when installed records cannot be read from a prefix.
	ErrPrefixReadFailed = zerr.New("failed to read installed packages")

	// ErrInvalidMatchSpec is returned when a match spec string cannot be parsed.
	ErrInvalidMatchSpec = zerr.New("invalid match spec")

	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidVersionSpec is returned when a version constraint cannot be parsed.
	ErrInvalidVersionSpec = zerr.New("invalid version constraint")

	// ErrInvalidPackageName is returned when a package name contains invalid characters.
	ErrInvalidPackageName = zerr.New("package name can only contain lowercase alphanumeric characters, '-', '_' and '.'")

	// ErrInvalidPlatform is returned for an unknown platform string.
	ErrInvalidPlatform = zerr.New("unknown platform")

	// ErrInvalidChannel is returned when a channel cannot be parsed.
	ErrInvalidChannel = zerr.New("invalid channel")

	// ErrInvalidRegex is returned when a list filter is not a valid regular expression.
	ErrInvalidRegex = zerr.New("invalid regex")

	// ErrInvalidSortKey is returned when list is asked to sort by an unknown column.
	ErrInvalidSortKey = zerr.New("invalid sort key")

	// ErrDuplicatePackage is returned when the same package is requested twice in one invocation.
	ErrDuplicatePackage = zerr.New("package requested more than once")

	// ErrNoPackagesSpecified is returned when install is called without specs.
	ErrNoPackagesSpecified = zerr.New("no packages specified")

	// ErrDownloadFailed is returned when a package archive cannot be downloaded.
	ErrDownloadFailed = zerr.New("failed to download package")

	// ErrChecksumMismatch is returned when a downloaded archive does not match its recorded digest.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrExtractFailed is returned when a package archive cannot be unpacked.
	ErrExtractFailed = zerr.New("failed to extract package")

	// ErrUnsupportedArchive is returned for archive formats other than .tar.bz2 and .conda.
	ErrUnsupportedArchive = zerr.New("unsupported archive format")

	// ErrLinkFailed is returned when prefix metadata or shims cannot be written.
	ErrLinkFailed = zerr.New("failed to link package")
)
