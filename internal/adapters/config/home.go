package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/zerr"
)

// userHomeDir is swapped out in tests to simulate a system without a home directory.
var userHomeDir = os.UserHomeDir

// ResolveHome returns the burrow state directory.
// BURROW_HOME is returned verbatim when set and non-blank; otherwise <home>/.burrow.
func ResolveHome() (string, error) {
	if v, ok := os.LookupEnv(domain.HomeEnvVar); ok && strings.TrimSpace(v) != "" {
		return v, nil
	}

	home, err := userHomeDir()
	if err != nil {
		return "", zerr.Wrap(domain.ErrHomeNotFound, err.Error())
	}
	if home == "" {
		return "", domain.ErrHomeNotFound
	}
	return filepath.Join(home, domain.HomeDirName), nil
}

// ResolveLayout is ResolveHome wrapped in a domain.Layout.
func ResolveLayout() (domain.Layout, error) {
	root, err := ResolveHome()
	if err != nil {
		return domain.Layout{}, err
	}
	return domain.NewLayout(root), nil
}
