// Package config resolves the burrow home directory and loads the global configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads <home>/config.yaml. A missing file yields the defaults.
func (l *Loader) Load(layout domain.Layout) (*domain.Config, error) {
	return Load(layout.ConfigFile(), layout)
}

// Load reads a configuration file from the given path and fills in defaults.
func Load(path string, layout domain.Layout) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	cfg.CacheDir = filepath.Join(xdg.CacheHome, domain.CacheDirName)
	cfg.AuthFile = layout.AuthFile()

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the burrow home
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file Burrowfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	if len(file.DefaultChannels) > 0 {
		channels := make([]string, 0, len(file.DefaultChannels))
		for _, c := range file.DefaultChannels {
			if c = strings.TrimSpace(c); c != "" {
				channels = append(channels, c)
			}
		}
		if len(channels) > 0 {
			cfg.DefaultChannels = channels
		}
	}
	if file.ChannelAlias != "" {
		cfg.ChannelAlias = strings.TrimRight(file.ChannelAlias, "/")
	}
	if file.AuthFile != "" {
		cfg.AuthFile = resolveRelative(file.AuthFile, layout.Root)
	}
	if file.CacheDir != "" {
		cfg.CacheDir = resolveRelative(file.CacheDir, layout.Root)
	}
	if file.Concurrency.Fetch > 0 {
		cfg.FetchConcurrency = file.Concurrency.Fetch
	}
	if file.Concurrency.Downloads > 0 {
		cfg.DownloadConcurrency = file.Concurrency.Downloads
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv lets BURROW_AUTH_FILE take precedence over the config file.
func applyEnv(cfg *domain.Config) {
	if v := strings.TrimSpace(os.Getenv(domain.AuthFileEnvVar)); v != "" {
		cfg.AuthFile = v
	}
}

func resolveRelative(p, root string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := userHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
