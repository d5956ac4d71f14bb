package domain

import "runtime"

// Config is the global configuration read from <home>/config.yaml.
type Config struct {
	// DefaultChannels are used when a command names no channel.
	DefaultChannels []string
	// ChannelAlias is the host bare channel names resolve against.
	ChannelAlias string
	// AuthFile is the credentials file. Empty means <home>/credentials.json.
	AuthFile string
	// CacheDir holds repodata and archive caches.
	CacheDir string
	// FetchConcurrency bounds parallel repodata downloads.
	FetchConcurrency int
	// DownloadConcurrency bounds parallel package downloads.
	DownloadConcurrency int
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		DefaultChannels:     []string{DefaultChannel},
		ChannelAlias:        DefaultChannelAlias,
		FetchConcurrency:    runtime.NumCPU(),
		DownloadConcurrency: runtime.NumCPU(),
	}
}
