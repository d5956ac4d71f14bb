package config

// Burrowfile represents the structure of the config.yaml file.
type Burrowfile struct {
	DefaultChannels []string       `yaml:"default_channels"`
	ChannelAlias    string         `yaml:"channel_alias"`
	AuthFile        string         `yaml:"auth_file"`
	CacheDir        string         `yaml:"cache_dir"`
	Concurrency     ConcurrencyDTO `yaml:"concurrency"`
}

// ConcurrencyDTO bounds the parallel network work.
type ConcurrencyDTO struct {
	Fetch     int `yaml:"fetch"`
	Downloads int `yaml:"downloads"`
}
