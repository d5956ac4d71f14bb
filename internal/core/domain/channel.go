package domain

import (
	"net/url"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// DefaultChannelAlias is the host that bare channel names resolve against.
const DefaultChannelAlias = "https://conda.anaconda.org"

// DefaultChannel is used when neither the command line nor the config names a channel.
const DefaultChannel = "conda-forge"

// Channel is a package repository. BaseURL never ends with a slash.
type Channel struct {
	Name    string
	BaseURL InternedString
}

// ParseChannel resolves a channel name, URL or local path against the channel alias.
func ParseChannel(s, alias string) (Channel, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Channel{}, zerr.Wrap(ErrInvalidChannel, "channel is empty")
	}
	if alias == "" {
		alias = DefaultChannelAlias
	}
	alias = strings.TrimRight(alias, "/")

	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" {
			return Channel{}, zerr.With(zerr.Wrap(ErrInvalidChannel, "invalid channel url"), "channel", raw)
		}
		base := strings.TrimRight(u.String(), "/")
		return Channel{Name: channelName(base, alias), BaseURL: NewInternedString(base)}, nil
	case filepath.IsAbs(raw):
		base := strings.TrimRight((&url.URL{Scheme: "file", Path: filepath.ToSlash(raw)}).String(), "/")
		return Channel{Name: base, BaseURL: NewInternedString(base)}, nil
	default:
		name := strings.Trim(raw, "/")
		return Channel{Name: name, BaseURL: NewInternedString(alias + "/" + name)}, nil
	}
}

func channelName(base, alias string) string {
	if rest, ok := strings.CutPrefix(base, alias+"/"); ok {
		return rest
	}
	return base
}

// PlatformURL returns the subdir URL of the channel, without trailing slash.
func (c Channel) PlatformURL(p Platform) string {
	return c.BaseURL.String() + "/" + p.String()
}

// IsLocal reports whether the channel lives on the local file system.
func (c Channel) IsLocal() bool {
	return strings.HasPrefix(c.BaseURL.String(), "file://")
}

// String returns the canonical base URL.
func (c Channel) String() string {
	return c.BaseURL.String()
}

// FriendlyChannelName returns the channel name when it is hosted at alias, and the URL otherwise.
// Platform suffixes such as "/linux-64" are stripped first.
func FriendlyChannelName(channelURL, alias string) string {
	if channelURL == "" {
		return ""
	}
	if alias == "" {
		alias = DefaultChannelAlias
	}
	alias = strings.TrimRight(alias, "/")
	base := strings.TrimRight(channelURL, "/")
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		if _, ok := knownPlatforms[Platform(base[idx+1:])]; ok {
			base = base[:idx]
		}
	}
	if !strings.Contains(base, "://") {
		return base
	}
	return channelName(base, alias)
}

// ChannelSet is an ordered set of channels deduplicated by base URL. Order is priority.
type ChannelSet struct {
	channels []Channel
	seen     map[InternedString]struct{}
}

// NewChannelSet creates a ChannelSet from channels, keeping the first occurrence of each URL.
func NewChannelSet(channels ...Channel) *ChannelSet {
	s := &ChannelSet{seen: make(map[InternedString]struct{}, len(channels))}
	for _, c := range channels {
		s.Add(c)
	}
	return s
}

// Add appends c unless a channel with the same base URL is already present.
func (s *ChannelSet) Add(c Channel) bool {
	if _, ok := s.seen[c.BaseURL]; ok {
		return false
	}
	s.seen[c.BaseURL] = struct{}{}
	s.channels = append(s.channels, c)
	return true
}

// Channels returns the channels in priority order.
func (s *ChannelSet) Channels() []Channel {
	out := make([]Channel, len(s.channels))
	copy(out, s.channels)
	return out
}

// Len returns the number of channels.
func (s *ChannelSet) Len() int {
	return len(s.channels)
}

// Priority returns the index of a channel URL, or Len() when absent.
func (s *ChannelSet) Priority(base InternedString) int {
	for i, c := range s.channels {
		if c.BaseURL == base {
			return i
		}
	}
	return len(s.channels)
}

// MetadataKey identifies one (channel, platform) entry of the metadata index.
type MetadataKey struct {
	Channel  Channel
	Platform Platform
}

// String returns the subdir URL.
func (k MetadataKey) String() string {
	return k.Channel.PlatformURL(k.Platform)
}
