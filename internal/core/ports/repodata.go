package ports

import (
	"context"
	"net/http"

	"go.trai.ch/burrow/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=repodata.go -destination=mocks/mock_repodata.go -package=mocks

// RepoData is the metadata of one (channel, platform) pair. Records are decoded on demand.
type RepoData interface {
	// Key identifies the channel and platform this metadata belongs to.
	Key() domain.MetadataKey

	// LoadRecords returns every record published under name. An unknown name yields no records.
	LoadRecords(name domain.PackageName) ([]domain.RepoDataRecord, error)

	// PackageNames returns the normalized names of all packages in this metadata, sorted.
	PackageNames() []string
}

// MetadataIndex is the metadata of every fetched (channel, platform) pair, in channel priority order.
type MetadataIndex []RepoData

// RepositoryFetcher downloads channel metadata.
type RepositoryFetcher interface {
	// Fetch retrieves metadata for every channel and platform. Platforms default to the current
	// platform and always include noarch. Any single failure fails the whole fetch.
	// The returned client carries the authentication middleware and is reused for downloads.
	Fetch(ctx context.Context, channels []domain.Channel, platforms ...domain.Platform) (*http.Client, MetadataIndex, error)
}
