package ports

import (
	"context"
	"net/http"

	"go.trai.ch/burrow/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks

// InstallRequest describes one environment to materialize.
type InstallRequest struct {
	// Client is the authenticated client returned by the RepositoryFetcher.
	Client *http.Client
	// Prefix is the environment directory.
	Prefix string
	// Records is the solved package set.
	Records []domain.RepoDataRecord
	// Spec is the user's request, stored on the record of the requested package.
	Spec domain.MatchSpec
}

// Installer downloads, verifies and unpacks packages into a prefix.
type Installer interface {
	// Install links every record into the prefix and returns the written prefix records.
	Install(ctx context.Context, req InstallRequest) ([]domain.PrefixRecord, error)
}

// ShimWriter exposes the executables of an installed package in the shim directory.
type ShimWriter interface {
	// WriteShims creates one shim per executable of record and returns the shim names.
	WriteShims(ctx context.Context, binDir, prefix string, record *domain.PrefixRecord) ([]string, error)
}
