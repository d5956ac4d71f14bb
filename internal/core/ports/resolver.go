package ports

import (
	"context"

	"go.trai.ch/burrow/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// Solver picks a consistent set of records for a SolverTask.
type Solver interface {
	// Solve returns one record per selected package name, with dependencies before dependents.
	// Virtual packages are never returned. An impossible request yields domain.ErrUnsatisfiable.
	Solve(ctx context.Context, task domain.SolverTask) ([]domain.RepoDataRecord, error)
}

// DependencyResolver turns one match spec into the full set of records to install.
type DependencyResolver interface {
	// Resolve solves spec against index and the host's virtual packages.
	Resolve(ctx context.Context, spec domain.MatchSpec, index MetadataIndex) ([]domain.RepoDataRecord, error)
}

// VirtualPackageDetector reports the capabilities of the host.
type VirtualPackageDetector interface {
	// Detect returns the virtual packages of the running system.
	Detect(ctx context.Context) ([]domain.VirtualPackage, error)
}
