// Package resolver turns a match spec into the set of records to install.
package resolver

import (
	"context"
	"errors"
	"slices"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/burrow/internal/engine/suggest"
	"go.trai.ch/zerr"
)

var _ ports.DependencyResolver = (*Resolver)(nil)

// Resolver implements ports.DependencyResolver on top of a Solver.
type Resolver struct {
	solver   ports.Solver
	detector ports.VirtualPackageDetector
	tracer   ports.Tracer
}

// New creates a Resolver.
func New(solver ports.Solver, detector ports.VirtualPackageDetector, tracer ports.Tracer) *Resolver {
	return &Resolver{
		solver:   solver,
		detector: detector,
		tracer:   tracer,
	}
}

// Resolve solves spec against index and the virtual packages of the host.
func (r *Resolver) Resolve(
	ctx context.Context,
	spec domain.MatchSpec,
	index ports.MetadataIndex,
) ([]domain.RepoDataRecord, error) {
	if !spec.HasName() {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrMissingName, "could not find package name in MatchSpec "+spec.String()),
			"spec", spec.String(),
		)
	}

	ctx, span := r.tracer.Start(ctx, "resolve",
		ports.WithAttribute("spec", spec.String()),
	)
	defer span.End()

	available, err := loadCandidates(spec.Name, index)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	detected, err := r.detector.Detect(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(errors.Join(domain.ErrSolverFailed, err), "could not detect virtual packages")
	}
	virtuals := make([]domain.GenericVirtualPackage, 0, len(detected))
	for _, v := range detected {
		virtuals = append(virtuals, v.ToGeneric())
	}

	task := domain.SolverTask{
		Specs:             []domain.MatchSpec{spec},
		AvailablePackages: available,
		VirtualPackages:   virtuals,
		LockedPackages:    []domain.RepoDataRecord{},
		PinnedPackages:    []domain.RepoDataRecord{},
	}
	span.SetAttribute("candidates", task.CandidateCount())
	span.SetAttribute("virtual_packages", len(virtuals))

	records, err := r.solver.Solve(ctx, task)
	if err != nil {
		err = r.classify(err, spec, available, index)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("records", len(records))
	return records, nil
}

// classify keeps unsatisfiable results as they are and files everything else under ErrSolverFailed.
// A root package with no candidates at all gets name suggestions from the index.
func (r *Resolver) classify(
	err error,
	spec domain.MatchSpec,
	available [][]domain.RepoDataRecord,
	index ports.MetadataIndex,
) error {
	if !errors.Is(err, domain.ErrUnsatisfiable) {
		if errors.Is(err, domain.ErrSolverFailed) {
			return err
		}
		return zerr.Wrap(errors.Join(domain.ErrSolverFailed, err), "solver failed for "+spec.String())
	}

	if hasCandidates(spec.Name, available) {
		return err
	}
	names := suggest.Names(spec.Name.Normalized(), indexNames(index), suggest.DefaultLimit)
	if len(names) == 0 {
		return err
	}
	return zerr.With(err, "did_you_mean", suggest.Join(names))
}

// loadCandidates collects the records of name and, transitively, of every package named in
// their depends, grouped per index entry.
func loadCandidates(name domain.PackageName, index ports.MetadataIndex) ([][]domain.RepoDataRecord, error) {
	available := make([][]domain.RepoDataRecord, len(index))
	seen := map[string]bool{name.Normalized(): true}
	queue := []domain.PackageName{name}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		for i, repo := range index {
			records, err := repo.LoadRecords(next)
			if err != nil {
				return nil, err
			}
			available[i] = append(available[i], records...)

			for j := range records {
				for _, dep := range records[j].Depends {
					ms, err := domain.ParseMatchSpec(dep)
					if err != nil || !ms.HasName() || ms.Name.IsVirtual() {
						continue
					}
					key := ms.Name.Normalized()
					if seen[key] {
						continue
					}
					seen[key] = true
					queue = append(queue, ms.Name)
				}
			}
		}
	}
	return available, nil
}

func hasCandidates(name domain.PackageName, available [][]domain.RepoDataRecord) bool {
	for _, group := range available {
		for i := range group {
			if group[i].Name.Equal(name) {
				return true
			}
		}
	}
	return false
}

func indexNames(index ports.MetadataIndex) []string {
	var names []string
	for _, repo := range index {
		names = append(names, repo.PackageNames()...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
