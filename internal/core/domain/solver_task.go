package domain

import "time"

// SolverTask is one request to the solver.
//
// AvailablePackages holds candidates grouped per metadata index entry, in channel priority order.
// LockedPackages are preferred when they satisfy the specs. PinnedPackages must be kept as is.
// A nil Timeout means the solver runs until it finishes or the context ends.
type SolverTask struct {
	Specs             []MatchSpec
	AvailablePackages [][]RepoDataRecord
	VirtualPackages   []GenericVirtualPackage
	LockedPackages    []RepoDataRecord
	PinnedPackages    []RepoDataRecord
	Timeout           *time.Duration
}

// CandidateCount returns the number of available records across all groups.
func (t *SolverTask) CandidateCount() int {
	n := 0
	for _, group := range t.AvailablePackages {
		n += len(group)
	}
	return n
}
