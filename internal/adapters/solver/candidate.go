package solver

import (
	"sort"

	"go.trai.ch/burrow/internal/core/domain"
)

const virtualChannel = "@virtual"

// candidate is one record the solver may select for a package name.
type candidate struct {
	record   domain.RepoDataRecord
	priority int
	virtual  bool
	locked   bool

	parsed     bool
	invalid    bool
	depends    []domain.MatchSpec
	constrains []domain.MatchSpec
}

// parse decodes depends and constrains once. A record with an unparseable entry is never selected.
func (c *candidate) parse() {
	if c.parsed {
		return
	}
	c.parsed = true

	var ok bool
	if c.depends, ok = parseSpecs(c.record.Depends); !ok {
		c.invalid = true
		return
	}
	if c.constrains, ok = parseSpecs(c.record.Constrains); !ok {
		c.invalid = true
	}
}

func parseSpecs(raw []string) ([]domain.MatchSpec, bool) {
	specs := make([]domain.MatchSpec, 0, len(raw))
	for _, s := range raw {
		spec, err := domain.ParseMatchSpec(s)
		if err != nil || !spec.HasName() {
			return nil, false
		}
		specs = append(specs, spec)
	}
	return specs, true
}

func (c *candidate) describe() string {
	if c.virtual {
		return c.record.Name.Source() + " " + c.record.Version.String()
	}
	return c.record.Name.Source() + " " + c.record.Version.String() + " " + c.record.Build
}

func (c *candidate) matches(spec domain.MatchSpec) bool {
	if c.virtual && spec.Channel != "" {
		return false
	}
	return spec.MatchesRepoData(&c.record)
}

// less orders candidates from most to least preferred.
func less(a, b *candidate) bool {
	if a.locked != b.locked {
		return a.locked
	}
	if (a.record.TrackFeatures == "") != (b.record.TrackFeatures == "") {
		return a.record.TrackFeatures == ""
	}
	if c := a.record.Version.Compare(b.record.Version); c != 0 {
		return c > 0
	}
	if a.record.BuildNumber != b.record.BuildNumber {
		return a.record.BuildNumber > b.record.BuildNumber
	}
	if a.record.Timestamp != b.record.Timestamp {
		return a.record.Timestamp > b.record.Timestamp
	}
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.record.URL < b.record.URL
}

func sortCandidates(cands []*candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return less(cands[i], cands[j])
	})
}

// buildCandidates groups every available, virtual, locked and pinned record by normalized name.
func buildCandidates(task *domain.SolverTask) map[string][]*candidate {
	byName := make(map[string][]*candidate)
	priorities := make(map[string]int)

	for _, group := range task.AvailablePackages {
		for i := range group {
			rec := group[i]
			prio, ok := priorities[rec.Channel]
			if !ok {
				prio = len(priorities)
				priorities[rec.Channel] = prio
			}
			name := rec.Name.Normalized()
			byName[name] = append(byName[name], &candidate{record: rec, priority: prio})
		}
	}

	for _, vp := range task.VirtualPackages {
		rec := domain.RepoDataRecord{PackageRecord: vp.Record(), Channel: virtualChannel}
		byName[vp.Name.Normalized()] = []*candidate{{record: rec, virtual: true}}
	}

	for i := range task.LockedPackages {
		locked := task.LockedPackages[i]
		name := locked.Name.Normalized()
		found := false
		for _, c := range byName[name] {
			if sameArtifact(&c.record, &locked) {
				c.locked, found = true, true
			}
		}
		if !found {
			byName[name] = append(byName[name], &candidate{record: locked, locked: true, priority: len(priorities)})
		}
	}

	for i := range task.PinnedPackages {
		pinned := task.PinnedPackages[i]
		byName[pinned.Name.Normalized()] = []*candidate{{record: pinned, locked: true}}
	}

	for _, cands := range byName {
		sortCandidates(cands)
	}
	return byName
}

func sameArtifact(a, b *domain.RepoDataRecord) bool {
	if a.URL != "" && b.URL != "" {
		return a.URL == b.URL
	}
	return a.Name.Equal(b.Name) && a.Version.Equal(b.Version) && a.Build == b.Build
}
