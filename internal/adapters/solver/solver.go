// Package solver implements the Solver port with a deterministic backtracking search.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Solver = (*Backtracking)(nil)

// Backtracking implements ports.Solver. It explores candidates in preference order
// (highest version, then build number, then timestamp, then channel order) and
// backtracks on conflicts, so the first complete assignment found is the preferred one.
type Backtracking struct{}

// NewBacktracking creates a Backtracking solver.
func NewBacktracking() *Backtracking {
	return &Backtracking{}
}

type requirement struct {
	spec domain.MatchSpec
	from string
}

type constraint struct {
	spec domain.MatchSpec
	from string
}

type problem struct {
	ctx         context.Context
	candidates  map[string][]*candidate
	assigned    map[string]*candidate
	constraints map[string][]constraint

	reason      string
	reasonDepth int
}

// Solve returns one record per selected package, dependencies first. Virtual packages are omitted.
func (s *Backtracking) Solve(ctx context.Context, task domain.SolverTask) ([]domain.RepoDataRecord, error) {
	if task.Timeout != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *task.Timeout)
		defer cancel()
	}

	roots := make([]requirement, 0, len(task.Specs))
	for _, spec := range task.Specs {
		if !spec.HasName() {
			return nil, zerr.With(zerr.Wrap(domain.ErrSolverFailed, "match spec has no package name"), "spec", spec.String())
		}
		roots = append(roots, requirement{spec: spec})
	}

	p := &problem{
		ctx:         ctx,
		candidates:  buildCandidates(&task),
		assigned:    make(map[string]*candidate),
		constraints: make(map[string][]constraint),
		reasonDepth: -1,
	}

	ok, err := p.solve(roots)
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrSolverFailed, err), "solver interrupted")
	}
	if !ok {
		reason := p.reason
		if reason == "" {
			reason = "no selection satisfies the request"
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsatisfiable, reason), "specs", specStrings(task.Specs))
	}
	return p.order(task.Specs), nil
}

func (p *problem) solve(pending []requirement) (bool, error) {
	if err := p.ctx.Err(); err != nil {
		return false, err
	}
	if len(pending) == 0 {
		return true, nil
	}

	req, rest := pending[0], pending[1:]
	name := req.spec.Name.Normalized()

	if current, ok := p.assigned[name]; ok {
		if !current.matches(req.spec) {
			p.fail(fmt.Sprintf("%s requires %s, but %s is selected", origin(req.from), req.spec, current.describe()))
			return false, nil
		}
		return p.solve(rest)
	}

	cands := p.candidates[name]
	if len(cands) == 0 {
		p.fail(fmt.Sprintf("nothing provides %s needed by %s", req.spec, origin(req.from)))
		return false, nil
	}

	tried := false
	for _, c := range cands {
		if !c.matches(req.spec) {
			continue
		}
		c.parse()
		if c.invalid || !p.admissible(name, c) {
			continue
		}
		tried = true

		undo := p.assign(name, c)
		next := make([]requirement, 0, len(rest)+len(c.depends))
		next = append(next, rest...)
		for _, dep := range c.depends {
			next = append(next, requirement{spec: dep, from: c.describe()})
		}

		ok, err := p.solve(next)
		if err != nil || ok {
			return ok, err
		}
		undo()
	}

	if !tried {
		p.fail(fmt.Sprintf("no candidate for %s needed by %s satisfies the selected constraints", req.spec, origin(req.from)))
	}
	return false, nil
}

// admissible checks c against constraints recorded for name and c's own constraints
// against the packages already selected.
func (p *problem) admissible(name string, c *candidate) bool {
	for _, con := range p.constraints[name] {
		if !c.matches(con.spec) {
			return false
		}
	}
	for _, con := range c.constrains {
		if other, ok := p.assigned[con.Name.Normalized()]; ok && !other.matches(con) {
			return false
		}
	}
	return true
}

func (p *problem) assign(name string, c *candidate) func() {
	p.assigned[name] = c

	type mark struct {
		name string
		size int
	}
	marks := make([]mark, 0, len(c.constrains))
	for _, con := range c.constrains {
		target := con.Name.Normalized()
		marks = append(marks, mark{name: target, size: len(p.constraints[target])})
		p.constraints[target] = append(p.constraints[target], constraint{spec: con, from: c.describe()})
	}

	return func() {
		delete(p.assigned, name)
		for i := len(marks) - 1; i >= 0; i-- {
			m := marks[i]
			if m.size == 0 {
				delete(p.constraints, m.name)
				continue
			}
			p.constraints[m.name] = p.constraints[m.name][:m.size]
		}
	}
}

// fail keeps the reason found deepest in the search, which names the most specific conflict.
func (p *problem) fail(reason string) {
	if depth := len(p.assigned); depth > p.reasonDepth {
		p.reason, p.reasonDepth = reason, depth
	}
}

// order lists the selected records with dependencies before dependents.
func (p *problem) order(roots []domain.MatchSpec) []domain.RepoDataRecord {
	visited := make(map[string]bool, len(p.assigned))
	out := make([]domain.RepoDataRecord, 0, len(p.assigned))

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		c, ok := p.assigned[name]
		if !ok {
			return
		}
		for _, dep := range c.depends {
			visit(dep.Name.Normalized())
		}
		if !c.virtual {
			out = append(out, c.record)
		}
	}

	for _, spec := range roots {
		visit(spec.Name.Normalized())
	}

	rest := make([]string, 0)
	for name := range p.assigned {
		if !visited[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		visit(name)
	}
	return out
}

func origin(from string) string {
	if from == "" {
		return "the request"
	}
	return from
}

func specStrings(specs []domain.MatchSpec) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.String())
	}
	return out
}
