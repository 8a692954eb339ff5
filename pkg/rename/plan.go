package rename

import (
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 📄 Candidate is one filesystem entry considered for renaming. Read-only,
// produced by Collect.
type Candidate struct {
	Path string // full path as collected
	Dir  string // directory portion of Path
	Name string // base name including extension
}

// NewCandidate splits path into a Candidate.
func NewCandidate(path string) Candidate {
	return Candidate{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: filepath.Base(path),
	}
}

// 📋 PlanEntry maps one candidate to its proposed name. SequenceIndex is the
// zero-based position in traversal order; it only carries meaning when the
// numbering rule is enabled.
type PlanEntry struct {
	Candidate     Candidate
	ProposedName  string
	ProposedPath  string
	SequenceIndex int
}

// Unchanged reports whether the entry is a no-op (proposed name equals the
// original name).
func (e PlanEntry) Unchanged() bool {
	return e.ProposedName == e.Candidate.Name
}

// 📚 Plan is the full set of proposed renames for one invocation, in
// traversal order, together with the timestamp the date-stamp rule used.
// Proposed paths are globally unique within a plan.
type Plan struct {
	Entries []PlanEntry
	Now     time.Time
}

// Changed returns how many entries actually rename something.
func (p *Plan) Changed() int {
	n := 0
	for _, e := range p.Entries {
		if !e.Unchanged() {
			n++
		}
	}
	return n
}

// 🏭 BuildPlan computes a rename plan for the given candidates. It is a pure
// function of its inputs: same candidates (in the same order), same rules and
// same now produce a byte-identical plan. No filesystem access happens here.
//
// An empty candidate list yields an empty plan. A RuleSet with nothing
// enabled yields an identity plan: every proposed name equals the original,
// which is still reported rather than silently suppressed.
func BuildPlan(candidates []Candidate, rules RuleSet, now time.Time) (*Plan, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	plan := &Plan{
		Entries: make([]PlanEntry, 0, len(candidates)),
		Now:     now,
	}

	// Proposed paths must not collide with each other. Track the first
	// claimant of each target so the error can name both sides.
	claimed := make(map[string]string, len(candidates))

	for i, cand := range candidates {
		name := proposeName(cand.Name, rules, i, now)
		target := filepath.Join(cand.Dir, name)

		key := normalizePath(target)
		if first, ok := claimed[key]; ok {
			return nil, errors.WithStack(&DuplicateTargetError{
				Target: target,
				First:  first,
				Second: cand.Path,
			})
		}
		claimed[key] = cand.Path

		plan.Entries = append(plan.Entries, PlanEntry{
			Candidate:     cand,
			ProposedName:  name,
			ProposedPath:  target,
			SequenceIndex: i,
		})
	}

	return plan, nil
}

// normalizePath folds case on filesystems that ignore it, so that two names
// differing only in case still count as a collision there.
func normalizePath(p string) string {
	p = filepath.Clean(p)
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.ToLower(p)
	}
	return p
}
