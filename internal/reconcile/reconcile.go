// Package reconcile computes which profile leaves the resume parser failed
// to determine. A leaf is unknown when its value is the empty string at the
// time the external profile snapshot is observed.
package reconcile

import (
	"github.com/jonathan/resume-autofill/internal/profile"
)

// Set is the set of dotted leaf paths considered unknown for one snapshot.
type Set map[string]struct{}

// IsUnknown reports whether path is in the set.
func (s Set) IsUnknown(path string) bool {
	_, ok := s[path]
	return ok
}

// Paths returns the member paths in schema registry order.
func (s Set) Paths() []string {
	var out []string
	for _, p := range profile.Paths() {
		if s.IsUnknown(p) {
			out = append(out, p)
		}
	}
	return out
}

// Compute walks the fixed schema and flags every leaf whose value is the
// empty string. The walk is registry-driven and fixed-depth; running it twice
// on the same snapshot yields the same set.
func Compute(d *profile.Data) Set {
	s := make(Set)
	for _, p := range profile.Paths() {
		v, err := profile.Get(d, p)
		if err != nil {
			// Registry paths always resolve; this branch is unreachable.
			continue
		}
		if v == "" {
			s[p] = struct{}{}
		}
	}
	return s
}

// Tracker carries the unknown set across observations of the external
// profile. Recomputation happens only when the observed snapshot differs by
// reference identity from the previous one: edits applied locally produce new
// Data values that callers do not feed back through Observe, so markers stay
// until a fresh parse or load replaces the profile. The marker means "the
// parser could not determine this", not "the field is currently empty".
type Tracker struct {
	current *profile.Data
	set     Set
}

// NewTracker returns a tracker with no observed profile and an empty set.
func NewTracker() *Tracker {
	return &Tracker{set: make(Set)}
}

// Observe recomputes the unknown set iff d is a different snapshot from the
// last observed one. It returns the current set either way.
func (t *Tracker) Observe(d *profile.Data) Set {
	if d == nil {
		return t.set
	}
	if d != t.current {
		t.current = d
		t.set = Compute(d)
	}
	return t.set
}

// Unknown returns the set from the most recent observation.
func (t *Tracker) Unknown() Set {
	return t.set
}
