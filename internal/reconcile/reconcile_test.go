package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-autofill/internal/profile"
)

func TestCompute_FlagsEmptyLeavesOnly(t *testing.T) {
	// first_name empty, job_1.company_name filled: exactly the former is
	// flagged.
	d := profile.New()
	d.ApplicantInfo.WorkExperience.Job1.CompanyName = "Acme"

	set := Compute(d)

	assert.True(t, set.IsUnknown("first_name"))
	assert.False(t, set.IsUnknown("work_experience.job_1.company_name"))
}

func TestCompute_AllEmptyProfileFlagsEveryLeaf(t *testing.T) {
	set := Compute(profile.New())

	for _, p := range profile.Paths() {
		assert.True(t, set.IsUnknown(p), "leaf %q should be unknown on the default profile", p)
	}
	assert.Len(t, set, len(profile.Paths()))
}

func TestCompute_FullyFilledProfileFlagsNothing(t *testing.T) {
	d := profile.New()
	for _, p := range profile.Paths() {
		next, err := profile.Apply(d, p, "filled")
		require.NoError(t, err)
		d = next
	}

	set := Compute(d)
	assert.Empty(t, set)
}

func TestCompute_Idempotent(t *testing.T) {
	d := profile.New()
	d.ApplicantInfo.FirstName = "Ada"
	d.ApplicantInfo.Education.EndYear = "2021"
	d.ApplicantInfo.TechnicalExperience.Skill2.SkillName = "Go"

	first := Compute(d)
	second := Compute(d)
	assert.Equal(t, first, second)
}

func TestCompute_IffEmpty(t *testing.T) {
	d := profile.New()
	d.ApplicantInfo.Email = "a@example.com"
	d.ApplicantInfo.WorkExperience.Job2.EndYear = "2020"

	set := Compute(d)
	for _, p := range profile.Paths() {
		v, err := profile.Get(d, p)
		require.NoError(t, err)
		assert.Equal(t, v == "", set.IsUnknown(p), "leaf %q", p)
	}
}

func TestSet_PathsInRegistryOrder(t *testing.T) {
	d := profile.New()
	d.ApplicantInfo.FirstName = "Ada"

	set := Compute(d)
	ordered := set.Paths()

	require.NotEmpty(t, ordered)
	assert.NotContains(t, ordered, "first_name")

	// Order must follow the registry, not map iteration.
	want := make([]string, 0, len(ordered))
	for _, p := range profile.Paths() {
		if p != "first_name" {
			want = append(want, p)
		}
	}
	assert.Equal(t, want, ordered)
}

func TestTracker_StickyAcrossLocalEdits(t *testing.T) {
	tr := NewTracker()

	parsed := profile.New()
	parsed.ApplicantInfo.LastName = "Lovelace"
	set := tr.Observe(parsed)
	require.True(t, set.IsUnknown("first_name"))

	// A local edit fills first_name, but the external snapshot has not been
	// replaced: the highlight must persist.
	edited, err := profile.Apply(parsed, "first_name", "Ada")
	require.NoError(t, err)
	_ = edited

	set = tr.Observe(parsed)
	assert.True(t, set.IsUnknown("first_name"), "local edits must not clear markers")
}

func TestTracker_RecomputesOnNewSnapshot(t *testing.T) {
	tr := NewTracker()

	first := profile.New()
	set := tr.Observe(first)
	require.True(t, set.IsUnknown("first_name"))

	fresh := profile.New()
	fresh.ApplicantInfo.FirstName = "Grace"
	set = tr.Observe(fresh)
	assert.False(t, set.IsUnknown("first_name"), "a new external snapshot recomputes the set")
}

func TestTracker_NilObservationKeepsState(t *testing.T) {
	tr := NewTracker()

	d := profile.New()
	d.ApplicantInfo.FirstName = "Ada"
	before := tr.Observe(d)

	after := tr.Observe(nil)
	assert.Equal(t, before, after)
	assert.Equal(t, before, tr.Unknown())
}
