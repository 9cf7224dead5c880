package profile

import "fmt"

// UnknownPathError indicates a dotted path that does not address any leaf in
// the fixed schema. The schema is closed-world: an out-of-schema path is a
// programming error in the caller, never a reason to create a stray key.
type UnknownPathError struct {
	Path string
}

func (e *UnknownPathError) Error() string {
	return fmt.Sprintf("unknown profile path: %q", e.Path)
}

// accessor pairs a getter and setter for one addressable leaf.
type accessor struct {
	get func(a *ApplicantInfo) string
	set func(a *ApplicantInfo, v string)
}

// entry binds a dotted path to its accessor. The registry is the single
// source of truth for leaf addressing: the reconciler, the mutation applier
// and the JSON schema all enumerate the same leaves.
type entry struct {
	path string
	acc  accessor
}

var registry = buildRegistry()

var registryIndex = func() map[string]accessor {
	idx := make(map[string]accessor, len(registry))
	for _, e := range registry {
		idx[e.path] = e.acc
	}
	return idx
}()

func buildRegistry() []entry {
	entries := scalarEntries()
	entries = append(entries, jobEntries("work_experience.job_1", func(a *ApplicantInfo) *Job { return &a.WorkExperience.Job1 })...)
	entries = append(entries, jobEntries("work_experience.job_2", func(a *ApplicantInfo) *Job { return &a.WorkExperience.Job2 })...)
	entries = append(entries, jobEntries("work_experience.job_3", func(a *ApplicantInfo) *Job { return &a.WorkExperience.Job3 })...)
	entries = append(entries, skillEntry("technical_experience.skill_1", func(a *ApplicantInfo) *Skill { return &a.TechnicalExperience.Skill1 }))
	entries = append(entries, skillEntry("technical_experience.skill_2", func(a *ApplicantInfo) *Skill { return &a.TechnicalExperience.Skill2 }))
	entries = append(entries, skillEntry("technical_experience.skill_3", func(a *ApplicantInfo) *Skill { return &a.TechnicalExperience.Skill3 }))
	entries = append(entries, skillEntry("technical_experience.skill_4", func(a *ApplicantInfo) *Skill { return &a.TechnicalExperience.Skill4 }))
	entries = append(entries, skillEntry("technical_experience.skill_5", func(a *ApplicantInfo) *Skill { return &a.TechnicalExperience.Skill5 }))
	entries = append(entries, educationEntries()...)
	return entries
}

// field builds an accessor from a pointer selector.
func field(sel func(a *ApplicantInfo) *string) accessor {
	return accessor{
		get: func(a *ApplicantInfo) string { return *sel(a) },
		set: func(a *ApplicantInfo, v string) { *sel(a) = v },
	}
}

func scalarEntries() []entry {
	return []entry{
		{"first_name", field(func(a *ApplicantInfo) *string { return &a.FirstName })},
		{"last_name", field(func(a *ApplicantInfo) *string { return &a.LastName })},
		{"email", field(func(a *ApplicantInfo) *string { return &a.Email })},
		{"phone", field(func(a *ApplicantInfo) *string { return &a.Phone })},
		{"address", field(func(a *ApplicantInfo) *string { return &a.Address })},
		{"city", field(func(a *ApplicantInfo) *string { return &a.City })},
		{"state", field(func(a *ApplicantInfo) *string { return &a.State })},
		{"zip_code", field(func(a *ApplicantInfo) *string { return &a.ZipCode })},
		{"country", field(func(a *ApplicantInfo) *string { return &a.Country })},
		{"linkedin", field(func(a *ApplicantInfo) *string { return &a.LinkedIn })},
		{"github", field(func(a *ApplicantInfo) *string { return &a.GitHub })},
		{"website", field(func(a *ApplicantInfo) *string { return &a.Website })},
		{"desired_salary", field(func(a *ApplicantInfo) *string { return &a.DesiredSalary })},
		{"authorized_to_work", field(func(a *ApplicantInfo) *string { return &a.AuthorizedToWork })},
		{"requires_visa_sponsorship", field(func(a *ApplicantInfo) *string { return &a.RequiresSponsorship })},
		{"gender", field(func(a *ApplicantInfo) *string { return &a.Gender })},
		{"race_ethnicity", field(func(a *ApplicantInfo) *string { return &a.RaceEthnicity })},
		{"veteran_status", field(func(a *ApplicantInfo) *string { return &a.VeteranStatus })},
		{"disability_status", field(func(a *ApplicantInfo) *string { return &a.DisabilityStatus })},
	}
}

func jobEntries(prefix string, sel func(a *ApplicantInfo) *Job) []entry {
	jf := func(pick func(j *Job) *string) accessor {
		return field(func(a *ApplicantInfo) *string { return pick(sel(a)) })
	}
	return []entry{
		{prefix + ".company_name", jf(func(j *Job) *string { return &j.CompanyName })},
		{prefix + ".job_title", jf(func(j *Job) *string { return &j.JobTitle })},
		{prefix + ".start_month", jf(func(j *Job) *string { return &j.StartMonth })},
		{prefix + ".start_year", jf(func(j *Job) *string { return &j.StartYear })},
		{prefix + ".end_month", jf(func(j *Job) *string { return &j.EndMonth })},
		{prefix + ".end_year", jf(func(j *Job) *string { return &j.EndYear })},
		{prefix + ".description", jf(func(j *Job) *string { return &j.Description })},
	}
}

func skillEntry(prefix string, sel func(a *ApplicantInfo) *Skill) entry {
	return entry{prefix + ".skill_name", field(func(a *ApplicantInfo) *string { return &sel(a).SkillName })}
}

func educationEntries() []entry {
	return []entry{
		{"education.start_month", field(func(a *ApplicantInfo) *string { return &a.Education.StartMonth })},
		{"education.start_year", field(func(a *ApplicantInfo) *string { return &a.Education.StartYear })},
		{"education.end_month", field(func(a *ApplicantInfo) *string { return &a.Education.EndMonth })},
		{"education.end_year", field(func(a *ApplicantInfo) *string { return &a.Education.EndYear })},
	}
}

// Paths returns every addressable leaf path in registry order. The order is
// deterministic: flat scalars first, then job slots, skill slots, education.
func Paths() []string {
	paths := make([]string, len(registry))
	for i, e := range registry {
		paths[i] = e.path
	}
	return paths
}

// Get returns the value of the leaf addressed by path.
func Get(d *Data, path string) (string, error) {
	acc, ok := registryIndex[path]
	if !ok {
		return "", &UnknownPathError{Path: path}
	}
	return acc.get(&d.ApplicantInfo), nil
}
