// Package profile defines the canonical candidate profile schema and the
// dotted-path addressing model over it.
//
//nolint:revive // profile is a standard Go package name pattern
package profile

// Data is the top-level profile document exchanged with the parser service
// and persisted by the store. It wraps exactly one ApplicantInfo record.
type Data struct {
	ApplicantInfo ApplicantInfo `json:"applicant_info"`
}

// ApplicantInfo is the canonical nested record describing one candidate.
// Every leaf is a string; an unknown value is the empty string, never a
// missing key. Nested containers are always fully populated, so path
// traversal never fails structurally.
type ApplicantInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Email string `json:"email"`
	Phone string `json:"phone"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`

	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`

	DesiredSalary       string `json:"desired_salary"`
	AuthorizedToWork    string `json:"authorized_to_work"`
	RequiresSponsorship string `json:"requires_visa_sponsorship"`

	Gender           string `json:"gender"`
	RaceEthnicity    string `json:"race_ethnicity"`
	VeteranStatus    string `json:"veteran_status"`
	DisabilityStatus string `json:"disability_status"`

	WorkExperience      WorkExperience      `json:"work_experience"`
	TechnicalExperience TechnicalExperience `json:"technical_experience"`
	Education           Education           `json:"education"`
}

// WorkExperience holds exactly three fixed job slots. Slots are fixed
// positions, not a dynamic list: there is no add or remove.
type WorkExperience struct {
	Job1 Job `json:"job_1"`
	Job2 Job `json:"job_2"`
	Job3 Job `json:"job_3"`
}

// Job is one work-experience slot.
type Job struct {
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	StartMonth  string `json:"start_month"`
	StartYear   string `json:"start_year"`
	EndMonth    string `json:"end_month"`
	EndYear     string `json:"end_year"`
	Description string `json:"description"`
}

// TechnicalExperience holds exactly five fixed skill slots.
type TechnicalExperience struct {
	Skill1 Skill `json:"skill_1"`
	Skill2 Skill `json:"skill_2"`
	Skill3 Skill `json:"skill_3"`
	Skill4 Skill `json:"skill_4"`
	Skill5 Skill `json:"skill_5"`
}

// Skill is one skill slot with a single name field.
type Skill struct {
	SkillName string `json:"skill_name"`
}

// Education is the single education sub-record.
type Education struct {
	StartMonth string `json:"start_month"`
	StartYear  string `json:"start_year"`
	EndMonth   string `json:"end_month"`
	EndYear    string `json:"end_year"`
}

// New returns the all-empty default profile. Every leaf is the empty string.
func New() *Data {
	return &Data{}
}

// Clone returns a full deep copy of d. The schema depth is bounded and all
// containers are value types, so a struct copy is a deep copy.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
