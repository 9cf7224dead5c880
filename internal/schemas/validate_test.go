package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-autofill/internal/profile"
)

func TestValidateProfileDocument_DefaultProfile(t *testing.T) {
	raw, err := json.Marshal(profile.New())
	require.NoError(t, err)

	assert.NoError(t, ValidateProfileDocument(raw))
}

func TestValidateProfileDocument_FullyFilledProfile(t *testing.T) {
	// The schema and the accessor registry must agree on every leaf.
	d := profile.New()
	for _, p := range profile.Paths() {
		next, err := profile.Apply(d, p, "filled")
		require.NoError(t, err)
		d = next
	}

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NoError(t, ValidateProfileDocument(raw))
}

func TestValidateProfileDocument_MissingApplicantInfo(t *testing.T) {
	err := ValidateProfileDocument([]byte(`{}`))
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "applicant_info")
}

func TestValidateProfileDocument_NonStringLeaf(t *testing.T) {
	doc := `{
		"applicant_info": {
			"first_name": 42,
			"work_experience": {"job_1": {}, "job_2": {}, "job_3": {}},
			"technical_experience": {"skill_1": {}, "skill_2": {}, "skill_3": {}, "skill_4": {}, "skill_5": {}},
			"education": {}
		}
	}`
	err := ValidateProfileDocument([]byte(doc))
	require.Error(t, err)

	_, ok := err.(*ValidationError)
	assert.True(t, ok, "error should be ValidationError type")
}

func TestValidateProfileDocument_StrayKeyRejected(t *testing.T) {
	doc := `{
		"applicant_info": {
			"nickname": "unexpected",
			"work_experience": {"job_1": {}, "job_2": {}, "job_3": {}},
			"technical_experience": {"skill_1": {}, "skill_2": {}, "skill_3": {}, "skill_4": {}, "skill_5": {}},
			"education": {}
		}
	}`
	err := ValidateProfileDocument([]byte(doc))
	require.Error(t, err)
}

func TestValidateProfileDocument_MissingJobSlot(t *testing.T) {
	doc := `{
		"applicant_info": {
			"work_experience": {"job_1": {}, "job_2": {}},
			"technical_experience": {"skill_1": {}, "skill_2": {}, "skill_3": {}, "skill_4": {}, "skill_5": {}},
			"education": {}
		}
	}`
	err := ValidateProfileDocument([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job_3")
}

func TestValidateProfileDocument_OmittedLeafKeyRejected(t *testing.T) {
	// Absence is the empty string, never a missing key: a parser that drops
	// keys outright violates the contract even though Go decoding would
	// zero-fill them.
	var doc map[string]any
	raw, err := json.Marshal(profile.New())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &doc))

	info := doc["applicant_info"].(map[string]any)
	delete(info, "last_name")

	raw, err = json.Marshal(doc)
	require.NoError(t, err)
	err = ValidateProfileDocument(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last_name")
}

func TestValidateProfileDocument_OmittedJobFieldRejected(t *testing.T) {
	var doc map[string]any
	raw, err := json.Marshal(profile.New())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &doc))

	info := doc["applicant_info"].(map[string]any)
	job2 := info["work_experience"].(map[string]any)["job_2"].(map[string]any)
	delete(job2, "description")

	raw, err = json.Marshal(doc)
	require.NoError(t, err)
	require.Error(t, ValidateProfileDocument(raw))
}

func TestValidateJSONString_InvalidDocument(t *testing.T) {
	err := ValidateJSONString(ProfileSchema(), "{ not json }")
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "error should be SchemaLoadError type")
}

func TestProfileSchema_Embedded(t *testing.T) {
	assert.Contains(t, ProfileSchema(), `"applicant_info"`)
}
