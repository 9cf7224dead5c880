package autofill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-autofill/internal/profile"
)

func TestMatch_PersonalFields(t *testing.T) {
	cases := []struct {
		name  string
		field FormField
		want  string
	}{
		{"label given name", FormField{Label: "Given Name", Placeholder: "Enter here", Name: "user_fname"}, "first_name"},
		{"label first name", FormField{Label: "First Name"}, "first_name"},
		{"surname", FormField{Label: "Surname", Name: "lname"}, "last_name"},
		{"email placeholder", FormField{Placeholder: "Email address"}, "email"},
		{"phone name attr", FormField{Name: "phonenumber"}, "phone"},
		{"city", FormField{Label: "City"}, "city"},
		{"postal code", FormField{Label: "Postal Code", Name: "zip"}, "zip_code"},
		{"linkedin url", FormField{Label: "LinkedIn Profile URL"}, "linkedin"},
		{"github", FormField{Placeholder: "github.com/you"}, "github"},
		{"salary", FormField{Label: "Expected salary"}, "desired_salary"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Match(tc.field)
			require.True(t, ok, "expected a match")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatch_NoConfidentMatch(t *testing.T) {
	cases := []struct {
		name  string
		field FormField
	}{
		{"empty metadata", FormField{}},
		{"unrelated label", FormField{Label: "How did you hear about us?", Name: "referral_source_xyz"}},
		{"opaque name", FormField{Name: "q17_b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Match(tc.field)
			assert.False(t, ok)
		})
	}
}

func TestMatch_KeywordTableCoversOnlyRegistryPaths(t *testing.T) {
	// Every matchable path must be addressable, or the engine would fail at
	// fill time on its own table.
	known := map[string]bool{}
	for _, p := range profile.Paths() {
		known[p] = true
	}
	for _, entry := range fieldKeywords {
		assert.True(t, known[entry.path], "keyword table names unknown path %q", entry.path)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	assert.Equal(t, 1.0, similarity("email", "email"))
	assert.Equal(t, 0.0, similarity("abc", "xyz"))
	assert.Equal(t, 0.0, similarity("", ""))

	s := similarity("first name", "your first name please")
	assert.Greater(t, s, 0.0)
	assert.LessOrEqual(t, s, 1.0)
}
