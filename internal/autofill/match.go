// Package autofill fills job-application forms from the stored profile. A
// heuristic matcher maps form-field metadata to profile paths; the engine
// drives a headless browser to enumerate fields and type the values in.
package autofill

import (
	"strings"
)

// FormField is the metadata scraped for one form element.
type FormField struct {
	Tag         string `json:"tag"`
	Type        string `json:"type"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Placeholder string `json:"placeholder"`
	Label       string `json:"label"`
}

const (
	// substringBoost is added when a keyword appears verbatim in the
	// field's combined text.
	substringBoost = 0.5
	// matchThreshold is the minimum confidence to report a match at all.
	matchThreshold = 0.6
)

// fieldKeywords maps profile paths to the phrases that identify them on a
// form. Order matters: earlier entries win ties. Only the flat personal
// fields are matched; job and skill slots are too ambiguous to place from
// label text alone.
var fieldKeywords = []struct {
	path  string
	words []string
}{
	{"first_name", []string{"first name", "given name", "fname", "firstname", "first"}},
	{"last_name", []string{"last name", "surname", "family name", "lname", "lastname"}},
	{"email", []string{"email", "e-mail address", "email address", "emailaddress"}},
	{"phone", []string{"phone", "mobile", "cell", "contact number", "phonenumber"}},
	{"address", []string{"street address", "address line", "street"}},
	{"city", []string{"city", "town"}},
	{"state", []string{"state", "province", "region"}},
	{"zip_code", []string{"zip", "zip code", "postal code", "zipcode", "postcode"}},
	{"country", []string{"country"}},
	{"linkedin", []string{"linkedin", "linkedin profile", "linkedin url"}},
	{"github", []string{"github", "github profile", "github url"}},
	{"website", []string{"website", "portfolio", "personal site"}},
	{"desired_salary", []string{"salary", "desired salary", "expected salary", "compensation"}},
}

// Match maps one form field to a profile path, or reports no confident
// match. The field's label, placeholder and name are pooled into one search
// text; each candidate keyword is scored by string similarity with a boost
// for verbatim containment, and the best score must clear the confidence
// threshold.
func Match(f FormField) (string, bool) {
	blob := strings.ToLower(strings.TrimSpace(f.Label + " " + f.Placeholder + " " + f.Name))
	if blob == "" {
		return "", false
	}

	var bestPath string
	var bestScore float64
	for _, entry := range fieldKeywords {
		for _, word := range entry.words {
			score := similarity(word, blob)
			if strings.Contains(blob, word) {
				score += substringBoost
			}
			if score > bestScore {
				bestScore = score
				bestPath = entry.path
			}
		}
	}

	if bestScore <= matchThreshold {
		return "", false
	}
	return bestPath, true
}

// similarity is the classic 2*M/T sequence-match ratio, with M the length
// of the longest common subsequence and T the total length of both strings.
func similarity(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return 2 * float64(prev[len(b)]) / float64(len(a)+len(b))
}
