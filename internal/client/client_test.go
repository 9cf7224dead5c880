package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-autofill/internal/profile"
)

func parsedResponse(t *testing.T, d *profile.Data) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"status": "success", "data": d})
	require.NoError(t, err)
	return raw
}

func TestParseResume_Success(t *testing.T) {
	want := profile.New()
	want.ApplicantInfo.FirstName = "Ada"
	want.ApplicantInfo.WorkExperience.Job1.CompanyName = "Acme"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "resume.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(parsedResponse(t, want))
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	got, err := c.ParseResume(context.Background(), "resume.pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, *want, *got)
}

func TestParseResume_TransportErrorWithJSONDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "Validation failed after 3 tries: missing dates"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	_, err := c.ParseResume(context.Background(), "resume.pdf", strings.NewReader("text"))
	require.Error(t, err)

	transportErr, ok := err.(*TransportError)
	require.True(t, ok, "error should be TransportError type")
	assert.Equal(t, http.StatusUnprocessableEntity, transportErr.StatusCode)
	assert.Equal(t, "Validation failed after 3 tries: missing dates", transportErr.Detail)
	assert.Contains(t, transportErr.Error(), "Validation failed")
}

func TestParseResume_TransportErrorWithHTMLBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html><head><title>502 Bad Gateway</title></head><body>upstream down</body></html>`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	_, err := c.ParseResume(context.Background(), "resume.pdf", strings.NewReader("text"))
	require.Error(t, err)

	transportErr, ok := err.(*TransportError)
	require.True(t, ok)
	assert.Equal(t, "502 Bad Gateway", transportErr.Detail)
}

func TestParseResume_TransportErrorGenericStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	_, err := c.ParseResume(context.Background(), "resume.pdf", strings.NewReader("text"))
	require.Error(t, err)

	transportErr, ok := err.(*TransportError)
	require.True(t, ok)
	assert.Empty(t, transportErr.Detail)
	assert.Contains(t, transportErr.Error(), "HTTP 500")
}

func TestParseResume_ContractViolationWrongShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Shape mismatch: first_name is a number, job_3 is missing.
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {
				"applicant_info": {
					"first_name": 42,
					"work_experience": {"job_1": {}, "job_2": {}},
					"technical_experience": {"skill_1": {}, "skill_2": {}, "skill_3": {}, "skill_4": {}, "skill_5": {}},
					"education": {}
				}
			}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	_, err := c.ParseResume(context.Background(), "resume.pdf", strings.NewReader("text"))
	require.Error(t, err)

	contractErr, ok := err.(*ContractError)
	require.True(t, ok, "error should be ContractError type")
	assert.Contains(t, contractErr.Error(), "ProfileData schema")
}

func TestParseResume_ContractViolationNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "success"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	_, err := c.ParseResume(context.Background(), "resume.pdf", strings.NewReader("text"))
	require.Error(t, err)

	_, ok := err.(*ContractError)
	assert.True(t, ok, "error should be ContractError type")
}

func TestParseResume_ContractViolationNotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<ok/>`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", nil)
	_, err := c.ParseResume(context.Background(), "resume.pdf", strings.NewReader("text"))
	require.Error(t, err)

	_, ok := err.(*ContractError)
	assert.True(t, ok)
}

func TestSubmitProfile_Success(t *testing.T) {
	var received profile.Data
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := profile.New()
	d.ApplicantInfo.Email = "ada@example.com"

	c := New("", srv.URL, nil)
	require.NoError(t, c.SubmitProfile(context.Background(), d))
	assert.Equal(t, *d, received)
}

func TestSubmitProfile_FailureCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInsufficientStorage)
		_, _ = w.Write([]byte(`{"error": "profile quota exceeded"}`))
	}))
	defer srv.Close()

	c := New("", srv.URL, nil)
	err := c.SubmitProfile(context.Background(), profile.New())
	require.Error(t, err)

	transportErr, ok := err.(*TransportError)
	require.True(t, ok)
	assert.Equal(t, "save", transportErr.Op)
	assert.Equal(t, "profile quota exceeded", transportErr.Detail)
}

func TestSubmitProfile_UnconfiguredURL(t *testing.T) {
	c := New("", "", nil)
	err := c.SubmitProfile(context.Background(), profile.New())
	require.Error(t, err)
}

func TestExtractDetail_Truncation(t *testing.T) {
	long := strings.Repeat("very long detail ", 50)
	raw, err := json.Marshal(map[string]string{"detail": long})
	require.NoError(t, err)

	detail := extractDetail(raw, "application/json")
	assert.LessOrEqual(t, len(detail), maxDetailLen)
	assert.True(t, strings.HasSuffix(detail, "..."))
}
