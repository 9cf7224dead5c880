package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-autofill/internal/profile"
	"github.com/jonathan/resume-autofill/internal/schemas"
)

// DefaultTimeout is the default HTTP request timeout. Parsing runs an LLM on
// the server side, so the window is generous.
const DefaultTimeout = 60 * time.Second

// maxDetailLen caps server-supplied detail strings before they reach a user.
const maxDetailLen = 300

// Options configures the boundary client.
type Options struct {
	Timeout time.Duration
}

// Client talks to the resume parser service and the profile persistence
// endpoint.
type Client struct {
	parserURL string
	submitURL string
	http      *http.Client
}

// New creates a boundary client. Either URL may be empty when the
// corresponding boundary is unused.
func New(parserURL, submitURL string, opts *Options) *Client {
	timeout := DefaultTimeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	return &Client{
		parserURL: parserURL,
		submitURL: submitURL,
		http:      &http.Client{Timeout: timeout},
	}
}

// parseEnvelope is the parser service response shape:
// {"status": "success", "data": {...}}.
type parseEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// ParseResume uploads one resume file to the parser service and returns the
// parsed profile. The response document is validated against the ProfileData
// schema before decoding; any mismatch is a ContractError.
func (c *Client) ParseResume(ctx context.Context, filename string, r io.Reader) (*profile.Data, error) {
	if c.parserURL == "" {
		return nil, &TransportError{Op: "parse", Cause: fmt.Errorf("parser URL is not configured")}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", filename)
	if err != nil {
		return nil, &TransportError{Op: "parse", Cause: fmt.Errorf("failed to build upload: %w", err)}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &TransportError{Op: "parse", Cause: fmt.Errorf("failed to read resume file: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return nil, &TransportError{Op: "parse", Cause: fmt.Errorf("failed to finalize upload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.parserURL, &body)
	if err != nil {
		return nil, &TransportError{Op: "parse", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "parse", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "parse", StatusCode: resp.StatusCode, Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Op:         "parse",
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(raw, resp.Header.Get("Content-Type")),
		}
	}

	var env parseEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ContractError{Message: "response is not valid JSON", Cause: err}
	}
	if len(env.Data) == 0 {
		return nil, &ContractError{Message: "response has no data document"}
	}

	if err := schemas.ValidateProfileDocument(env.Data); err != nil {
		return nil, &ContractError{Message: "data does not match the ProfileData schema", Cause: err}
	}

	var d profile.Data
	if err := json.Unmarshal(env.Data, &d); err != nil {
		return nil, &ContractError{Message: "data could not be decoded", Cause: err}
	}
	return &d, nil
}

// SubmitProfile POSTs the full profile as JSON to the persistence endpoint.
// Any acknowledging 2xx response is success.
func (c *Client) SubmitProfile(ctx context.Context, d *profile.Data) error {
	if c.submitURL == "" {
		return &TransportError{Op: "save", Cause: fmt.Errorf("submit URL is not configured")}
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return &TransportError{Op: "save", Cause: fmt.Errorf("failed to marshal profile: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.submitURL, bytes.NewReader(raw))
	if err != nil {
		return &TransportError{Op: "save", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "save", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &TransportError{
			Op:         "save",
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(body, resp.Header.Get("Content-Type")),
		}
	}
	return nil
}

// extractDetail pulls a human-readable message out of an error response
// body: a JSON "detail" or "error" field when present, else the title or
// text of an HTML error page, else empty so the caller falls back to a
// status-derived message.
func extractDetail(body []byte, contentType string) string {
	if len(body) == 0 {
		return ""
	}

	var jsonBody struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &jsonBody); err == nil {
		if jsonBody.Detail != "" {
			return truncateDetail(jsonBody.Detail)
		}
		if jsonBody.Error != "" {
			return truncateDetail(jsonBody.Error)
		}
		return ""
	}

	if strings.Contains(contentType, "html") || bytes.Contains(body, []byte("<html")) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return ""
		}
		if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
			return truncateDetail(title)
		}
		return truncateDetail(strings.TrimSpace(doc.Find("body").Text()))
	}

	return ""
}

func truncateDetail(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxDetailLen {
		return s[:maxDetailLen-3] + "..."
	}
	return s
}
