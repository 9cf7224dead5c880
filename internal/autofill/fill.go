package autofill

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-autofill/internal/profile"
)

// DefaultTimeout bounds one whole page session.
const DefaultTimeout = 60 * time.Second

// Options configures the browser session.
type Options struct {
	Timeout time.Duration
	Verbose bool
}

// FillResult records what happened to one matched field.
type FillResult struct {
	Path     string `json:"path"`
	Selector string `json:"selector"`
	Status   string `json:"status"` // "filled", "skipped", "failed"
	Error    string `json:"error,omitempty"`
}

// scanScript enumerates every form element on the page with the metadata the
// matcher scores: tag, type, id, name, placeholder, and the label resolved
// via label[for] with a parent-text fallback.
const scanScript = `(() => {
	const labelFor = (el) => {
		if (el.id) {
			const l = document.querySelector('label[for="' + el.id + '"]');
			if (l) return l.innerText;
		}
		const p = el.parentElement;
		return p ? (p.innerText || "").split("\n")[0] : "";
	};
	const out = [];
	for (const tag of ["input", "select", "textarea", "button"]) {
		for (const el of document.getElementsByTagName(tag)) {
			out.push({
				tag: tag,
				type: el.getAttribute("type") || "text",
				id: el.id || "",
				name: el.getAttribute("name") || "",
				placeholder: el.getAttribute("placeholder") || "",
				label: labelFor(el),
			});
		}
	}
	return out;
})()`

// Fill opens pageURL in a headless browser, matches its form fields against
// the profile, and types the non-empty values in. Unmatched fields are
// ignored; matched fields with no stored value are reported as skipped.
// Requires Chrome/Chromium to be installed on the system.
func Fill(ctx context.Context, pageURL string, d *profile.Data, opts *Options) ([]FillResult, error) {
	timeout := DefaultTimeout
	verbose := false
	if opts != nil {
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		verbose = opts.Verbose
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	fields, err := scan(browserCtx, pageURL, verbose)
	if err != nil {
		return nil, err
	}

	var results []FillResult
	for _, f := range fields {
		if !fillable(f) {
			continue
		}
		path, ok := Match(f)
		if !ok {
			continue
		}

		// Every matched path comes from the keyword table, which the tests
		// pin to the accessor registry.
		value, err := profile.Get(d, path)
		if err != nil {
			return nil, err
		}

		sel := selectorFor(f)
		if sel == "" {
			results = append(results, FillResult{Path: path, Status: "failed", Error: "element has no id or name"})
			continue
		}
		if value == "" {
			results = append(results, FillResult{Path: path, Selector: sel, Status: "skipped"})
			continue
		}

		err = chromedp.Run(browserCtx,
			chromedp.Clear(sel, chromedp.ByQuery),
			chromedp.SendKeys(sel, value, chromedp.ByQuery),
		)
		if err != nil {
			results = append(results, FillResult{Path: path, Selector: sel, Status: "failed", Error: err.Error()})
			continue
		}
		if verbose {
			log.Printf("[FILL] %s <- %s", sel, path)
		}
		results = append(results, FillResult{Path: path, Selector: sel, Status: "filled"})
	}

	return results, nil
}

// Fields opens pageURL and returns its form-field metadata without touching
// anything, for inspecting how a page will be matched.
func Fields(ctx context.Context, pageURL string, opts *Options) ([]FormField, error) {
	timeout := DefaultTimeout
	verbose := false
	if opts != nil {
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		verbose = opts.Verbose
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	return scan(browserCtx, pageURL, verbose)
}

func scan(browserCtx context.Context, pageURL string, verbose bool) ([]FormField, error) {
	if verbose {
		log.Printf("[FILL] Opening: %s", pageURL)
	}

	var fields []FormField
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(scanScript, &fields),
	)
	if err != nil {
		return nil, fmt.Errorf("form scan failed: %w", err)
	}
	if verbose {
		log.Printf("[FILL] Found %d form elements", len(fields))
	}
	return fields, nil
}

// fillable reports whether typing into the element makes sense.
func fillable(f FormField) bool {
	switch f.Tag {
	case "textarea":
		return true
	case "input":
	default:
		return false
	}
	switch f.Type {
	case "submit", "button", "file", "hidden", "checkbox", "radio", "image", "reset":
		return false
	}
	return true
}

// selectorFor builds a CSS selector for the element, preferring its id.
func selectorFor(f FormField) string {
	if f.ID != "" {
		return "#" + f.ID
	}
	if f.Name != "" {
		return fmt.Sprintf("%s[name=%q]", f.Tag, f.Name)
	}
	return ""
}
