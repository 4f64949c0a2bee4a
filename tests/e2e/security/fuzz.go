package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/classavo-io/classavo-e2e/tests/e2e/helpers"
	"github.com/classavo-io/classavo-e2e/tests/e2e/pages"
)

// FieldConfig describes one guarded form field so the fuzz driver can probe
// it without per-field duplication.
type FieldConfig struct {
	// Name is the logical field name used in diagnostics.
	Name string
	// Selector locates the input under attack.
	Selector string
	// Submit locates the control that submits the enclosing form.
	Submit string
	// ErrorSelector locates the field's designated error container.
	ErrorSelector string
	// ExpectedError is the canonical rejection wording for well-formed but
	// invalid input; the validation suites assert it, the fuzz driver only
	// requires that rejection happened.
	ExpectedError string
	// Aux maps selectors of sibling inputs to values that must be present
	// for the form to submit at all.
	Aux map[string]string
	// RequiresAuth means the field is only reachable behind a login.
	RequiresAuth bool
	// RequiresReset forces a session reset before each payload.
	RequiresReset bool
}

// FieldConfigs enumerates every guarded field of the platform.
var FieldConfigs = map[string]FieldConfig{
	"loginEmail": {
		Name:          "loginEmail",
		Selector:      pages.SelectorLoginEmail,
		Submit:        pages.SelectorLoginSubmit,
		ErrorSelector: pages.SelectorLoginError,
		ExpectedError: "Invalid email or password.",
		Aux:           map[string]string{pages.SelectorLoginPassword: "password123"},
		RequiresReset: true,
	},
	"loginPassword": {
		Name:          "loginPassword",
		Selector:      pages.SelectorLoginPassword,
		Submit:        pages.SelectorLoginSubmit,
		ErrorSelector: pages.SelectorLoginError,
		ExpectedError: "Invalid email or password.",
		Aux:           map[string]string{pages.SelectorLoginEmail: "student@classavo.com"},
		RequiresReset: true,
	},
	"courseCode": {
		Name:          "courseCode",
		Selector:      pages.SelectorCourseCode,
		Submit:        pages.SelectorCourseSubmit,
		ErrorSelector: pages.SelectorCourseError,
		ExpectedError: "Invalid course code. Please check with your instructor.",
		Aux:           map[string]string{pages.SelectorCoursePassword: "intro2023"},
		RequiresAuth:  true,
	},
	"coursePassword": {
		Name:          "coursePassword",
		Selector:      pages.SelectorCoursePassword,
		Submit:        pages.SelectorCourseSubmit,
		ErrorSelector: pages.SelectorCourseError,
		ExpectedError: "Incorrect course password.",
		Aux:           map[string]string{pages.SelectorCourseCode: "CS101"},
		RequiresAuth:  true,
	},
}

// Options tune one fuzz run.
type Options struct {
	// Sample keeps every 3rd payload to bound execution time. Never a CI
	// default: sampling silently narrows the "for all payloads" guarantee.
	Sample bool
	// AuthEmail/AuthPassword satisfy RequiresAuth preconditions.
	AuthEmail    string
	AuthPassword string
	// RejectTimeout bounds how long a single payload may take to be
	// visibly rejected. Defaults to 3s, enough to cover the simulated
	// network delay.
	RejectTimeout time.Duration
}

type flatPayload struct {
	category string
	raw      string
}

// RunFieldSecurity is the fuzz driver: it injects every payload of the given
// categories into the configured field and requires the application to reject
// each one, either via an HTML5-invalid field state or a visible error
// container. A payload the application silently accepts fails the test,
// naming the (truncated) payload.
func RunFieldSecurity(t *testing.T, cmd *helpers.Commands, cfg FieldConfig, payloadsByCategory map[string][]string, categories []string, opts Options) {
	t.Helper()

	if opts.RejectTimeout <= 0 {
		opts.RejectTimeout = 3 * time.Second
	}

	flat := make([]flatPayload, 0)
	for _, category := range categories {
		payloads, ok := payloadsByCategory[category]
		require.True(t, ok, "payload category %q not present in fixture", category)
		for _, raw := range payloads {
			flat = append(flat, flatPayload{category: category, raw: raw})
		}
	}

	for i, p := range flat {
		if opts.Sample && i%3 != 0 {
			continue
		}

		require.NoError(t, preparePreconditions(cmd, cfg, opts),
			"failed to prepare field %s for payload %q", cfg.Name, Truncate(p.raw, 80))

		expanded := ExpandPayload(p.raw)
		injectAndSubmit(t, cmd, cfg, expanded)

		rejected := waitForRejection(cmd, cfg, opts.RejectTimeout)
		if !rejected {
			t.Fatalf("field %s silently accepted %s payload: %s",
				cfg.Name, p.category, Truncate(expanded, 80))
		}
	}
}

func preparePreconditions(cmd *helpers.Commands, cfg FieldConfig, opts Options) error {
	if cfg.RequiresReset {
		if err := cmd.ResetApp(); err != nil {
			return err
		}
	}
	if cfg.RequiresAuth {
		if err := cmd.VerifyAppState(helpers.StateUser, opts.AuthEmail); err != nil {
			// Not authenticated yet; establish the session once.
			if err := cmd.ResetApp(); err != nil {
				return err
			}
			if err := cmd.Login(opts.AuthEmail, opts.AuthPassword, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func injectAndSubmit(t *testing.T, cmd *helpers.Commands, cfg FieldConfig, payload string) {
	t.Helper()
	page := cmd.Browser().Page

	for selector, value := range cfg.Aux {
		aux := page.Locator(selector)
		require.NoError(t, aux.Clear(), "should clear aux input %s", selector)
		require.NoError(t, aux.Fill(value), "should fill aux input %s", selector)
	}

	field := page.Locator(cfg.Selector)
	require.NoError(t, field.Clear(), "should clear %s", cfg.Name)
	require.NoError(t, field.Fill(payload), "should fill %s", cfg.Name)

	require.NoError(t, page.Locator(cfg.Submit).Click(), "should submit %s form", cfg.Name)
}

// waitForRejection polls until the payload is visibly rejected: the field is
// left HTML5-invalid, or the designated error container is visible.
func waitForRejection(cmd *helpers.Commands, cfg FieldConfig, timeout time.Duration) bool {
	page := cmd.Browser().Page
	deadline := time.Now().Add(timeout)
	for {
		invalid, err := page.Locator(cfg.Selector).Evaluate("el => !el.checkValidity()", nil)
		if err == nil {
			if flag, ok := invalid.(bool); ok && flag {
				return true
			}
		}
		visible, err := page.Locator(cfg.ErrorSelector).IsVisible()
		if err == nil && visible {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
}
