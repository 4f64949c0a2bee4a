package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classavo-io/classavo-e2e/tests/e2e/helpers"
	"github.com/classavo-io/classavo-e2e/tests/e2e/pages"
)

// TestSequentialUserSessions reuses one browser context for two complete
// journeys separated by an explicit reset. This is the closest the harness
// gets to concurrent sessions: serial reuse with no state leaking across the
// reset boundary.
func TestSequentialUserSessions(t *testing.T) {
	_, flow, provider := newHarness(t)
	cmd := flow.Commands()

	users, err := provider.Users()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(users), 2, "users fixture should provide at least two users")

	course, err := provider.ValidCourse()
	require.NoError(t, err)

	var firstSession interface{}

	t.Run("First session completes", func(t *testing.T) {
		flow.CompleteFullFlow("student@classavo.com", "password123", course.Code, course.Password, course.Code)

		session, err := cmd.Browser().Page.Evaluate("() => window.getCurrentSessionId()")
		require.NoError(t, err)
		require.NotNil(t, session)
		firstSession = session
	})

	t.Run("Reset clears session state", func(t *testing.T) {
		require.NoError(t, cmd.ResetApp())
		require.NoError(t, cmd.VerifyAppState(helpers.StateUser, nil))
		require.NoError(t, cmd.VerifyAppState(helpers.StateCourse, nil))

		// The page-load session id survives a state reset; only a reload
		// mints a new one.
		session, err := cmd.Browser().Page.Evaluate("() => window.getCurrentSessionId()")
		require.NoError(t, err)
		assert.Equal(t, firstSession, session)
	})

	t.Run("Second session is unaffected by the first", func(t *testing.T) {
		flow.Login.VerifyVisible()
		flow.CompleteFullFlow("teacher@classavo.com", "teachpass456", "MATH200", "calc2023", "MATH200")
		require.NoError(t, cmd.VerifyAppState(helpers.StateUser, "teacher@classavo.com"))
		require.NoError(t, cmd.VerifyAppState(helpers.StateCourse, "MATH200"))
	})
}

// TestReloadMintsNewSession verifies each page load gets its own
// server-generated session id.
func TestReloadMintsNewSession(t *testing.T) {
	browser, flow, _ := newHarness(t)
	cmd := flow.Commands()

	first, err := cmd.Browser().Page.Evaluate("() => window.getCurrentSessionId()")
	require.NoError(t, err)
	require.NotNil(t, first)

	require.NoError(t, browser.NavigateTo("/"))

	second, err := cmd.Browser().Page.Evaluate("() => window.getCurrentSessionId()")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first, second, "a reload should mint a fresh session id")
}

// TestResetAppDegradesWithoutHook pins the defensive contract: when the page
// does not expose resetApp, the command is a silent no-op, not a failure.
func TestResetAppDegradesWithoutHook(t *testing.T) {
	browser, flow, _ := newHarness(t)
	cmd := flow.Commands()

	_, err := browser.Page.Evaluate("() => { delete window.resetApp; }")
	require.NoError(t, err)

	assert.NoError(t, cmd.ResetApp(), "missing reset hook must degrade to a no-op")
}

// TestVerifyAppStateUnknownTypeFailsFast pins the fail-fast contract for
// unrecognized state types.
func TestVerifyAppStateUnknownTypeFailsFast(t *testing.T) {
	_, flow, _ := newHarness(t)
	cmd := flow.Commands()

	err := cmd.VerifyAppState("enrollment", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown app state type "enrollment"`)
}

// TestIdempotentSubmitDuringFlight verifies a second submit while the control
// is disabled does not produce two completed operations.
func TestIdempotentSubmitDuringFlight(t *testing.T) {
	browser, flow, provider := newHarness(t)
	cmd := flow.Commands()

	user, err := provider.ValidUser()
	require.NoError(t, err)

	// Submit and immediately hammer the disabled button.
	require.NoError(t, cmd.Login(user.Email, user.Password, false))
	for i := 0; i < 3; i++ {
		_, err := browser.Page.Evaluate(`() => document.getElementById('loginBtn').click()`)
		require.NoError(t, err)
	}

	require.NoError(t, cmd.WaitForAppState(helpers.StateUser, user.Email, 0))
	require.NoError(t, cmd.WaitVisible(pages.SelectorCourseJoinForm, 0))

	// Exactly one completed login: one success message, no error, and the
	// session reflects a single authenticated user.
	errVisible, err := browser.Page.Locator(pages.SelectorLoginError).IsVisible()
	require.NoError(t, err)
	assert.False(t, errVisible, "no error should surface from the swallowed re-submissions")
}
