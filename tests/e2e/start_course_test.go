package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classavo-io/classavo-e2e/tests/e2e/fixtures"
	"github.com/classavo-io/classavo-e2e/tests/e2e/flows"
	"github.com/classavo-io/classavo-e2e/tests/e2e/pages"
)

func joinCourseOnDashboard(t *testing.T, flow *flows.Flow, provider *fixtures.Provider) fixtures.Course {
	t.Helper()
	user, err := provider.ValidUser()
	require.NoError(t, err)
	course, err := provider.ValidCourse()
	require.NoError(t, err)

	flow.CompleteFullFlow(user.Email, user.Password, course.Code, course.Password, course.Code)
	return course
}

// TestStartCourseStateMachine drives the Start Course button through its
// three states: Hidden-Loading on dashboard entry, Visible-Ready after the
// loading barrier, Disabled-Started after an affirmative confirmation.
func TestStartCourseStateMachine(t *testing.T) {
	browser, flow, provider := newHarness(t)
	cmd := flow.Commands()
	course := joinCourseOnDashboard(t, flow, provider)

	t.Run("Dashboard entry is Hidden-Loading", func(t *testing.T) {
		flow.Dashboard.VerifyLoadingState()
	})

	t.Run("Loading barrier resolves to Visible-Ready", func(t *testing.T) {
		require.NoError(t, cmd.WaitForLoading(5*time.Second))
		flow.Dashboard.VerifyReadyState()

		// The transition never reverses: the indicator must not reappear.
		time.Sleep(300 * time.Millisecond)
		flow.Dashboard.VerifyReadyState()
	})

	t.Run("Affirmative confirm transitions to Disabled-Started", func(t *testing.T) {
		dialogs := recordDialogs(browser.Page, true)

		flow.Dashboard.ClickStartCourse()

		require.Eventually(t, func() bool {
			return len(dialogs.Messages()) >= 2
		}, 5*time.Second, 100*time.Millisecond, "confirm and alert should both fire")

		types := dialogs.Types()
		messages := dialogs.Messages()
		require.Equal(t, []string{"confirm", "alert"}, types)
		assert.Contains(t, messages[0], course.Title)
		assert.Equal(t, "Starting "+course.Title+"! This would redirect to the course content.", messages[1])

		flow.Dashboard.VerifyStartedState()
	})

	t.Run("Re-submission while disabled is a no-op", func(t *testing.T) {
		dialogs := recordDialogs(browser.Page, true)

		// A synthetic click on the disabled control must not re-run the
		// start sequence.
		_, err := browser.Page.Evaluate(`() => document.getElementById('startCourseBtn').click()`)
		require.NoError(t, err)

		time.Sleep(500 * time.Millisecond)
		assert.Empty(t, dialogs.Messages(), "no dialog should fire on a disabled button")
		flow.Dashboard.VerifyStartedState()
	})
}

// TestStartCourseDismissedConfirm verifies a negative confirmation leaves the
// button in Visible-Ready with no alert raised.
func TestStartCourseDismissedConfirm(t *testing.T) {
	browser, flow, provider := newHarness(t)
	cmd := flow.Commands()
	joinCourseOnDashboard(t, flow, provider)

	require.NoError(t, cmd.WaitForLoading(5*time.Second))
	flow.Dashboard.VerifyReadyState()

	dialogs := recordDialogs(browser.Page, false)
	flow.Dashboard.ClickStartCourse()

	require.Eventually(t, func() bool {
		return len(dialogs.Messages()) >= 1
	}, 5*time.Second, 100*time.Millisecond, "confirm should fire")

	time.Sleep(500 * time.Millisecond)
	require.Equal(t, []string{"confirm"}, dialogs.Types(), "alert must never fire after a dismissed confirm")
	flow.Dashboard.VerifyReadyState()
}

// TestLoadingBarrierBothFlags pins the reason WaitForLoading demands both
// conditions: the indicator and the button flip on independent timers, and
// racing ahead on just one of them reads a half-loaded dashboard.
func TestLoadingBarrierBothFlags(t *testing.T) {
	_, flow, provider := newHarness(t)
	cmd := flow.Commands()
	joinCourseOnDashboard(t, flow, provider)

	// Indicator goes first in the mock's default configuration; at that
	// moment the button may still be hidden. Only the two-condition barrier
	// may declare readiness.
	require.NoError(t, cmd.WaitHidden(pages.SelectorLoadingIndicator, 5*time.Second))
	require.NoError(t, cmd.WaitForLoading(5*time.Second))
	flow.Dashboard.VerifyReadyState()
}
