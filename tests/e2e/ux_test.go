package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classavo-io/classavo-e2e/tests/e2e/helpers"
)

// TestKeyboardTabOrder verifies forward focus traversal across both form
// contexts, including the wrap from the last element back to the first.
func TestKeyboardTabOrder(t *testing.T) {
	_, flow, provider := newHarness(t)
	cmd := flow.Commands()

	t.Run("Login context", func(t *testing.T) {
		context, err := cmd.ActiveContext()
		require.NoError(t, err)
		require.Equal(t, helpers.ContextLogin, context)

		// The page autofocuses the email field on load.
		expectFocusSequence(t, cmd, []string{"password", "loginBtn", "email", "password"})
	})

	t.Run("Course-join context", func(t *testing.T) {
		user, err := provider.ValidUser()
		require.NoError(t, err)
		flow.CompleteLogin(user.Email, user.Password)

		context, err := cmd.ActiveContext()
		require.NoError(t, err)
		require.Equal(t, helpers.ContextCourseJoin, context)

		// Autofocus lands on the course code after the redirect.
		expectFocusSequence(t, cmd, []string{"coursePassword", "joinBtn", "courseCode"})
	})
}

func expectFocusSequence(t *testing.T, cmd *helpers.Commands, wantIDs []string) {
	t.Helper()
	for _, want := range wantIDs {
		require.NoError(t, cmd.Tab())
		got, err := cmd.FocusedElementID()
		require.NoError(t, err)
		assert.Equal(t, want, got, "focus should advance to #%s", want)
	}
}

// TestFormFieldAccessibility asserts input typing, required flags and ARIA
// labels on both forms.
func TestFormFieldAccessibility(t *testing.T) {
	_, flow, provider := newHarness(t)

	flow.Login.VerifyVisible().VerifyFieldAttributes()

	user, err := provider.ValidUser()
	require.NoError(t, err)
	flow.CompleteLogin(user.Email, user.Password)

	flow.CourseJoin.VerifyVisible().VerifyFieldAttributes()
}

// TestLoadingCompletesWithinBudget bounds the user-visible wait on the
// dashboard: the loading barrier must resolve inside the configured budget.
func TestLoadingCompletesWithinBudget(t *testing.T) {
	_, flow, provider := newHarness(t)
	cmd := flow.Commands()

	user, err := provider.ValidUser()
	require.NoError(t, err)
	course, err := provider.ValidCourse()
	require.NoError(t, err)

	flow.CompleteFullFlow(user.Email, user.Password, course.Code, course.Password, course.Code)

	start := time.Now()
	require.NoError(t, cmd.WaitForLoading(5*time.Second))
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 5*time.Second, "loading should finish inside the budget")
	t.Logf("dashboard loading completed in %s", elapsed)
}
