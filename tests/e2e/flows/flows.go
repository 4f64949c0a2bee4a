package flows

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/classavo-io/classavo-e2e/tests/e2e/helpers"
	"github.com/classavo-io/classavo-e2e/tests/e2e/pages"
)

// Flow composes page-object actions into complete user journeys, with a
// settle assertion after each stage. Settling polls an observable signal
// (the page's state accessors) instead of sleeping out simulated latency.
type Flow struct {
	t          *testing.T
	cmd        *helpers.Commands
	Login      *pages.LoginPage
	CourseJoin *pages.CourseJoinPage
	Dashboard  *pages.DashboardPage
}

// New builds the flow compositions over a prepared browser helper.
func New(t *testing.T, browser *helpers.BrowserHelper) *Flow {
	return &Flow{
		t:          t,
		cmd:        helpers.NewCommands(browser),
		Login:      pages.NewLoginPage(t, browser.Page),
		CourseJoin: pages.NewCourseJoinPage(t, browser.Page),
		Dashboard:  pages.NewDashboardPage(t, browser.Page),
	}
}

// Commands exposes the underlying command layer for scenario-specific steps.
func (f *Flow) Commands() *helpers.Commands {
	return f.cmd
}

// CompleteLogin performs a login and settles on the authenticated session
// state before asserting the course-join form took over.
func (f *Flow) CompleteLogin(email, password string) *Flow {
	f.Login.VerifyVisible().Login(email, password)

	require.NoError(f.t, f.cmd.WaitForAppState(helpers.StateUser, email, 0),
		"session user should become %s after login", email)
	require.NoError(f.t, f.cmd.WaitVisible(pages.SelectorCourseJoinForm, 0),
		"course-join form should take over after login")
	return f
}

// CompleteCourseJoin joins a course from the course-join form and settles on
// the joined-course state before asserting the dashboard took over.
func (f *Flow) CompleteCourseJoin(code, password, canonicalCode string) *Flow {
	f.CourseJoin.VerifyVisible().JoinCourse(code, password)

	require.NoError(f.t, f.cmd.WaitForAppState(helpers.StateCourse, canonicalCode, 0),
		"session course should become %s after join", canonicalCode)
	f.Dashboard.VerifyVisible()
	return f
}

// CompleteFullFlow runs login then course join end to end.
func (f *Flow) CompleteFullFlow(email, userPassword, code, coursePassword, canonicalCode string) *Flow {
	f.CompleteLogin(email, userPassword)
	return f.CompleteCourseJoin(code, coursePassword, canonicalCode)
}
