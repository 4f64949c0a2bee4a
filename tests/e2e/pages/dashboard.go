package pages

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// DashboardPage wraps the course dashboard reached after joining a course.
type DashboardPage struct {
	t    *testing.T
	page playwright.Page
}

// NewDashboardPage creates a dashboard page object.
func NewDashboardPage(t *testing.T, page playwright.Page) *DashboardPage {
	return &DashboardPage{t: t, page: page}
}

// ClickStartCourse clicks the Start Course button. Dialog handling is the
// caller's responsibility; register a dialog listener before clicking.
func (p *DashboardPage) ClickStartCourse() *DashboardPage {
	require.NoError(p.t, p.page.Locator(SelectorStartCourseBtn).Click(), "should click start course")
	return p
}

// VerifyVisible asserts the dashboard container is on screen.
func (p *DashboardPage) VerifyVisible() *DashboardPage {
	visible, err := p.page.Locator(SelectorDashboard).IsVisible()
	require.NoError(p.t, err, "should query dashboard visibility")
	require.True(p.t, visible, "dashboard should be visible")
	return p
}

// VerifyCourse asserts the displayed title and course-code label.
func (p *DashboardPage) VerifyCourse(title, code string) *DashboardPage {
	gotTitle, err := p.page.Locator(SelectorCourseTitle).TextContent()
	require.NoError(p.t, err)
	require.Equal(p.t, title, strings.TrimSpace(gotTitle), "course title should match")

	gotLabel, err := p.page.Locator(SelectorCourseCodeLabel).TextContent()
	require.NoError(p.t, err)
	require.Equal(p.t, "Course Code: "+code, strings.TrimSpace(gotLabel), "course code label should match")
	return p
}

// VerifyLoadingState asserts the initial dashboard state: loading indicator
// visible, start button hidden.
func (p *DashboardPage) VerifyLoadingState() *DashboardPage {
	indicatorVisible, err := p.page.Locator(SelectorLoadingIndicator).IsVisible()
	require.NoError(p.t, err)
	require.True(p.t, indicatorVisible, "loading indicator should be visible on dashboard entry")

	startVisible, err := p.page.Locator(SelectorStartCourseBtn).IsVisible()
	require.NoError(p.t, err)
	require.False(p.t, startVisible, "start button should be hidden while loading")
	return p
}

// VerifyReadyState asserts the post-loading state: indicator gone, start
// button visible and enabled.
func (p *DashboardPage) VerifyReadyState() *DashboardPage {
	indicatorVisible, err := p.page.Locator(SelectorLoadingIndicator).IsVisible()
	require.NoError(p.t, err)
	require.False(p.t, indicatorVisible, "loading indicator should be gone")

	start := p.page.Locator(SelectorStartCourseBtn)
	startVisible, err := start.IsVisible()
	require.NoError(p.t, err)
	require.True(p.t, startVisible, "start button should be visible")

	enabled, err := start.IsEnabled()
	require.NoError(p.t, err)
	require.True(p.t, enabled, "start button should be enabled")
	return p
}

// VerifyStartedState asserts the button reflects a started course.
func (p *DashboardPage) VerifyStartedState() *DashboardPage {
	disabled, err := p.page.Locator(SelectorStartCourseBtn).IsDisabled()
	require.NoError(p.t, err)
	require.True(p.t, disabled, "start button should be disabled after starting")
	return p
}
