package pages

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// CourseJoinPage wraps the course-join form shown after a successful login.
type CourseJoinPage struct {
	t    *testing.T
	page playwright.Page
}

// NewCourseJoinPage creates a course-join page object.
func NewCourseJoinPage(t *testing.T, page playwright.Page) *CourseJoinPage {
	return &CourseJoinPage{t: t, page: page}
}

// FillCode clears and fills the course code field.
func (p *CourseJoinPage) FillCode(code string) *CourseJoinPage {
	input := p.page.Locator(SelectorCourseCode)
	require.NoError(p.t, input.Clear(), "should clear course code field")
	require.NoError(p.t, input.Fill(code), "should fill course code field")
	return p
}

// FillPassword clears and fills the course password field.
func (p *CourseJoinPage) FillPassword(password string) *CourseJoinPage {
	input := p.page.Locator(SelectorCoursePassword)
	require.NoError(p.t, input.Clear(), "should clear course password field")
	require.NoError(p.t, input.Fill(password), "should fill course password field")
	return p
}

// Submit clicks the join button.
func (p *CourseJoinPage) Submit() *CourseJoinPage {
	require.NoError(p.t, p.page.Locator(SelectorCourseSubmit).Click(), "should click join submit")
	return p
}

// JoinCourse chains fill and submit.
func (p *CourseJoinPage) JoinCourse(code, password string) *CourseJoinPage {
	return p.FillCode(code).FillPassword(password).Submit()
}

// VerifyVisible asserts the structural elements of the join form are on
// screen.
func (p *CourseJoinPage) VerifyVisible() *CourseJoinPage {
	for _, selector := range []string{SelectorCourseJoinForm, SelectorCourseCode, SelectorCoursePassword, SelectorCourseSubmit} {
		visible, err := p.page.Locator(selector).IsVisible()
		require.NoError(p.t, err, "should query visibility of %s", selector)
		require.True(p.t, visible, "%s should be visible", selector)
	}
	return p
}

// VerifyFieldAttributes asserts required flags and the password masking on
// the join fields.
func (p *CourseJoinPage) VerifyFieldAttributes() *CourseJoinPage {
	code := p.page.Locator(SelectorCourseCode)

	required, err := code.Evaluate("el => el.required", nil)
	require.NoError(p.t, err)
	require.Equal(p.t, true, required, "course code should be required")

	password := p.page.Locator(SelectorCoursePassword)

	passwordType, err := password.GetAttribute("type")
	require.NoError(p.t, err)
	require.Equal(p.t, "password", passwordType, "course password should be masked")

	required, err = password.Evaluate("el => el.required", nil)
	require.NoError(p.t, err)
	require.Equal(p.t, true, required, "course password should be required")

	return p
}
