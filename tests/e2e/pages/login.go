package pages

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// LoginPage wraps the student login form. Action methods return the page
// object for chaining; verification methods hard-fail the enclosing test
// rather than returning a boolean.
type LoginPage struct {
	t    *testing.T
	page playwright.Page
}

// NewLoginPage creates a login page object.
func NewLoginPage(t *testing.T, page playwright.Page) *LoginPage {
	return &LoginPage{t: t, page: page}
}

// FillEmail clears and fills the email field.
func (p *LoginPage) FillEmail(email string) *LoginPage {
	input := p.page.Locator(SelectorLoginEmail)
	require.NoError(p.t, input.Clear(), "should clear email field")
	require.NoError(p.t, input.Fill(email), "should fill email field")
	return p
}

// FillPassword clears and fills the password field.
func (p *LoginPage) FillPassword(password string) *LoginPage {
	input := p.page.Locator(SelectorLoginPassword)
	require.NoError(p.t, input.Clear(), "should clear password field")
	require.NoError(p.t, input.Fill(password), "should fill password field")
	return p
}

// Submit clicks the login button.
func (p *LoginPage) Submit() *LoginPage {
	require.NoError(p.t, p.page.Locator(SelectorLoginSubmit).Click(), "should click login submit")
	return p
}

// Login chains fill and submit.
func (p *LoginPage) Login(email, password string) *LoginPage {
	return p.FillEmail(email).FillPassword(password).Submit()
}

// VerifyVisible asserts the structural elements of the login form are on
// screen.
func (p *LoginPage) VerifyVisible() *LoginPage {
	for _, selector := range []string{SelectorLoginForm, SelectorLoginEmail, SelectorLoginPassword, SelectorLoginSubmit} {
		visible, err := p.page.Locator(selector).IsVisible()
		require.NoError(p.t, err, "should query visibility of %s", selector)
		require.True(p.t, visible, "%s should be visible", selector)
	}
	return p
}

// VerifyFieldAttributes asserts input types, required flags and ARIA labels
// on the login fields.
func (p *LoginPage) VerifyFieldAttributes() *LoginPage {
	email := p.page.Locator(SelectorLoginEmail)

	emailType, err := email.GetAttribute("type")
	require.NoError(p.t, err)
	require.Equal(p.t, "email", emailType, "email input should have type=email")

	required, err := email.Evaluate("el => el.required", nil)
	require.NoError(p.t, err)
	require.Equal(p.t, true, required, "email input should be required")

	ariaLabel, err := email.GetAttribute("aria-label")
	require.NoError(p.t, err)
	require.NotEmpty(p.t, ariaLabel, "email input should carry an aria-label")

	password := p.page.Locator(SelectorLoginPassword)

	passwordType, err := password.GetAttribute("type")
	require.NoError(p.t, err)
	require.Equal(p.t, "password", passwordType, "password input should have type=password")

	required, err = password.Evaluate("el => el.required", nil)
	require.NoError(p.t, err)
	require.Equal(p.t, true, required, "password input should be required")

	return p
}
