package helpers

import (
	"fmt"
	"time"
)

// Commands is the reusable action/assertion vocabulary shared by all
// scenario suites. Each command is stateless and composable; none of them
// decides success or failure of the flow itself - callers assert on the
// resulting state.
type Commands struct {
	b *BrowserHelper
}

// NewCommands creates the command layer over a browser helper.
func NewCommands(b *BrowserHelper) *Commands {
	return &Commands{b: b}
}

// Browser exposes the underlying helper for scenario-specific needs.
func (c *Commands) Browser() *BrowserHelper {
	return c.b
}

// pollUntil retries cond every 100ms until it holds or the timeout elapses.
// This is the bounded-polling primitive every wait in the harness goes
// through; fixed-duration sleeps are not used where a DOM signal exists.
func (c *Commands) pollUntil(timeout time.Duration, desc string, cond func() (bool, error)) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := cond()
		if err == nil && ok {
			return nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return fmt.Errorf("timed out waiting for %s: %w", desc, err)
			}
			return fmt.Errorf("timed out waiting for %s after %s", desc, timeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (c *Commands) isVisible(selector string) (bool, error) {
	return c.b.Page.Locator(selector).IsVisible()
}

// Login clears and fills the login form and submits it. With waitForRedirect
// it blocks until the course-join form is visible and the login form is not,
// within the global command timeout. It does not distinguish success from
// failure - assert on the resulting state.
func (c *Commands) Login(email, password string, waitForRedirect bool) error {
	emailInput := c.b.Page.Locator("#email")
	if err := emailInput.Clear(); err != nil {
		return fmt.Errorf("failed to clear email: %w", err)
	}
	if err := emailInput.Fill(email); err != nil {
		return fmt.Errorf("failed to fill email: %w", err)
	}

	passwordInput := c.b.Page.Locator("#password")
	if err := passwordInput.Clear(); err != nil {
		return fmt.Errorf("failed to clear password: %w", err)
	}
	if err := passwordInput.Fill(password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}

	if err := c.b.Page.Locator("#loginBtn").Click(); err != nil {
		return fmt.Errorf("failed to click login submit: %w", err)
	}

	if !waitForRedirect {
		return nil
	}
	return c.pollUntil(c.b.Config.Timeout, "login redirect to course join", func() (bool, error) {
		joinVisible, err := c.isVisible("#courseJoinForm")
		if err != nil {
			return false, err
		}
		loginVisible, err := c.isVisible("#loginForm")
		if err != nil {
			return false, err
		}
		return joinVisible && !loginVisible, nil
	})
}

// JoinCourse fills the course-join form and submits it. With waitForDashboard
// it blocks until the dashboard is visible and the join form is not.
func (c *Commands) JoinCourse(code, password string, waitForDashboard bool) error {
	codeInput := c.b.Page.Locator("#courseCode")
	if err := codeInput.Clear(); err != nil {
		return fmt.Errorf("failed to clear course code: %w", err)
	}
	if err := codeInput.Fill(code); err != nil {
		return fmt.Errorf("failed to fill course code: %w", err)
	}

	passwordInput := c.b.Page.Locator("#coursePassword")
	if err := passwordInput.Clear(); err != nil {
		return fmt.Errorf("failed to clear course password: %w", err)
	}
	if err := passwordInput.Fill(password); err != nil {
		return fmt.Errorf("failed to fill course password: %w", err)
	}

	if err := c.b.Page.Locator("#joinBtn").Click(); err != nil {
		return fmt.Errorf("failed to click join submit: %w", err)
	}

	if !waitForDashboard {
		return nil
	}
	return c.pollUntil(c.b.Config.Timeout, "course join redirect to dashboard", func() (bool, error) {
		dashVisible, err := c.isVisible("#courseDashboard")
		if err != nil {
			return false, err
		}
		joinVisible, err := c.isVisible("#courseJoinForm")
		if err != nil {
			return false, err
		}
		return dashVisible && !joinVisible, nil
	})
}

// LoginAndJoinCourse is a pure composition of Login and JoinCourse.
func (c *Commands) LoginAndJoinCourse(email, password, code, coursePassword string) error {
	if err := c.Login(email, password, true); err != nil {
		return err
	}
	return c.JoinCourse(code, coursePassword, true)
}

// WaitForLoading blocks until the loading indicator is hidden AND the start
// button is visible. The dashboard flips the two flags on independent timers,
// so both conditions must hold in the same poll iteration before the harness
// may proceed.
func (c *Commands) WaitForLoading(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return c.pollUntil(timeout, "dashboard loading to finish", func() (bool, error) {
		indicatorVisible, err := c.isVisible("#loadingIndicator")
		if err != nil {
			return false, err
		}
		startVisible, err := c.isVisible("#startCourseBtn")
		if err != nil {
			return false, err
		}
		return !indicatorVisible && startVisible, nil
	})
}

// ShouldShowError asserts that the error container is visible AND carries the
// expected text, atomically within one poll iteration. Checking only one of
// the two would accept a visible container with stale text.
func (c *Commands) ShouldShowError(selector, expectedText string) error {
	return c.shouldShowMessage(selector, expectedText, "error")
}

// ShouldShowSuccess is the success-container counterpart of ShouldShowError.
func (c *Commands) ShouldShowSuccess(selector, expectedText string) error {
	return c.shouldShowMessage(selector, expectedText, "success")
}

func (c *Commands) shouldShowMessage(selector, expectedText, kind string) error {
	var lastText string
	err := c.pollUntil(10*time.Second, fmt.Sprintf("%s message %q in %s", kind, expectedText, selector), func() (bool, error) {
		visible, err := c.isVisible(selector)
		if err != nil || !visible {
			return false, err
		}
		text, err := c.b.Page.Locator(selector).TextContent()
		if err != nil {
			return false, err
		}
		lastText = text
		return containsText(text, expectedText), nil
	})
	if err != nil && lastText != "" {
		return fmt.Errorf("%w (last text: %q)", err, lastText)
	}
	return err
}

// WaitVisible blocks until the selector is visible, within timeout (the
// global command timeout when zero).
func (c *Commands) WaitVisible(selector string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = c.b.Config.Timeout
	}
	return c.pollUntil(timeout, selector+" to become visible", func() (bool, error) {
		return c.isVisible(selector)
	})
}

// WaitHidden is the inverse of WaitVisible.
func (c *Commands) WaitHidden(selector string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = c.b.Config.Timeout
	}
	return c.pollUntil(timeout, selector+" to become hidden", func() (bool, error) {
		visible, err := c.isVisible(selector)
		return !visible, err
	})
}

// ResetApp invokes the application's reset hook if the page exposes one.
// Absence of the hook is not an error: on a fresh load there is nothing to
// reset.
func (c *Commands) ResetApp() error {
	_, err := c.b.Page.Evaluate(`() => {
		if (typeof window.resetApp === 'function') {
			window.resetApp();
			return true;
		}
		return false;
	}`)
	if err != nil {
		return fmt.Errorf("failed to invoke resetApp: %w", err)
	}
	return nil
}

// App state types accepted by VerifyAppState.
const (
	StateUser    = "user"
	StateCourse  = "course"
	StateSession = "session"
)

// VerifyAppState reads one of the exposed state accessors off the page and
// compares it to the expected value. nil expects the accessor to return null.
// An unknown stateType fails fast rather than silently passing.
func (c *Commands) VerifyAppState(stateType string, expected interface{}) error {
	var accessor string
	switch stateType {
	case StateUser:
		accessor = "getCurrentUser"
	case StateCourse:
		accessor = "getCurrentCourse"
	case StateSession:
		accessor = "getCurrentSessionId"
	default:
		return fmt.Errorf("unknown app state type %q (known: user, course, session)", stateType)
	}

	result, err := c.b.Page.Evaluate(fmt.Sprintf("() => window.%s()", accessor))
	if err != nil {
		return fmt.Errorf("failed to read %s state: %w", stateType, err)
	}

	if expected == nil {
		if result != nil {
			return fmt.Errorf("expected %s state to be null, got %v", stateType, result)
		}
		return nil
	}
	if result == nil {
		return fmt.Errorf("expected %s state %v, got null", stateType, expected)
	}
	if fmt.Sprint(result) != fmt.Sprint(expected) {
		return fmt.Errorf("expected %s state %v, got %v", stateType, expected, result)
	}
	return nil
}

// WaitForAppState polls an accessor until it reports the expected value. This
// is the observable-signal substitute for fixed settle delays: instead of
// sleeping out a simulated server round-trip, callers wait on the state
// transition itself.
func (c *Commands) WaitForAppState(stateType string, expected interface{}, timeout time.Duration) error {
	switch stateType {
	case StateUser, StateCourse, StateSession:
	default:
		return fmt.Errorf("unknown app state type %q (known: user, course, session)", stateType)
	}
	if timeout <= 0 {
		timeout = c.b.Config.Timeout
	}
	var lastErr error
	err := c.pollUntil(timeout, fmt.Sprintf("%s state to become %v", stateType, expected), func() (bool, error) {
		lastErr = c.VerifyAppState(stateType, expected)
		return lastErr == nil, nil
	})
	if err != nil && lastErr != nil {
		return fmt.Errorf("%w: %v", err, lastErr)
	}
	return err
}
