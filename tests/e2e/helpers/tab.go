package helpers

import (
	"fmt"
	"strings"
)

// Page contexts for keyboard navigation.
const (
	ContextLogin      = "login"
	ContextCourseJoin = "course-join"
	ContextDashboard  = "dashboard"
)

// tabOrders declares the forward tab order per page context. A single
// ordered-list strategy backs the Tab command everywhere; focus wraps to the
// first element after the last.
var tabOrders = map[string][]string{
	ContextLogin:      {"#email", "#password", "#loginBtn"},
	ContextCourseJoin: {"#courseCode", "#coursePassword", "#joinBtn"},
	ContextDashboard:  {"#startCourseBtn"},
}

// ActiveContext reports which page context is currently on screen, derived
// from the visible container rather than harness-side bookkeeping.
func (c *Commands) ActiveContext() (string, error) {
	dashVisible, err := c.isVisible("#courseDashboard")
	if err != nil {
		return "", err
	}
	if dashVisible {
		return ContextDashboard, nil
	}
	joinVisible, err := c.isVisible("#courseJoinForm")
	if err != nil {
		return "", err
	}
	if joinVisible {
		return ContextCourseJoin, nil
	}
	return ContextLogin, nil
}

// Tab moves focus to the next element in the active context's declared tab
// order, wrapping to the first element after the last. If nothing in the
// order currently holds focus, the first element receives it.
func (c *Commands) Tab() error {
	context, err := c.ActiveContext()
	if err != nil {
		return fmt.Errorf("failed to determine page context: %w", err)
	}
	order := tabOrders[context]
	if len(order) == 0 {
		return fmt.Errorf("no tab order declared for context %q", context)
	}

	focusedID, err := c.focusedElementID()
	if err != nil {
		return fmt.Errorf("failed to read focused element: %w", err)
	}

	next := order[0]
	for i, selector := range order {
		if strings.TrimPrefix(selector, "#") == focusedID {
			next = order[(i+1)%len(order)]
			break
		}
	}

	if err := c.b.Page.Locator(next).Focus(); err != nil {
		return fmt.Errorf("failed to focus %s: %w", next, err)
	}
	return nil
}

func (c *Commands) focusedElementID() (string, error) {
	result, err := c.b.Page.Evaluate(`() => document.activeElement ? document.activeElement.id : ""`)
	if err != nil {
		return "", err
	}
	id, _ := result.(string)
	return id, nil
}

// FocusedElementID returns the id of the element that currently holds focus,
// or an empty string when focus is on the body.
func (c *Commands) FocusedElementID() (string, error) {
	return c.focusedElementID()
}

func containsText(haystack, needle string) bool {
	return strings.Contains(strings.TrimSpace(haystack), needle)
}
