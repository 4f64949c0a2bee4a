package e2e

import (
	"os"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/classavo-io/classavo-e2e/tests/e2e/fixtures"
	"github.com/classavo-io/classavo-e2e/tests/e2e/flows"
	"github.com/classavo-io/classavo-e2e/tests/e2e/helpers"
)

// newHarness boots a browser, loads the mock platform and resets its session
// state. Every scenario starts from here; the explicit reset is the isolation
// mechanism - nothing assumes a fresh process.
func newHarness(t *testing.T) (*helpers.BrowserHelper, *flows.Flow, *fixtures.Provider) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if os.Getenv("SKIP_BROWSER") == "true" {
		t.Skip("Skipping browser test")
	}

	browser := helpers.NewBrowserHelper(t)
	require.NoError(t, browser.Setup(), "Failed to setup browser")
	t.Cleanup(browser.TearDown)

	require.NoError(t, browser.NavigateTo("/"), "Should load the mock platform")

	flow := flows.New(t, browser)
	require.NoError(t, flow.Commands().ResetApp(), "Should reset app state")

	provider := fixtures.NewProvider("fixtures/data")
	return browser, flow, provider
}

// dialogRecorder captures confirm/alert dialogs raised by the page and
// answers them according to the current accept setting.
type dialogRecorder struct {
	mu       sync.Mutex
	accept   bool
	messages []string
	types    []string
}

func recordDialogs(page playwright.Page, accept bool) *dialogRecorder {
	r := &dialogRecorder{accept: accept}
	page.OnDialog(func(d playwright.Dialog) {
		r.mu.Lock()
		r.messages = append(r.messages, d.Message())
		r.types = append(r.types, d.Type())
		shouldAccept := r.accept
		r.mu.Unlock()

		if shouldAccept {
			_ = d.Accept()
		} else {
			_ = d.Dismiss()
		}
	})
	return r
}

func (r *dialogRecorder) SetAccept(accept bool) {
	r.mu.Lock()
	r.accept = accept
	r.mu.Unlock()
}

func (r *dialogRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func (r *dialogRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}
