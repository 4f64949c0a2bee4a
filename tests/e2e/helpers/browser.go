package helpers

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/classavo-io/classavo-e2e/tests/e2e/config"
)

// benignErrorPatterns are page errors the application under test is known to
// emit harmlessly. Anything else thrown by the page fails the scenario.
var benignErrorPatterns = []string{
	"ResizeObserver loop",
	"Script error.",
}

// BrowserHelper provides browser setup and teardown for tests
type BrowserHelper struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Config     *config.TestConfig
	t          *testing.T

	errMu      sync.Mutex
	pageErrors []string
}

// NewBrowserHelper creates a new browser helper instance
func NewBrowserHelper(t *testing.T) *BrowserHelper {
	return &BrowserHelper{
		Config: config.GetConfig(),
		t:      t,
	}
}

// Setup initializes the browser and creates a new page
func (b *BrowserHelper) Setup() error {
	var pw *playwright.Playwright
	var err error
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err = playwright.Install(&playwright.RunOptions{Browsers: []string{b.Config.Browser}}); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	// First attempt
	pw, err = playwright.Run()
	if err != nil {
		// Fallback: attempt install driver explicitly then retry
		_ = playwright.Install()
		pw, err = playwright.Run()
		if err != nil {
			return fmt.Errorf("could not start playwright after retry (ensure driver version matches image): %w", err)
		}
	}
	b.Playwright = pw

	browser, err := b.launchBrowser(pw)
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}
	b.Browser = browser

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	}
	if b.Config.Videos {
		contextOpts.RecordVideo = &playwright.RecordVideo{
			Dir: "./test-results/videos",
		}
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	b.Context = context

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	b.Page = page

	// Uncaught exceptions from the app are intercepted globally; known benign
	// patterns are suppressed, everything else fails the scenario in TearDown.
	page.OnPageError(func(pageErr error) {
		msg := pageErr.Error()
		for _, pattern := range benignErrorPatterns {
			if strings.Contains(msg, pattern) {
				return
			}
		}
		b.errMu.Lock()
		b.pageErrors = append(b.pageErrors, msg)
		b.errMu.Unlock()
	})

	page.SetDefaultTimeout(float64(b.Config.Timeout.Milliseconds()))

	return nil
}

func (b *BrowserHelper) launchBrowser(pw *playwright.Playwright) (playwright.Browser, error) {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.Config.Headless),
		SlowMo:   playwright.Float(float64(b.Config.SlowMo)),
	}
	switch b.Config.Browser {
	case "firefox":
		return pw.Firefox.Launch(opts)
	case "webkit":
		return pw.WebKit.Launch(opts)
	default:
		return pw.Chromium.Launch(opts)
	}
}

// PageErrors returns the non-benign uncaught exceptions collected so far.
func (b *BrowserHelper) PageErrors() []string {
	b.errMu.Lock()
	defer b.errMu.Unlock()
	return append([]string(nil), b.pageErrors...)
}

// TearDown closes the browser and cleans up resources
func (b *BrowserHelper) TearDown() {
	if errs := b.PageErrors(); len(errs) > 0 {
		b.t.Errorf("application raised uncaught exceptions: %s", strings.Join(errs, "; "))
	}

	// Take screenshot on failure
	if b.t.Failed() && b.Config.Screenshots && b.Page != nil {
		screenshotPath := fmt.Sprintf("./test-results/screenshots/%s_%d.png",
			b.t.Name(), time.Now().Unix())
		b.Page.Screenshot(playwright.PageScreenshotOptions{
			Path: playwright.String(screenshotPath),
		})
	}

	if b.Page != nil {
		b.Page.Close()
	}
	if b.Context != nil {
		b.Context.Close()
	}
	if b.Browser != nil {
		b.Browser.Close()
	}
	if b.Playwright != nil {
		b.Playwright.Stop()
	}
}

// NavigateTo navigates to a path relative to the base URL
func (b *BrowserHelper) NavigateTo(path string) error {
	url := b.Config.BaseURL + path
	_, err := b.Page.Goto(url)
	if err != nil && strings.Contains(err.Error(), "ERR_TOO_MANY_REDIRECTS") {
		return fmt.Errorf("redirect loop navigating to %s (check BASE_URL configuration): %w", url, err)
	}
	return err
}
