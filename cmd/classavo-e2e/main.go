package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/classavo-io/classavo-e2e/internal/config"
	"github.com/classavo-io/classavo-e2e/internal/mockapp"
	"github.com/classavo-io/classavo-e2e/tests/e2e/fixtures"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "classavo-e2e",
	Short: "Classavo E2E - student platform test suite runner",
	Long: `Classavo E2E Command Line Interface

Runs the browser-driven end-to-end suite for the Classavo student platform
and serves the mock application it tests.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the mock student platform",
	Long: `Serve starts the mock single-page application the E2E suite runs against.

All flows (login, course join, dashboard) execute in the browser with
simulated network delays; the server renders the shell and injects the
latency configuration.`,
	RunE: runServe,
}

var (
	configPathFlag string
	portFlag       int
)

func init() {
	serveCmd.Flags().StringVar(&configPathFlag, "config", ".", "Directory containing config.yaml")
	serveCmd.Flags().IntVar(&portFlag, "port", 0, "Override the configured listen port")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fixturesCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the E2E suite against a running mock platform",
	Long: `Run executes the browser test suite with go test.

Interactive vs. headless execution, browser target, scenario filtering and
the security-fuzz toggles are all forwarded to the suite via environment
variables so the same suite runs identically in CI.`,
	RunE: runSuite,
}

var (
	headlessFlag bool
	browserFlag  string
	baseURLFlag  string
	filterFlag   string
	securityFlag bool
	fuzzFastFlag bool
	videosFlag   bool
)

func init() {
	runCmd.Flags().BoolVar(&headlessFlag, "headless", true, "Run browsers headless")
	runCmd.Flags().StringVar(&browserFlag, "browser", "chromium", "Browser target (chromium, firefox, webkit)")
	runCmd.Flags().StringVar(&baseURLFlag, "base-url", "", "Base URL of the mock platform (default autodetect)")
	runCmd.Flags().StringVar(&filterFlag, "filter", "", "go test -run filter (e.g. Smoke, Critical, Security)")
	runCmd.Flags().BoolVar(&securityFlag, "security", false, "Enable the security-fuzz suite")
	runCmd.Flags().BoolVar(&fuzzFastFlag, "fuzz-fast", false, "Sample every 3rd security payload (developer convenience, never a CI default)")
	runCmd.Flags().BoolVar(&videosFlag, "videos", false, "Record videos of browser sessions")
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Fixture dataset utilities",
}

var fixturesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate fixture datasets against their schemas",
	RunE:  runFixturesValidate,
}

var fixturesDirFlag string

func init() {
	fixturesValidateCmd.Flags().StringVar(&fixturesDirFlag, "dir", "tests/e2e/fixtures/data", "Fixture data directory")
	fixturesCmd.AddCommand(fixturesValidateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.Load(configPathFlag); err != nil {
		log.Printf("Failed to load configuration from file: %v", err)
	}
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("no configuration available")
	}
	if portFlag != 0 {
		cfg.Server.Port = portFlag
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := mockapp.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create mock platform server: %w", err)
	}

	addr := cfg.Server.GetServerAddr()
	log.Printf("[classavo-e2e] Mock platform listening on %s", addr)
	return server.Router().Run(addr)
}

func runSuite(cmd *cobra.Command, args []string) error {
	env := os.Environ()
	env = append(env, fmt.Sprintf("HEADLESS=%t", headlessFlag))
	env = append(env, "E2E_BROWSER="+browserFlag)
	if baseURLFlag != "" {
		env = append(env, "BASE_URL="+baseURLFlag)
	}
	if securityFlag {
		env = append(env, "E2E_SECURITY=1")
	}
	if fuzzFastFlag {
		env = append(env, "E2E_FUZZ_FAST=1")
	}
	if videosFlag {
		env = append(env, "VIDEOS=true")
	}

	testArgs := []string{"test", "./tests/e2e/...", "-count=1", "-timeout", "30m", "-v"}
	if filterFlag != "" {
		testArgs = append(testArgs, "-run", filterFlag)
	}

	c := exec.Command("go", testArgs...)
	c.Env = env
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	log.Printf("[classavo-e2e] go %v", testArgs)
	return c.Run()
}

func runFixturesValidate(cmd *cobra.Command, args []string) error {
	provider := fixtures.NewProvider(fixturesDirFlag)
	for _, name := range fixtures.DatasetNames() {
		if _, err := provider.Load(name); err != nil {
			return fmt.Errorf("fixture %q invalid: %w", name, err)
		}
		fmt.Printf("✅ %s\n", name)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
