package config

import (
	"bufio"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TestConfig holds all configuration for E2E tests
type TestConfig struct {
	BaseURL     string
	Timeout     time.Duration
	Headless    bool
	SlowMo      int
	Screenshots bool
	Videos      bool
	Browser     string

	// SecurityEnabled gates the payload-fuzz suite; FuzzFast narrows it to
	// every 3rd payload and is never a CI default.
	SecurityEnabled bool
	FuzzFast        bool
}

var loadOnce sync.Once

// loadDotEnv loads simple KEY=VALUE lines from .env if present.
// Existing environment variables take precedence and are not overwritten.
func loadDotEnv() {
	paths := []string{".env"}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") { // skip comments/empty
				continue
			}
			if i := strings.Index(line, "="); i > 0 {
				key := strings.TrimSpace(line[:i])
				val := strings.TrimSpace(line[i+1:])
				if val == "" || key == "" {
					continue
				}
				// Strip optional surrounding quotes
				if (strings.HasPrefix(val, "\"") && strings.HasSuffix(val, "\"")) || (strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'")) {
					val = val[1 : len(val)-1]
				}
				if os.Getenv(key) == "" { // don't override existing
					_ = os.Setenv(key, val)
				}
			}
		}
		_ = f.Close()
	}
}

// GetConfig returns the test configuration from environment variables
func GetConfig() *TestConfig {
	loadOnce.Do(loadDotEnv)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if os.Getenv("E2E_BASEURL_AUTODETECT") != "false" {
		baseURL = detectReachableBaseURL(baseURL)
	}
	log.Printf("[e2e-config] Resolved BaseURL=%s", baseURL)

	slowMo := 0
	if v := os.Getenv("SLOW_MO"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			slowMo = ms
		} else {
			slowMo = 100 // any non-numeric value means "slow enough to watch"
		}
	}

	browser := os.Getenv("E2E_BROWSER")
	if browser == "" {
		browser = "chromium"
	}

	return &TestConfig{
		BaseURL:         baseURL,
		Timeout:         10 * time.Second,
		Headless:        os.Getenv("HEADLESS") != "false",
		SlowMo:          slowMo,
		Screenshots:     os.Getenv("SCREENSHOTS") != "false",
		Videos:          os.Getenv("VIDEOS") == "true",
		Browser:         browser,
		SecurityEnabled: os.Getenv("E2E_SECURITY") == "1",
		FuzzFast:        os.Getenv("E2E_FUZZ_FAST") == "1",
	}
}

// detectReachableBaseURL attempts to find a responsive mock platform if the
// provided baseURL is not reachable.
func detectReachableBaseURL(initial string) string {
	start := time.Now()
	if reachable(initial) {
		return initial
	}

	tried := []string{initial}
	candidates := []string{}

	u, err := url.Parse(initial)
	if err == nil {
		host := u.Hostname()
		port := u.Port()
		if port == "" {
			port = "8080"
		}
		basePorts := []string{port, "8080", "18080", "8081"}
		if host != "localhost" && host != "127.0.0.1" {
			for _, p := range basePorts {
				candidates = append(candidates, "http://localhost:"+p)
			}
			for _, p := range basePorts {
				candidates = append(candidates, "http://127.0.0.1:"+p)
			}
		}
	}
	candidates = append(candidates, "http://localhost:8080")

	seen := map[string]struct{}{initial: {}}
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		tried = append(tried, c)
		if reachable(c) {
			log.Printf("[e2e-config] Auto-detect switched BaseURL %s -> %s (%.0fms; order=%v)", initial, c, time.Since(start).Seconds()*1000, tried)
			return c
		}
	}
	log.Printf("[e2e-config] Auto-detect kept unreachable BaseURL=%s (tried=%v in %.0fms)", initial, tried, time.Since(start).Seconds()*1000)
	return initial
}

func reachable(base string) bool {
	u, err := url.Parse(base)
	if err != nil {
		return false
	}
	host := u.Host
	if !strings.Contains(host, ":") {
		host += ":80"
	}
	d := net.Dialer{Timeout: 250 * time.Millisecond}
	conn, err := d.Dial("tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()

	client := &http.Client{Timeout: 800 * time.Millisecond}
	for _, path := range []string{"/healthz", "/"} {
		req, _ := http.NewRequest("GET", base+path, nil)
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			return true
		}
	}
	return false
}
