package fixtures

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Dataset names accepted by Provider.Load.
const (
	DatasetUsers            = "users"
	DatasetCourses          = "courses"
	DatasetSecurityPayloads = "security_payloads"
)

// User is one login fixture. Identity key is the email; records are
// immutable for the duration of a run.
type User struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Verified bool   `json:"verified"`
}

// Course is one course fixture. Identity key is the code.
type Course struct {
	Code     string `json:"code"`
	Password string `json:"password"`
	Title    string `json:"title"`
	State    string `json:"state"`
}

// Provider loads fixture datasets lazily and caches them per name. It is a
// constructed instance rather than package state so parallel suites can each
// own one; suites create it in their setup and pass it down.
type Provider struct {
	dir string

	mu    sync.Mutex
	cache map[string]json.RawMessage
}

// NewProvider creates a fixture provider reading datasets from dir.
func NewProvider(dir string) *Provider {
	return &Provider{
		dir:   dir,
		cache: make(map[string]json.RawMessage),
	}
}

// DatasetNames returns every dataset name the provider understands.
func DatasetNames() []string {
	names := make([]string, 0, len(schemasByDataset))
	for name := range schemasByDataset {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the raw dataset, fetching and schema-validating it on first
// use. Subsequent calls for the same name return the cached bytes without
// touching the filesystem. Unknown names fail fast with the offending value.
func (p *Provider) Load(name string) (json.RawMessage, error) {
	schema, ok := schemasByDataset[name]
	if !ok {
		return nil, fmt.Errorf("unknown fixture dataset %q (known: %s)", name, strings.Join(DatasetNames(), ", "))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if raw, ok := p.cache[name]; ok {
		return raw, nil
	}

	path := filepath.Join(p.dir, name+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate fixture %q: %w", name, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("fixture %q does not match schema: %s", name, strings.Join(msgs, "; "))
	}

	p.cache[name] = json.RawMessage(raw)
	return p.cache[name], nil
}

// Reset clears the cache so the next access re-fetches from disk. This is a
// cache-invalidation hook, not a per-test isolation mechanism; session state
// reset is the ResetApp command's job.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]json.RawMessage)
}

// Users returns the users dataset.
func (p *Provider) Users() ([]User, error) {
	raw, err := p.Load(DatasetUsers)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users fixture: %w", err)
	}
	return users, nil
}

// Courses returns the courses dataset.
func (p *Provider) Courses() ([]Course, error) {
	raw, err := p.Load(DatasetCourses)
	if err != nil {
		return nil, err
	}
	var courses []Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses fixture: %w", err)
	}
	return courses, nil
}

// ValidUser returns the first verified user.
func (p *Provider) ValidUser() (User, error) {
	users, err := p.Users()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Verified {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("no verified user in users fixture")
}

// UnverifiedUser returns the first unverified user.
func (p *Provider) UnverifiedUser() (User, error) {
	users, err := p.Users()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if !u.Verified {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("no unverified user in users fixture")
}

// ValidCourse returns the first course in the open state.
func (p *Provider) ValidCourse() (Course, error) {
	return p.CourseByState("open")
}

// FullCourse returns the first course at capacity.
func (p *Provider) FullCourse() (Course, error) {
	return p.CourseByState("full")
}

// CourseByState returns the first course with the given capacity state.
func (p *Provider) CourseByState(state string) (Course, error) {
	courses, err := p.Courses()
	if err != nil {
		return Course{}, err
	}
	for _, c := range courses {
		if c.State == state {
			return c, nil
		}
	}
	return Course{}, fmt.Errorf("no course with state %q in courses fixture", state)
}

// SecurityPayloads returns the payload lists keyed by category.
func (p *Provider) SecurityPayloads() (map[string][]string, error) {
	raw, err := p.Load(DatasetSecurityPayloads)
	if err != nil {
		return nil, err
	}
	var payloads map[string][]string
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("failed to decode security payloads fixture: %w", err)
	}
	return payloads, nil
}

// PayloadsFor returns the payloads for one category, failing fast on a
// category the fixture does not define.
func (p *Provider) PayloadsFor(category string) ([]string, error) {
	all, err := p.SecurityPayloads()
	if err != nil {
		return nil, err
	}
	payloads, ok := all[category]
	if !ok {
		known := make([]string, 0, len(all))
		for k := range all {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown payload category %q (known: %s)", category, strings.Join(known, ", "))
	}
	return payloads, nil
}
