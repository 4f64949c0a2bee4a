package mockapp

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/classavo-io/classavo-e2e/internal/config"
)

// Server serves the Classavo student platform mock: a single-page app whose
// login, course-join and dashboard flows run entirely in the browser with
// simulated network delays. E2E suites drive it through the DOM and a small
// window-level accessor API the page exposes.
type Server struct {
	cfg   *config.Config
	index *pongo2.Template
}

// NewServer creates the mock platform server from the given configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	raw, err := webFS.ReadFile("web/templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read index template: %w", err)
	}
	tmpl, err := pongo2.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	return &Server{cfg: cfg, index: tmpl}, nil
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealthz)

	staticFS, err := fs.Sub(webFS, "web/static")
	if err == nil {
		r.StaticFS("/static", http.FS(staticFS))
	}

	return r
}

// handleIndex renders the SPA. Each page load gets a server-generated session
// id and the simulated latency knobs, so the browser-side JS honors config
// changes without an asset rebuild.
func (s *Server) handleIndex(c *gin.Context) {
	sim := s.cfg.Simulate
	ctx := pongo2.Context{
		"app_name":          s.cfg.App.Name,
		"session_id":        uuid.NewString(),
		"login_delay_ms":    sim.LoginDelayMS,
		"join_delay_ms":     sim.JoinDelayMS,
		"loading_hide_ms":   sim.LoadingHideMS,
		"start_reveal_ms":   sim.StartRevealMS,
		"redirect_delay_ms": sim.RedirectDelayMS,
	}

	out, err := s.index.Execute(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "Template execution error: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"app":    s.cfg.App.Name,
		"env":    s.cfg.App.Env,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
