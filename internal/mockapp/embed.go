package mockapp

import "embed"

// webFS carries the mock platform's page template and static assets so the
// server binary is self-contained.
//
//go:embed web
var webFS embed.FS
