// Package cli provides the command-line interface for the zufang application.
package cli

import (
	"github.com/cityrent/zufang/internal/app"
)

// Global reference - commands run one at a time, so a package-level handle
// is enough to share the Application between PreRun and RunE.
var globalApp *app.Application

// SetApp stores the Application for commands to access
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the current Application
func GetApp() *app.Application {
	return globalApp
}
