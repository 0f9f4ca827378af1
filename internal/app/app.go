package app

import (
	"time"

	"github.com/tldr-it-stepankutaj/searchkit/internal/logger"
)

// Context carries app-wide dependencies and metadata.
type Context struct {
	Config    Config
	Workspace WorkspaceHandle
	Log       *logger.Logger
	Now       time.Time
}

// WorkspaceHandle is a minimal contract the workspace package provides.
type WorkspaceHandle interface {
	Path(parts ...string) string
	ReportPath(t time.Time, ext string) string
}
