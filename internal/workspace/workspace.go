package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Handle implements app.WorkspaceHandle for the report output directory.
type Handle struct {
	Root string
}

// Path joins workspace root with provided parts.
func (h Handle) Path(parts ...string) string {
	all := append([]string{h.Root}, parts...)
	return filepath.Join(all...)
}

// ReportPath returns the deterministic report file name for a run started at t.
func (h Handle) ReportPath(t time.Time, ext string) string {
	return h.Path(fmt.Sprintf("search-%s.%s", t.Format("20060102-150405"), ext))
}

// Ensure creates the output directory if missing.
func Ensure(root string) (Handle, error) {
	h := Handle{Root: root}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return h, fmt.Errorf("failed to create directory %s: %w", root, err)
	}
	return h, nil
}
