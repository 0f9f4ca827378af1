// Package browser opens a generated report in the platform's default viewer.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Command returns the viewer command for goos, or an error for unsupported platforms.
func Command(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	case "darwin":
		return exec.Command("open", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Open starts the viewer without waiting for it to exit.
func Open(target string) error {
	cmd, err := Command(runtime.GOOS, target)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch viewer: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
