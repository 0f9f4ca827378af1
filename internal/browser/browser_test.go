package browser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos string
		bin  string
		args []string
	}{
		{goos: "linux", bin: "xdg-open", args: []string{"/tmp/r.html"}},
		{goos: "darwin", bin: "open", args: []string{"/tmp/r.html"}},
		{goos: "windows", bin: "rundll32", args: []string{"url.dll,FileProtocolHandler", "/tmp/r.html"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := Command(tt.goos, "/tmp/r.html")
			require.NoError(t, err)
			assert.Equal(t, tt.bin, filepath.Base(cmd.Args[0]))
			assert.Equal(t, tt.args, cmd.Args[1:])
		})
	}
}

func TestCommand_Unsupported(t *testing.T) {
	_, err := Command("plan9", "/tmp/r.html")
	assert.ErrorContains(t, err, "unsupported platform")
}
