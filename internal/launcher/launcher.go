// ABOUTME: Replaces the entrypoint process with the external gateway server
// ABOUTME: No retry: on exec failure the container exits and the orchestrator restarts it

// Package launcher execs the external OpenClaw gateway, replacing the
// current process image so container signals reach the gateway directly.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
)

// Launcher derives the gateway command line from the synthesized config.
type Launcher struct {
	AppDir string
	Bind   string
	Port   int
}

// New returns a Launcher for the application at appDir.
func New(appDir, bind string, port int) *Launcher {
	return &Launcher{AppDir: appDir, Bind: bind, Port: port}
}

// Argv resolves the executable and arguments for the gateway process.
// The compiled entrypoint (node + openclaw.mjs) is preferred; the installed
// CLI alias is the fallback when node is not on PATH.
func (l *Launcher) Argv() (path string, argv []string, err error) {
	tail := []string{"gateway", "--bind", l.Bind, "--port", strconv.Itoa(l.Port)}

	if node, err := exec.LookPath("node"); err == nil {
		entry := filepath.Join(l.AppDir, "openclaw.mjs")
		return node, append([]string{node, entry}, tail...), nil
	}
	if alias, err := exec.LookPath("openclaw"); err == nil {
		return alias, append([]string{alias}, tail...), nil
	}
	return "", nil, fmt.Errorf("neither node nor the openclaw CLI found on PATH")
}

// Exec replaces the current process with the gateway. It only returns on
// failure; on success the process image is gone.
func (l *Launcher) Exec() error {
	path, argv, err := l.Argv()
	if err != nil {
		return err
	}
	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
