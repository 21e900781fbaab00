// ABOUTME: Builds and runs docker-exec command lines into the gateway container
// ABOUTME: Operator helpers only forward commands; they never parse output

// Package dockercli forwards operator commands into the running OpenClaw
// container via docker exec.
package dockercli

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/coolclaw/coolclaw/internal/config"
)

// DefaultContainer is the compose service name of the gateway container.
const DefaultContainer = "openclaw"

// Client targets one container and application directory.
type Client struct {
	Container string
	AppDir    string
}

// FromEnv builds a Client from OPENCLAW_CONTAINER and OPENCLAW_APP_DIR,
// with compose-default fallbacks.
func FromEnv() Client {
	c := Client{Container: os.Getenv(config.EnvContainer), AppDir: os.Getenv(config.EnvAppDir)}
	if c.Container == "" {
		c.Container = DefaultContainer
	}
	if c.AppDir == "" {
		c.AppDir = config.DefaultAppDir
	}
	return c
}

// Argv builds the docker exec command line using the compiled entrypoint.
func (c Client) Argv(interactive bool, args ...string) []string {
	argv := []string{"docker", "exec"}
	if interactive {
		argv = append(argv, "-it")
	}
	argv = append(argv, c.Container, "node", filepath.Join(c.AppDir, "openclaw.mjs"))
	return append(argv, args...)
}

// AliasArgv builds the same command through the installed CLI alias, used
// when the image has no node entrypoint at the expected path.
func (c Client) AliasArgv(interactive bool, args ...string) []string {
	argv := []string{"docker", "exec"}
	if interactive {
		argv = append(argv, "-it")
	}
	argv = append(argv, c.Container, "openclaw")
	return append(argv, args...)
}

// Run executes the command with stdio attached. The CLI alias is tried only
// when the compiled entrypoint is missing from the image; a command that ran
// and failed returns its own error instead of being re-executed.
func (c Client) Run(ctx context.Context, interactive bool, args ...string) error {
	err := c.run(ctx, c.Argv(interactive, args...), interactive)
	if err == nil || !entrypointMissing(err) {
		return err
	}
	return c.run(ctx, c.AliasArgv(interactive, args...), interactive)
}

// entrypointMissing reports whether docker exec could not start the command
// inside the container. docker follows shell convention: 126 means not
// executable, 127 means not found.
func entrypointMissing(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	code := exitErr.ExitCode()
	return code == 126 || code == 127
}

func (c Client) run(ctx context.Context, argv []string, interactive bool) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if interactive {
		cmd.Stdin = os.Stdin
	}
	return cmd.Run()
}
