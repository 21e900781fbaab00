// ABOUTME: Delegates setup-token import to the external application's CLI
// ABOUTME: The oauth credential shape on disk is owned by the app, not by us

package creds

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// execCommand is a test seam around exec.CommandContext.
var execCommand = exec.CommandContext

// Importer runs the external application's credential-import subcommand.
type Importer struct {
	AppDir  string
	Timeout time.Duration
}

// NewImporter returns an Importer for the application at appDir.
func NewImporter(appDir string) *Importer {
	return &Importer{AppDir: appDir, Timeout: 30 * time.Second}
}

// Import feeds the setup token to the application's own import subcommand
// on stdin. Callers treat failure as soft: startup never blocks on it.
func (i *Importer) Import(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, i.Timeout)
	defer cancel()

	entry := filepath.Join(i.AppDir, "openclaw.mjs")
	cmd := execCommand(ctx, "node", entry, "models", "auth", "setup-token", "--token-stdin")
	cmd.Stdin = strings.NewReader(token + "\n")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("setup-token import failed: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}
