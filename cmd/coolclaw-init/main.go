// ABOUTME: Container entrypoint for the OpenClaw gateway deployment
// ABOUTME: Synthesizes config, writes credentials, then execs the gateway

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/coolclaw/coolclaw/internal/config"
	"github.com/coolclaw/coolclaw/internal/creds"
	"github.com/coolclaw/coolclaw/internal/launcher"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                  _      _
  ___ ___   ___ | | ___| | __ ___      __
 / __/ _ \ / _ \| |/ __| |/ _' \ \ /\ / /
| (_| (_) | (_) | | (__| | (_| |\ V  V /
 \___\___/ \___/|_|\___|_|\__,_| \_/\_/
`

func main() {
	// Containers exec the binary bare; no args means start.
	cmd := "start"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch cmd {
	case "start":
		err = runStart(ctx)
	case "health":
		err = runHealth(ctx)
	case "version":
		fmt.Println(version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: coolclaw-init [command]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  start     Generate config and credentials, then exec the gateway (default)")
	fmt.Println("  health    Probe the local gateway (container HEALTHCHECK)")
	fmt.Println("  version   Print version")
}

func runStart(ctx context.Context) error {
	logger := setupLogger()
	paths := config.DefaultPaths()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	doc, err := config.Synthesize(paths, logger)
	if err != nil {
		return fmt.Errorf("synthesizing config: %w", err)
	}
	if err := config.Write(paths.Document(), doc); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", paths.Document())
	green.Print("    ▶ ")
	fmt.Printf("Model:     %s\n", doc.Agents.Defaults.Model)
	green.Print("    ▶ ")
	fmt.Printf("Gateway:   %s:%d\n", doc.Gateway.Bind, doc.Gateway.Port)
	green.Print("    ▶ ")
	fmt.Printf("Channels:  %s\n", channelSummary(doc))
	fmt.Println()

	logger.Info("config document written",
		"path", paths.Document(),
		"model", doc.Agents.Defaults.Model,
		"bind", doc.Gateway.Bind,
		"port", doc.Gateway.Port,
	)

	profiles := creds.CollectProfiles()
	if err := creds.WriteProfiles(paths.AuthProfiles(), profiles); err != nil {
		return fmt.Errorf("writing auth profiles: %w", err)
	}
	if err := creds.WriteEnvFiles(paths.EnvFiles()); err != nil {
		return fmt.Errorf("writing env files: %w", err)
	}
	logger.Info("credential files written", "profiles", len(profiles))

	// Setup-token import is delegated to the application's own CLI and is
	// never allowed to block startup.
	if tok := os.Getenv(config.EnvSetupToken); tok != "" {
		if err := creds.NewImporter(paths.AppDir).Import(ctx, tok); err != nil {
			logger.Warn("setup-token import failed, continuing", "error", err)
		} else {
			logger.Info("setup token imported")
		}
	}

	if !creds.HasAnyCredential() {
		fmt.Fprint(os.Stderr, creds.NoCredentialsWarning)
	}

	logger.Info("handing off to gateway", "bind", doc.Gateway.Bind, "port", doc.Gateway.Port)
	return launcher.New(paths.AppDir, doc.Gateway.Bind, doc.Gateway.Port).Exec()
}

// channelSummary lists the enabled channels for the startup banner.
func channelSummary(doc *config.Document) string {
	s := "whatsapp"
	if doc.Channels.Telegram != nil {
		s += ", telegram"
	}
	if doc.Channels.Discord != nil {
		s += ", discord"
	}
	if doc.Channels.Slack != nil {
		s += ", slack"
	}
	return s
}

// runHealth probes the local gateway. Any HTTP response below 500 counts as
// live: the gateway answers 401 to unauthenticated requests, which still
// proves the process is up.
func runHealth(ctx context.Context) error {
	port := healthPort()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := fmt.Sprintf("http://127.0.0.1:%d/", port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

// healthPort prefers the port in the generated document so overrides-file
// deployments probe the right place, falling back to env and default.
func healthPort() int {
	paths := config.DefaultPaths()
	if data, err := os.ReadFile(paths.Document()); err == nil {
		var doc config.Document
		if err := json.Unmarshal(data, &doc); err == nil && doc.Gateway.Port > 0 {
			return doc.Gateway.Port
		}
	}
	if raw := os.Getenv(config.EnvGatewayPort); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			return port
		}
	}
	return config.DefaultPort
}
