// ABOUTME: Operator CLI for a deployed OpenClaw container
// ABOUTME: Wraps docker exec for channel pairing and status checks

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/coolclaw/coolclaw/internal/dockercli"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                  _      _                         _           _
  ___ ___   ___ | | ___| | __ ___      __   __ _ | |_ __ ___ (_)_ __
 / __/ _ \ / _ \| |/ __| |/ _' \ \ /\ / /  / _' || | '_ ' _ \| | '_ \
| (_| (_) | (_) | | (__| | (_| |\ V  V /  | (_| || | | | | | | | | | |
 \___\___/ \___/|_|\___|_|\__,_| \_/\_/    \__,_||_|_| |_| |_|_|_| |_|
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], buildClient(), os.Stdout))
}

// run dispatches the single positional command and returns the process exit
// code. The instruction commands only print; nothing reaches docker for them.
func run(ctx context.Context, args []string, client dockercli.Client, out io.Writer) int {
	if len(args) != 1 {
		printUsage()
		return 1
	}

	var err error
	switch args[0] {
	case "whatsapp":
		err = cmdWhatsApp(ctx, client, out)
	case "telegram":
		printTelegramInstructions(out, client)
	case "discord":
		printDiscordInstructions(out)
	case "slack":
		printSlackInstructions(out)
	case "status", "all":
		err = cmdStatus(ctx, client)
	case "version":
		fmt.Fprintln(out, version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		return 1
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	w := os.Stderr
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Fprint(w, banner)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: coolclaw-admin <command>")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  whatsapp    Link WhatsApp interactively (QR code pairing)")
	fmt.Fprintln(w, "  telegram    Show Telegram bot setup instructions")
	fmt.Fprintln(w, "  discord     Show Discord bot setup instructions")
	fmt.Fprintln(w, "  slack       Show Slack app setup instructions")
	fmt.Fprintln(w, "  status      Show channel status for the running gateway")
	fmt.Fprintln(w, "  version     Print version")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  OPENCLAW_CONTAINER       Container name (default: %s)\n", dockercli.DefaultContainer)
	fmt.Fprintln(w, "  OPENCLAW_APP_DIR         Application dir inside the container (default: /app)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings can also be placed in ~/.config/coolclaw/admin.toml;")
	fmt.Fprintln(w, "environment variables win over the file.")
}

// cmdWhatsApp runs the interactive WhatsApp pairing flow inside the
// container. The QR code renders on the operator's terminal, so stdin and a
// TTY are passed through.
func cmdWhatsApp(ctx context.Context, client dockercli.Client, out io.Writer) error {
	cyan := color.New(color.FgCyan)
	cyan.Fprintln(out, "Starting WhatsApp pairing. Scan the QR code with the phone that")
	cyan.Fprintln(out, "owns the assistant's number (WhatsApp > Linked Devices).")
	fmt.Fprintln(out)
	return client.Run(ctx, true, "channels", "login", "whatsapp")
}

func cmdStatus(ctx context.Context, client dockercli.Client) error {
	return client.Run(ctx, false, "channels", "status", "--all")
}
