// ABOUTME: Printed setup walkthroughs for token-based channels
// ABOUTME: These channels need no pairing session, only env vars and a redeploy

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/coolclaw/coolclaw/internal/config"
	"github.com/coolclaw/coolclaw/internal/dockercli"
)

// printTelegramInstructions explains the BotFather flow. Telegram needs no
// interactive pairing, so nothing is executed in the container.
func printTelegramInstructions(w io.Writer, client dockercli.Client) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Fprintln(w, "Telegram setup")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  1. Open Telegram and message @BotFather")
	fmt.Fprintln(w, "  2. Send /newbot and follow the prompts to name your bot")
	fmt.Fprintln(w, "  3. Copy the bot token BotFather gives you")
	fmt.Fprintf(w, "  4. In Coolify, set %s to that token\n", config.EnvTelegramToken)
	fmt.Fprintln(w, "  5. Redeploy the service")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "After redeploy, message your bot to start a conversation.")
	fmt.Fprintf(w, "Check that the channel came up with: coolclaw-admin status (container: %s)\n", client.Container)
}

func printDiscordInstructions(w io.Writer) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Fprintln(w, "Discord setup")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  1. Open https://discord.com/developers/applications and create an application")
	fmt.Fprintln(w, "  2. Under Bot, create a bot and copy its token")
	fmt.Fprintln(w, "  3. Enable the Message Content intent")
	fmt.Fprintf(w, "  4. In Coolify, set %s to the bot token\n", config.EnvDiscordToken)
	fmt.Fprintln(w, "  5. Redeploy the service, then invite the bot to your server")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "After redeploy, verify with: coolclaw-admin status")
}

func printSlackInstructions(w io.Writer) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Fprintln(w, "Slack setup")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  1. Open https://api.slack.com/apps and create an app (from scratch)")
	fmt.Fprintln(w, "  2. Enable Socket Mode and generate an app-level token (xapp-...)")
	fmt.Fprintln(w, "  3. Under OAuth & Permissions, install the app and copy the bot token (xoxb-...)")
	fmt.Fprintf(w, "  4. In Coolify, set %s and %s\n", config.EnvSlackBotToken, config.EnvSlackAppToken)
	fmt.Fprintln(w, "  5. Redeploy the service")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Both tokens are required; the channel stays off with only one set.")
	yellow.Fprintln(w, "After redeploy, verify with: coolclaw-admin status")
}
