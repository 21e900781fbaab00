// Package config synthesizes the OpenClaw gateway configuration document.
//
// # Overview
//
// The document is regenerated from environment variables on every container
// start; the environment is authoritative and prior on-disk state is
// overwritten. Only the gateway auth token survives across runs: when no
// token is supplied in the environment, the previous document is parsed and
// its token reused, and a fresh random token is generated as the last
// resort.
//
// # Precedence
//
// Environment variables > deploy.yaml overrides file > built-in defaults.
//
// # Environment Variables
//
// Gateway:
//
//	OPENCLAW_STATE_DIR        state directory (default /home/node/.openclaw)
//	OPENCLAW_APP_DIR          application directory (default /app)
//	OPENCLAW_GATEWAY_TOKEN    gateway auth token (generated when absent)
//	OPENCLAW_GATEWAY_BIND     bind scope: lan, loopback, all (default lan)
//	OPENCLAW_GATEWAY_PORT     gateway port (default 18789)
//	OPENCLAW_TRUSTED_PROXIES  comma-separated proxy ranges
//	OPENCLAW_WORKSPACE_DIR    agent workspace (default <state>/workspace)
//
// Model providers (first present decides the default model):
//
//	ANTHROPIC_API_KEY, CLAUDE_SETUP_TOKEN, OPENAI_API_KEY,
//	GEMINI_API_KEY, OPENROUTER_API_KEY
//
// Channels:
//
//	TELEGRAM_BOT_TOKEN, DISCORD_BOT_TOKEN,
//	SLACK_BOT_TOKEN + SLACK_APP_TOKEN (both required)
//
// Browser automation:
//
//	OPENCLAW_BROWSER_ENABLED, OPENCLAW_BROWSER_CDP_URL
//
// # Overrides File
//
// An optional YAML file (COOLCLAW_DEPLOY_CONFIG, default <state>/deploy.yaml)
// can pin bind, port, workspace, model, trusted proxies and the browser CDP
// URL. Values can reference environment variables with ${VAR} syntax.
package config
