// ABOUTME: Startup warning for deployments with no provider credentials
// ABOUTME: Informational only: a missing key never blocks the gateway

package creds

import (
	"os"

	"github.com/coolclaw/coolclaw/internal/config"
)

// NoCredentialsWarning is printed verbatim when zero provider credentials
// are present. Startup continues regardless.
const NoCredentialsWarning = `WARNING: no API keys configured - the agent cannot reach any model provider.
Set at least one of:
  ANTHROPIC_API_KEY     Anthropic API key
  CLAUDE_SETUP_TOKEN    Claude subscription setup token (imported via the OpenClaw CLI)
  OPENAI_API_KEY        OpenAI API key
  GEMINI_API_KEY        Google Gemini API key
  OPENROUTER_API_KEY    OpenRouter API key
The gateway will still start; add a key and redeploy to enable responses.
`

// HasAnyCredential reports whether any provider credential (API key or
// setup token) is present in the environment.
func HasAnyCredential() bool {
	for _, p := range apiKeyProviders {
		if os.Getenv(p.Env) != "" {
			return true
		}
	}
	return os.Getenv(config.EnvSetupToken) != ""
}
