// ABOUTME: Mirrors selected credential env vars into flat KEY=VALUE files
// ABOUTME: Duplicated into the two lookup paths the external app probes

package creds

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/coolclaw/coolclaw/internal/config"
	"github.com/coolclaw/coolclaw/internal/fsutil"
)

// mirroredEnvKeys are the variables duplicated into the env files.
var mirroredEnvKeys = []string{
	config.EnvAnthropicKey,
	config.EnvSetupToken,
	config.EnvOpenAIKey,
	config.EnvGeminiKey,
	config.EnvOpenRouterKey,
	config.EnvTelegramToken,
	config.EnvDiscordToken,
	config.EnvSlackBotToken,
	config.EnvSlackAppToken,
}

// WriteEnvFiles writes a KEY=VALUE file at each path for every mirrored
// variable currently set. Keys are sorted so reruns produce identical files.
func WriteEnvFiles(paths []string) error {
	var lines []string
	for _, key := range mirroredEnvKeys {
		if v := os.Getenv(key); v != "" {
			lines = append(lines, key+"="+v)
		}
	}
	sort.Strings(lines)

	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}

	for _, path := range paths {
		if err := fsutil.WriteFile(path, []byte(content), 0o600); err != nil {
			return fmt.Errorf("writing env file %s: %w", path, err)
		}
	}
	return nil
}
