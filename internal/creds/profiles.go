// ABOUTME: Auth profile set for the external application's model-provider layer
// ABOUTME: Built fresh from provider env vars and written as a JSON document

// Package creds writes the credential material the external OpenClaw
// application consumes: the auth-profile document, mirrored KEY=VALUE env
// files, and (for subscription setup tokens) a delegated import through the
// application's own CLI.
package creds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/coolclaw/coolclaw/internal/config"
	"github.com/coolclaw/coolclaw/internal/fsutil"
)

// Profile is one credential record in the auth-profile document.
type Profile struct {
	Provider string `json:"provider"`
	Mode     string `json:"mode"`
	Key      string `json:"key"`
}

// ProfileSet maps provider identifiers (e.g. "anthropic:api") to records.
type ProfileSet map[string]Profile

// apiKeyProviders lists the simple API-key providers. The setup-token
// provider is absent on purpose: its on-disk shape is owned by the external
// application and imported via Importer instead.
var apiKeyProviders = []struct {
	Env      string
	Provider string
	ID       string
}{
	{config.EnvAnthropicKey, "anthropic", "anthropic:api"},
	{config.EnvOpenAIKey, "openai", "openai:api"},
	{config.EnvGeminiKey, "google", "google:api"},
	{config.EnvOpenRouterKey, "openrouter", "openrouter:api"},
}

// CollectProfiles builds the profile set from whichever provider env vars
// are present. Empty when none are set.
func CollectProfiles() ProfileSet {
	set := make(ProfileSet)
	for _, p := range apiKeyProviders {
		if key := os.Getenv(p.Env); key != "" {
			set[p.ID] = Profile{Provider: p.Provider, Mode: "api", Key: key}
		}
	}
	return set
}

// WriteProfiles writes the auth-profile document. An empty set still
// produces a document with an empty profiles object so the external
// application sees a well-formed file.
func WriteProfiles(path string, set ProfileSet) error {
	doc := struct {
		Profiles ProfileSet `json:"profiles"`
	}{Profiles: set}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding auth profiles: %w", err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
