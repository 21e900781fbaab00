// ABOUTME: Tests for auth profile collection and credential file writing
// ABOUTME: Covers profile shapes, env file mirroring, and the no-credential warning

package creds

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolclaw/coolclaw/internal/config"
)

// clearCredEnv blanks every variable this package reads.
func clearCredEnv(t *testing.T) {
	t.Helper()
	for _, key := range mirroredEnvKeys {
		t.Setenv(key, "")
	}
}

func TestCollectProfiles_Empty(t *testing.T) {
	clearCredEnv(t)
	assert.Empty(t, CollectProfiles())
}

func TestCollectProfiles_APIKeyProviders(t *testing.T) {
	clearCredEnv(t)
	t.Setenv(config.EnvAnthropicKey, "sk-ant-1")
	t.Setenv(config.EnvOpenRouterKey, "or-1")

	set := CollectProfiles()
	require.Len(t, set, 2)

	assert.Equal(t, Profile{Provider: "anthropic", Mode: "api", Key: "sk-ant-1"}, set["anthropic:api"])
	assert.Equal(t, Profile{Provider: "openrouter", Mode: "api", Key: "or-1"}, set["openrouter:api"])
}

func TestCollectProfiles_SetupTokenNotAProfile(t *testing.T) {
	clearCredEnv(t)
	t.Setenv(config.EnvSetupToken, "setup-tok")

	// The setup token is imported via the external CLI, never written directly.
	assert.Empty(t, CollectProfiles())
	assert.True(t, HasAnyCredential())
}

func TestWriteProfiles_Document(t *testing.T) {
	clearCredEnv(t)
	t.Setenv(config.EnvOpenAIKey, "sk-oai")

	path := filepath.Join(t.TempDir(), "agents", "main", "agent", "auth-profiles.json")
	require.NoError(t, WriteProfiles(path, CollectProfiles()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Profiles map[string]Profile `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Profiles, 1)
	assert.Equal(t, "openai", doc.Profiles["openai:api"].Provider)
	assert.Equal(t, "api", doc.Profiles["openai:api"].Mode)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteProfiles_EmptySetStillWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth-profiles.json")
	require.NoError(t, WriteProfiles(path, ProfileSet{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"profiles":{}}`, string(data))
}

func TestWriteEnvFiles_DuplicatesAndSorts(t *testing.T) {
	clearCredEnv(t)
	t.Setenv(config.EnvTelegramToken, "tg")
	t.Setenv(config.EnvAnthropicKey, "ant")

	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "state", ".env"),
		filepath.Join(dir, "app", ".env"),
	}
	require.NoError(t, WriteEnvFiles(paths))

	want := "ANTHROPIC_API_KEY=ant\nTELEGRAM_BOT_TOKEN=tg\n"
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, want, string(data), p)
	}
}

func TestWriteEnvFiles_NoCredentials(t *testing.T) {
	clearCredEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, WriteEnvFiles([]string{path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, string(data))
}

func TestNoCredentialsWarning_ListsAllProviders(t *testing.T) {
	assert.True(t, strings.HasPrefix(NoCredentialsWarning, "WARNING: no API keys configured"))
	for _, key := range []string{
		config.EnvAnthropicKey, config.EnvSetupToken, config.EnvOpenAIKey,
		config.EnvGeminiKey, config.EnvOpenRouterKey,
	} {
		assert.Contains(t, NoCredentialsWarning, key)
	}
}

func TestHasAnyCredential(t *testing.T) {
	clearCredEnv(t)
	assert.False(t, HasAnyCredential())

	t.Setenv(config.EnvGeminiKey, "g-1")
	assert.True(t, HasAnyCredential())
}
