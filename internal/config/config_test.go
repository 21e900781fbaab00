// ABOUTME: Tests for configuration synthesis from environment variables
// ABOUTME: Covers token policy, model priority, trusted proxies and channel blocks

package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

// clearSynthEnv blanks every variable the synthesizer reads so ambient
// environment from the host cannot leak into assertions.
func clearSynthEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		EnvStateDir, EnvAppDir, EnvGatewayToken, EnvGatewayBind, EnvGatewayPort,
		EnvTrustedProxies, EnvWorkspaceDir, EnvBrowserEnabled, EnvBrowserCDPURL,
		EnvDeployConfig,
		EnvAnthropicKey, EnvSetupToken, EnvOpenAIKey, EnvGeminiKey, EnvOpenRouterKey,
		EnvTelegramToken, EnvDiscordToken, EnvSlackBotToken, EnvSlackAppToken,
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func testPaths(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	return Paths{StateDir: filepath.Join(dir, "state"), AppDir: filepath.Join(dir, "app")}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSynthesize_GeneratesHexToken(t *testing.T) {
	clearSynthEnv(t)
	paths := testPaths(t)

	doc, err := Synthesize(paths, discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if !hexToken.MatchString(doc.Gateway.Auth.Token) {
		t.Errorf("token = %q, want 64 hex chars", doc.Gateway.Auth.Token)
	}
	if doc.Gateway.Auth.Mode != "token" {
		t.Errorf("auth mode = %q, want %q", doc.Gateway.Auth.Mode, "token")
	}
}

func TestSynthesize_ReusesExportedToken(t *testing.T) {
	clearSynthEnv(t)
	paths := testPaths(t)

	first, err := Synthesize(paths, discardLogger())
	if err != nil {
		t.Fatalf("first Synthesize() error = %v", err)
	}

	t.Setenv(EnvGatewayToken, first.Gateway.Auth.Token)
	second, err := Synthesize(paths, discardLogger())
	if err != nil {
		t.Fatalf("second Synthesize() error = %v", err)
	}

	if second.Gateway.Auth.Token != first.Gateway.Auth.Token {
		t.Errorf("token changed across runs: %q != %q", second.Gateway.Auth.Token, first.Gateway.Auth.Token)
	}
}

func TestSynthesize_RecoversTokenFromPriorDocument(t *testing.T) {
	clearSynthEnv(t)
	paths := testPaths(t)

	first, err := Synthesize(paths, discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if err := Write(paths.Document(), first); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// No token in the environment: the second run must parse it back out.
	second, err := Synthesize(paths, discardLogger())
	if err != nil {
		t.Fatalf("second Synthesize() error = %v", err)
	}
	if second.Gateway.Auth.Token != first.Gateway.Auth.Token {
		t.Errorf("token not recovered from prior document")
	}
}

func TestDefaultModel_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"none set", nil, FallbackModel},
		{"anthropic key", map[string]string{EnvAnthropicKey: "sk-ant-x"}, "anthropic/claude-opus-4-5"},
		{"setup token", map[string]string{EnvSetupToken: "tok"}, "anthropic/claude-opus-4-5"},
		{"openai key", map[string]string{EnvOpenAIKey: "sk-x"}, "openai/gpt-5"},
		{"gemini key", map[string]string{EnvGeminiKey: "g-x"}, "google/gemini-2.5-pro"},
		{"openrouter key", map[string]string{EnvOpenRouterKey: "or-x"}, "openrouter/auto"},
		{
			"openai beats gemini",
			map[string]string{EnvOpenAIKey: "sk-x", EnvGeminiKey: "g-x"},
			"openai/gpt-5",
		},
		{
			"anthropic beats everything",
			map[string]string{EnvAnthropicKey: "a", EnvOpenAIKey: "o", EnvGeminiKey: "g", EnvOpenRouterKey: "r"},
			"anthropic/claude-opus-4-5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearSynthEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := DefaultModel(); got != tt.want {
				t.Errorf("DefaultModel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesize_TrustedProxiesFromEnv(t *testing.T) {
	clearSynthEnv(t)
	t.Setenv(EnvTrustedProxies, "a,b,c")

	doc, err := Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(doc.Gateway.TrustedProxies, want) {
		t.Errorf("TrustedProxies = %v, want %v", doc.Gateway.TrustedProxies, want)
	}
}

func TestSynthesize_TrustedProxiesDefault(t *testing.T) {
	clearSynthEnv(t)

	doc, err := Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if !reflect.DeepEqual(doc.Gateway.TrustedProxies, defaultTrustedProxies) {
		t.Errorf("TrustedProxies = %v, want defaults %v", doc.Gateway.TrustedProxies, defaultTrustedProxies)
	}
}

func TestSynthesize_TrustedProxiesTrimmed(t *testing.T) {
	clearSynthEnv(t)
	t.Setenv(EnvTrustedProxies, " a , ,b ")

	doc, err := Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	want := []string{"a", "b"}
	if !reflect.DeepEqual(doc.Gateway.TrustedProxies, want) {
		t.Errorf("TrustedProxies = %v, want %v", doc.Gateway.TrustedProxies, want)
	}
}

func TestSynthesize_ChannelSelection(t *testing.T) {
	clearSynthEnv(t)
	t.Setenv(EnvTelegramToken, "tg-token")
	t.Setenv(EnvSlackBotToken, "xoxb-1")
	t.Setenv(EnvSlackAppToken, "xapp-1")

	doc, err := Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if !doc.Channels.WhatsApp.Enabled {
		t.Error("whatsapp channel not enabled")
	}
	if doc.Channels.Telegram == nil || doc.Channels.Telegram.BotToken != "tg-token" {
		t.Errorf("telegram channel = %+v, want enabled with token", doc.Channels.Telegram)
	}
	if doc.Channels.Slack == nil || doc.Channels.Slack.BotToken != "xoxb-1" || doc.Channels.Slack.AppToken != "xapp-1" {
		t.Errorf("slack channel = %+v, want enabled with both tokens", doc.Channels.Slack)
	}
	if doc.Channels.Discord != nil {
		t.Errorf("discord channel present without DISCORD_BOT_TOKEN: %+v", doc.Channels.Discord)
	}
}

func TestSynthesize_SlackHalfPairOmitted(t *testing.T) {
	clearSynthEnv(t)
	t.Setenv(EnvSlackBotToken, "xoxb-1")

	doc, err := Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if doc.Channels.Slack != nil {
		t.Errorf("slack channel present with only the bot token: %+v", doc.Channels.Slack)
	}
}

func TestSynthesize_BrowserBlock(t *testing.T) {
	clearSynthEnv(t)

	doc, err := Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if doc.Browser != nil {
		t.Errorf("browser block present without configuration: %+v", doc.Browser)
	}

	t.Setenv(EnvBrowserEnabled, "true")
	doc, err = Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if doc.Browser == nil || doc.Browser.CDPURL != DefaultCDPURL {
		t.Errorf("browser block = %+v, want enabled with default CDP URL", doc.Browser)
	}

	t.Setenv(EnvBrowserCDPURL, "ws://chrome:9000")
	doc, err = Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if doc.Browser == nil || doc.Browser.CDPURL != "ws://chrome:9000" {
		t.Errorf("browser block = %+v, want explicit CDP URL", doc.Browser)
	}
}

func TestSynthesize_PortHandling(t *testing.T) {
	clearSynthEnv(t)

	doc, err := Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if doc.Gateway.Port != DefaultPort {
		t.Errorf("port = %d, want default %d", doc.Gateway.Port, DefaultPort)
	}

	t.Setenv(EnvGatewayPort, "19000")
	doc, err = Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if doc.Gateway.Port != 19000 {
		t.Errorf("port = %d, want 19000", doc.Gateway.Port)
	}

	// Malformed values fall back to the default instead of corrupting the document.
	t.Setenv(EnvGatewayPort, "not-a-port")
	doc, err = Synthesize(testPaths(t), discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if doc.Gateway.Port != DefaultPort {
		t.Errorf("port = %d, want default %d for malformed env", doc.Gateway.Port, DefaultPort)
	}
}

func TestWrite_OverwritesAndRoundTrips(t *testing.T) {
	clearSynthEnv(t)
	paths := testPaths(t)

	t.Setenv(EnvGatewayBind, "loopback")
	doc, err := Synthesize(paths, discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if err := Write(paths.Document(), doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// Token values with quotes must survive; the serializer escapes them.
	t.Setenv(EnvGatewayToken, `tok"en`)
	doc, err = Synthesize(paths, discardLogger())
	if err != nil {
		t.Fatalf("second Synthesize() error = %v", err)
	}
	if err := Write(paths.Document(), doc); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	data, err := os.ReadFile(paths.Document())
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	var got Document
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if got.Gateway.Auth.Token != `tok"en` {
		t.Errorf("token = %q, want %q", got.Gateway.Auth.Token, `tok"en`)
	}

	info, err := os.Stat(paths.Document())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("document mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestSynthesize_WorkspaceDefault(t *testing.T) {
	clearSynthEnv(t)
	paths := testPaths(t)

	doc, err := Synthesize(paths, discardLogger())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	want := filepath.Join(paths.StateDir, "workspace")
	if doc.Agents.Defaults.Workspace != want {
		t.Errorf("workspace = %q, want %q", doc.Agents.Defaults.Workspace, want)
	}
}

func TestDefaultPaths_FromEnv(t *testing.T) {
	clearSynthEnv(t)
	t.Setenv(EnvStateDir, "/var/lib/claw")
	t.Setenv(EnvAppDir, "/opt/claw")

	p := DefaultPaths()
	if p.StateDir != "/var/lib/claw" || p.AppDir != "/opt/claw" {
		t.Errorf("DefaultPaths() = %+v", p)
	}
	if got := p.Document(); got != "/var/lib/claw/openclaw.json" {
		t.Errorf("Document() = %q", got)
	}
	if got := p.AuthProfiles(); got != "/var/lib/claw/agents/main/agent/auth-profiles.json" {
		t.Errorf("AuthProfiles() = %q", got)
	}
	envFiles := p.EnvFiles()
	if len(envFiles) != 2 || envFiles[0] != "/var/lib/claw/.env" || envFiles[1] != "/opt/claw/.env" {
		t.Errorf("EnvFiles() = %v", envFiles)
	}
}
