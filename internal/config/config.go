// ABOUTME: Configuration document model and environment-driven synthesis
// ABOUTME: Builds the openclaw.json the external gateway consumes at startup

package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coolclaw/coolclaw/internal/fsutil"
)

// Environment variables recognized by the synthesizer.
const (
	EnvStateDir       = "OPENCLAW_STATE_DIR"
	EnvAppDir         = "OPENCLAW_APP_DIR"
	EnvGatewayToken   = "OPENCLAW_GATEWAY_TOKEN"
	EnvGatewayBind    = "OPENCLAW_GATEWAY_BIND"
	EnvGatewayPort    = "OPENCLAW_GATEWAY_PORT"
	EnvTrustedProxies = "OPENCLAW_TRUSTED_PROXIES"
	EnvWorkspaceDir   = "OPENCLAW_WORKSPACE_DIR"
	EnvBrowserEnabled = "OPENCLAW_BROWSER_ENABLED"
	EnvBrowserCDPURL  = "OPENCLAW_BROWSER_CDP_URL"
	EnvDeployConfig   = "COOLCLAW_DEPLOY_CONFIG"
	EnvContainer      = "OPENCLAW_CONTAINER"

	EnvAnthropicKey  = "ANTHROPIC_API_KEY"
	EnvSetupToken    = "CLAUDE_SETUP_TOKEN"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvOpenRouterKey = "OPENROUTER_API_KEY"

	EnvTelegramToken = "TELEGRAM_BOT_TOKEN"
	EnvDiscordToken  = "DISCORD_BOT_TOKEN"
	EnvSlackBotToken = "SLACK_BOT_TOKEN"
	EnvSlackAppToken = "SLACK_APP_TOKEN"
)

// Built-in defaults, matching the image the tool ships in.
const (
	DefaultStateDir = "/home/node/.openclaw"
	DefaultAppDir   = "/app"
	DefaultBind     = "lan"
	DefaultPort     = 18789
	DefaultCDPURL   = "ws://browser:9222"

	// FallbackModel is used when no provider credential is present.
	FallbackModel = "anthropic/claude-opus-4-5"

	generatorName = "coolclaw-init"
)

// defaultTrustedProxies covers the private ranges a compose-network reverse
// proxy (Traefik under Coolify) will connect from.
var defaultTrustedProxies = []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}

// modelPriority maps provider credential variables to the default model
// identifier, in fixed priority order. The first variable set wins.
var modelPriority = []struct {
	Envs  []string
	Model string
}{
	{[]string{EnvAnthropicKey, EnvSetupToken}, "anthropic/claude-opus-4-5"},
	{[]string{EnvOpenAIKey}, "openai/gpt-5"},
	{[]string{EnvGeminiKey}, "google/gemini-2.5-pro"},
	{[]string{EnvOpenRouterKey}, "openrouter/auto"},
}

// Paths locates the files coolclaw reads and writes.
type Paths struct {
	StateDir string
	AppDir   string
}

// DefaultPaths resolves the state and app directories from the environment.
func DefaultPaths() Paths {
	return Paths{
		StateDir: envOr(EnvStateDir, DefaultStateDir),
		AppDir:   envOr(EnvAppDir, DefaultAppDir),
	}
}

// Document returns the path of the gateway configuration document.
func (p Paths) Document() string {
	return filepath.Join(p.StateDir, "openclaw.json")
}

// AuthProfiles returns the path of the auth-profile document for the main agent.
func (p Paths) AuthProfiles() string {
	return filepath.Join(p.StateDir, "agents", "main", "agent", "auth-profiles.json")
}

// EnvFiles returns the two locations the external application probes for
// KEY=VALUE credential files.
func (p Paths) EnvFiles() []string {
	return []string{
		filepath.Join(p.StateDir, ".env"),
		filepath.Join(p.AppDir, ".env"),
	}
}

// DeployConfig returns the path of the optional YAML overrides file.
func (p Paths) DeployConfig() string {
	if v := os.Getenv(EnvDeployConfig); v != "" {
		return v
	}
	return filepath.Join(p.StateDir, "deploy.yaml")
}

// Document is the configuration record consumed by the external gateway.
type Document struct {
	Agents   AgentsBlock   `json:"agents"`
	Gateway  GatewayBlock  `json:"gateway"`
	Channels ChannelsBlock `json:"channels"`
	Browser  *BrowserBlock `json:"browser,omitempty"`
	Meta     MetaBlock     `json:"meta"`
}

// AgentsBlock holds agent defaults.
type AgentsBlock struct {
	Defaults AgentDefaults `json:"defaults"`
}

// AgentDefaults selects the model and workspace for the main agent.
type AgentDefaults struct {
	Model     string `json:"model"`
	Workspace string `json:"workspace"`
}

// GatewayBlock holds the gateway network binding.
type GatewayBlock struct {
	Bind           string      `json:"bind"`
	Port           int         `json:"port"`
	Auth           GatewayAuth `json:"auth"`
	TrustedProxies []string    `json:"trustedProxies"`
}

// GatewayAuth holds the gateway auth mode and token.
type GatewayAuth struct {
	Mode  string `json:"mode"`
	Token string `json:"token"`
}

// ChannelsBlock enables messaging channels. WhatsApp is always present;
// the others appear only when their credentials are configured.
type ChannelsBlock struct {
	WhatsApp WhatsAppChannel  `json:"whatsapp"`
	Telegram *TelegramChannel `json:"telegram,omitempty"`
	Discord  *DiscordChannel  `json:"discord,omitempty"`
	Slack    *SlackChannel    `json:"slack,omitempty"`
}

// WhatsAppChannel is the default channel; login happens interactively via QR.
type WhatsAppChannel struct {
	Enabled  bool   `json:"enabled"`
	DMPolicy string `json:"dmPolicy"`
}

// TelegramChannel carries the BotFather token.
type TelegramChannel struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"botToken"`
}

// DiscordChannel carries the bot token.
type DiscordChannel struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
}

// SlackChannel needs the bot/app token pair for socket mode.
type SlackChannel struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"botToken"`
	AppToken string `json:"appToken"`
}

// BrowserBlock points the gateway at the browser-automation container.
type BrowserBlock struct {
	Enabled bool   `json:"enabled"`
	CDPURL  string `json:"cdpUrl"`
}

// MetaBlock records provenance of the generated document.
type MetaBlock struct {
	InstanceID  string `json:"instanceId"`
	GeneratedAt string `json:"generatedAt"`
	Generator   string `json:"generator"`
}

// Synthesize builds the configuration document from the environment, the
// optional overrides file, and the token recovered from a prior document.
func Synthesize(paths Paths, logger *slog.Logger) (*Document, error) {
	ov, err := LoadOverrides(paths.DeployConfig())
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}

	token, err := ResolveToken(os.Getenv(EnvGatewayToken), paths.Document(), logger)
	if err != nil {
		return nil, fmt.Errorf("resolving gateway token: %w", err)
	}

	bind := firstNonEmpty(os.Getenv(EnvGatewayBind), ov.Bind, DefaultBind)
	port := resolvePort(os.Getenv(EnvGatewayPort), ov.Port, logger)
	workspace := firstNonEmpty(os.Getenv(EnvWorkspaceDir), ov.Workspace, filepath.Join(paths.StateDir, "workspace"))

	model := ov.Model
	if model == "" {
		model = DefaultModel()
	}

	doc := &Document{
		Agents: AgentsBlock{Defaults: AgentDefaults{
			Model:     model,
			Workspace: workspace,
		}},
		Gateway: GatewayBlock{
			Bind:           bind,
			Port:           port,
			Auth:           GatewayAuth{Mode: "token", Token: token},
			TrustedProxies: resolveTrustedProxies(os.Getenv(EnvTrustedProxies), ov.TrustedProxies),
		},
		Channels: resolveChannels(logger),
		Browser:  resolveBrowser(ov),
		Meta: MetaBlock{
			InstanceID:  uuid.New().String(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Generator:   generatorName,
		},
	}

	return doc, nil
}

// Write marshals the document and replaces the file at path atomically.
// The environment is authoritative, so any prior document is overwritten.
func Write(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config document: %w", err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// DefaultModel picks the model for the first provider whose credential is
// present, falling back to FallbackModel when none are configured.
func DefaultModel() string {
	for _, entry := range modelPriority {
		for _, key := range entry.Envs {
			if os.Getenv(key) != "" {
				return entry.Model
			}
		}
	}
	return FallbackModel
}

// resolvePort parses the port environment value. A malformed value falls
// back to the override or default rather than corrupting the document.
func resolvePort(raw string, override int, logger *slog.Logger) int {
	if raw != "" {
		port, err := strconv.Atoi(raw)
		if err == nil && port > 0 && port < 65536 {
			return port
		}
		logger.Warn("invalid gateway port, using default", "value", raw)
	}
	if override > 0 {
		return override
	}
	return DefaultPort
}

// resolveTrustedProxies splits the comma-separated environment value into
// an ordered list, preserving order and dropping empty items.
func resolveTrustedProxies(raw string, override []string) []string {
	if raw == "" {
		if len(override) > 0 {
			return override
		}
		return append([]string(nil), defaultTrustedProxies...)
	}
	var proxies []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			proxies = append(proxies, item)
		}
	}
	if len(proxies) == 0 {
		return append([]string(nil), defaultTrustedProxies...)
	}
	return proxies
}

func resolveChannels(logger *slog.Logger) ChannelsBlock {
	ch := ChannelsBlock{
		WhatsApp: WhatsAppChannel{Enabled: true, DMPolicy: "pairing"},
	}

	if tok := os.Getenv(EnvTelegramToken); tok != "" {
		ch.Telegram = &TelegramChannel{Enabled: true, BotToken: tok}
	}
	if tok := os.Getenv(EnvDiscordToken); tok != "" {
		ch.Discord = &DiscordChannel{Enabled: true, Token: tok}
	}

	bot, app := os.Getenv(EnvSlackBotToken), os.Getenv(EnvSlackAppToken)
	switch {
	case bot != "" && app != "":
		ch.Slack = &SlackChannel{Enabled: true, BotToken: bot, AppToken: app}
	case bot != "" || app != "":
		logger.Warn("slack needs both SLACK_BOT_TOKEN and SLACK_APP_TOKEN, channel disabled")
	}

	return ch
}

func resolveBrowser(ov Overrides) *BrowserBlock {
	cdpURL := firstNonEmpty(os.Getenv(EnvBrowserCDPURL), ov.Browser.CDPURL)
	enabled := os.Getenv(EnvBrowserEnabled) == "true"
	if cdpURL == "" && !enabled {
		return nil
	}
	if cdpURL == "" {
		cdpURL = DefaultCDPURL
	}
	return &BrowserBlock{Enabled: true, CDPURL: cdpURL}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
