// ABOUTME: Optional YAML deploy overrides with environment variable expansion
// ABOUTME: File values sit between explicit env vars and built-in defaults

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Overrides pins derived values from an optional deploy.yaml. Explicit
// environment variables still take precedence over anything set here.
type Overrides struct {
	Bind           string   `yaml:"bind"`
	Port           int      `yaml:"port"`
	Workspace      string   `yaml:"workspace"`
	Model          string   `yaml:"model"`
	TrustedProxies []string `yaml:"trusted_proxies"`
	Browser        struct {
		CDPURL string `yaml:"cdp_url"`
	} `yaml:"browser"`
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadOverrides reads the overrides file at path. A missing file is not an
// error: deployments without one run on env vars and defaults alone.
// ${VAR_NAME} references in the file are expanded from the environment.
func LoadOverrides(path string) (Overrides, error) {
	var ov Overrides

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ov, nil
	}
	if err != nil {
		return ov, fmt.Errorf("reading overrides file: %w", err)
	}

	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &ov); err != nil {
		return Overrides{}, fmt.Errorf("parsing overrides file: %w", err)
	}

	return ov, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with environment values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envPattern.FindStringSubmatch(match)[1])
	})
}
