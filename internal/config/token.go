// ABOUTME: Gateway auth token resolution across container restarts
// ABOUTME: Env token wins, then a token parsed from the prior document, then fresh random

package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// ResolveToken applies the token policy: an explicit value wins, otherwise
// the prior document at priorPath is parsed (a proper JSON decode, so a
// corrupt or token-less file just means a new token), and failing that a
// fresh 32-byte random token is generated. The result is never empty.
func ResolveToken(explicit, priorPath string, logger *slog.Logger) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if tok := tokenFromPrior(priorPath, logger); tok != "" {
		logger.Info("reusing gateway token from previous config", "path", priorPath)
		return tok, nil
	}

	tok, err := generateToken()
	if err != nil {
		return "", err
	}
	logger.Info("generated new gateway token")
	return tok, nil
}

// tokenFromPrior extracts the auth token from an existing document.
// Any read or parse failure returns "" so a fresh token gets generated.
func tokenFromPrior(path string, logger *slog.Logger) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var prior struct {
		Gateway struct {
			Auth struct {
				Token string `json:"token"`
			} `json:"auth"`
		} `json:"gateway"`
	}
	if err := json.Unmarshal(data, &prior); err != nil {
		logger.Warn("prior config unparseable, generating a new token", "path", path, "error", err)
		return ""
	}
	return prior.Gateway.Auth.Token
}

// generateToken returns 32 random bytes hex-encoded (64 characters).
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
