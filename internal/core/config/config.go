// Package config provides configuration management for jokerforge services.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/scarydoors/jokerforge/internal/effects"
	"github.com/scarydoors/jokerforge/internal/gamevar"
	"github.com/scarydoors/jokerforge/internal/types"
)

// Config holds configuration for the compiler CLI and the compiler API.
type Config struct {
	Compiler    CompilerConfig
	Server      ServerConfig
	DataDir     string
	DatabaseURL string
}

// CompilerConfig controls emitted code.
type CompilerConfig struct {
	Namespace     string
	DefaultColour string
	VerifyOutput  bool
	Workers       int
}

// ServerConfig holds configuration for the gRPC compiler API.
type ServerConfig struct {
	Host           string
	Port           int
	MaxConnections int
	RequestTimeout time.Duration
	MaxRules       int
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		Compiler: CompilerConfig{
			Namespace:     gamevar.DefaultNamespace,
			DefaultColour: effects.DefaultColour,
			VerifyOutput:  false,
			Workers:       4,
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           50061,
			MaxConnections: 1000,
			RequestTimeout: 30 * time.Second,
			MaxRules:       types.MaxRulesPerEntity,
		},
		DataDir: "./data",
	}
}

// DatabaseURLOrDefault returns the configured database URL, falling back to
// a sqlite file inside DataDir.
func (c *Config) DatabaseURLOrDefault() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "sqlite://" + strings.TrimSuffix(c.DataDir, "/") + "/jokerforge.db"
}

// HMACSecrets extracts HMAC secrets from environment variables.
// Supports JF_HMAC_SECRET (single) and JF_HMAC_SECRET_N (rotation).
// Returns map of secret_id -> decoded secret bytes.
// Secret IDs are UUIDv7 (32 hex chars without hyphens) matching API key format.
func HMACSecrets() (map[string][]byte, error) {
	secrets := make(map[string][]byte)

	add := func(key, val string) error {
		secretID, decoded, err := ParseHMACSecretWithID(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if _, exists := secrets[secretID]; exists {
			return fmt.Errorf("duplicate secret_id '%s' found in environment variables (check JF_HMAC_SECRET and JF_HMAC_SECRET_* for conflicts)", secretID)
		}
		secrets[secretID] = decoded
		return nil
	}

	// Format: <secret_id>:<base64_secret>
	if val := os.Getenv("JF_HMAC_SECRET"); val != "" {
		if err := add("JF_HMAC_SECRET", val); err != nil {
			return nil, err
		}
	}

	// Numbered secrets keep old and new keys valid during rotation.
	for i := 1; ; i++ {
		key := fmt.Sprintf("JF_HMAC_SECRET_%d", i)
		val := os.Getenv(key)
		if val == "" {
			break
		}
		if err := add(key, val); err != nil {
			return nil, err
		}
	}

	return secrets, nil
}

// ParseHMACSecretWithID parses secret_id:base64_secret format.
// Secret ID must be 32 hex chars (UUIDv7 without hyphens).
func ParseHMACSecretWithID(envValue string) (secretID string, secret []byte, err error) {
	parts := strings.SplitN(strings.TrimSpace(envValue), ":", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("format must be <secret_id>:<base64_secret>")
	}

	secretID = parts[0]
	if len(secretID) != 32 {
		return "", nil, fmt.Errorf("secret_id must be 32 hex chars (UUIDv7 without hyphens)")
	}
	for _, c := range secretID {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return "", nil, fmt.Errorf("secret_id must be hex chars only")
		}
	}

	secret, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	if len(secret) < 32 {
		return "", nil, fmt.Errorf("secret must be at least 32 bytes, got %d", len(secret))
	}

	return secretID, secret, nil
}
