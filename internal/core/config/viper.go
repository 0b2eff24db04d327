package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Load reads configuration using viper.
// CLI flags > environment > config file > defaults precedence.
// flags may be nil; bound flags use the same dotted keys as the file.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("compiler.namespace", def.Compiler.Namespace)
	v.SetDefault("compiler.default_colour", def.Compiler.DefaultColour)
	v.SetDefault("compiler.verify_output", def.Compiler.VerifyOutput)
	v.SetDefault("compiler.workers", def.Compiler.Workers)
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.max_connections", def.Server.MaxConnections)
	v.SetDefault("server.request_timeout", def.Server.RequestTimeout.String())
	v.SetDefault("server.max_rules", def.Server.MaxRules)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("database_url", "")

	// Bind environment variables with JF_ prefix
	v.SetEnvPrefix("JF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Secrets must be environment-only
		if err := validateNoSecretsInConfig(configPath); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Compiler: CompilerConfig{
			Namespace:     v.GetString("compiler.namespace"),
			DefaultColour: v.GetString("compiler.default_colour"),
			VerifyOutput:  v.GetBool("compiler.verify_output"),
			Workers:       v.GetInt("compiler.workers"),
		},
		Server: ServerConfig{
			Host:           v.GetString("server.host"),
			Port:           v.GetInt("server.port"),
			MaxConnections: v.GetInt("server.max_connections"),
			RequestTimeout: v.GetDuration("server.request_timeout"),
			MaxRules:       v.GetInt("server.max_rules"),
		},
		DataDir:     v.GetString("data_dir"),
		DatabaseURL: v.GetString("database_url"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// flagKeys maps config keys to the CLI flags that may override them.
var flagKeys = map[string]string{
	"compiler.namespace":      "namespace",
	"compiler.default_colour": "default-colour",
	"compiler.verify_output":  "verify",
	"compiler.workers":        "workers",
	"server.host":             "host",
	"server.port":             "port",
	"data_dir":                "data-dir",
	"database_url":            "db-url",
}

// validateConfig checks port range and positive limits.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxConnections <= 0 {
		return fmt.Errorf("max_connections must be positive, got %d", cfg.Server.MaxConnections)
	}
	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.Server.RequestTimeout)
	}
	if cfg.Server.MaxRules <= 0 || cfg.Server.MaxRules > 4096 {
		return fmt.Errorf("max_rules must be between 1 and 4096, got %d", cfg.Server.MaxRules)
	}
	if cfg.Compiler.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", cfg.Compiler.Workers)
	}
	if strings.TrimSpace(cfg.Compiler.Namespace) == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	if strings.TrimSpace(cfg.Compiler.DefaultColour) == "" {
		return fmt.Errorf("default_colour must not be empty")
	}
	return nil
}

// validateNoSecretsInConfig enforces environment-only secrets. The file is
// read without environment binding so JF_HMAC_SECRET itself does not trip it.
func validateNoSecretsInConfig(configPath string) error {
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if v.IsSet("hmac_secret") || v.IsSet("server.hmac_secret") {
		return fmt.Errorf("HMAC secrets not allowed in config files (use JF_HMAC_SECRET environment variable)")
	}
	return nil
}
