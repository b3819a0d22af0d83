package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// GlobalConfigDir is the name of the global config directory in home
	GlobalConfigDir = ".trello"

	// GlobalConfigFileName is the name of the global config file
	GlobalConfigFileName = "config.toml"

	// ConfigPathEnv overrides the location of the global config file
	ConfigPathEnv = "TRELLO_CONFIG"
)

// GlobalConfig represents the user-level configuration from ~/.trello/config.toml
type GlobalConfig struct {
	APIKey  string
	Token   string
	Secret  string
	BaseURL string
	Timeout time.Duration
}

// globalConfigFile represents the raw TOML structure for global config
type globalConfigFile struct {
	Auth authSection `toml:"auth"`
	API  apiSection  `toml:"api"`
}

// authSection represents the [auth] section in TOML
type authSection struct {
	Key    string `toml:"key,omitempty"`
	Token  string `toml:"token,omitempty"`
	Secret string `toml:"secret,omitempty"`
}

// apiSection represents the [api] section in TOML
type apiSection struct {
	BaseURL string `toml:"base_url,omitempty"`
	Timeout string `toml:"timeout,omitempty"`
}

// GlobalConfigPath returns the global config file location for homeDir.
// TRELLO_CONFIG, when set, takes its place.
func GlobalConfigPath(homeDir string) string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return filepath.Join(homeDir, GlobalConfigDir, GlobalConfigFileName)
}

// LoadGlobalConfig loads the global configuration from ~/.trello/config.toml.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadGlobalConfigFromDir(homeDir)
}

// LoadGlobalConfigFromDir loads global config using the specified directory as home.
// This is useful for testing.
func LoadGlobalConfigFromDir(homeDir string) (*GlobalConfig, error) {
	return LoadGlobalConfigFile(GlobalConfigPath(homeDir))
}

// LoadGlobalConfigFile loads global config from an explicit path.
// Returns an empty config if the file doesn't exist.
func LoadGlobalConfigFile(configPath string) (*GlobalConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read global config: %w", err)
	}

	var rawConfig globalConfigFile
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse global config TOML: %w", err)
	}

	cfg := &GlobalConfig{
		APIKey:  rawConfig.Auth.Key,
		Token:   rawConfig.Auth.Token,
		Secret:  rawConfig.Auth.Secret,
		BaseURL: rawConfig.API.BaseURL,
	}

	if rawConfig.API.Timeout != "" {
		timeout, err := time.ParseDuration(rawConfig.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", rawConfig.API.Timeout, err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

// WriteGlobalConfig writes cfg to configPath, creating the parent directory.
// The file holds credentials and is only readable by its owner.
func WriteGlobalConfig(configPath string, cfg *GlobalConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	rawConfig := globalConfigFile{
		Auth: authSection{
			Key:    cfg.APIKey,
			Token:  cfg.Token,
			Secret: cfg.Secret,
		},
		API: apiSection{
			BaseURL: cfg.BaseURL,
		},
	}
	if cfg.Timeout > 0 {
		rawConfig.API.Timeout = cfg.Timeout.String()
	}

	f, err := os.OpenFile(configPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(rawConfig); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
