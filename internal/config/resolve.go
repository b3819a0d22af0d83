package config

import (
	"errors"
	"net/url"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultBaseURL is the API root used when nothing else is configured
const DefaultBaseURL = "https://trello.com/1"

// Environment variables read by Resolve.
const (
	EnvAPIKey    = "TRELLO_API_KEY"
	EnvToken     = "TRELLO_TOKEN"
	EnvAPISecret = "TRELLO_API_SECRET"
	EnvBaseURL   = "TRELLO_BASE_URL"
)

// Overrides holds values given on the command line. Empty fields are ignored.
type Overrides struct {
	APIKey  string
	Token   string
	Secret  string
	BaseURL string
	Timeout time.Duration
}

// ResolvedConfig represents the final merged configuration with all
// precedence rules applied. Precedence order (highest to lowest):
// 1. Command line overrides
// 2. Environment variables (TRELLO_API_KEY, TRELLO_TOKEN, ...)
// 3. Global config (~/.trello/config.toml)
// 4. Built-in defaults (https://trello.com/1, no timeout)
//
// DefaultBoard and DefaultList come from trello.toml, if one is found.
type ResolvedConfig struct {
	APIKey  string
	Token   string
	Secret  string
	BaseURL string
	Timeout time.Duration

	DefaultBoard string
	DefaultList  string

	// GlobalPath is the global config file that was consulted
	GlobalPath string
}

// Resolve loads the global and project configs, reads the environment
// and merges them with overrides according to precedence rules.
func Resolve(o Overrides) (*ResolvedConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return ResolveWithHome(homeDir, o)
}

// ResolveWithHome resolves config using a specified home directory.
// This is useful for testing.
func ResolveWithHome(homeDir string, o Overrides) (*ResolvedConfig, error) {
	globalPath := GlobalConfigPath(homeDir)
	globalCfg, err := LoadGlobalConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, err := DiscoverProjectConfig()
	if errors.Is(err, ErrNoProjectConfig) {
		projectCfg = &ProjectConfig{}
	} else if err != nil {
		return nil, err
	}

	resolved := &ResolvedConfig{
		BaseURL:      DefaultBaseURL,
		DefaultBoard: projectCfg.Board,
		DefaultList:  projectCfg.List,
		GlobalPath:   globalPath,
	}

	// Global config overrides defaults
	apply(&resolved.APIKey, globalCfg.APIKey)
	apply(&resolved.Token, globalCfg.Token)
	apply(&resolved.Secret, globalCfg.Secret)
	apply(&resolved.BaseURL, globalCfg.BaseURL)
	if globalCfg.Timeout != 0 {
		resolved.Timeout = globalCfg.Timeout
	}

	// Environment overrides global config
	apply(&resolved.APIKey, os.Getenv(EnvAPIKey))
	apply(&resolved.Token, os.Getenv(EnvToken))
	apply(&resolved.Secret, os.Getenv(EnvAPISecret))
	apply(&resolved.BaseURL, os.Getenv(EnvBaseURL))

	// Command line overrides everything
	apply(&resolved.APIKey, o.APIKey)
	apply(&resolved.Token, o.Token)
	apply(&resolved.Secret, o.Secret)
	apply(&resolved.BaseURL, o.BaseURL)
	if o.Timeout != 0 {
		resolved.Timeout = o.Timeout
	}

	return resolved, nil
}

// Validate checks that the config is usable to build a client.
func (c *ResolvedConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIKey, validation.Required.Error("is required; set TRELLO_API_KEY or [auth] key")),
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

func apply(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// httpURL is a validation rule accepting absolute http and https URLs.
func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http or https URL")
	}
	return nil
}
