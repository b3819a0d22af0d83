package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ProjectConfigFileName is the name of the per-directory configuration file
const ProjectConfigFileName = "trello.toml"

// ErrNoProjectConfig is returned when no trello.toml exists in the directory tree.
var ErrNoProjectConfig = errors.New("no trello.toml found")

// ProjectConfig holds the defaults a directory tree applies to commands
// that take a board or list id.
type ProjectConfig struct {
	Board string `toml:"board"`
	List  string `toml:"list"`

	// Path is the file the config was read from
	Path string `toml:"-"`
}

// DiscoverProjectConfig reads the nearest trello.toml in the working
// directory or one of its parents.
func DiscoverProjectConfig() (*ProjectConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	path, ok := findUp(cwd, ProjectConfigFileName)
	if !ok {
		return nil, ErrNoProjectConfig
	}
	return ParseProjectConfig(path)
}

// findUp returns the first dir/name found walking from dir to the root.
func findUp(dir, name string) (string, bool) {
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ParseProjectConfig parses the trello.toml at path. Unknown keys are
// rejected so a typo such as "bord" does not go unnoticed.
func ParseProjectConfig(path string) (*ProjectConfig, error) {
	var cfg ProjectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	return &cfg, nil
}
