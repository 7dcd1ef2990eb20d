package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Kasuwa needs to reach the marketplace backend.
type Config struct {
	APIURL    string
	PrefsPath string
}

const (
	defaultConfigPath = "~/.config/kasuwa/config.toml"
	defaultPrefsPath  = "~/.config/kasuwa/prefs.toml"
)

// Load locates and parses the config file, falling back to defaults when
// missing. An absent or empty api_url leaves the backend unconfigured, which
// the mutation coordinator reports when registration is attempted.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{PrefsPath: defaultPrefsPath}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL    string `toml:"api_url"`
		PrefsPath string `toml:"prefs_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(raw.APIURL)

	cfg.PrefsPath = strings.TrimSpace(raw.PrefsPath)
	if cfg.PrefsPath == "" {
		cfg.PrefsPath = defaultPrefsPath
	}

	return cfg, nil
}

// Configured reports whether a backend URL is set. Registration requires a
// configured backend; browsing an unconfigured instance shows empty data.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.APIURL) != ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
