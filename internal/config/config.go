package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultDBFile is the database file name used when DBFile is unset.
const DefaultDBFile = "shelf.db"

// DefaultPrompt is printed before each line read by the interactive shell.
const DefaultPrompt = "Enter command: "

// Config holds application configuration.
// Values come from defaults, then baseDir/config.json, then the environment.
type Config struct {
	// DBFile is the SQLite database path. Relative paths resolve against the
	// base directory.
	DBFile string `json:"db_file,omitempty" env:"SHELF_DB_FILE"`

	// SeedFile is loaded into an empty items table when the shell starts.
	// Accepts .json or .toml.
	SeedFile string `json:"seed_file,omitempty" env:"SHELF_SEED_FILE"`

	// DBMaxOpenConns limits open database connections. The shell is a single
	// client, so the default is 1.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty" env:"SHELF_DB_MAX_OPEN_CONNS"`

	// Prompt is printed before each interactive line.
	Prompt string `json:"prompt,omitempty" env:"SHELF_PROMPT"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty" env:"SHELF_DISABLED_TOOLS" envSeparator:","`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DBMaxOpenConns: 1,
		Prompt:         DefaultPrompt,
	}
}

// homeEnv names the environment variable that relocates the base directory.
type homeEnv struct {
	Home string `env:"SHELF_HOME"`
}

// ResolveHome picks the base directory: an explicit flag value, then
// SHELF_HOME, then ~/.shelf.
func ResolveHome(flagValue string) (string, error) {
	if dir := strings.TrimSpace(flagValue); dir != "" {
		return dir, nil
	}

	var h homeEnv
	if err := env.Parse(&h); err != nil {
		return "", fmt.Errorf("parse env: %w", err)
	}
	if dir := strings.TrimSpace(h.Home); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".shelf"), nil
}

// Load loads configuration from baseDir/config.json and the environment.
// Returns default config if the file doesn't exist.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.DisabledTools = mergeStringSlice(cfg.DisabledTools, nil)

	if cfg.DBMaxOpenConns < 0 {
		return nil, fmt.Errorf("db_max_open_conns must not be negative")
	}

	return cfg, nil
}

// DBPath returns the database path for baseDir.
func (c *Config) DBPath(baseDir string) string {
	return resolvePath(baseDir, c.DBFile, DefaultDBFile)
}

// SeedPath returns the seed file path for baseDir, or "" when none is set.
func (c *Config) SeedPath(baseDir string) string {
	return resolvePath(baseDir, c.SeedFile, "")
}

func resolvePath(baseDir, path, fallback string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = fallback
	}
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DBFile = overlay.DBFile
	if result.DBFile == "" {
		result.DBFile = base.DBFile
	}

	result.SeedFile = overlay.SeedFile
	if result.SeedFile == "" {
		result.SeedFile = base.SeedFile
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.Prompt = overlay.Prompt
	if result.Prompt == "" {
		result.Prompt = base.Prompt
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
