// Package config loads deliverables configuration from JSONC files, the
// environment and command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/deliverables/internal/progress"
)

// AppName names the per-user config and data directories.
const AppName = "deliverables"

// DataFileName is the single file holding all records.
const DataFileName = "data.json"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDataDirEmpty       = errors.New("data_dir cannot be empty")
	ErrNoDataDir          = errors.New("cannot determine data dir (set $XDG_DATA_HOME, $HOME or data_dir)")
	ErrInvalidProgress    = errors.New("invalid progress policy")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	DataDir  string `json:"data_dir,omitempty"` //nolint:tagliatelle // snake_case for config file
	Progress string `json:"progress,omitempty"`

	// Resolved (computed, not serialized)
	EffectiveCwd string          `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	DataDirAbs   string          `json:"-"` // Absolute path to the data directory
	Policy       progress.Policy `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global   string // Path to global config if loaded, empty otherwise
	Explicit string // Path to -c/--config file if given
}

// DataFile returns the absolute path of the record file.
func (c Config) DataFile() string {
	return filepath.Join(c.DataDirAbs, DataFileName)
}

// DefaultConfig returns the default configuration. DataDir is left empty and
// derived from the environment during [Load].
func DefaultConfig() Config {
	return Config{
		Progress: progress.Linear.String(),
	}
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride  string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath       string            // -c/--config flag value
	DataDirOverride  string            // --data-dir flag value; empty means no override
	ProgressOverride string            // --progress flag value; empty means no override
	Env              map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/deliverables/config.json or ~/.config/deliverables/config.json)
// 3. Explicit config file via ConfigPath (if non-empty, must exist)
// 4. CLI overrides.
//
// A data dir still unset after that defaults to $XDG_DATA_HOME/deliverables or
// ~/.local/share/deliverables. Relative data dirs resolve against the working
// directory.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	} else if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}

		workDir = abs
	}

	cfg := DefaultConfig()

	globalPath := globalConfigPath(input.Env)
	if globalPath != "" {
		fileCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	if input.ConfigPath != "" {
		explicit := input.ConfigPath
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(workDir, explicit)
		}

		_, statErr := os.Stat(explicit)
		if statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}

		fileCfg, _, err := loadConfigFile(explicit, true)
		if err != nil {
			return Config{}, err
		}

		cfg.Sources.Explicit = explicit
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg = mergeConfig(cfg, Config{DataDir: input.DataDirOverride, Progress: input.ProgressOverride})

	policy, err := progress.ParsePolicy(cfg.Progress)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidProgress, err)
	}

	cfg.Policy = policy
	cfg.Progress = policy.String()
	cfg.EffectiveCwd = workDir

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir(input.Env)
		if cfg.DataDir == "" {
			return Config{}, ErrNoDataDir
		}
	}

	if filepath.IsAbs(cfg.DataDir) {
		cfg.DataDirAbs = filepath.Clean(cfg.DataDir)
	} else {
		cfg.DataDirAbs = filepath.Join(workDir, cfg.DataDir)
	}

	return cfg, nil
}

// globalConfigPath returns $XDG_CONFIG_HOME/deliverables/config.json if set,
// otherwise ~/.config/deliverables/config.json. Empty if neither is known.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, AppName, "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", AppName, "config.json")
	}

	return ""
}

func defaultDataDir(env map[string]string) string {
	if xdgData := env["XDG_DATA_HOME"]; xdgData != "" {
		return filepath.Join(xdgData, AppName)
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", AppName)
	}

	return ""
}

// loadConfigFile loads a config file. If mustExist is false, a missing file
// returns a zero config and loaded=false.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	// An explicit "" would silently fall back to the default location.
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if val, exists := raw["data_dir"]; exists {
		if str, ok := val.(string); ok && str == "" {
			return Config{}, ErrDataDirEmpty
		}
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.DataDir != "" {
		base.DataDir = overlay.DataDir
	}

	if overlay.Progress != "" {
		base.Progress = overlay.Progress
	}

	return base
}

// Format renders the serializable part of cfg as indented JSON.
func Format(cfg Config) (string, error) {
	out := Config{DataDir: cfg.DataDirAbs, Progress: cfg.Progress}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}
