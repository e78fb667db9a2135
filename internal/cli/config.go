package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/rcfile/pkg/rcache"
)

// Config holds the tool configuration.
type Config struct {
	// CacheDir is where named caches live.
	CacheDir string `json:"cache_dir"`

	// SkewSeconds is the allowed clock skew applied to stores.
	SkewSeconds uint32 `json:"skew_seconds"`
}

// ProjectConfigName is the per-directory config file name.
const ProjectConfigName = ".rcfile.json"

var errCacheDirEmpty = errors.New("cache_dir cannot be empty")

// defaultConfig returns the built-in defaults. The cache directory follows
// XDG conventions, falling back to ~/.cache/rcfile.
func defaultConfig(env map[string]string) Config {
	cfg := Config{SkewSeconds: rcache.DefaultSkew}

	if dir := env["XDG_CACHE_HOME"]; dir != "" {
		cfg.CacheDir = filepath.Join(dir, "rcfile")

		return cfg
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.CacheDir = filepath.Join(home, ".cache", "rcfile")
	}

	return cfg
}

// globalConfigPath returns the global config location
// ($XDG_CONFIG_HOME/rcfile/config.json or ~/.config/rcfile/config.json),
// or empty if the home directory cannot be determined.
func globalConfigPath(env map[string]string) string {
	if dir := env["XDG_CONFIG_HOME"]; dir != "" {
		return filepath.Join(dir, "rcfile", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "rcfile", "config.json")
}

// loadConfig loads configuration with the following precedence (highest
// wins): defaults, global user config, project config in workDir. Config
// files are HuJSON: JSON plus comments and trailing commas.
func loadConfig(workDir string, env map[string]string) (Config, error) {
	cfg := defaultConfig(env)

	if path := globalConfigPath(env); path != "" {
		if err := mergeConfigFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := mergeConfigFile(&cfg, filepath.Join(workDir, ProjectConfigName)); err != nil {
		return Config{}, err
	}

	if cfg.CacheDir == "" {
		return Config{}, errCacheDirEmpty
	}

	return cfg, nil
}

// mergeConfigFile overlays the config file at path onto cfg. A missing file
// is not an error; a malformed one is.
func mergeConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("read config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	var overlay struct {
		CacheDir    *string `json:"cache_dir"`
		SkewSeconds *uint32 `json:"skew_seconds"`
	}

	if err := json.Unmarshal(standardized, &overlay); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if overlay.CacheDir != nil {
		cfg.CacheDir = *overlay.CacheDir
	}

	if overlay.SkewSeconds != nil {
		cfg.SkewSeconds = *overlay.SkewSeconds
	}

	return nil
}

// resolveCachePath maps a cache argument to a file path: anything containing
// a path separator (or an absolute path) is used as-is, a bare name resolves
// into the configured cache directory.
func resolveCachePath(cfg Config, workDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	if filepath.Dir(name) != "." {
		return filepath.Join(workDir, name)
	}

	return filepath.Join(cfg.CacheDir, name+".rc2")
}
