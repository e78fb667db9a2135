package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func Test_LoadConfig_Uses_Defaults_When_No_Files_Exist(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"XDG_CONFIG_HOME": t.TempDir(),
		"XDG_CACHE_HOME":  "/var/cache/test",
	}

	cfg, err := loadConfig(t.TempDir(), env)
	require.NoError(t, err)

	require.Equal(t, filepath.Join("/var/cache/test", "rcfile"), cfg.CacheDir)
	require.Equal(t, uint32(300), cfg.SkewSeconds)
}

func Test_LoadConfig_Accepts_HuJSON_With_Comments(t *testing.T) {
	t.Parallel()

	configHome := t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": configHome}

	writeConfig(t, filepath.Join(configHome, "rcfile", "config.json"), `{
		// where caches live
		"cache_dir": "/srv/rc",
		"skew_seconds": 120, // trailing comma below is fine too
	}`)

	cfg, err := loadConfig(t.TempDir(), env)
	require.NoError(t, err)

	require.Equal(t, "/srv/rc", cfg.CacheDir)
	require.Equal(t, uint32(120), cfg.SkewSeconds)
}

func Test_LoadConfig_Project_File_Overrides_Global(t *testing.T) {
	t.Parallel()

	configHome := t.TempDir()
	workDir := t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": configHome}

	writeConfig(t, filepath.Join(configHome, "rcfile", "config.json"),
		`{"cache_dir": "/global", "skew_seconds": 60}`)
	writeConfig(t, filepath.Join(workDir, ProjectConfigName),
		`{"skew_seconds": 900}`)

	cfg, err := loadConfig(workDir, env)
	require.NoError(t, err)

	// Project file only overrides what it sets.
	require.Equal(t, "/global", cfg.CacheDir)
	require.Equal(t, uint32(900), cfg.SkewSeconds)
}

func Test_LoadConfig_Fails_On_Malformed_Config(t *testing.T) {
	t.Parallel()

	configHome := t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": configHome}

	writeConfig(t, filepath.Join(configHome, "rcfile", "config.json"), `{not json`)

	_, err := loadConfig(t.TempDir(), env)
	require.Error(t, err)
}

func Test_ResolveCachePath_Maps_Names_And_Paths(t *testing.T) {
	t.Parallel()

	cfg := Config{CacheDir: "/srv/rc"}

	require.Equal(t, "/srv/rc/auth.rc2", resolveCachePath(cfg, "/work", "auth"))
	require.Equal(t, "/abs/path.rc2", resolveCachePath(cfg, "/work", "/abs/path.rc2"))
	require.Equal(t, "/work/rel/cache.rc2", resolveCachePath(cfg, "/work", "rel/cache.rc2"))
}
