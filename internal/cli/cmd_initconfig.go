package cli

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/rcfile/pkg/fs"
)

// cmdInitConfig writes the default global config file. The write is atomic
// (temp file + rename) so a concurrent reader never sees a torn config.
func cmdInitConfig(out, errOut io.Writer, env map[string]string, args []string) int {
	flagSet := flag.NewFlagSet("init-config", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	force := flagSet.Bool("force", false, "Overwrite an existing config file")

	if err := flagSet.Parse(args); err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	if flagSet.NArg() != 0 {
		fprintln(errOut, "error: usage: rcfile init-config [--force]")

		return exitErr
	}

	path := globalConfigPath(env)
	if path == "" {
		fprintln(errOut, "error: cannot determine config directory")

		return exitErr
	}

	fsys := fs.NewReal()

	if !*force {
		exists, err := fsys.Exists(path)
		if err != nil {
			fprintln(errOut, "error:", err)

			return exitErr
		}

		if exists {
			fprintln(errOut, "error: config already exists at", path, "(use --force to overwrite)")

			return exitErr
		}
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	cfg := defaultConfig(env)
	content := fmt.Sprintf(`{
	// Directory for named replay caches.
	"cache_dir": %q,

	// Allowed clock skew in seconds; records older than this may be
	// overwritten by later inserts.
	"skew_seconds": %d,
}
`, cfg.CacheDir, cfg.SkewSeconds)

	if err := atomic.WriteFile(path, bytes.NewReader([]byte(content))); err != nil {
		fprintln(errOut, "error: write config:", err)

		return exitErr
	}

	fprintln(out, "wrote", path)

	return exitOK
}
