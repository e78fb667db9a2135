package cli

import (
	"encoding/hex"
	"errors"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/rcfile/pkg/rcache"
)

// cmdStore stores one or more tags into a cache. Any replay among the tags
// turns the exit code into exitReplay; any other failure wins over that.
func cmdStore(out, errOut io.Writer, workDir string, env map[string]string, args []string) int {
	flagSet := flag.NewFlagSet("store", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	hexTags := flagSet.Bool("hex", false, "Decode tags as hex strings")
	skew := flagSet.Uint32("skew", 0, "Override the configured clock skew in seconds")

	if err := flagSet.Parse(args); err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	rest := flagSet.Args()
	if len(rest) < 2 {
		fprintln(errOut, "error: usage: rcfile store [--hex] [--skew N] <cache> <tag>...")

		return exitErr
	}

	cfg, err := loadConfig(workDir, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	if *skew != 0 {
		cfg.SkewSeconds = *skew
	}

	cache, err := rcache.Open(rcache.Options{
		Path: resolveCachePath(cfg, workDir, rest[0]),
		Skew: cfg.SkewSeconds,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	code := exitOK

	for _, arg := range rest[1:] {
		tag := []byte(arg)

		if *hexTags {
			tag, err = hex.DecodeString(arg)
			if err != nil {
				fprintln(errOut, "error: invalid hex tag:", arg)

				return exitErr
			}
		}

		switch err := cache.Store(tag); {
		case err == nil:
			fprintf(out, "stored %s\n", arg)
		case errors.Is(err, rcache.ErrReplay):
			fprintf(out, "replay %s\n", arg)

			if code == exitOK {
				code = exitReplay
			}
		default:
			fprintln(errOut, "error:", err)

			return exitErr
		}
	}

	return code
}
