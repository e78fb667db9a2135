package cli

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/rcfile/pkg/rcache"
)

// cmdRepl runs an interactive store loop against one cache: every line is
// stored as a raw tag and answered with "stored" or "replay". Meant for
// poking at a cache during debugging, not for scripting (use store for that).
//
// With a terminal on stdin the prompt uses line editing and history; with
// piped input it degrades to plain line reading.
func cmdRepl(stdin io.Reader, out, errOut io.Writer, workDir string, env map[string]string, args []string) int {
	flagSet := flag.NewFlagSet("repl", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	skew := flagSet.Uint32("skew", 0, "Override the configured clock skew in seconds")

	if err := flagSet.Parse(args); err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	rest := flagSet.Args()
	if len(rest) != 1 {
		fprintln(errOut, "error: usage: rcfile repl [--skew N] <cache>")

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

	fprintf(out, "cache %s (skew %ds), one tag per line, ^D to exit\n", cache.Name(), cache.Span())

	if f, ok := stdin.(*os.File); ok && f == os.Stdin && liner.TerminalSupported() {
		return replPrompt(out, errOut, cache)
	}

	return replPlain(stdin, out, errOut, cache)
}

// replPrompt is the terminal path, with line editing and history via liner.
func replPrompt(out, errOut io.Writer, cache *rcache.FileCache) int {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("tag> ")
		if err != nil {
			// ^C or ^D ends the session.
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fprintln(out)

				return exitOK
			}

			fprintln(errOut, "error:", err)

			return exitErr
		}

		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if code := replStore(out, errOut, cache, input); code != exitOK {
			return code
		}
	}
}

// replPlain reads lines without terminal handling, for piped input.
func replPlain(stdin io.Reader, out, errOut io.Writer, cache *rcache.FileCache) int {
	scanner := bufio.NewScanner(stdin)

	for scanner.Scan() {
		input := scanner.Text()
		if input == "" {
			continue
		}

		if code := replStore(out, errOut, cache, input); code != exitOK {
			return code
		}
	}

	if err := scanner.Err(); err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	return exitOK
}

// replStore stores one tag and reports the outcome. Replays keep the session
// going; anything else ends it.
func replStore(out, errOut io.Writer, cache *rcache.FileCache, input string) int {
	switch err := cache.Store([]byte(input)); {
	case err == nil:
		fprintln(out, "stored")
	case errors.Is(err, rcache.ErrReplay):
		fprintln(out, "replay")
	default:
		fprintln(errOut, "error:", err)

		return exitErr
	}

	return exitOK
}
