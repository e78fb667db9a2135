// Package cli implements the rcfile command-line tool: administrative access
// to file-based replay caches (store tags, inspect geometry, interactive
// probing).
package cli

import (
	"io"
	"os"
)

// Exit codes. Replay detection gets its own code so scripts can map it to an
// authentication failure without parsing output.
const (
	exitOK     = 0
	exitErr    = 1
	exitReplay = 3
)

const helpText = `rcfile - file-based replay-detection cache tool

Usage:
  rcfile store <cache> <tag>...   Store tags; fails on replay
  rcfile repl <cache>             Interactive store prompt
  rcfile info <cache>             Show cache file geometry
  rcfile init-config              Write the default global config
  rcfile help                     Show this help

A <cache> argument containing a path separator is used as a file path;
otherwise it names a file <cache_dir>/<cache>.rc2 from the config.

Exit codes: 0 ok, 1 error, 3 replay detected.
`

// Run is the main entry point. Returns the process exit code.
func Run(stdin io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	if len(args) < 2 {
		fprint(out, helpText)

		return exitOK
	}

	cmd := args[1]
	rest := args[2:]

	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		fprint(out, helpText)

		return exitOK
	}

	workDir, err := os.Getwd()
	if err != nil {
		fprintln(errOut, "error: cannot get working directory:", err)

		return exitErr
	}

	switch cmd {
	case "store":
		return cmdStore(out, errOut, workDir, env, rest)
	case "repl":
		return cmdRepl(stdin, out, errOut, workDir, env, rest)
	case "info":
		return cmdInfo(out, errOut, workDir, env, rest)
	case "init-config":
		return cmdInitConfig(out, errOut, env, rest)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		fprint(errOut, helpText)

		return exitErr
	}
}
