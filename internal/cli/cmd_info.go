package cli

import (
	"io"
	"math"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/rcfile/pkg/fs"
	"github.com/calvinalkan/rcfile/pkg/rcache"
)

// cmdInfo prints the cache file's size and the table-chain geometry it
// currently extends into. Derived purely from the file size; records are
// never iterated.
func cmdInfo(out, errOut io.Writer, workDir string, env map[string]string, args []string) int {
	flagSet := flag.NewFlagSet("info", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	rest := flagSet.Args()
	if len(rest) != 1 {
		fprintln(errOut, "error: usage: rcfile info <cache>")

		return exitErr
	}

	cfg, err := loadConfig(workDir, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	path := resolveCachePath(cfg, workDir, rest[0])
	fsys := fs.NewReal()

	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fprintf(out, "%s: not created yet\n", path)

			return exitOK
		}

		fprintln(errOut, "error:", err)

		return exitErr
	}

	size := info.Size()

	fprintf(out, "path:       %s\n", path)
	fprintf(out, "size:       %d bytes\n", size)
	fprintf(out, "seed:       %v\n", size >= rcache.SeedLen)
	fprintf(out, "ceiling:    %d bytes\n", int64(math.MaxInt32))

	extents, err := rcache.Extents(size)
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitErr
	}

	fprintf(out, "tables:     %d\n", len(extents))

	for _, e := range extents {
		fprintf(out, "  table %-2d  offset %-12d buckets %d\n", e.Index, e.Offset, e.Records)
	}

	return exitOK
}
