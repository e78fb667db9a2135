package rcache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/calvinalkan/rcfile/pkg/fs"
)

// ReplayCache is the backend surface a generic replay-cache façade dispatches
// to. Only Store carries real logic in the file-backed implementation; the
// lifecycle hooks exist so backends with state to manage can implement them.
type ReplayCache interface {
	// Store records tag, or returns [ErrReplay] if it was seen before.
	Store(tag []byte) error

	// Recover prepares the cache after an unclean shutdown.
	Recover() error

	// Init prepares a new cache.
	Init() error

	// Expunge removes expired entries.
	Expunge() error

	// Name identifies the cache instance.
	Name() string

	// Span returns the lifespan of entries in seconds.
	Span() uint32
}

// Options configure opening a file-backed cache.
type Options struct {
	// Path is the cache file location. Required.
	Path string

	// Skew is the allowed clock skew in seconds. Records older than Skew
	// are eligible for overwrite; the default is 300.
	Skew uint32

	// FS is the filesystem used to open the cache file. Defaults to the
	// real filesystem.
	FS fs.FS

	// Lock, Clock, and Rand override the services a store consumes.
	// Nil fields use the real implementations.
	Lock  *fs.Flock
	Clock Clock
	Rand  RandomSource
}

// DefaultSkew is the clock skew applied when [Options.Skew] is zero.
const DefaultSkew = 300

// FileCache is a replay cache backed by a single shared file.
//
// The file is opened per Store call and closed before Store returns, so a
// FileCache holds no descriptors between calls and is safe for concurrent
// use; cross-process safety comes from the whole-file lock taken inside the
// store operation.
type FileCache struct {
	path string
	skew uint32
	fsys fs.FS
	deps Deps
}

// Open creates a handle for the cache file at opts.Path, creating parent
// directories as needed. The file itself is created lazily on first Store.
func Open(opts Options) (*FileCache, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("empty cache path: %w", ErrInvalidInput)
	}

	if opts.Skew == 0 {
		opts.Skew = DefaultSkew
	}

	if opts.FS == nil {
		opts.FS = fs.NewReal()
	}

	if err := opts.FS.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	return &FileCache{
		path: opts.Path,
		skew: opts.Skew,
		fsys: opts.FS,
		deps: Deps{Lock: opts.Lock, Clock: opts.Clock, Rand: opts.Rand}.fill(),
	}, nil
}

// Store opens the cache file (creating it owner-only if absent), records tag,
// and closes the file again. See [Store] for the result contract.
func (c *FileCache) Store(tag []byte) error {
	f, err := c.fsys.OpenFile(c.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open cache file %s: %w", c.path, err)
	}
	defer f.Close()

	return Store(f, tag, c.skew, c.deps)
}

// Name returns the cache file path.
func (c *FileCache) Name() string {
	return c.path
}

// Span returns the configured clock skew in seconds.
func (c *FileCache) Span() uint32 {
	return c.skew
}

// Recover is a no-op: the file is always consistent because every store
// happens under the whole-file lock.
func (c *FileCache) Recover() error {
	return nil
}

// Init is a no-op: the seed and tables are created lazily on first store.
func (c *FileCache) Init() error {
	return nil
}

// Expunge is a no-op: expiry is lazy, expired slots are reclaimed when a
// later insert considers them.
func (c *FileCache) Expunge() error {
	return nil
}

// Compile-time interface check.
var _ ReplayCache = (*FileCache)(nil)
