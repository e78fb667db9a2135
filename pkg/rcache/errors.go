package rcache

import "errors"

// Sentinel errors returned by rcache operations.
//
// Callers should use [errors.Is] to check error types:
//
//	if errors.Is(err, rcache.ErrReplay) {
//	    // authentication failure: credential was replayed
//	}
//
// I/O failures (read, write, lock) and service failures (entropy, clock) are
// returned wrapped with context rather than as sentinels; anything that is
// not one of the errors below should be treated as an environmental failure.
var (
	// ErrReplay indicates the tag is already recorded in the cache.
	//
	// This is the rejection outcome the cache exists to produce, not an
	// operational error. It fires even for records older than the skew
	// window: a previously-seen tag is never accepted twice.
	ErrReplay = errors.New("rcache: replay detected")

	// ErrCapacity indicates the table chain has reached the maximum file
	// size and no further table can be probed.
	//
	// Recovery: remove the cache file during a maintenance window; it will
	// be recreated with a fresh seed.
	ErrCapacity = errors.New("rcache: capacity exceeded")

	// ErrInvalidInput indicates invalid arguments were provided, such as an
	// empty tag.
	//
	// This is a programming error.
	ErrInvalidInput = errors.New("rcache: invalid input")
)
