// Package rcache implements a file-based replay-detection cache.
//
// The cache answers one question for an authentication protocol: has this
// credential fingerprint ("tag") been seen within the allowed clock skew?
// Each call to Store either records the tag durably or reports
// [ErrReplay]. There is no separate lookup - every call is a combined
// check-and-insert.
//
// # On-disk format
//
// A cache file is a 16-byte random hash seed followed by a chain of hash
// tables: the first holds 1023 two-slot buckets, the second 2048, and each
// table after that doubles again. Table boundaries are derived purely from
// this geometry and never stored. Records are 16 bytes: a 12-byte tag and a
// big-endian 32-bit timestamp, where a zero timestamp marks a never-written
// slot. Tables are created lazily; a short read past end-of-file means empty
// slots, so the file never needs pre-zeroing.
//
// # Basic usage
//
//	cache, err := rcache.Open(rcache.Options{
//	    Path: "/var/lib/myapp/auth.rc2",
//	    Skew: 300,
//	})
//	if err != nil {
//	    return err
//	}
//
//	err = cache.Store(tag)
//	if errors.Is(err, rcache.ErrReplay) {
//	    // reject the credential
//	}
//
// # Concurrency
//
// The file may be shared by many independent processes. Every store takes an
// exclusive whole-file flock for the duration of the call, so at most one
// store proceeds at a time per file. There is no internal threading and no
// background eviction; expired slots are reclaimed lazily when a later insert
// considers them.
//
// # Error handling
//
// A non-success result means "could not confirm non-replay". Callers should
// treat any error - not just [ErrReplay] - as grounds to reject the
// credential.
package rcache
