package rcache

import (
	"errors"
	"fmt"
	"io"

	"github.com/calvinalkan/rcfile/pkg/fs"
)

// Deps are the injectable services a store operation consumes. Zero-value
// fields default to the real implementations.
type Deps struct {
	// Lock serializes store operations on the cache file across processes.
	Lock *fs.Flock

	// Clock supplies the current time.
	Clock Clock

	// Rand supplies seed entropy when the file has no seed yet.
	Rand RandomSource
}

// fill replaces nil services with their production implementations.
func (d Deps) fill() Deps {
	if d.Lock == nil {
		d.Lock = fs.NewFlock()
	}

	if d.Clock == nil {
		d.Clock = systemClock{}
	}

	if d.Rand == nil {
		d.Rand = cryptoRand{}
	}

	return d
}

// Store checks tag against the replay cache in f and records it if unseen.
//
// f must be an open, writable, seekable regular file; the caller owns it
// (Store neither opens nor closes it). The whole file is locked exclusively
// for the duration of the call and unlocked before returning, on every path.
//
// Returns [ErrReplay] if the tag is already recorded, [ErrInvalidInput] for
// an empty tag, and an error satisfying [ErrCapacity] if the table chain has
// reached the maximum file size. No failure is retried internally; a
// non-success result means the tag may not be durably recorded and callers
// should reject the credential.
func Store(f fs.File, tag []byte, skew uint32, deps Deps) error {
	ntag, err := normalizeTag(tag)
	if err != nil {
		return err
	}

	deps = deps.fill()

	now, err := deps.Clock.Now()
	if err != nil {
		return fmt.Errorf("read clock: %w", err)
	}

	if err := deps.Lock.Lock(f); err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	defer func() {
		_ = deps.Lock.Unlock(f)
	}()

	seed, err := ensureSeed(f, deps.Rand)
	if err != nil {
		return err
	}

	return probeAndInsert(fileSlots{f: f}, seed, ntag, now, skew)
}

// ensureSeed reads the hash seed from the start of the file, generating and
// writing one first if the file is too short to hold it. The seed is created
// at most once per file and never changes afterwards.
//
// Must be called with the file lock held.
func ensureSeed(f fs.File, rnd RandomSource) ([SeedLen]byte, error) {
	var seed [SeedLen]byte

	n, err := f.ReadAt(seed[:], 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return seed, fmt.Errorf("read hash seed: %w", err)
	}

	if n == SeedLen {
		return seed, nil
	}

	if err := rnd.Read(seed[:]); err != nil {
		return seed, fmt.Errorf("generate hash seed: %w", err)
	}

	if _, err := f.WriteAt(seed[:], 0); err != nil {
		return seed, fmt.Errorf("write hash seed: %w", err)
	}

	return seed, nil
}

// probeAndInsert walks the table chain for tag, failing on a duplicate and
// otherwise writing (tag, now) into the first free or expired slot found.
//
// The seed is a local copy: its first byte is incremented for each table
// visited past the first, diversifying the hash per table. Every bucket
// visited is checked for a duplicate, but only the first usable slot in
// chain order is remembered - later tables never override that choice, so
// the write can land in an earlier table than the one that terminates the
// search.
//
// A slot is usable when the bucket has no record there, or when the record's
// timestamp plus skew is strictly before now. The walk stops at the first
// bucket holding fewer than two live records: either there is room in that
// bucket or a slot was already reserved earlier in the chain, so writing is
// always safe at that point.
func probeAndInsert(slots slotIO, seed [SeedLen]byte, tag [TagLen]byte, now, skew uint32) error {
	it := newTableIter()
	availOffset := int64(-1)

	for {
		if err := it.next(); err != nil {
			return err
		}

		ind := bucketIndex(tag, seed, it.nrecords)
		recordOffset := it.offset + ind*RecordLen

		recs, nread, err := slots.readBucket(recordOffset)
		if err != nil {
			return err
		}

		// A match means replay, even if the record has expired: the cache
		// enforces non-repeatability, not freshness.
		if (nread >= 1 && recs[0].tag == tag) ||
			(nread == 2 && recs[1].tag == tag) {
			return ErrReplay
		}

		if availOffset == -1 {
			if nread == 0 || tsAfter(now, tsIncr(recs[0].stamp, skew)) {
				availOffset = recordOffset
			} else if nread == 1 || tsAfter(now, tsIncr(recs[1].stamp, skew)) {
				availOffset = recordOffset + RecordLen
			}
		}

		if nread < 2 || recs[0].stamp == 0 || recs[1].stamp == 0 {
			return slots.writeRecord(availOffset, record{tag: tag, stamp: now})
		}

		// Use a different hash seed for the next table we search.
		seed[0]++
	}
}
