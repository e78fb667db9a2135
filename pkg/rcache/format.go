package rcache

import (
	"encoding/binary"
	"fmt"
	"math"
)

// RC2 file format constants. All integers on disk are big-endian.
const (
	// TagLen is the fixed tag length. Caller tags are zero-padded or
	// truncated to this length.
	TagLen = 12

	// RecordLen is the size of one on-disk record: tag plus 32-bit
	// timestamp.
	RecordLen = TagLen + 4

	// SeedLen is the size of the hash seed stored at the start of the file.
	SeedLen = 16

	// firstTableRecords is the bucket count of the first table in the chain.
	firstTableRecords = 1023

	// maxSize is the hard ceiling on any addressable byte offset in the
	// file. No table may start or extend past it.
	maxSize = math.MaxInt32
)

// record is the unit stored on disk: a normalized tag and the epoch-seconds
// timestamp of its insertion. A zero stamp means the slot has never been
// written.
type record struct {
	tag   [TagLen]byte
	stamp uint32
}

// encodeRecord serializes a record: tag bytes followed by the timestamp as
// 4 big-endian bytes.
func encodeRecord(rec record) [RecordLen]byte {
	var buf [RecordLen]byte

	copy(buf[:TagLen], rec.tag[:])
	binary.BigEndian.PutUint32(buf[TagLen:], rec.stamp)

	return buf
}

// decodeRecord parses a record from buf. buf must hold at least RecordLen
// bytes.
func decodeRecord(buf []byte) record {
	var rec record

	copy(rec.tag[:], buf[:TagLen])
	rec.stamp = binary.BigEndian.Uint32(buf[TagLen:RecordLen])

	return rec
}

// normalizeTag converts a caller-supplied tag to the fixed on-disk length.
// Shorter tags are right-padded with zero bytes; longer tags keep only their
// first TagLen bytes. Distinct caller tags can therefore collide - that is an
// accepted property of the format, not something normalizeTag guards against.
//
// Returns [ErrInvalidInput] for an empty tag.
func normalizeTag(tag []byte) ([TagLen]byte, error) {
	var out [TagLen]byte

	if len(tag) == 0 {
		return out, fmt.Errorf("empty tag: %w", ErrInvalidInput)
	}

	copy(out[:], tag)

	return out, nil
}

// tsIncr adds a duration in seconds to a timestamp, wrapping modulo 2^32.
func tsIncr(ts, delta uint32) uint32 {
	return ts + delta
}

// tsAfter reports whether timestamp a is later than b using serial-number
// arithmetic, so the comparison stays meaningful across 32-bit wraparound.
func tsAfter(a, b uint32) bool {
	return int32(a-b) > 0
}
