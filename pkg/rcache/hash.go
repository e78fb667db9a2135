package rcache

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// bucketIndex returns the bucket for tag within a table of nrecords buckets.
//
// The hash is SipHash-2-4 keyed with the per-file seed, interpreted as two
// little-endian 64-bit halves per the SipHash reference. The seed passed in
// may have been incremented by the probe loop for tables past the first, so
// a tag that collides heavily in one table's bucket space is very unlikely to
// collide identically in the next.
func bucketIndex(tag [TagLen]byte, seed [SeedLen]byte, nrecords int64) int64 {
	k0 := binary.LittleEndian.Uint64(seed[0:8])
	k1 := binary.LittleEndian.Uint64(seed[8:16])

	return int64(siphash.Hash(k0, k1, tag[:]) % uint64(nrecords))
}
