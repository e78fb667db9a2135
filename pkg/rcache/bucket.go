package rcache

import (
	"errors"
	"fmt"
	"io"

	"github.com/calvinalkan/rcfile/pkg/fs"
)

// slotIO abstracts positioned record access so the probe loop stays free of
// file mechanics and can be tested against an in-memory implementation.
type slotIO interface {
	// readBucket reads up to two records starting at offset. nread is 0, 1,
	// or 2; fewer than two records present (including zero, for a bucket
	// past end-of-file) is normal and not an error.
	readBucket(offset int64) (recs [2]record, nread int, err error)

	// writeRecord writes exactly one record at offset.
	writeRecord(offset int64, rec record) error
}

// fileSlots implements slotIO on a cache file via positioned I/O.
type fileSlots struct {
	f fs.File
}

func (s fileSlots) readBucket(offset int64) ([2]record, int, error) {
	var (
		recs [2]record
		buf  [RecordLen * 2]byte
	)

	n, err := s.f.ReadAt(buf[:], offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return recs, 0, fmt.Errorf("read bucket at %d: %w", offset, err)
	}

	// Partial trailing bytes (a torn record) count as absent, same as a
	// bucket past end-of-file.
	nread := 0

	if n >= RecordLen {
		recs[0] = decodeRecord(buf[:])
		nread = 1
	}

	if n == RecordLen*2 {
		recs[1] = decodeRecord(buf[RecordLen:])
		nread = 2
	}

	return recs, nread, nil
}

func (s fileSlots) writeRecord(offset int64, rec record) error {
	buf := encodeRecord(rec)

	n, err := s.f.WriteAt(buf[:], offset)
	if err != nil {
		return fmt.Errorf("write record at %d: %w", offset, err)
	}

	// Unexpected for a regular file.
	if n != RecordLen {
		return fmt.Errorf("write record at %d: short write (%d of %d bytes)", offset, n, RecordLen)
	}

	return nil
}
