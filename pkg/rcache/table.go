package rcache

import "fmt"

// tableIter walks the growing chain of hash tables within a cache file.
//
// The chain starts immediately after the hash seed with 1023 buckets. The
// second table holds (1023+1)*2 = 2048 buckets, and each table after that
// doubles again, starting where the previous table ends. The progression and
// the resulting byte offsets are part of the on-disk format.
type tableIter struct {
	// offset is the byte offset of the current table, or -1 before the
	// first call to next.
	offset int64

	// nrecords is the bucket count of the current table.
	nrecords int64
}

// newTableIter returns an iterator positioned before the first table.
func newTableIter() tableIter {
	return tableIter{offset: -1}
}

// next advances to the next table in the chain.
//
// Returns an error satisfying [ErrCapacity] if the next table would start or
// extend past the maximum file size. That is a terminal condition for the
// chain, not a retryable failure.
func (it *tableIter) next() error {
	switch it.offset {
	case -1:
		it.offset = SeedLen
		it.nrecords = firstTableRecords
	case SeedLen:
		it.offset += it.nrecords * RecordLen
		it.nrecords = (firstTableRecords + 1) * 2
	default:
		it.offset += it.nrecords * RecordLen
		it.nrecords *= 2
	}

	// The next table must fit within the maximum file size.
	if it.nrecords > maxSize/RecordLen {
		return fmt.Errorf("table at offset %d: %w", it.offset, ErrCapacity)
	}

	if it.offset > maxSize-it.nrecords*RecordLen {
		return fmt.Errorf("table at offset %d: %w", it.offset, ErrCapacity)
	}

	return nil
}

// TableExtent describes one table in the chain.
type TableExtent struct {
	// Index is the table's position in the chain, starting at 0.
	Index int

	// Offset is the byte offset of the table's first record.
	Offset int64

	// Records is the number of two-slot buckets in the table.
	Records int64
}

// End returns the byte offset just past the table.
func (e TableExtent) End() int64 {
	return e.Offset + e.Records*RecordLen
}

// Extents returns the tables a file of the given size extends into.
//
// A file consisting only of the seed (or less) extends into no tables. The
// final table is included even when the file covers it only partially, since
// short reads past end-of-file are defined as empty slots.
//
// Returns an error satisfying [ErrCapacity] if size is larger than the chain
// can ever address.
func Extents(size int64) ([]TableExtent, error) {
	var extents []TableExtent

	it := newTableIter()

	for index := 0; ; index++ {
		if err := it.next(); err != nil {
			// The chain ended; fine as long as the file fits inside it.
			if len(extents) > 0 && size <= extents[len(extents)-1].End() {
				return extents, nil
			}

			return nil, err
		}

		if size <= it.offset {
			return extents, nil
		}

		extents = append(extents, TableExtent{
			Index:   index,
			Offset:  it.offset,
			Records: it.nrecords,
		})
	}
}
