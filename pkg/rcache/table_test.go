package rcache

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// The chain progression and offsets are part of the on-disk format; any
// change here breaks compatibility with existing cache files.
func Test_Table_Chain_Starts_With_Documented_Geometry(t *testing.T) {
	t.Parallel()

	type table struct {
		Offset   int64
		Nrecords int64
	}

	it := newTableIter()

	var got []table
	for range 5 {
		if err := it.next(); err != nil {
			t.Fatalf("next: %v", err)
		}

		got = append(got, table{Offset: it.offset, Nrecords: it.nrecords})
	}

	want := []table{
		{Offset: 16, Nrecords: 1023},
		{Offset: 16 + 1023*RecordLen, Nrecords: 2048},
		{Offset: 16384 + 2048*RecordLen, Nrecords: 4096},
		{Offset: 49152 + 4096*RecordLen, Nrecords: 8192},
		{Offset: 114688 + 8192*RecordLen, Nrecords: 16384},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table chain mismatch (-want +got):\n%s", diff)
	}
}

func Test_Table_Nrecords_Doubles_And_Offsets_Are_Running_Sums(t *testing.T) {
	t.Parallel()

	it := newTableIter()

	var (
		prevOffset   int64
		prevNrecords int64
	)

	for i := 0; ; i++ {
		err := it.next()
		if err != nil {
			if !errors.Is(err, ErrCapacity) {
				t.Fatalf("next: %v", err)
			}

			// The chain ends at the INT32_MAX ceiling, not arbitrarily early.
			if i < 10 {
				t.Fatalf("chain ended after only %d tables", i)
			}

			return
		}

		if i == 0 {
			if it.offset != SeedLen || it.nrecords != firstTableRecords {
				t.Fatalf("first table = (%d, %d), want (%d, %d)",
					it.offset, it.nrecords, SeedLen, firstTableRecords)
			}
		} else {
			if it.offset != prevOffset+prevNrecords*RecordLen {
				t.Fatalf("table %d offset %d is not the running sum %d",
					i, it.offset, prevOffset+prevNrecords*RecordLen)
			}

			wantNrecords := prevNrecords * 2
			if i == 1 {
				wantNrecords = (firstTableRecords + 1) * 2
			}

			if it.nrecords != wantNrecords {
				t.Fatalf("table %d nrecords = %d, want %d", i, it.nrecords, wantNrecords)
			}
		}

		if it.offset+it.nrecords*RecordLen > maxSize {
			t.Fatalf("table %d extends past the file-size ceiling", i)
		}

		prevOffset, prevNrecords = it.offset, it.nrecords
	}
}

func Test_Table_Chain_Fails_With_Capacity_At_The_Int32_Ceiling(t *testing.T) {
	t.Parallel()

	it := newTableIter()

	steps := 0
	for {
		err := it.next()
		if err == nil {
			steps++
			if steps > 64 {
				t.Fatal("chain never hit the ceiling")
			}

			continue
		}

		if !errors.Is(err, ErrCapacity) {
			t.Fatalf("next: %v, want ErrCapacity", err)
		}

		break
	}

	// 1023 buckets, then 2048 doubling up to 2^26; 2^27 would overflow.
	if steps != 17 {
		t.Errorf("chain holds %d tables before the ceiling, want 17", steps)
	}
}

func Test_Extents_Covers_Only_Tables_The_File_Reaches_Into(t *testing.T) {
	t.Parallel()

	const table1End = 16 + 1023*RecordLen // 16384

	cases := []struct {
		name string
		size int64
		want int
	}{
		{"empty file", 0, 0},
		{"seed only", SeedLen, 0},
		{"one record", SeedLen + RecordLen, 1},
		{"exactly table 1", table1End, 1},
		{"one byte into table 2", table1End + 1, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			extents, err := Extents(tc.size)
			if err != nil {
				t.Fatalf("Extents(%d): %v", tc.size, err)
			}

			if len(extents) != tc.want {
				t.Errorf("Extents(%d) covers %d tables, want %d", tc.size, len(extents), tc.want)
			}
		})
	}
}

func Test_Extents_Fails_For_Sizes_Beyond_The_Chain(t *testing.T) {
	t.Parallel()

	_, err := Extents(maxSize)
	if !errors.Is(err, ErrCapacity) {
		t.Errorf("Extents(maxSize) = %v, want ErrCapacity", err)
	}
}
