package rcache

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Record_Roundtrips_Through_Codec(t *testing.T) {
	t.Parallel()

	rec := record{
		tag:   [TagLen]byte{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L'},
		stamp: 0xDEADBEEF,
	}

	buf := encodeRecord(rec)

	if diff := cmp.Diff(rec, decodeRecord(buf[:]), cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("decoded record mismatch (-want +got):\n%s", diff)
	}
}

func Test_Encoded_Record_Is_Tag_Then_BigEndian_Stamp(t *testing.T) {
	t.Parallel()

	rec := record{
		tag:   [TagLen]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		stamp: 0x01020304,
	}

	buf := encodeRecord(rec)

	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("encoded record = %v, want %v", buf[:], want)
	}
}

func Test_NormalizeTag_Pads_Short_Tags_With_Zero_Bytes(t *testing.T) {
	t.Parallel()

	got, err := normalizeTag([]byte("AB"))
	if err != nil {
		t.Fatalf("normalizeTag: %v", err)
	}

	want := [TagLen]byte{'A', 'B'}
	if got != want {
		t.Errorf("normalized tag = %v, want %v", got, want)
	}
}

func Test_NormalizeTag_Truncates_Long_Tags(t *testing.T) {
	t.Parallel()

	got, err := normalizeTag([]byte("ABCDEFGHIJKLMNOP"))
	if err != nil {
		t.Fatalf("normalizeTag: %v", err)
	}

	want := [TagLen]byte{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L'}
	if got != want {
		t.Errorf("normalized tag = %v, want %v", got, want)
	}
}

func Test_NormalizeTag_Rejects_Empty_Tag(t *testing.T) {
	t.Parallel()

	_, err := normalizeTag(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("normalizeTag(nil) = %v, want ErrInvalidInput", err)
	}
}

func Test_Timestamp_Comparison_Uses_Serial_Arithmetic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b uint32
		want bool
	}{
		{"later", 1000, 999, true},
		{"equal", 1000, 1000, false},
		{"earlier", 999, 1000, false},
		{"across wraparound", 5, 0xFFFFFFF0, true},
		{"before wraparound", 0xFFFFFFF0, 5, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tsAfter(tc.a, tc.b); got != tc.want {
				t.Errorf("tsAfter(%d, %d) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func Test_Timestamp_Increment_Wraps_Modulo_2_32(t *testing.T) {
	t.Parallel()

	if got := tsIncr(0xFFFFFFFE, 3); got != 1 {
		t.Errorf("tsIncr(0xFFFFFFFE, 3) = %d, want 1", got)
	}
}
