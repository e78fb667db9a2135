package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/rcfile/pkg/fs"
)

func Test_Real_Exists_Distinguishes_Present_And_Absent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fsys := fs.NewReal()

	present := filepath.Join(dir, "present")
	if err := fsys.WriteFile(present, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	ok, err := fsys.Exists(present)
	if err != nil || !ok {
		t.Errorf("Exists(present) = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = fsys.Exists(filepath.Join(dir, "absent"))
	if err != nil || ok {
		t.Errorf("Exists(absent) = (%v, %v), want (false, nil)", ok, err)
	}
}

func Test_Real_File_Supports_Positioned_IO(t *testing.T) {
	t.Parallel()

	fsys := fs.NewReal()

	f, err := fsys.OpenFile(filepath.Join(t.TempDir(), "pio"), os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.WriteAt([]byte("hello"), 32); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}

	buf := make([]byte, 5)
	if _, err := f.ReadAt(buf, 32); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}

	if string(buf) != "hello" {
		t.Errorf("ReadAt = %q, want %q", buf, "hello")
	}

	// A read past end-of-file is short, with io.EOF.
	n, _ := f.ReadAt(buf, 100)
	if n != 0 {
		t.Errorf("ReadAt past EOF read %d bytes, want 0", n)
	}
}
