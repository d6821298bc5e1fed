package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestLstatClassifiesRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	ft, md, err := Lstat(path)
	if err != nil {
		t.Fatal(err)
	}
	if ft != Regular {
		t.Errorf("got %v, want Regular", ft)
	}
	if md.Size != 5 {
		t.Errorf("got size %d, want 5", md.Size)
	}
	if md.Mode&0o7777 != 0o644 {
		t.Errorf("got mode %#o, want 0644", md.Mode)
	}
}

func TestLstatClassifiesDirectory(t *testing.T) {
	dir := t.TempDir()
	ft, _, err := Lstat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ft != Directory {
		t.Errorf("got %v, want Directory", ft)
	}
}

func TestLstatClassifiesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	ft, _, err := Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if ft != Symlink {
		t.Errorf("got %v, want Symlink", ft)
	}

	// Stat follows the link.
	ft, _, err = Stat(link)
	if err != nil {
		t.Fatal(err)
	}
	if ft != Regular {
		t.Errorf("Stat: got %v, want Regular", ft)
	}
}

func TestLstatClassifiesFifo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fifo")
	if err := Mkfifo(path, 0o644); err != nil {
		t.Fatal(err)
	}
	ft, _, err := Lstat(path)
	if err != nil {
		t.Fatal(err)
	}
	if ft != Fifo {
		t.Errorf("got %v, want Fifo", ft)
	}
}

func TestLstatNoSuchFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Lstat(filepath.Join(dir, "missing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want ErrNotExist", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PathError", err)
	}
}

func TestLstatTwoInodesForTwoInodes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	if err := os.WriteFile(a, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, mdA, err := Lstat(a)
	if err != nil {
		t.Fatal(err)
	}
	_, mdB, err := Lstat(b)
	if err != nil {
		t.Fatal(err)
	}
	if mdA.Ino == mdB.Ino {
		t.Errorf("distinct files got the same inode %d", mdA.Ino)
	}

	// A hard link shares the inode of its target.
	link := filepath.Join(dir, "link")
	if err := os.Link(a, link); err != nil {
		t.Fatal(err)
	}
	_, mdLink, err := Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if mdLink.Ino != mdA.Ino {
		t.Errorf("hard link got inode %d, want %d", mdLink.Ino, mdA.Ino)
	}
}

func TestReadDirNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	names, err := ReadDirNames(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 3 {
		t.Errorf("got %d names, want 3", len(names))
	}
}

func TestCreateDirMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub")
	if err := CreateDir(path, 0o700); err != nil {
		t.Fatal(err)
	}
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		t.Fatal(err)
	}
	if uint32(st.Mode)&0o7777 != 0o700 {
		t.Errorf("got mode %#o, want 0700", uint32(st.Mode)&0o7777)
	}
}

func TestSymlinkAndReadLink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	if err := Symlink("/nonexistent/target", link); err != nil {
		t.Fatal(err)
	}
	target, err := ReadLink(link)
	if err != nil {
		t.Fatal(err)
	}
	if target != "/nonexistent/target" {
		t.Errorf("got %q, want /nonexistent/target", target)
	}
}

func TestCreateFileMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	f, err := CreateFile(path, 0o640)
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		t.Fatal(err)
	}
	if uint32(st.Mode)&0o7777 != 0o640 {
		t.Errorf("got mode %#o, want 0640", uint32(st.Mode)&0o7777)
	}
}

func TestPathErrorFormat(t *testing.T) {
	err := &PathError{Path: "/a/b", Err: os.ErrNotExist}
	if got, want := err.Error(), "/a/b: "+os.ErrNotExist.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPairErrorFormat(t *testing.T) {
	err := &PairError{Src: "/a", Dst: "/b", Err: os.ErrExist}
	if got, want := err.Error(), "/a, /b: "+os.ErrExist.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
