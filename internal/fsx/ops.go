package fsx

import (
	"os"

	"golang.org/x/sys/unix"
)

// ReadLink returns the destination of the symbolic link at path, verbatim
// (no resolution).
func ReadLink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", wrapPath(path, underlying(err))
	}
	return target, nil
}

// ReadDirNames returns the names of path's directory entries, in the
// unspecified order returned by readdir(2). The caller is responsible for
// classifying each entry with Lstat; ReadDirNames never follows symlinks
// or touches entry metadata itself.
func ReadDirNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapPath(path, underlying(err))
	}
	defer f.Close()
	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, wrapPath(path, underlying(err))
	}
	return names, nil
}

// CreateDir creates path as a directory with exactly the given mode bits,
// in a single syscall (no separate chmod follow-up).
func CreateDir(path string, mode uint32) error {
	return wrapPath(path, unix.Mkdir(path, mode))
}

// Mkfifo creates path as a FIFO with the given mode bits.
func Mkfifo(path string, mode uint32) error {
	return wrapPath(path, unix.Mkfifo(path, mode))
}

// Symlink creates newname as a symbolic link pointing at target. Errors
// are reported with both strings, matching how the upstream Rust
// implementation's filesystem::symlink wrapper reports failures: the
// literal target text alongside the link path, not the original source
// file's own path.
func Symlink(target, newname string) error {
	return wrapPair(target, newname, unix.Symlink(target, newname))
}

// Open opens path for reading.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapPath(path, underlying(err))
	}
	return f, nil
}

// CreateFile opens path for writing, creating it with exactly the given
// mode bits, or truncating it if it already exists. The mode is applied
// only at creation time and never corrected with a later fchmod, so an
// existing file keeps its own mode.
func CreateFile(path string, mode uint32) (*os.File, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, mode)
	if err != nil {
		return nil, wrapPath(path, err)
	}
	return os.NewFile(uintptr(fd), path), nil
}

// underlying strips the *fs.PathError/*os.LinkError wrapper the standard
// library already attaches so fsx's own PathError/PairError own the
// "<path>: " prefix exactly once.
func underlying(err error) error {
	switch e := err.(type) {
	case *os.PathError:
		return e.Err
	case *os.LinkError:
		return e.Err
	default:
		return err
	}
}
