// Package fsx is a narrow, type-safe wrapper around the POSIX operations fcp
// needs: lstat, readlink, opendir/readdir, symlink, mkfifo, open, and mkdir.
// Every failure is annotated with the offending path(s) so callers never
// have to thread path context through a bare *os.PathError.
package fsx

import "fmt"

// PathError annotates a single-path operation failure. Its Error method
// produces exactly "<path>: <err>", matching the wrap! macro in the
// upstream Rust implementation's filesystem module.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e *PathError) Unwrap() error { return e.Err }

// PairError annotates a two-path operation failure (symlink, rename-style
// copies). Its Error method produces exactly "<src>, <dst>: <err>".
type PairError struct {
	Src, Dst string
	Err      error
}

func (e *PairError) Error() string { return fmt.Sprintf("%s, %s: %s", e.Src, e.Dst, e.Err) }
func (e *PairError) Unwrap() error { return e.Err }

func wrapPath(path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Path: path, Err: err}
}

func wrapPair(src, dst string, err error) error {
	if err == nil {
		return nil
	}
	return &PairError{Src: src, Dst: dst, Err: err}
}
