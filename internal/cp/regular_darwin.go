package cp

import (
	"errors"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// cloneState caches whether fclonefileat is available on this kernel.
// 0 means "unknown, try it"; cloneUnsupported means "known unsupported,
// skip the probe." It is a process-wide atomic: a stale read costs at
// most one extra failed syscall, never a correctness issue.
var cloneState atomic.Int32

const cloneUnsupported = 1

// tryClone attempts a copy-on-write clone of src onto dst with
// fclonefileat before dst exists. A clone call creates the destination
// itself, so it must run before the generic path ever opens or creates
// dst.
func tryClone(src, dst string) (handled bool, n int64, err error) {
	if cloneState.Load() == cloneUnsupported {
		return false, 0, nil
	}
	cloneErr := unix.Clonefileat(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, 0)
	switch {
	case cloneErr == nil:
		fi, statErr := os.Stat(dst)
		if statErr != nil {
			return true, 0, statErr
		}
		return true, fi.Size(), nil
	case errors.Is(cloneErr, unix.ENOSYS):
		cloneState.Store(cloneUnsupported)
		return false, 0, nil
	case errors.Is(cloneErr, unix.ENOTSUP), errors.Is(cloneErr, unix.EEXIST), errors.Is(cloneErr, unix.EXDEV):
		return false, 0, nil
	default:
		return true, 0, cloneErr
	}
}

// transferBytes implements the "Other Unix"/fallback half of the
// macOS/iOS/watchOS row of §4.2: a portable userspace copy loop.
//
// The upstream fcopyfile(COPYFILE_ALL) fallback named in §4.2 is a libc
// call with no raw syscall number, so invoking it would require cgo; the
// retrieval pack has no cgo precedent to ground that call on, so fcp
// falls back directly to the portable read/write loop instead, exactly
// as the "Other Unix" row of §4.2 already specifies for every platform
// without a kernel-level fast path.
func transferBytes(dst, src *os.File, size int64) (int64, error) {
	return io.Copy(dst, src)
}
