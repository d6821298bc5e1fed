package cp

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// copyChunk caps how many bytes we ask the kernel to move in a single
// copy_file_range(2)/sendfile(2) call.
const copyChunk = 1 << 30

// tryClone is a no-op on Linux: there is no copy-on-write clone
// primitive equivalent to macOS's fclonefileat, so the generic path
// always creates the destination itself and transfers bytes with
// copy_file_range.
func tryClone(src, dst string) (handled bool, n int64, err error) { return false, 0, nil }

// transferBytes implements the Linux fast path of §4.2: copy_file_range,
// falling back to sendfile, falling back to a userspace read/write loop
// when the kernel reports ENOSYS, EXDEV, or EINVAL (common across
// overlayfs, FUSE, and cross-filesystem copies).
func transferBytes(dst, src *os.File, size int64) (int64, error) {
	dstFd, srcFd := int(dst.Fd()), int(src.Fd())
	var total int64
	for {
		n, err := unix.CopyFileRange(srcFd, nil, dstFd, nil, copyChunk, 0)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if total == 0 && fastPathFallback(err) {
				return sendfileTransfer(dst, src)
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		total += int64(n)
	}
}

func sendfileTransfer(dst, src *os.File) (int64, error) {
	dstFd, srcFd := int(dst.Fd()), int(src.Fd())
	var total int64
	for {
		n, err := unix.Sendfile(dstFd, srcFd, nil, copyChunk)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if total == 0 && fastPathFallback(err) {
				n2, err2 := io.Copy(dst, src)
				return total + n2, err2
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		total += int64(n)
	}
}

func fastPathFallback(err error) bool {
	return errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EXDEV) || errors.Is(err, unix.EINVAL)
}
