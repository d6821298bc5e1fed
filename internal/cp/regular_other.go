//go:build !linux && !darwin

package cp

import (
	"io"
	"os"
)

// tryClone is a no-op outside Linux and Darwin: no clone primitive, so
// the generic path always creates the destination itself.
func tryClone(src, dst string) (handled bool, n int64, err error) { return false, 0, nil }

// transferBytes falls back to a portable userspace copy loop on other
// Unix targets, matching the "Other Unix" row of §4.2.
func transferBytes(dst, src *os.File, size int64) (int64, error) {
	return io.Copy(dst, src)
}
