package cp

import (
	"fmt"
	"io"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/rhogenson/fcp/internal/fsx"
)

// Copy is the top-level dispatcher of §4.6. paths is the post-parse
// argument vector with the destination last; the caller is responsible
// for the len(paths) < 2 usage-error case, since producing usage text is
// an out-of-scope CLI concern (§1) — Copy itself only distinguishes the
// three call shapes that exist once there are at least two operands.
//
// Every error Copy detects is written to w as it's found; the returned
// CopyOutcome is purely the aggregated "did anything fail" bit of §3.
func Copy(w io.Writer, progress Progress, paths []string, opts Options) CopyOutcome {
	srcs, dst := paths[:len(paths)-1], paths[len(paths)-1]
	ex := newExecutor()

	if len(srcs) == 1 {
		src := srcs[0]
		if ft, _, err := fsx.Stat(dst); err == nil && ft == fsx.Directory {
			return copyIntoDir(ex, w, progress, srcs, dst, opts)
		}
		if _, dstMd, err := fsx.Lstat(dst); err == nil {
			if _, srcMd, serr := fsx.Lstat(src); serr == nil && srcMd.Ino == dstMd.Ino {
				report(w, &overwriteSelfError{src: src, dst: dst})
				return ErrorOccurred
			}
		}
		return copyOne(ex, src, dst, w, progress, opts)
	}

	if ft, _, err := fsx.Stat(dst); err != nil || ft != fsx.Directory {
		report(w, fmt.Errorf("%s: not a directory", dst))
		return ErrorOccurred
	}
	return copyIntoDir(ex, w, progress, srcs, dst, opts)
}

// copyIntoDir is the "N sources into an existing directory" shape of
// §4.6, guarded by the pre-flight validator of §4.5.
func copyIntoDir(ex *executor, w io.Writer, progress Progress, srcs []string, dst string, opts Options) CopyOutcome {
	if err := preflight(srcs, dst); err != nil {
		report(w, err)
		return ErrorOccurred
	}

	outcomes := make([]CopyOutcome, len(srcs))
	var eg errgroup.Group
	for i, src := range srcs {
		i, src := i, src
		eg.Go(func() error {
			base, _ := basename(src)
			childDst := path.Join(dst, base)
			outcomes[i] = copyOne(ex, src, childDst, w, progress, opts)
			return nil
		})
	}
	eg.Wait()

	out := Clean
	for _, o := range outcomes {
		out = out.Or(o)
	}
	return out
}
