package cp

import (
	"errors"
	"io"

	"github.com/rhogenson/fcp/internal/fsx"
)

// copyRegularFile implements §4.2, the dominant workload. On platforms
// with a copy-on-write clone primitive (tryClone, darwin only), it
// attempts that first since cloning creates the destination itself and
// must run before any destination file exists. Otherwise it opens the
// source, creates the destination with the source's exact mode (no
// fchmod follow-up — mode is passed straight to open/O_CREAT, and the
// fcp command clears the process umask at startup so open applies it
// unchanged), and transfers bytes with the best kernel
// primitive transferBytes can find.
func copyRegularFile(ex *executor, src, dst string, md fsx.Metadata, w io.Writer, progress Progress) CopyOutcome {
	return ex.withIOSlot(func() CopyOutcome {
		progress.FileStart(src, dst)

		if handled, n, err := tryClone(src, dst); handled {
			if err != nil {
				return fail(w, progress, src, asPair(src, dst, err))
			}
			progress.Add(n)
			progress.FileDone(src, nil)
			return Clean
		}

		in, err := fsx.Open(src)
		if err != nil {
			return fail(w, progress, src, err)
		}
		defer in.Close()

		out, err := fsx.CreateFile(dst, md.Mode)
		if err != nil {
			return fail(w, progress, src, asPair(src, dst, err))
		}

		n, err := transferBytes(out, in, md.Size)
		progress.Add(n)
		closeErr := out.Close()
		if err != nil {
			return fail(w, progress, src, asPair(src, dst, err))
		}
		if closeErr != nil {
			return fail(w, progress, src, asPair(src, dst, closeErr))
		}
		progress.FileDone(src, nil)
		return Clean
	})
}

// asPair re-wraps an fsx single-path error (or a bare syscall error) as a
// PairError carrying both the source and destination paths, matching
// §4.2's "errors surface with both source and destination paths."
func asPair(src, dst string, err error) error {
	var pe *fsx.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &fsx.PairError{Src: src, Dst: dst, Err: err}
}

func fail(w io.Writer, progress Progress, src string, err error) CopyOutcome {
	report(w, err)
	progress.FileDone(src, err)
	return ErrorOccurred
}

func report(w io.Writer, err error) {
	if err == nil {
		return
	}
	io.WriteString(w, err.Error()+"\n")
}
