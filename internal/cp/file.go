package cp

import (
	"fmt"
	"io"
	"os"

	"github.com/rhogenson/fcp/internal/fsx"
)

// Options are the user-visible knobs that don't change §3's invariants
// when left at their zero value.
type Options struct {
	// Force removes an existing destination (recursively, if it's a
	// directory) and retries once when a symlink or FIFO cannot be
	// created there. Regular-file and device destinations are not
	// retried: a failure to create or open them is reported as is.
	// Adopted from the teacher's "-f" flag.
	Force bool
}

// copyOne is the type-dispatching single-file copier of §4.3. Exactly
// one type-specific strategy is attempted per source; reaching the
// default case is a programming error, since fsx.Lstat can only return
// the seven classified variants.
func copyOne(ex *executor, src, dst string, w io.Writer, progress Progress, opts Options) CopyOutcome {
	ft, md, err := fsx.Lstat(src)
	if err != nil {
		report(w, err)
		return ErrorOccurred
	}
	switch ft {
	case fsx.Regular:
		return copyRegularFile(ex, src, dst, md, w, progress)
	case fsx.Directory:
		return copyDirectory(ex, src, dst, md, w, progress, opts)
	case fsx.Symlink:
		return copySymlink(src, dst, w, opts)
	case fsx.Fifo:
		return copyFifo(dst, md, w, opts)
	case fsx.Socket:
		report(w, &socketError{src})
		return ErrorOccurred
	case fsx.CharacterDevice, fsx.BlockDevice:
		return copyDevice(ex, src, dst, md, w, progress)
	default:
		panic(fmt.Sprintf("cp: %s: unreachable file type %v", src, ft))
	}
}

func copySymlink(src, dst string, w io.Writer, opts Options) CopyOutcome {
	target, err := fsx.ReadLink(src)
	if err != nil {
		report(w, err)
		return ErrorOccurred
	}
	if err := withRetry(dst, opts.Force, func() error {
		return fsx.Symlink(target, dst)
	}); err != nil {
		report(w, err)
		return ErrorOccurred
	}
	return Clean
}

func copyFifo(dst string, md fsx.Metadata, w io.Writer, opts Options) CopyOutcome {
	if err := withRetry(dst, opts.Force, func() error {
		return fsx.Mkfifo(dst, md.Mode)
	}); err != nil {
		report(w, err)
		return ErrorOccurred
	}
	return Clean
}

// copyDevice implements §4.3's documented (and deliberately unusual)
// behavior for character and block device sources: the node is drained
// as a byte stream into a freshly created regular file rather than
// recreated with mknod. See §9's Open Question.
func copyDevice(ex *executor, src, dst string, md fsx.Metadata, w io.Writer, progress Progress) CopyOutcome {
	return ex.withIOSlot(func() CopyOutcome {
		in, err := fsx.Open(src)
		if err != nil {
			return fail(w, progress, src, err)
		}
		defer in.Close()
		out, err := fsx.CreateFile(dst, md.Mode)
		if err != nil {
			return fail(w, progress, src, asPair(src, dst, err))
		}
		n, err := io.Copy(out, in)
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

// withRetry runs fn; if it fails, force is set, and dst exists, it
// removes dst (recursively) and retries once. This mirrors the teacher's
// copier.openWithRetry.
func withRetry(dst string, force bool, fn func() error) error {
	err := fn()
	if err == nil || !force {
		return err
	}
	if _, _, lerr := fsx.Lstat(dst); lerr != nil {
		return err
	}
	if rmErr := os.RemoveAll(dst); rmErr != nil {
		return err
	}
	return fn()
}
