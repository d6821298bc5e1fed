package cp

import (
	"io"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/rhogenson/fcp/internal/fsx"
)

// copyDirectory implements §4.4. The destination is created with the
// source's exact mode before any child is scheduled (§3's invariant;
// note there is deliberately no later chmod, even for a read-only source
// directory — see DESIGN.md). Every entry, file or subdirectory alike,
// is then scheduled onto its own goroutine and joined with an
// *errgroup.Group, so traversal itself parallelizes rather than only the
// leaf file copies.
func copyDirectory(ex *executor, src, dst string, md fsx.Metadata, w io.Writer, progress Progress, opts Options) CopyOutcome {
	if err := fsx.CreateDir(dst, md.Mode); err != nil {
		report(w, err)
		return ErrorOccurred
	}

	names, err := fsx.ReadDirNames(src)
	if err != nil {
		report(w, err)
		return ErrorOccurred
	}

	outcomes := make([]CopyOutcome, len(names))
	var eg errgroup.Group
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			outcomes[i] = copyOne(ex, path.Join(src, name), path.Join(dst, name), w, progress, opts)
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
