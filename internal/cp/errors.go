package cp

import (
	"fmt"
	"strings"
)

// socketError is the semantic refusal of §4.3: sockets cannot be
// meaningfully copied, so attempting it is reported and converted into
// ErrorOccurred rather than treated as an I/O failure.
type socketError struct{ path string }

func (e *socketError) Error() string { return e.path + ": sockets cannot be copied" }

// selfCopyError reports a source that would be copied into itself or one
// of its own descendants: the source's inode equals the inode of the
// destination or of one of the destination's ancestors.
type selfCopyError struct{ src, ancestor string }

func (e *selfCopyError) Error() string {
	return fmt.Sprintf("Cannot copy directory %q into itself %q", e.src, e.ancestor)
}

// overwriteSelfError reports fcp SRC DST where SRC and DST name the same
// inode.
type overwriteSelfError struct{ src, dst string }

func (e *overwriteSelfError) Error() string {
	return fmt.Sprintf("Cannot overwrite file %q with itself %q", e.src, e.dst)
}

// noBasenameError reports a source path with no usable destination
// filename, e.g. one ending in "..".
type noBasenameError struct{ path string }

func (e *noBasenameError) Error() string {
	return e.path + ": path has no file name component"
}

// duplicateBasenameError reports two or more sources that would collide
// on the same destination filename.
type duplicateBasenameError struct {
	name    string
	sources []string
}

func (e *duplicateBasenameError) Error() string {
	return fmt.Sprintf("destination filename %q is ambiguous between: %s", e.name, strings.Join(e.sources, ", "))
}

// preflightError aggregates every finding from a single pre-flight pass
// into one multi-line fatal error, as required by §4.5: "all findings are
// joined into a single multi-line error."
type preflightError struct{ lines []string }

func (e *preflightError) Error() string { return strings.Join(e.lines, "\n") }
