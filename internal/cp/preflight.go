package cp

import (
	"path/filepath"

	"github.com/rhogenson/fcp/internal/fsx"
)

// preflight implements §4.5. It runs only in the "copy N sources into a
// destination directory" shape, before any mutation, and returns a
// single aggregated error joining every finding — duplicate destination
// filenames, unusable source basenames, and self-copy-by-inode matches —
// or nil if the operation may proceed.
func preflight(sources []string, destDir string) error {
	var lines []string

	groups := map[string][]string{}
	var order []string
	for _, src := range sources {
		base, ok := basename(src)
		if !ok {
			lines = append(lines, (&noBasenameError{src}).Error())
			continue
		}
		if _, seen := groups[base]; !seen {
			order = append(order, base)
		}
		groups[base] = append(groups[base], src)
	}
	for _, base := range order {
		if srcs := groups[base]; len(srcs) > 1 {
			lines = append(lines, (&duplicateBasenameError{name: base, sources: srcs}).Error())
		}
	}

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		lines = append(lines, (&fsx.PathError{Path: destDir, Err: err}).Error())
	} else {
		ancestors, ancestorErrs := ancestorInodes(absDest)
		lines = append(lines, ancestorErrs...)
		for _, src := range sources {
			_, md, err := fsx.Lstat(src)
			if err != nil {
				// Reported again, with full context, when the copy
				// itself is attempted.
				continue
			}
			for _, anc := range ancestors {
				if anc.ino == md.Ino {
					lines = append(lines, (&selfCopyError{src: src, ancestor: anc.path}).Error())
					break
				}
			}
		}
	}

	if len(lines) == 0 {
		return nil
	}
	return &preflightError{lines: lines}
}

type ancestor struct {
	path string
	ino  uint64
}

// ancestorInodes walks every ancestor of dest, including dest itself, up
// to the filesystem root, collecting the inode of each. An lstat failure
// on one ancestor is reported but does not stop the walk from continuing
// to the remaining ancestors.
func ancestorInodes(dest string) ([]ancestor, []string) {
	var result []ancestor
	var errs []string
	p := dest
	for {
		if _, md, err := fsx.Lstat(p); err != nil {
			errs = append(errs, err.Error())
		} else {
			result = append(result, ancestor{path: p, ino: md.Ino})
		}
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}
	return result, errs
}

// basename replicates the upstream Rust implementation's Path::file_name
// semantics closely enough for §4.5's purposes: a path ending in "..", or
// equal to "." or the filesystem root, has no usable destination
// filename.
func basename(p string) (string, bool) {
	if filepath.Base(p) == ".." {
		return "", false
	}
	base := filepath.Base(filepath.Clean(p))
	if base == "." || base == string(filepath.Separator) || base == ".." {
		return "", false
	}
	return base, true
}
