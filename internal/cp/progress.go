package cp

// Progress is used to asynchronously report throughput and file-level
// status to a UI, in the spirit of the teacher's cp.Progress interface.
// It is purely an observability hook: fcp's correctness and exit code
// never depend on a Progress implementation being wired up, since every
// error is also written to the io.Writer passed to Copy.
type Progress interface {
	// Max sets the total number of bytes expected to be copied. Called
	// at most once, before any Progress calls.
	Max(int64)
	// Add reports that n additional bytes have been transferred.
	Add(n int64)
	// FileStart reports that src is currently being copied to dst.
	// Only called for regular files, never directories or symlinks.
	FileStart(src, dst string)
	// FileDone is called when a regular file or a device source
	// finishes copying, successfully or not.
	FileDone(src string, err error)
}

// NopProgress discards every report. It is the default when fcp is run
// non-interactively (see main.go).
type NopProgress struct{}

func (NopProgress) Max(int64)              {}
func (NopProgress) Add(int64)              {}
func (NopProgress) FileStart(_, _ string)  {}
func (NopProgress) FileDone(_ string, _ error) {}
