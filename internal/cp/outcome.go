// Package cp implements fcp's parallel recursive copy engine: the
// type-dispatching single-file copier, the directory copier, the
// pre-flight validator, and the top-level dispatcher.
package cp

// CopyOutcome is the single bit fcp tracks per task: whether any error was
// printed while performing it. There is no aggregated error value —
// errors are reported at their point of origin (see Progress) and folded
// here with a logical OR.
type CopyOutcome bool

const (
	Clean         CopyOutcome = false
	ErrorOccurred CopyOutcome = true
)

// Or folds two outcomes with logical OR.
func (o CopyOutcome) Or(other CopyOutcome) CopyOutcome { return o || other }
