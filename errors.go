package latticedecoder

import "errors"

// Errors surfaced directly to callers. Everything else (missing tokens
// inside an otherwise-valid lattice, stale constraints, empty search
// spans) is absorbed without an error; unknown tokens and columns with
// no surviving candidates are logged through glog, stale constraints
// are dropped silently. The backing store interfaces report
// success/failure per lookup, not a propagating error, so there's
// nothing upstream of them to wrap.
var (
	// ErrMismatchedKeyRests is returned when a caller supplies key and
	// rest slices of different lengths to FillFromChewingKeys.
	ErrMismatchedKeyRests = errors.New("latticedecoder: keys and key rests have different lengths")

	// ErrEmptyKeySequence is returned when FillFromChewingKeys is asked
	// to build a matrix from zero keys.
	ErrEmptyKeySequence = errors.New("latticedecoder: empty key sequence")

	// ErrInvalidSpan is returned by NBestMatch when the matrix has no
	// columns or the constraint set does not cover one of its columns.
	ErrInvalidSpan = errors.New("latticedecoder: invalid search span")

	// ErrNoCandidates is returned by NBestMatch when decoding produced no
	// sentence candidates at all (as opposed to fewer than requested).
	ErrNoCandidates = errors.New("latticedecoder: no sentence candidates")
)
