package object

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat matches any FormatError via errors.Is.
var ErrFormat = errors.New("malformed object")

// ErrNotFound indicates a missing object or reference file. Callers that
// poll during a concurrent write should treat it as retryable.
var ErrNotFound = errors.New("object not found")

// ErrAmbiguous matches any AmbiguousError via errors.Is.
var ErrAmbiguous = errors.New("ambiguous reference")

// ErrNoMatch is returned by resolution when an object exists but cannot be
// coerced to the requested type. It is a probe result, not a failure:
// callers check it with errors.Is to test type compatibility.
var ErrNoMatch = errors.New("object type does not match")

// FormatError reports a corrupt or malformed object: a bad frame length,
// an unknown type token, a broken KVLM structure, a malformed tree entry,
// or a corrupt compressed stream. It is fatal for the single operation in
// progress and carries the offending hash when known.
type FormatError struct {
	Hash Hash // empty when the hash is not yet known
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Hash != "" {
		if e.Err != nil {
			return fmt.Sprintf("object %s: %s: %v", e.Hash, e.Msg, e.Err)
		}
		return fmt.Sprintf("object %s: %s", e.Hash, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// formatErrf builds a FormatError with no hash attached. The store layer
// re-tags these with the hash being read.
func formatErrf(format string, args ...any) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// withHash returns a copy of err tagged with h if err is a FormatError
// that does not already carry a hash; otherwise err is returned as-is.
func withHash(err error, h Hash) error {
	var fe *FormatError
	if errors.As(err, &fe) && fe.Hash == "" {
		return &FormatError{Hash: h, Msg: fe.Msg, Err: fe.Err}
	}
	return err
}

// AmbiguousError reports that an abbreviated name matched more than one
// stored object. Candidates holds every matching full hash.
type AmbiguousError struct {
	Name       string
	Candidates []Hash
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ambiguous reference %q: candidates are:", e.Name)
	for _, c := range e.Candidates {
		fmt.Fprintf(&b, "\n - %s", c)
	}
	return b.String()
}

func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguous }
