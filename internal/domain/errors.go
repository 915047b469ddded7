package domain

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ForbiddenError means a permission predicate rejected the actor. The
// message deliberately says nothing about which check failed.
type ForbiddenError struct {
	Permission string
}

func (e ForbiddenError) Error() string { return "forbidden" }

func (e ForbiddenError) Is(target error) bool {
	_, ok := target.(ForbiddenError)
	if ok {
		return true
	}
	_, ok = target.(*ForbiddenError)
	return ok
}

// ErrForbidden is the sentinel error for rejected permission checks.
var ErrForbidden = ForbiddenError{}

// InvalidTransitionError means the state machine has no edge from From to
// To for any role.
type InvalidTransitionError struct {
	From CaseState
	To   CaseState
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

func (e InvalidTransitionError) Is(target error) bool {
	_, ok := target.(InvalidTransitionError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidTransitionError)
	return ok
}

// ErrInvalidTransition is the sentinel error for illegal state transitions.
var ErrInvalidTransition = InvalidTransitionError{}

// IncompletePreconditionError means the content-completeness guard blocked
// a transition into review or publication.
type IncompletePreconditionError struct {
	Missing []string
}

func (e IncompletePreconditionError) Error() string {
	if len(e.Missing) == 0 {
		return "incomplete case content"
	}
	m := append([]string(nil), e.Missing...)
	sort.Strings(m)
	return "incomplete case content: missing " + strings.Join(m, ", ")
}

func (e IncompletePreconditionError) Is(target error) bool {
	_, ok := target.(IncompletePreconditionError)
	if ok {
		return true
	}
	_, ok = target.(*IncompletePreconditionError)
	return ok
}

// ErrIncompletePrecondition is the sentinel error for the completeness guard.
var ErrIncompletePrecondition = IncompletePreconditionError{}

// ConcurrencyError means the caller's expected version went stale; nothing
// was written. Callers re-fetch and retry.
type ConcurrencyError struct {
	CaseID          string
	ExpectedVersion int
}

func (e ConcurrencyError) Error() string {
	if e.CaseID == "" {
		return "version conflict"
	}
	return fmt.Sprintf("version conflict on %s: expected version %d is stale", e.CaseID, e.ExpectedVersion)
}

func (e ConcurrencyError) Is(target error) bool {
	_, ok := target.(ConcurrencyError)
	if ok {
		return true
	}
	_, ok = target.(*ConcurrencyError)
	return ok
}

// ErrConcurrency is the sentinel error for stale-version writes.
var ErrConcurrency = ConcurrencyError{}

// ValidationError carries per-field problems with a patch or payload.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

// ErrValidation is the sentinel error for malformed content.
var ErrValidation = ValidationError{}

// ImportError wraps a failed import run. The transaction is rolled back
// before this surfaces, so nothing partial persists.
type ImportError struct {
	Reason string
	Err    error
}

func (e ImportError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("import failed: %s: %v", e.Reason, e.Err)
	case e.Reason != "":
		return "import failed: " + e.Reason
	case e.Err != nil:
		return fmt.Sprintf("import failed: %v", e.Err)
	}
	return "import failed"
}

func (e ImportError) Unwrap() error { return e.Err }

func (e ImportError) Is(target error) bool {
	_, ok := target.(ImportError)
	if ok {
		return true
	}
	_, ok = target.(*ImportError)
	return ok
}

// ErrImport is the sentinel error for failed import runs.
var ErrImport = ImportError{}
