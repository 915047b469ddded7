// Package policy is the permission predicate engine: pure boolean checks
// over an (actor, resource) request, composed with And/Or/Not and bound to
// permission names in a read-only registry.
package policy

import (
	"github.com/jawafdehi/jawaf/internal/domain"
)

// Request carries everything a predicate may inspect. Actor is nil for the
// anonymous context; Case is nil for operations that target no case (for
// example creating one). Target is only set for state transitions.
type Request struct {
	Actor  *domain.Actor
	Case   *domain.Case
	Target domain.CaseState

	// ExposeInReview mirrors the deployment switch that makes IN_REVIEW
	// cases publicly visible alongside PUBLISHED ones.
	ExposeInReview bool
}

// Predicate is a pure permission check. Predicates never return errors;
// anything they cannot establish is simply false.
type Predicate func(Request) bool
