package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/policy"
)

var authzTracer = otel.Tracer("authz")

// Authz is the authorization gateway: the single choke point every mutating
// or visibility-sensitive operation passes through. It evaluates the named
// permission's predicate and, for state transitions, the state machine's
// table and completeness guard. It never mutates anything itself; success
// only licenses the caller to proceed.
type Authz struct {
	exposeInReview bool
}

func NewAuthz(exposeInReview bool) *Authz {
	return &Authz{exposeInReview: exposeInReview}
}

// Authorize checks permission for actor against kase. target is only
// meaningful for change_case_state. Failures are always one of the typed
// errors: ForbiddenError, InvalidTransitionError, IncompletePreconditionError.
func (a *Authz) Authorize(ctx context.Context, actor *domain.Actor, permission string, kase *domain.Case, target domain.CaseState) error {
	_, span := authzTracer.Start(ctx, "Authz.Authorize")
	defer span.End()
	span.SetAttributes(attribute.String("permission", permission))

	pred, ok := policy.Lookup(permission)
	if !ok {
		// Unknown names deny rather than crash; the registry is static so
		// this only happens on a caller bug.
		return domain.ForbiddenError{Permission: permission}
	}

	req := policy.Request{
		Actor:          actor,
		Case:           kase,
		Target:         target,
		ExposeInReview: a.exposeInReview,
	}
	if !pred(req) {
		return domain.ForbiddenError{Permission: permission}
	}

	if permission == policy.ChangeCaseState && kase != nil {
		if !domain.TransitionAllowed(kase.State, target) {
			return domain.InvalidTransitionError{From: kase.State, To: target}
		}
		if domain.RequiresCompleteContent(kase.State, target) {
			if missing := kase.CompletenessErrors(); len(missing) > 0 {
				return domain.IncompletePreconditionError{Missing: missing}
			}
		}
	}

	return nil
}

// CanViewAll reports whether the actor sees the full audit trail of a case
// rather than only its publicly visible revisions.
func (a *Authz) CanViewAll(actor *domain.Actor, kase *domain.Case) bool {
	req := policy.Request{Actor: actor, Case: kase, ExposeInReview: a.exposeInReview}
	return policy.Or(policy.IsAdminOrModerator, policy.And(policy.IsContributor, policy.IsAssigned))(req)
}

// PublicStates lists the case states visible without privileges.
func (a *Authz) PublicStates() []domain.CaseState {
	states := []domain.CaseState{domain.StatePublished}
	if a.exposeInReview {
		states = append(states, domain.StateInReview)
	}
	return states
}
