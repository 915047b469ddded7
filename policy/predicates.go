package policy

import (
	"github.com/jawafdehi/jawaf/internal/domain"
)

// IsAdmin checks the actor's role tag.
func IsAdmin(r Request) bool {
	return r.Actor != nil && r.Actor.Role == domain.RoleAdmin
}

// IsModerator checks the actor's role tag.
func IsModerator(r Request) bool {
	return r.Actor != nil && r.Actor.Role == domain.RoleModerator
}

// IsContributor checks the actor's role tag.
func IsContributor(r Request) bool {
	return r.Actor != nil && r.Actor.Role == domain.RoleContributor
}

// IsAdminOrModerator is the staff check used all over the permission table.
var IsAdminOrModerator = Or(IsAdmin, IsModerator)

// IsAssigned is a pure assignment check: the actor appears in the case's
// contributor set. Staff are NOT implicitly assigned; combine with
// IsAdminOrModerator where staff should see everything.
func IsAssigned(r Request) bool {
	return r.Actor != nil && r.Case != nil && r.Case.IsAssigned(r.Actor.ID)
}

// IsPubliclyVisible passes for cases any caller may read, including the
// anonymous context: PUBLISHED always, IN_REVIEW behind the deployment
// switch.
func IsPubliclyVisible(r Request) bool {
	if r.Case == nil {
		return false
	}
	if r.Case.State == domain.StatePublished {
		return true
	}
	return r.ExposeInReview && r.Case.State == domain.StateInReview
}

// CanView: staff see everything, contributors see their assigned cases,
// everyone sees publicly visible cases.
var CanView = Or(IsAdminOrModerator, And(IsContributor, IsAssigned), IsPubliclyVisible)

// CanCreateCase: any actor with a role may open a new draft.
var CanCreateCase = Or(IsAdminOrModerator, IsContributor)

// CanEditContent: staff edit content in any state; assigned contributors
// only while the case is still in DRAFT or IN_REVIEW.
var CanEditContent = Or(
	IsAdminOrModerator,
	And(IsContributor, IsAssigned, func(r Request) bool {
		return r.Case != nil && domain.ContentEditable(r.Case.State)
	}),
)

// CanChangeStateLimited: assigned contributors may move a case only between
// DRAFT and IN_REVIEW, in either direction.
var CanChangeStateLimited = And(IsContributor, IsAssigned, func(r Request) bool {
	if r.Case == nil {
		return false
	}
	limited := map[domain.CaseState]bool{
		domain.StateDraft:    true,
		domain.StateInReview: true,
	}
	return limited[r.Case.State] && limited[r.Target]
})

// CanChangeStateFull: staff may attempt any transition; the state machine's
// table still has the final word.
var CanChangeStateFull = IsAdminOrModerator

// CanChangeState is the composed transition permission.
var CanChangeState = Or(CanChangeStateFull, CanChangeStateLimited)

// CanViewSource: staff or any contributor. Source-level assignment is not
// modeled; sources inherit coarse role visibility.
var CanViewSource = Or(IsAdminOrModerator, IsContributor)

// CanChangeSource: staff only.
var CanChangeSource = IsAdminOrModerator

// CanManageContributors: staff assign and unassign contributors.
var CanManageContributors = IsAdminOrModerator

// CanManageModerators: admins only.
var CanManageModerators = IsAdmin
