package domain

// CaseState is the lifecycle state of a case.
type CaseState string

const (
	StateDraft     CaseState = "DRAFT"
	StateInReview  CaseState = "IN_REVIEW"
	StatePublished CaseState = "PUBLISHED"
	StateClosed    CaseState = "CLOSED"
)

// CaseType classifies what a case alleges.
type CaseType string

const (
	TypeCorruption CaseType = "CORRUPTION"
	TypePromises   CaseType = "PROMISES"
)

// ParseCaseState maps a state string to a CaseState.
func ParseCaseState(s string) (CaseState, bool) {
	switch CaseState(s) {
	case StateDraft, StateInReview, StatePublished, StateClosed:
		return CaseState(s), true
	default:
		return "", false
	}
}

// ParseCaseType maps a type string to a CaseType.
func ParseCaseType(s string) (CaseType, bool) {
	switch CaseType(s) {
	case TypeCorruption, TypePromises:
		return CaseType(s), true
	default:
		return "", false
	}
}

// transitions is the full set of legal state transitions. CLOSED is
// terminal; reopening a closed case means creating a new one.
var transitions = map[CaseState]map[CaseState]bool{
	StateDraft: {
		StateInReview: true,
		StateClosed:   true,
	},
	StateInReview: {
		StateDraft:     true,
		StatePublished: true,
		StateClosed:    true,
	},
}

// TransitionAllowed reports whether from -> to appears in the transition
// table. Role restrictions are the permission layer's concern, not this one.
func TransitionAllowed(from, to CaseState) bool {
	return transitions[from][to]
}

// Revision action tags.
const (
	ActionCreated            = "created"
	ActionImported           = "imported"
	ActionUpdated            = "updated"
	ActionSubmitted          = "submitted"
	ActionReverted           = "reverted"
	ActionPublished          = "published"
	ActionClosed             = "closed"
	ActionContributorAdded   = "contributor_added"
	ActionContributorRemoved = "contributor_removed"
)

// TransitionAction names the audit action recorded for a legal transition.
func TransitionAction(from, to CaseState) string {
	switch to {
	case StateInReview:
		return ActionSubmitted
	case StateDraft:
		return ActionReverted
	case StatePublished:
		return ActionPublished
	case StateClosed:
		return ActionClosed
	}
	return ActionUpdated
}

// RequiresCompleteContent reports whether the transition is gated by the
// content-completeness guard: submitting a draft for review, and any
// transition into PUBLISHED.
func RequiresCompleteContent(from, to CaseState) bool {
	if from == StateDraft && to == StateInReview {
		return true
	}
	return to == StatePublished
}

// ContentEditable reports whether case content may still change in the
// given state for contributors. Admins and moderators are not bound by it.
func ContentEditable(state CaseState) bool {
	return state == StateDraft || state == StateInReview
}
