package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/jawafdehi/jawaf"
	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/policy"
)

var caseTracer = otel.Tracer("case")

// EventChannel is the pub/sub channel lifecycle events go out on.
const EventChannel = "jawaf:case-events"

// CaseUsecase drives the case lifecycle: creation, content edits, state
// transitions, assignment management and audit reads. Every mutation goes
// through the authorization gateway first and lands in the revision store
// as an optimistic-concurrency append.
type CaseUsecase struct {
	repo   CaseRepository
	authz  *Authz
	events EventPublisher
}

func NewCaseUsecase(repo CaseRepository, authz *Authz, events EventPublisher) *CaseUsecase {
	return &CaseUsecase{repo: repo, authz: authz, events: events}
}

// CreateCaseInput is the validated input for opening a new draft.
type CreateCaseInput struct {
	CaseType       domain.CaseType       `json:"caseType"`
	Title          string                `json:"title"`
	Description    string                `json:"description,omitempty"`
	KeyAllegations []string              `json:"keyAllegations,omitempty"`
	Tags           []string              `json:"tags,omitempty"`
	StartDate      *time.Time            `json:"caseStartDate,omitempty"`
	EndDate        *time.Time            `json:"caseEndDate,omitempty"`
	Alleged        []string              `json:"allegedEntities,omitempty"`
	Related        []string              `json:"relatedEntities,omitempty"`
	Locations      []string              `json:"locations,omitempty"`
	Timeline       []jawaf.TimelineEntry `json:"timeline,omitempty"`
	Contributors   []string              `json:"contributors,omitempty"`
}

// Create opens a new case in DRAFT as version 1.
func (uc *CaseUsecase) Create(ctx context.Context, actor *domain.Actor, input CreateCaseInput) (domain.Revision, error) {
	ctx, span := caseTracer.Start(ctx, "Case.Create")
	defer span.End()

	if err := uc.authz.Authorize(ctx, actor, policy.CreateCase, nil, ""); err != nil {
		return domain.Revision{}, err
	}

	caseType := input.CaseType
	if caseType == "" {
		caseType = domain.TypeCorruption
	}

	now := time.Now().UTC()
	kase := domain.Case{
		CaseID:         domain.NewCaseID(),
		CaseType:       caseType,
		State:          domain.StateDraft,
		Title:          input.Title,
		Description:    input.Description,
		KeyAllegations: slices.Clone(input.KeyAllegations),
		Tags:           slices.Clone(input.Tags),
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Alleged:        slices.Clone(input.Alleged),
		Related:        slices.Clone(input.Related),
		Locations:      slices.Clone(input.Locations),
		Timeline:       slices.Clone(input.Timeline),
		Contributors:   slices.Clone(input.Contributors),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if actor != nil && actor.Role == domain.RoleContributor && !kase.IsAssigned(actor.ID) {
		// A contributor who opens a case works on it.
		kase.Contributors = append(kase.Contributors, actor.ID)
	}
	if err := kase.Validate(); err != nil {
		return domain.Revision{}, err
	}

	rev, err := uc.repo.Create(ctx, kase, domain.ActionCreated, actorID(actor))
	if err != nil {
		return domain.Revision{}, err
	}
	uc.publish(ctx, rev)
	return rev, nil
}

// Get returns the current projection, gated by view_case.
func (uc *CaseUsecase) Get(ctx context.Context, actor *domain.Actor, caseID string) (domain.Case, error) {
	ctx, span := caseTracer.Start(ctx, "Case.Get")
	defer span.End()

	kase, err := uc.repo.GetCurrent(ctx, caseID)
	if err != nil {
		return domain.Case{}, err
	}
	if err := uc.authz.Authorize(ctx, actor, policy.ViewCase, &kase, ""); err != nil {
		return domain.Case{}, err
	}
	return kase, nil
}

// UpdateContent appends a content-only revision. The caller supplies the
// version it last read; a stale value fails with ConcurrencyError.
func (uc *CaseUsecase) UpdateContent(ctx context.Context, actor *domain.Actor, caseID string, expectedVersion int, patch domain.CasePatch) (domain.Revision, error) {
	ctx, span := caseTracer.Start(ctx, "Case.UpdateContent")
	defer span.End()

	if patch.IsEmpty() {
		return domain.Revision{}, domain.ValidationError{Fields: map[string]string{"patch": "patch changes nothing"}}
	}

	current, err := uc.repo.GetCurrent(ctx, caseID)
	if err != nil {
		return domain.Revision{}, err
	}
	if err := uc.authz.Authorize(ctx, actor, policy.ChangeCase, &current, ""); err != nil {
		return domain.Revision{}, err
	}

	next := current.Clone()
	patch.Apply(&next)
	next.UpdatedAt = time.Now().UTC()
	// Authorization happened against a snapshot; re-validate before the
	// write in case the patch broke a standing invariant.
	if err := next.Validate(); err != nil {
		return domain.Revision{}, err
	}

	rev, err := uc.repo.Append(ctx, caseID, expectedVersion, next, domain.ActionUpdated, actorID(actor))
	if err != nil {
		return domain.Revision{}, err
	}
	uc.publish(ctx, rev)
	return rev, nil
}

// Transition moves the case to target, appending a revision that records
// the new state. An optional patch lets a caller fix up content in the same
// write, which the completeness guard then sees.
func (uc *CaseUsecase) Transition(ctx context.Context, actor *domain.Actor, caseID string, expectedVersion int, target domain.CaseState, patch domain.CasePatch) (domain.Revision, error) {
	ctx, span := caseTracer.Start(ctx, "Case.Transition")
	defer span.End()

	if _, ok := domain.ParseCaseState(string(target)); !ok {
		return domain.Revision{}, domain.ValidationError{Fields: map[string]string{"target": "unknown state"}}
	}

	current, err := uc.repo.GetCurrent(ctx, caseID)
	if err != nil {
		return domain.Revision{}, err
	}

	candidate := current.Clone()
	patch.Apply(&candidate)

	// The gateway sees the candidate content so the completeness guard
	// judges what would actually be committed.
	if err := uc.authz.Authorize(ctx, actor, policy.ChangeCaseState, &candidate, target); err != nil {
		return domain.Revision{}, err
	}

	if !patch.IsEmpty() {
		if err := uc.authz.Authorize(ctx, actor, policy.ChangeCase, &current, ""); err != nil {
			return domain.Revision{}, err
		}
	}

	action := domain.TransitionAction(current.State, target)
	candidate.State = target
	candidate.UpdatedAt = time.Now().UTC()
	if err := candidate.Validate(); err != nil {
		return domain.Revision{}, err
	}

	rev, err := uc.repo.Append(ctx, caseID, expectedVersion, candidate, action, actorID(actor))
	if err != nil {
		return domain.Revision{}, err
	}
	uc.publish(ctx, rev)
	return rev, nil
}

// AddContributor assigns a contributor to the case.
func (uc *CaseUsecase) AddContributor(ctx context.Context, actor *domain.Actor, caseID string, expectedVersion int, userID string) (domain.Revision, error) {
	return uc.changeAssignment(ctx, actor, caseID, expectedVersion, userID, true)
}

// RemoveContributor removes an assignment.
func (uc *CaseUsecase) RemoveContributor(ctx context.Context, actor *domain.Actor, caseID string, expectedVersion int, userID string) (domain.Revision, error) {
	return uc.changeAssignment(ctx, actor, caseID, expectedVersion, userID, false)
}

func (uc *CaseUsecase) changeAssignment(ctx context.Context, actor *domain.Actor, caseID string, expectedVersion int, userID string, add bool) (domain.Revision, error) {
	ctx, span := caseTracer.Start(ctx, "Case.ChangeAssignment")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return domain.Revision{}, domain.ValidationError{Fields: map[string]string{"userId": "user id cannot be empty"}}
	}

	current, err := uc.repo.GetCurrent(ctx, caseID)
	if err != nil {
		return domain.Revision{}, err
	}
	if err := uc.authz.Authorize(ctx, actor, policy.ManageContributors, &current, ""); err != nil {
		return domain.Revision{}, err
	}

	next := current.Clone()
	action := domain.ActionContributorAdded
	if add {
		if next.IsAssigned(userID) {
			return domain.Revision{}, domain.ValidationError{Fields: map[string]string{"userId": "already assigned"}}
		}
		next.Contributors = append(next.Contributors, userID)
	} else {
		if !next.IsAssigned(userID) {
			return domain.Revision{}, domain.ValidationError{Fields: map[string]string{"userId": "not assigned"}}
		}
		next.Contributors = slices.DeleteFunc(next.Contributors, func(id string) bool { return id == userID })
		action = domain.ActionContributorRemoved
	}
	next.UpdatedAt = time.Now().UTC()

	rev, err := uc.repo.Append(ctx, caseID, expectedVersion, next, action, actorID(actor))
	if err != nil {
		return domain.Revision{}, err
	}
	uc.publish(ctx, rev)
	return rev, nil
}

// History returns the audit trail. Staff and assigned contributors get the
// full log; everyone else only sees revisions in publicly visible states.
func (uc *CaseUsecase) History(ctx context.Context, actor *domain.Actor, caseID string) ([]domain.Revision, error) {
	ctx, span := caseTracer.Start(ctx, "Case.History")
	defer span.End()

	current, err := uc.repo.GetCurrent(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := uc.authz.Authorize(ctx, actor, policy.ViewAudit, &current, ""); err != nil {
		return nil, err
	}

	if uc.authz.CanViewAll(actor, &current) {
		return uc.repo.ListRevisions(ctx, caseID, nil)
	}
	return uc.repo.ListRevisions(ctx, caseID, uc.authz.PublicStates())
}

func (uc *CaseUsecase) publish(ctx context.Context, rev domain.Revision) {
	if uc.events == nil {
		return
	}
	// Best effort: the revision is already committed, a lost event must not
	// fail the request.
	_ = uc.events.Publish(ctx, EventChannel, jawaf.Event{
		Type:      "case." + rev.Action,
		CaseID:    rev.CaseID,
		Version:   rev.Version,
		State:     string(rev.State),
		Action:    rev.Action,
		Timestamp: rev.CreatedAt,
	})
}

func actorID(actor *domain.Actor) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}
