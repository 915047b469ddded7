package usecase

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/policy"
)

func TestAuthorizeUnknownPermissionDenies(t *testing.T) {
	authz := NewAuthz(false)
	err := authz.Authorize(context.Background(), adminActor(), "no_such_permission", nil, "")
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAuthorizeDistinguishesFailureModes(t *testing.T) {
	authz := NewAuthz(false)
	kase := domain.Case{
		CaseID:       "case-1",
		State:        domain.StateDraft,
		Title:        "Complete case",
		Description:  "Has everything the guard wants.",
		Alleged:      []string{"entity-1"},
		Contributors: []string{"u-con"},
	}

	// Role predicate rejects first.
	err := authz.Authorize(context.Background(), contribActor(), policy.ChangeCaseState, &kase, domain.StatePublished)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	// Predicate passes, transition table rejects.
	err = authz.Authorize(context.Background(), modActor(), policy.ChangeCaseState, &kase, domain.StatePublished)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	var terr domain.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, domain.StateDraft, terr.From)
	assert.Equal(t, domain.StatePublished, terr.To)

	// Table passes, completeness guard rejects.
	incomplete := kase
	incomplete.Description = ""
	err = authz.Authorize(context.Background(), modActor(), policy.ChangeCaseState, &incomplete, domain.StateInReview)
	assert.True(t, errors.Is(err, domain.ErrIncompletePrecondition))

	// Everything passes.
	err = authz.Authorize(context.Background(), modActor(), policy.ChangeCaseState, &kase, domain.StateInReview)
	assert.NoError(t, err)
}

func TestGuardSkippedWhereNotRequired(t *testing.T) {
	authz := NewAuthz(false)
	bare := domain.Case{
		CaseID: "case-1",
		State:  domain.StateDraft,
		Title:  "Title only",
	}

	// Closing never needs complete content.
	err := authz.Authorize(context.Background(), modActor(), policy.ChangeCaseState, &bare, domain.StateClosed)
	assert.NoError(t, err)

	inReview := bare
	inReview.State = domain.StateInReview
	err = authz.Authorize(context.Background(), modActor(), policy.ChangeCaseState, &inReview, domain.StateDraft)
	assert.NoError(t, err, "reverting to draft needs no guard")
}

func TestCanViewAll(t *testing.T) {
	authz := NewAuthz(false)
	kase := domain.Case{CaseID: "case-1", State: domain.StatePublished, Contributors: []string{"u-con"}}

	assert.True(t, authz.CanViewAll(adminActor(), &kase))
	assert.True(t, authz.CanViewAll(modActor(), &kase))
	assert.True(t, authz.CanViewAll(contribActor(), &kase))
	assert.False(t, authz.CanViewAll(&domain.Actor{ID: "u-other", Role: domain.RoleContributor}, &kase))
	assert.False(t, authz.CanViewAll(nil, &kase))
}

func TestPublicStates(t *testing.T) {
	assert.Equal(t, []domain.CaseState{domain.StatePublished}, NewAuthz(false).PublicStates())
	assert.Equal(t,
		[]domain.CaseState{domain.StatePublished, domain.StateInReview},
		NewAuthz(true).PublicStates())
}
