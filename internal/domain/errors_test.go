package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NotFoundError{Resource: "case"}, ErrNotFound},
		{"forbidden", ForbiddenError{Permission: "view_case"}, ErrForbidden},
		{"invalid transition", InvalidTransitionError{From: StateDraft, To: StatePublished}, ErrInvalidTransition},
		{"incomplete", IncompletePreconditionError{Missing: []string{"title"}}, ErrIncompletePrecondition},
		{"concurrency", ConcurrencyError{CaseID: "case-1", ExpectedVersion: 3}, ErrConcurrency},
		{"validation", ValidationError{Fields: map[string]string{"title": "empty"}}, ErrValidation},
		{"import", ImportError{Reason: "bad payload"}, ErrImport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.True(t, errors.Is(errors.Wrap(tt.err, "outer"), tt.sentinel))
		})
	}

	assert.False(t, errors.Is(NotFoundError{}, ErrForbidden))
	assert.False(t, errors.Is(ConcurrencyError{}, ErrValidation))
}

func TestForbiddenMessageRevealsNothing(t *testing.T) {
	err := ForbiddenError{Permission: "change_case_state"}
	assert.Equal(t, "forbidden", err.Error())
}

func TestImportErrorUnwrap(t *testing.T) {
	inner := ValidationError{Fields: map[string]string{"title": "empty"}}
	err := ImportError{Reason: "case rejected", Err: inner}

	assert.True(t, errors.Is(err, ErrImport))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "case rejected")
}

func TestIncompletePreconditionMessage(t *testing.T) {
	err := IncompletePreconditionError{Missing: []string{"description", "title"}}
	assert.Equal(t, "incomplete case content: missing description, title", err.Error())
}

func TestIDShapes(t *testing.T) {
	caseID := NewCaseID()
	assert.Regexp(t, `^case-[0-9a-f]{12}$`, caseID)

	sourceID := NewSourceID()
	assert.Regexp(t, `^source:\d{8}:[0-9a-f]{8}$`, sourceID)

	entityID := NewEntityID()
	assert.Regexp(t, `^entity-[0-9a-f]{12}$`, entityID)

	assert.NotEqual(t, NewCaseID(), NewCaseID())
}
