package domain

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeCase() Case {
	return Case{
		CaseID:      "case-abc123def456",
		Version:     1,
		CaseType:    TypeCorruption,
		State:       StateDraft,
		Title:       "Procurement irregularities at the port authority",
		Description: "Tender awarded without public bidding.",
		Alleged:     []string{"entity-1"},
	}
}

func TestCompletenessErrors(t *testing.T) {
	kase := completeCase()
	assert.Empty(t, kase.CompletenessErrors())

	kase.Title = "   "
	kase.Description = ""
	kase.Alleged = nil
	assert.ElementsMatch(t,
		[]string{"title", "description", "alleged_entities"},
		kase.CompletenessErrors())
}

func TestValidate(t *testing.T) {
	kase := completeCase()
	assert.NoError(t, kase.Validate())

	kase.Title = ""
	kase.CaseType = "GOSSIP"
	err := kase.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "case_type")
	assert.NotContains(t, verr.Fields, "state")
}

func TestIsAssigned(t *testing.T) {
	kase := completeCase()
	kase.Contributors = []string{"u-1", "u-2"}

	assert.True(t, kase.IsAssigned("u-1"))
	assert.False(t, kase.IsAssigned("u-3"))
	assert.False(t, kase.IsAssigned(""))
}

func TestCloneIsDeep(t *testing.T) {
	kase := completeCase()
	kase.Tags = []string{"ports"}
	kase.Contributors = []string{"u-1"}

	next := kase.Clone()
	next.Tags[0] = "customs"
	next.Contributors = append(next.Contributors, "u-2")
	next.Title = "changed"

	assert.Equal(t, "ports", kase.Tags[0])
	assert.Len(t, kase.Contributors, 1)
	assert.NotEqual(t, kase.Title, next.Title)
}

func TestPatchApply(t *testing.T) {
	kase := completeCase()
	title := "Updated title"
	tags := []string{"ports", "tenders"}
	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	patch := CasePatch{Title: &title, Tags: &tags, StartDate: &start}
	assert.False(t, patch.IsEmpty())

	patch.Apply(&kase)
	assert.Equal(t, "Updated title", kase.Title)
	assert.Equal(t, []string{"ports", "tenders"}, kase.Tags)
	require.NotNil(t, kase.StartDate)
	assert.True(t, kase.StartDate.Equal(start))

	// Untouched fields survive.
	assert.Equal(t, "Tender awarded without public bidding.", kase.Description)
	assert.Equal(t, []string{"entity-1"}, kase.Alleged)
}

func TestPatchApplyDetachesSlices(t *testing.T) {
	kase := completeCase()
	tags := []string{"ports"}
	patch := CasePatch{Tags: &tags}
	patch.Apply(&kase)

	tags[0] = "mutated"
	assert.Equal(t, "ports", kase.Tags[0])
}

func TestEmptyPatch(t *testing.T) {
	assert.True(t, CasePatch{}.IsEmpty())
}

func TestEncodeSnapshotChecksumIsStable(t *testing.T) {
	kase := completeCase()

	raw1, sum1, err := EncodeSnapshot(kase)
	require.NoError(t, err)
	raw2, sum2, err := EncodeSnapshot(kase)
	require.NoError(t, err)

	assert.Equal(t, raw1, raw2)
	assert.Equal(t, sum1, sum2)
	assert.Equal(t, sum1, SnapshotChecksum(raw1))

	kase.Title = "tampered"
	_, sum3, err := EncodeSnapshot(kase)
	require.NoError(t, err)
	assert.NotEqual(t, sum1, sum3)
}
