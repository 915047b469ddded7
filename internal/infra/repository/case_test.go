package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jawafdehi/jawaf"
	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/internal/infra/database/models"
)

func TestCaseModelRoundTrip(t *testing.T) {
	start := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	kase := domain.Case{
		CaseID:         "case-abc123def456",
		Version:        3,
		CaseType:       domain.TypeCorruption,
		State:          domain.StateInReview,
		Title:          "Land registry fraud",
		Description:    "Plots reassigned without a paper trail.",
		KeyAllegations: []string{"forgery", "abuse of office"},
		Tags:           []string{"land"},
		StartDate:      &start,
		Alleged:        []string{"entity-1"},
		Related:        []string{"entity-2"},
		Locations:      []string{"entity-3"},
		Timeline: []jawaf.TimelineEntry{
			{Date: "2023-02-01", Title: "First report", Order: 0},
		},
		Evidence: []jawaf.EvidenceEntry{
			{SourceID: "source:20230201:abcd1234", Order: 0},
		},
	}

	row, err := caseToModel(kase)
	require.NoError(t, err)
	got, err := caseFromModel(row)
	require.NoError(t, err)

	// Contributors live in the assignments table, not the case row; the
	// projection timestamps come from the database.
	got.CreatedAt = kase.CreatedAt
	got.UpdatedAt = kase.UpdatedAt
	assert.Equal(t, kase, got)
}

func TestCaseModelEmptyLists(t *testing.T) {
	row, err := caseToModel(domain.Case{CaseID: "case-1", Version: 1})
	require.NoError(t, err)
	assert.Equal(t, "[]", row.Tags)
	assert.Equal(t, "[]", row.Evidence)

	got, err := caseFromModel(row)
	require.NoError(t, err)
	assert.Nil(t, got.Tags)
	assert.Nil(t, got.Evidence)
}

func TestRevisionFromModelVerifiesChecksum(t *testing.T) {
	kase := domain.Case{
		CaseID:  "case-1",
		Version: 2,
		State:   domain.StatePublished,
		Title:   "Original title",
	}
	raw, checksum, err := domain.EncodeSnapshot(kase)
	require.NoError(t, err)

	row := models.Revision{
		CaseID:   kase.CaseID,
		Version:  kase.Version,
		State:    string(kase.State),
		Action:   domain.ActionPublished,
		Snapshot: string(raw),
		Checksum: checksum,
	}

	rev, err := revisionFromModel(row)
	require.NoError(t, err)
	assert.Equal(t, "Original title", rev.Snapshot.Title)
	assert.Equal(t, domain.StatePublished, rev.State)

	// An out-of-band edit to the stored snapshot must surface as an error.
	tampered := row
	tampered.Snapshot = strings.Replace(tampered.Snapshot, "Original title", "Rewritten title", 1)
	_, err = revisionFromModel(tampered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}
