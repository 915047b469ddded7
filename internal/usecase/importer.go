package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jawafdehi/jawaf"
	"github.com/jawafdehi/jawaf/internal/domain"
)

// Importer materializes structured case payloads from the extraction
// pipeline. It is wired to privileged callers only (the import CLI); it
// deliberately does not consult the authorization gateway.
type Importer struct {
	repo   ImportRepository
	logger *zap.SugaredLogger
}

func NewImporter(repo ImportRepository, logger *zap.SugaredLogger) *Importer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Importer{repo: repo, logger: logger}
}

// ImportCase runs one all-or-nothing import. On any failure the whole
// transaction rolls back and nothing partial persists.
func (im *Importer) ImportCase(ctx context.Context, payload jawaf.ImportPayload) (jawaf.ImportSummary, error) {
	kase, err := im.buildCase(payload)
	if err != nil {
		return jawaf.ImportSummary{}, domain.ImportError{Reason: "invalid payload", Err: err}
	}

	im.logger.Infow("importing case", "title", kase.Title, "state", kase.State)

	summary, err := im.repo.ImportCase(ctx, kase, payload)
	if err != nil {
		return jawaf.ImportSummary{}, domain.ImportError{Err: err}
	}

	im.logger.Infow("import finished",
		"caseId", summary.CaseID,
		"entitiesCreated", summary.EntitiesCreated,
		"entitiesReused", summary.EntitiesReused,
		"sourcesCreated", summary.SourcesCreated,
		"sourcesReused", summary.SourcesReused,
	)
	return summary, nil
}

// buildCase maps the payload onto a fresh DRAFT-by-default case and applies
// the same domain validation ordinary creation gets.
func (im *Importer) buildCase(payload jawaf.ImportPayload) (domain.Case, error) {
	if strings.TrimSpace(payload.Title) == "" {
		return domain.Case{}, domain.ValidationError{Fields: map[string]string{"title": "title is required"}}
	}

	caseType := domain.TypeCorruption
	if payload.CaseType != "" {
		parsed, ok := domain.ParseCaseType(payload.CaseType)
		if !ok {
			return domain.Case{}, domain.ValidationError{Fields: map[string]string{"caseType": "unknown case type"}}
		}
		caseType = parsed
	}

	state := domain.StateDraft
	if payload.State != "" {
		parsed, ok := domain.ParseCaseState(payload.State)
		if !ok {
			return domain.Case{}, domain.ValidationError{Fields: map[string]string{"state": "unknown state"}}
		}
		state = parsed
	}

	now := time.Now().UTC()
	kase := domain.Case{
		CaseID:         domain.NewCaseID(),
		CaseType:       caseType,
		State:          state,
		Title:          strings.TrimSpace(payload.Title),
		Description:    payload.Description,
		KeyAllegations: payload.KeyAllegations,
		Tags:           payload.Tags,
		StartDate:      parseDate(payload.StartDate),
		EndDate:        parseDate(payload.EndDate),
		Timeline:       payload.Timeline,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Entity and evidence lists are filled in by the repository once dedup
	// has resolved registry ids, inside the import transaction.

	if state == domain.StateInReview || state == domain.StatePublished {
		// The guard still applies when the pipeline asks for a reviewed
		// state up front; alleged refs come from the payload. Blank refs
		// resolve to nothing during dedup, so they cannot satisfy it.
		if countResolvable(payload.Alleged) == 0 {
			return domain.Case{}, domain.IncompletePreconditionError{Missing: []string{"alleged_entities"}}
		}
		if strings.TrimSpace(payload.Description) == "" {
			return domain.Case{}, domain.IncompletePreconditionError{Missing: []string{"description"}}
		}
	}

	return kase, nil
}

// countResolvable counts refs the import transaction will turn into
// entities, mirroring the dedup rules: an external id wins outright, a
// name-only ref needs a non-blank trimmed display name.
func countResolvable(refs []jawaf.EntityRef) int {
	n := 0
	for _, ref := range refs {
		if ref.ExternalID != nil && *ref.ExternalID != "" {
			n++
			continue
		}
		if strings.TrimSpace(ref.DisplayName) != "" {
			n++
		}
	}
	return n
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
