package repository

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jawafdehi/jawaf"
	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/internal/infra/database/models"
)

// ImportRepository materializes one import payload atomically: entity
// dedup, source dedup, case creation and linking all commit or roll back
// together.
type ImportRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

func (r *ImportRepository) ImportCase(ctx context.Context, kase domain.Case, payload jawaf.ImportPayload) (jawaf.ImportSummary, error) {
	var summary jawaf.ImportSummary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		run := newDedupRun(&txImportStore{tx: tx})

		var err error
		if kase.Alleged, err = run.resolveEntities(payload.Alleged); err != nil {
			return err
		}
		// Dedup drops refs it cannot resolve, so the reviewed-state guard
		// is re-checked against what will actually be committed.
		if err := checkAllegedResolved(kase.State, kase.Alleged); err != nil {
			return err
		}
		if kase.Related, err = run.resolveEntities(payload.Related); err != nil {
			return err
		}
		if kase.Locations, err = run.resolveEntities(payload.Locations); err != nil {
			return err
		}

		for i, ref := range payload.Sources {
			sourceID, err := run.resolveSource(ref)
			if err != nil {
				return err
			}
			if sourceID == "" {
				continue
			}
			kase.Evidence = append(kase.Evidence, jawaf.EvidenceEntry{
				SourceID:    sourceID,
				Description: ref.Description,
				Order:       i,
			})
		}

		kase.Version = 1
		row, err := caseToModel(kase)
		if err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return errors.Wrap(err, "create imported case")
		}
		if _, err := insertRevision(tx, kase, domain.ActionImported, ""); err != nil {
			return err
		}

		summary = run.summary
		summary.CaseID = kase.CaseID
		return nil
	})
	if err != nil {
		return jawaf.ImportSummary{}, err
	}
	return summary, nil
}

// checkAllegedResolved enforces the completeness rule for reviewed states
// after dedup has run: a case entering IN_REVIEW or PUBLISHED must link at
// least one resolved alleged entity.
func checkAllegedResolved(state domain.CaseState, alleged []string) error {
	if state != domain.StateInReview && state != domain.StatePublished {
		return nil
	}
	if len(alleged) == 0 {
		return domain.IncompletePreconditionError{Missing: []string{"alleged_entities"}}
	}
	return nil
}

// importStore is the handful of lookups and writes dedup needs; split out
// so the resolution logic is testable without a database.
type importStore interface {
	FindEntityByExternalID(externalID string) (string, bool, error)
	CreateEntity(e models.Entity) error
	FindSourceByURL(url string) (string, bool, error)
	FindSourceByTitle(title string) (string, bool, error)
	CreateSource(s models.Source) error
}

// dedupRun resolves entity and source references for a single import run.
// Entities carrying an external id are deduplicated globally by exact
// match; display-name-only entities are deduplicated only against names
// seen earlier in this run, so unrelated people sharing a name across runs
// stay distinct records.
type dedupRun struct {
	store   importStore
	byName  map[string]string
	byExtID map[string]string
	summary jawaf.ImportSummary
}

func newDedupRun(store importStore) *dedupRun {
	return &dedupRun{
		store:   store,
		byName:  make(map[string]string),
		byExtID: make(map[string]string),
	}
}

func (d *dedupRun) resolveEntities(refs []jawaf.EntityRef) ([]string, error) {
	var ids []string
	for _, ref := range refs {
		id, err := d.resolveEntity(ref)
		if err != nil {
			return nil, err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (d *dedupRun) resolveEntity(ref jawaf.EntityRef) (string, error) {
	if ref.ExternalID != nil && *ref.ExternalID != "" {
		extID := *ref.ExternalID
		if id, ok := d.byExtID[extID]; ok {
			d.summary.EntitiesReused++
			return id, nil
		}

		id, found, err := d.store.FindEntityByExternalID(extID)
		if err != nil {
			return "", err
		}
		if found {
			d.byExtID[extID] = id
			d.summary.EntitiesReused++
			return id, nil
		}

		entity := models.Entity{
			ID:          domain.NewEntityID(),
			ExternalID:  &extID,
			DisplayName: strings.TrimSpace(ref.DisplayName),
			Kind:        string(domain.ParseEntityKind(ref.Kind)),
		}
		if err := d.store.CreateEntity(entity); err != nil {
			return "", err
		}
		d.byExtID[extID] = entity.ID
		d.summary.EntitiesCreated++
		return entity.ID, nil
	}

	name := strings.TrimSpace(ref.DisplayName)
	if name == "" {
		return "", nil
	}
	if id, ok := d.byName[name]; ok {
		d.summary.EntitiesReused++
		return id, nil
	}

	entity := models.Entity{
		ID:          domain.NewEntityID(),
		DisplayName: name,
		Kind:        string(domain.ParseEntityKind(ref.Kind)),
	}
	if err := d.store.CreateEntity(entity); err != nil {
		return "", err
	}
	d.byName[name] = entity.ID
	d.summary.EntitiesCreated++
	return entity.ID, nil
}

// resolveSource deduplicates by exact URL first, then exact title; refs
// with neither a title nor a URL hit are skipped entirely.
func (d *dedupRun) resolveSource(ref jawaf.SourceRef) (string, error) {
	title := strings.TrimSpace(ref.Title)

	if ref.URL != nil && *ref.URL != "" {
		id, found, err := d.store.FindSourceByURL(*ref.URL)
		if err != nil {
			return "", err
		}
		if found {
			d.summary.SourcesReused++
			return id, nil
		}
	}

	if title == "" {
		return "", nil
	}

	id, found, err := d.store.FindSourceByTitle(title)
	if err != nil {
		return "", err
	}
	if found {
		d.summary.SourcesReused++
		return id, nil
	}

	source := models.Source{
		ID:          domain.NewSourceID(),
		Title:       title,
		Description: strings.TrimSpace(ref.Description),
		URL:         ref.URL,
	}
	if err := d.store.CreateSource(source); err != nil {
		return "", err
	}
	d.summary.SourcesCreated++
	return source.ID, nil
}

// txImportStore runs dedup lookups inside the import transaction, so rows
// created earlier in the run are visible to later lookups.
type txImportStore struct {
	tx *gorm.DB
}

func (s *txImportStore) FindEntityByExternalID(externalID string) (string, bool, error) {
	var row models.Entity
	err := s.tx.Take(&row, "external_id = ?", externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "entity dedup lookup")
	}
	return row.ID, true, nil
}

func (s *txImportStore) CreateEntity(e models.Entity) error {
	return errors.Wrap(s.tx.Create(&e).Error, "create entity")
}

func (s *txImportStore) FindSourceByURL(url string) (string, bool, error) {
	var row models.Source
	err := s.tx.Take(&row, "url = ? AND is_deleted = false", url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "source dedup lookup")
	}
	return row.ID, true, nil
}

func (s *txImportStore) FindSourceByTitle(title string) (string, bool, error) {
	var row models.Source
	err := s.tx.Take(&row, "title = ? AND is_deleted = false", title).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "source dedup lookup")
	}
	return row.ID, true, nil
}

func (s *txImportStore) CreateSource(src models.Source) error {
	return errors.Wrap(s.tx.Create(&src).Error, "create source")
}
