package repository

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/internal/infra/database/models"
)

// CaseRepository is the revision store. The current projection lives in the
// cases table; every committed change also appends a write-once row to the
// revisions table inside the same transaction.
type CaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) Create(ctx context.Context, c domain.Case, action, actorID string) (domain.Revision, error) {
	c.Version = 1
	var rev domain.Revision
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := caseToModel(c)
		if err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return errors.Wrap(err, "create case projection")
		}

		created, err := insertRevision(tx, c, action, actorID)
		if err != nil {
			return err
		}
		rev = created

		for _, userID := range c.Contributors {
			if err := tx.Create(&models.Assignment{CaseID: c.CaseID, UserID: userID}).Error; err != nil {
				return errors.Wrap(err, "create assignment")
			}
		}
		return nil
	})
	if err != nil {
		return domain.Revision{}, err
	}
	return rev, nil
}

func (r *CaseRepository) GetCurrent(ctx context.Context, caseID string) (domain.Case, error) {
	var row models.Case
	err := r.db.WithContext(ctx).Take(&row, "case_id = ?", caseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Case{}, domain.NotFoundError{Resource: "case"}
		}
		return domain.Case{}, errors.Wrap(err, "load case")
	}

	kase, err := caseFromModel(row)
	if err != nil {
		return domain.Case{}, err
	}

	var assignments []models.Assignment
	if err := r.db.WithContext(ctx).Where("case_id = ?", caseID).Find(&assignments).Error; err != nil {
		return domain.Case{}, errors.Wrap(err, "load assignments")
	}
	for _, a := range assignments {
		kase.Contributors = append(kase.Contributors, a.UserID)
	}
	return kase, nil
}

// Append commits next as expectedVersion+1. The optimistic concurrency
// check and the projection write are one conditional UPDATE: if the stored
// version no longer equals expectedVersion, zero rows match and nothing is
// written anywhere.
func (r *CaseRepository) Append(ctx context.Context, caseID string, expectedVersion int, next domain.Case, action, actorID string) (domain.Revision, error) {
	next.CaseID = caseID
	next.Version = expectedVersion + 1

	var rev domain.Revision
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := caseToModel(next)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Case{}).
			Where("case_id = ? AND version = ?", caseID, expectedVersion).
			Updates(map[string]any{
				"version":         next.Version,
				"case_type":       row.CaseType,
				"state":           row.State,
				"title":           row.Title,
				"description":     row.Description,
				"key_allegations": row.KeyAllegations,
				"tags":            row.Tags,
				"start_date":      row.StartDate,
				"end_date":        row.EndDate,
				"alleged":         row.Alleged,
				"related":         row.Related,
				"locations":       row.Locations,
				"timeline":        row.Timeline,
				"evidence":        row.Evidence,
				"m_date":          next.UpdatedAt,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "update case projection")
		}
		if res.RowsAffected == 0 {
			// Either the case is gone or the version went stale. Look once
			// to tell the two apart.
			var exists int64
			if err := tx.Model(&models.Case{}).Where("case_id = ?", caseID).Count(&exists).Error; err != nil {
				return errors.Wrap(err, "check case existence")
			}
			if exists == 0 {
				return domain.NotFoundError{Resource: "case"}
			}
			return domain.ConcurrencyError{CaseID: caseID, ExpectedVersion: expectedVersion}
		}

		created, err := insertRevision(tx, next, action, actorID)
		if err != nil {
			return err
		}
		rev = created

		return syncAssignments(tx, caseID, next.Contributors)
	})
	if err != nil {
		return domain.Revision{}, err
	}
	return rev, nil
}

func (r *CaseRepository) ListRevisions(ctx context.Context, caseID string, states []domain.CaseState) ([]domain.Revision, error) {
	q := r.db.WithContext(ctx).Where("case_id = ?", caseID)
	if states != nil {
		stateStrings := make([]string, 0, len(states))
		for _, s := range states {
			stateStrings = append(stateStrings, string(s))
		}
		q = q.Where("state IN ?", stateStrings)
	}

	var rows []models.Revision
	if err := q.Order("version ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list revisions")
	}

	revisions := make([]domain.Revision, 0, len(rows))
	for _, row := range rows {
		rev, err := revisionFromModel(row)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	return revisions, nil
}

// insertRevision writes the immutable audit row. The primary key
// (case_id, version) makes duplicate versions a hard constraint violation
// even if the conditional update were ever bypassed.
func insertRevision(tx *gorm.DB, c domain.Case, action, actorID string) (domain.Revision, error) {
	raw, checksum, err := domain.EncodeSnapshot(c)
	if err != nil {
		return domain.Revision{}, errors.Wrap(err, "encode snapshot")
	}

	row := models.Revision{
		CaseID:   c.CaseID,
		Version:  c.Version,
		State:    string(c.State),
		Action:   action,
		ActorID:  actorID,
		Snapshot: string(raw),
		Checksum: checksum,
	}
	if err := tx.Create(&row).Error; err != nil {
		return domain.Revision{}, errors.Wrap(err, "append revision")
	}

	return domain.Revision{
		CaseID:    row.CaseID,
		Version:   row.Version,
		State:     c.State,
		Action:    action,
		ActorID:   actorID,
		Snapshot:  c,
		Checksum:  checksum,
		CreatedAt: row.CDate,
	}, nil
}

func syncAssignments(tx *gorm.DB, caseID string, contributors []string) error {
	keep := make(map[string]bool, len(contributors))
	for _, userID := range contributors {
		keep[userID] = true
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Assignment{CaseID: caseID, UserID: userID}).Error
		if err != nil {
			return errors.Wrap(err, "upsert assignment")
		}
	}

	var existing []models.Assignment
	if err := tx.Where("case_id = ?", caseID).Find(&existing).Error; err != nil {
		return errors.Wrap(err, "load assignments")
	}
	for _, a := range existing {
		if !keep[a.UserID] {
			if err := tx.Delete(&models.Assignment{}, "case_id = ? AND user_id = ?", caseID, a.UserID).Error; err != nil {
				return errors.Wrap(err, "remove assignment")
			}
		}
	}
	return nil
}

func revisionFromModel(row models.Revision) (domain.Revision, error) {
	// Revisions are write-once; a checksum mismatch means the log was
	// edited out of band and the trail can no longer be trusted.
	if domain.SnapshotChecksum([]byte(row.Snapshot)) != row.Checksum {
		return domain.Revision{}, errors.Errorf("revision %s v%d failed checksum verification", row.CaseID, row.Version)
	}

	var snapshot domain.Case
	if err := json.Unmarshal([]byte(row.Snapshot), &snapshot); err != nil {
		return domain.Revision{}, errors.Wrap(err, "decode snapshot")
	}

	return domain.Revision{
		CaseID:    row.CaseID,
		Version:   row.Version,
		State:     domain.CaseState(row.State),
		Action:    row.Action,
		ActorID:   row.ActorID,
		Snapshot:  snapshot,
		Checksum:  row.Checksum,
		CreatedAt: row.CDate,
	}, nil
}

func caseToModel(c domain.Case) (models.Case, error) {
	tags, err := marshalList(c.Tags)
	if err != nil {
		return models.Case{}, err
	}
	allegations, err := marshalList(c.KeyAllegations)
	if err != nil {
		return models.Case{}, err
	}
	alleged, err := marshalList(c.Alleged)
	if err != nil {
		return models.Case{}, err
	}
	related, err := marshalList(c.Related)
	if err != nil {
		return models.Case{}, err
	}
	locations, err := marshalList(c.Locations)
	if err != nil {
		return models.Case{}, err
	}
	timeline, err := marshalList(c.Timeline)
	if err != nil {
		return models.Case{}, err
	}
	evidence, err := marshalList(c.Evidence)
	if err != nil {
		return models.Case{}, err
	}

	return models.Case{
		CaseID:         c.CaseID,
		Version:        c.Version,
		CaseType:       string(c.CaseType),
		State:          string(c.State),
		Title:          c.Title,
		Description:    c.Description,
		KeyAllegations: allegations,
		Tags:           tags,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		Alleged:        alleged,
		Related:        related,
		Locations:      locations,
		Timeline:       timeline,
		Evidence:       evidence,
		MDate:          c.UpdatedAt,
	}, nil
}

func caseFromModel(row models.Case) (domain.Case, error) {
	kase := domain.Case{
		CaseID:      row.CaseID,
		Version:     row.Version,
		CaseType:    domain.CaseType(row.CaseType),
		State:       domain.CaseState(row.State),
		Title:       row.Title,
		Description: row.Description,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		CreatedAt:   row.CDate,
		UpdatedAt:   row.MDate,
	}
	if err := unmarshalList(row.KeyAllegations, &kase.KeyAllegations); err != nil {
		return domain.Case{}, err
	}
	if err := unmarshalList(row.Tags, &kase.Tags); err != nil {
		return domain.Case{}, err
	}
	if err := unmarshalList(row.Alleged, &kase.Alleged); err != nil {
		return domain.Case{}, err
	}
	if err := unmarshalList(row.Related, &kase.Related); err != nil {
		return domain.Case{}, err
	}
	if err := unmarshalList(row.Locations, &kase.Locations); err != nil {
		return domain.Case{}, err
	}
	if err := unmarshalList(row.Timeline, &kase.Timeline); err != nil {
		return domain.Case{}, err
	}
	if err := unmarshalList(row.Evidence, &kase.Evidence); err != nil {
		return domain.Case{}, err
	}
	return kase, nil
}

func marshalList[T any](list []T) (string, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "", errors.Wrap(err, "encode list column")
	}
	return string(raw), nil
}

func unmarshalList[T any](raw string, out *[]T) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return errors.Wrap(err, "decode list column")
	}
	if len(*out) == 0 {
		*out = nil
	}
	return nil
}
