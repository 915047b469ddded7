package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/internal/infra/database/models"
)

// EntityRepository reads the canonical entity registry. Writes happen only
// through the import transaction.
type EntityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

func (r *EntityRepository) Get(ctx context.Context, id string) (domain.Entity, error) {
	var row models.Entity
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Entity{}, domain.NotFoundError{Resource: "entity"}
		}
		return domain.Entity{}, errors.Wrap(err, "load entity")
	}
	return entityFromModel(row), nil
}

func (r *EntityRepository) GetByExternalID(ctx context.Context, externalID string) (domain.Entity, error) {
	var row models.Entity
	err := r.db.WithContext(ctx).Take(&row, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Entity{}, domain.NotFoundError{Resource: "entity"}
		}
		return domain.Entity{}, errors.Wrap(err, "load entity")
	}
	return entityFromModel(row), nil
}

func entityFromModel(row models.Entity) domain.Entity {
	return domain.Entity{
		ID:          row.ID,
		ExternalID:  row.ExternalID,
		DisplayName: row.DisplayName,
		Kind:        domain.EntityKind(row.Kind),
		CreatedAt:   row.CDate,
	}
}
