package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/internal/infra/database/models"
)

// SourceRepository reads the source store. Writes happen only through the
// import transaction.
type SourceRepository struct {
	db *gorm.DB
}

func NewSourceRepository(db *gorm.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

func (r *SourceRepository) Get(ctx context.Context, id string) (domain.Source, error) {
	var row models.Source
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Source{}, domain.NotFoundError{Resource: "source"}
		}
		return domain.Source{}, errors.Wrap(err, "load source")
	}
	return sourceFromModel(row)
}

func sourceFromModel(row models.Source) (domain.Source, error) {
	src := domain.Source{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		URL:         row.URL,
		IsDeleted:   row.IsDeleted,
		CreatedAt:   row.CDate,
	}
	if err := unmarshalList(row.RelatedEntities, &src.RelatedEntityIDs); err != nil {
		return domain.Source{}, err
	}
	return src, nil
}
