package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jawafdehi/jawaf"
	"github.com/jawafdehi/jawaf/internal/domain"
)

// EntityUsecase reads the entity registry and, when an oracle is
// configured, enriches records that carry an external identifier.
type EntityUsecase struct {
	repo   EntityRepository
	oracle MetadataOracle
}

func NewEntityUsecase(repo EntityRepository, oracle MetadataOracle) *EntityUsecase {
	return &EntityUsecase{repo: repo, oracle: oracle}
}

// EnrichedEntity is a registry record plus whatever the oracle knows.
type EnrichedEntity struct {
	Entity   domain.Entity         `json:"entity"`
	Metadata *jawaf.EntityMetadata `json:"metadata,omitempty"`
}

// Get loads a registry entity by id. Oracle failures degrade to the bare
// registry record; the oracle is a collaborator, not a dependency.
func (uc *EntityUsecase) Get(ctx context.Context, id string) (EnrichedEntity, error) {
	entity, err := uc.repo.Get(ctx, id)
	if err != nil {
		return EnrichedEntity{}, errors.Wrap(err, "entity lookup failed")
	}
	return uc.enrich(ctx, entity), nil
}

// GetByExternalID loads a registry entity by its system-wide external
// identifier, the same key the importer deduplicates on.
func (uc *EntityUsecase) GetByExternalID(ctx context.Context, externalID string) (EnrichedEntity, error) {
	entity, err := uc.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return EnrichedEntity{}, errors.Wrap(err, "entity lookup failed")
	}
	return uc.enrich(ctx, entity), nil
}

func (uc *EntityUsecase) enrich(ctx context.Context, entity domain.Entity) EnrichedEntity {
	result := EnrichedEntity{Entity: entity}
	if uc.oracle != nil && entity.ExternalID != nil {
		if meta, err := uc.oracle.GetEntity(ctx, *entity.ExternalID); err == nil {
			result.Metadata = &meta
		}
	}
	return result
}
