package usecase

import (
	"context"

	"github.com/jawafdehi/jawaf"
	"github.com/jawafdehi/jawaf/internal/domain"
)

// CaseRepository owns the versioned case store: the current projection plus
// the append-only revision log.
type CaseRepository interface {
	// Create persists a brand new case as version 1 and its first revision.
	Create(ctx context.Context, c domain.Case, action, actorID string) (domain.Revision, error)
	// GetCurrent loads the materialized current projection.
	GetCurrent(ctx context.Context, caseID string) (domain.Case, error)
	// Append commits next as expectedVersion+1 with a single atomic
	// check-and-write; a stale expectedVersion yields ConcurrencyError and
	// no write at all.
	Append(ctx context.Context, caseID string, expectedVersion int, next domain.Case, action, actorID string) (domain.Revision, error)
	// ListRevisions returns the audit log in version order. A nil states
	// filter returns everything.
	ListRevisions(ctx context.Context, caseID string, states []domain.CaseState) ([]domain.Revision, error)
}

// EntityRepository reads the canonical entity registry.
type EntityRepository interface {
	Get(ctx context.Context, id string) (domain.Entity, error)
	GetByExternalID(ctx context.Context, externalID string) (domain.Entity, error)
}

// SourceRepository reads the source store.
type SourceRepository interface {
	Get(ctx context.Context, id string) (domain.Source, error)
}

// ImportRepository materializes one import payload inside a single
// transaction: entity dedup, source dedup, case creation and linking.
type ImportRepository interface {
	ImportCase(ctx context.Context, c domain.Case, payload jawaf.ImportPayload) (jawaf.ImportSummary, error)
}

// EventPublisher pushes lifecycle notifications to the surrounding system.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, event jawaf.Event) error
}

// MetadataOracle is the external read-only entity-lookup service.
type MetadataOracle interface {
	GetEntity(ctx context.Context, externalID string) (jawaf.EntityMetadata, error)
}
